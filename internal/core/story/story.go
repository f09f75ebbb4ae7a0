// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package story owns the story catalogue: durable records, atomic engagement
counters, search and sort, category rankings and content export.

Architecture:

  - story.go: Domain entities and selector parsing.
  - store.go: Persistence contract ([Repository]).
  - store_postgres.go / store_sqlite.go: The two shipped backends.
  - service.go, counter.go, query.go, ranking.go, export.go: Business logic.
  - http.go: Transport adapter.

Records are created once and afterwards only mutated through the counters.
*/
package story

import (
	"github.com/taibuivan/storyhub/internal/platform/apperr"
)

// # Domain Entities

// Story is a single community text submission.
type Story struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Downloads int64  `json:"downloads"`
	Views     int64  `json:"views"`
	Likes     int64  `json:"likes"`
}

// NewStory carries the ingestion attributes of [Service.Create].
type NewStory struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Content  string `json:"content"`
}

// CategoryTotal is one row of a category ranking.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
}

// # Field Names

const (
	FieldCategory = "category"
	FieldTitle    = "title"
	FieldAuthor   = "author"
	FieldContent  = "content"
	FieldSort     = "sort"
	FieldLimit    = "limit"
)

// Input bounds enforced at creation.
const (
	MaxCategoryLength = 100
	MaxTitleLength    = 255
	MaxAuthorLength   = 255
)

// # Counters

// CounterField selects one of the engagement counters.
type CounterField string

const (
	CounterViews     CounterField = "views"
	CounterDownloads CounterField = "downloads"
	CounterLikes     CounterField = "likes"
)

// ParseCounterField validates a counter selector.
func ParseCounterField(raw string) (CounterField, error) {
	switch field := CounterField(raw); field {
	case CounterViews, CounterDownloads, CounterLikes:
		return field, nil
	default:
		return "", apperr.InvalidArgument("Unknown counter field '" + raw + "'")
	}
}

// Decrementable reports whether the counter may go down. Only likes can.
func (field CounterField) Decrementable() bool {
	return field == CounterLikes
}

// # Sorting

// SortField selects the key for [Sort]. Every sort is descending.
type SortField string

const (
	SortTitle     SortField = "title"
	SortLikes     SortField = "likes"
	SortViews     SortField = "views"
	SortDownloads SortField = "downloads"
)

// ParseSortField validates a sort selector. There is no silent default.
func ParseSortField(raw string) (SortField, error) {
	switch field := SortField(raw); field {
	case SortTitle, SortLikes, SortViews, SortDownloads:
		return field, nil
	default:
		return "", apperr.InvalidArgument("Unknown sort field '" + raw + "'")
	}
}
