// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story

import (
	"cmp"
	"context"
	"slices"

	"github.com/taibuivan/storyhub/internal/platform/apperr"
	"github.com/taibuivan/storyhub/pkg/slice"
)

// # Query Engine

// Filter combines the selectors of the story listing endpoint. Zero values
// mean "no constraint"; an empty Sort keeps storage order.
type Filter struct {
	Search   string
	Category string
	Sort     string
}

// Search returns every story whose title contains substring, ignoring case.
// An empty substring returns every story.
func (service *Service) Search(context context.Context, substring string) ([]*Story, error) {
	return service.repo.SearchTitle(context, substring)
}

/*
Query applies search, category filter and sort in that order.

Returns:
  - []*Story: Matching stories
  - error: InvalidArgument for an unknown sort field (checked before any I/O)
*/
func (service *Service) Query(context context.Context, filter Filter) ([]*Story, error) {
	var sortField SortField
	if filter.Sort != "" {
		field, err := ParseSortField(filter.Sort)
		if err != nil {
			return nil, err
		}
		sortField = field
	}

	stories, err := service.Search(context, filter.Search)
	if err != nil {
		return nil, err
	}

	if filter.Category != "" {
		stories = FilterByCategory(stories, filter.Category)
	}

	if sortField != "" {
		return Sort(stories, sortField)
	}

	return stories, nil
}

// FilterByCategory keeps the stories whose category matches exactly.
// The result is never nil.
func FilterByCategory(stories []*Story, category string) []*Story {
	return slice.Filter(stories, func(story *Story) bool {
		return story.Category == category
	})
}

/*
Sort returns a copy of stories ordered descending by field.

Titles compare byte-wise, numbers numerically. The sort is stable, so ties
keep their input (storage) order. There is no ascending mode.

Returns:
  - []*Story: The sorted copy; the input slice is left untouched
  - error: InvalidArgument for an unknown field
*/
func Sort(stories []*Story, field SortField) ([]*Story, error) {
	key, err := sortKey(field)
	if err != nil {
		return nil, err
	}

	sorted := slices.Clone(stories)
	if sorted == nil {
		sorted = []*Story{}
	}

	slices.SortStableFunc(sorted, func(a, b *Story) int {
		return key(b, a)
	})

	return sorted, nil
}

// sortKey returns an ascending comparator for field.
func sortKey(field SortField) (func(a, b *Story) int, error) {
	switch field {
	case SortTitle:
		return func(a, b *Story) int { return cmp.Compare(a.Title, b.Title) }, nil
	case SortLikes:
		return func(a, b *Story) int { return cmp.Compare(a.Likes, b.Likes) }, nil
	case SortViews:
		return func(a, b *Story) int { return cmp.Compare(a.Views, b.Views) }, nil
	case SortDownloads:
		return func(a, b *Story) int { return cmp.Compare(a.Downloads, b.Downloads) }, nil
	default:
		return nil, apperr.InvalidArgument("Unknown sort field '" + string(field) + "'")
	}
}
