// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/storyhub/internal/platform/database/schema"
)

// Repository defines the data access contract for stories.
//
// Every list is returned in storage (insertion) order. Implementations must
// apply counter deltas with a single atomic statement, never read-modify-write.
type Repository interface {
	Create(context context.Context, story *Story) error
	FindByID(context context.Context, id string) (*Story, error)

	// FindByTitle returns the first story in storage order with exactly this title.
	FindByTitle(context context.Context, title string) (*Story, error)

	List(context context.Context) ([]*Story, error)
	ListByCategory(context context.Context, category string) ([]*Story, error)

	// SearchTitle matches a case-insensitive substring of the title. An
	// empty substring matches every story.
	SearchTitle(context context.Context, substring string) ([]*Story, error)

	// AddToCounter adds delta to field and returns the post-update record.
	AddToCounter(context context.Context, id string, field CounterField, delta int64) (*Story, error)

	// SumByCategory groups by category and returns the top totals of field,
	// descending, ties in order of first appearance.
	SumByCategory(context context.Context, field CounterField, limit int) ([]CategoryTotal, error)
}

const resourceStory = "Story"

// rowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanStory hydrates a story from a row selected with [storyColumns].
func scanStory(row rowScanner) (*Story, error) {
	story := &Story{}
	err := row.Scan(
		&story.ID,
		&story.Category,
		&story.Title,
		&story.Author,
		&story.Content,
		&story.Downloads,
		&story.Views,
		&story.Likes,
	)
	if err != nil {
		return nil, err
	}
	return story, nil
}

// storyColumns is the shared projection for every story query.
var storyColumns = strings.Join(schema.Story.Columns(), ", ")

// counterColumn maps a validated counter to its column name. Column names are
// interpolated into SQL, so only known fields are accepted.
func counterColumn(field CounterField) (string, error) {
	switch field {
	case CounterViews:
		return schema.Story.Views, nil
	case CounterDownloads:
		return schema.Story.Downloads, nil
	case CounterLikes:
		return schema.Story.Likes, nil
	default:
		return "", fmt.Errorf("story: unknown counter field %q", field)
	}
}
