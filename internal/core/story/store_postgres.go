// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/storyhub/internal/platform/database/schema"
	"github.com/taibuivan/storyhub/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed story store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new story. Counters take their column defaults.
func (repository *PostgresRepository) Create(context context.Context, story *Story) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
	`,
		schema.Story.Table,
		schema.Story.ID,
		schema.Story.Category,
		schema.Story.Title,
		schema.Story.Author,
		schema.Story.Content,
	)

	_, err := repository.pool.Exec(context, query, story.ID, story.Category, story.Title, story.Author, story.Content)
	return dberr.Wrap(err, resourceStory, "create_story")
}

// FindByID fetches a story by its identifier.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Story, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		storyColumns, schema.Story.Table, schema.Story.ID,
	)

	story, err := scanStory(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceStory, "find_story_by_id")
	}
	return story, nil
}

// FindByTitle fetches the earliest stored story with the exact title.
func (repository *PostgresRepository) FindByTitle(context context.Context, title string) (*Story, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC LIMIT 1`,
		storyColumns, schema.Story.Table, schema.Story.Title, schema.Story.Seq,
	)

	story, err := scanStory(repository.pool.QueryRow(context, query, title))
	if err != nil {
		return nil, dberr.Wrap(err, resourceStory, "find_story_by_title")
	}
	return story, nil
}

// List returns every story in storage order.
func (repository *PostgresRepository) List(context context.Context) ([]*Story, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		storyColumns, schema.Story.Table, schema.Story.Seq,
	)
	return repository.queryStories(context, "list_stories", query)
}

// ListByCategory returns the stories whose category matches exactly.
func (repository *PostgresRepository) ListByCategory(context context.Context, category string) ([]*Story, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		storyColumns, schema.Story.Table, schema.Story.Category, schema.Story.Seq,
	)
	return repository.queryStories(context, "list_stories_by_category", query, category)
}

// SearchTitle uses strpos rather than LIKE so that '%' and '_' in the
// substring are matched literally.
func (repository *PostgresRepository) SearchTitle(context context.Context, substring string) ([]*Story, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE strpos(lower(%s), lower($1)) > 0 ORDER BY %s ASC`,
		storyColumns, schema.Story.Table, schema.Story.Title, schema.Story.Seq,
	)
	return repository.queryStories(context, "search_stories", query, substring)
}

// AddToCounter applies delta in one UPDATE ... RETURNING statement.
func (repository *PostgresRepository) AddToCounter(context context.Context, id string, field CounterField, delta int64) (*Story, error) {
	column, err := counterColumn(field)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = %s + $1 WHERE %s = $2 RETURNING %s`,
		schema.Story.Table, column, column, schema.Story.ID, storyColumns,
	)

	story, err := scanStory(repository.pool.QueryRow(context, query, delta, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceStory, "update_story_counter")
	}
	return story, nil
}

// SumByCategory aggregates in a single statement, so every total comes from
// one snapshot.
func (repository *PostgresRepository) SumByCategory(context context.Context, field CounterField, limit int) ([]CategoryTotal, error) {
	column, err := counterColumn(field)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s, COALESCE(SUM(%s), 0)::BIGINT AS total
		FROM %s
		GROUP BY %s
		ORDER BY total DESC, MIN(%s) ASC
		LIMIT $1
	`,
		schema.Story.Category, column,
		schema.Story.Table,
		schema.Story.Category,
		schema.Story.Seq,
	)

	rows, err := repository.pool.Query(context, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, resourceStory, "sum_stories_by_category")
	}
	defer rows.Close()

	totals := make([]CategoryTotal, 0, limit)
	for rows.Next() {
		var total CategoryTotal
		if err := rows.Scan(&total.Category, &total.Total); err != nil {
			return nil, dberr.Wrap(err, resourceStory, "scan_category_total")
		}
		totals = append(totals, total)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceStory, "sum_stories_by_category")
	}
	return totals, nil
}

// queryStories runs a multi-row story query and hydrates the results.
func (repository *PostgresRepository) queryStories(context context.Context, action, query string, args ...any) ([]*Story, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resourceStory, action)
	}
	defer rows.Close()

	return collectStories(rows, action)
}

// collectStories drains rows into a non-nil slice.
func collectStories(rows pgx.Rows, action string) ([]*Story, error) {
	stories := []*Story{}
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceStory, action)
		}
		stories = append(stories, story)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceStory, action)
	}
	return stories, nil
}
