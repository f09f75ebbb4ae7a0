// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/storyhub/internal/platform/database/schema"
	"github.com/taibuivan/storyhub/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed category store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) List(context context.Context) ([]*Category, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		ORDER BY %s ASC;
	`,
		schema.Category.ID,
		schema.Category.Name,
		schema.Category.Table,
		schema.Category.Seq,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, resourceCategory, "list_categories")
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, dberr.Wrap(err, resourceCategory, "scan_category")
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceCategory, "list_categories")
	}
	return categories, nil
}

func (repository *PostgresRepository) FindByName(context context.Context, name string) (*Category, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		WHERE %s = $1;
	`,
		schema.Category.ID,
		schema.Category.Name,
		schema.Category.Table,
		schema.Category.Name,
	)

	c := &Category{}
	if err := repository.pool.QueryRow(context, query, name).Scan(&c.ID, &c.Name); err != nil {
		return nil, dberr.Wrap(err, resourceCategory, "find_category")
	}
	return c, nil
}

// Insert runs every insert in one transaction so a seed is applied whole or not at all.
func (repository *PostgresRepository) Insert(context context.Context, categories []*Category) (int, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT (%s) DO NOTHING;
	`,
		schema.Category.Table,
		schema.Category.ID,
		schema.Category.Name,
		schema.Category.Name,
	)

	inserted := 0
	err := pgx.BeginFunc(context, repository.pool, func(tx pgx.Tx) error {
		for _, c := range categories {
			tag, err := tx.Exec(context, query, c.ID, c.Name)
			if err != nil {
				return err
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, dberr.Wrap(err, resourceCategory, "insert_categories")
	}
	return inserted, nil
}
