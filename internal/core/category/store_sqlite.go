// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taibuivan/storyhub/internal/platform/database/schema"
	"github.com/taibuivan/storyhub/internal/platform/dberr"
)

// SQLiteRepository implements [Repository] on the embedded SQLite store.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository constructs a SQLite backed category store.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (repository *SQLiteRepository) List(context context.Context) ([]*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s ASC`,
		schema.Category.ID, schema.Category.Name, schema.Category.Table, schema.Category.Seq,
	)

	rows, err := repository.db.QueryContext(context, query)
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

func (repository *SQLiteRepository) FindByName(context context.Context, name string) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = ?`,
		schema.Category.ID, schema.Category.Name, schema.Category.Table, schema.Category.Name,
	)

	c := &Category{}
	if err := repository.db.QueryRowContext(context, query, name).Scan(&c.ID, &c.Name); err != nil {
		return nil, dberr.Wrap(err, resourceCategory, "find_category")
	}
	return c, nil
}

// Insert runs every insert in one transaction so a seed is applied whole or not at all.
func (repository *SQLiteRepository) Insert(context context.Context, categories []*Category) (int, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES (?, ?) ON CONFLICT (%s) DO NOTHING`,
		schema.Category.Table, schema.Category.ID, schema.Category.Name, schema.Category.Name,
	)

	tx, err := repository.db.BeginTx(context, nil)
	if err != nil {
		return 0, dberr.Wrap(err, resourceCategory, "insert_categories")
	}
	defer func() { _ = tx.Rollback() }()

	inserted := 0
	for _, c := range categories {
		result, err := tx.ExecContext(context, query, c.ID, c.Name)
		if err != nil {
			return 0, dberr.Wrap(err, resourceCategory, "insert_categories")
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, dberr.Wrap(err, resourceCategory, "insert_categories")
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, dberr.Wrap(err, resourceCategory, "insert_categories")
	}
	return inserted, nil
}
