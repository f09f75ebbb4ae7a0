// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/storyhub/internal/platform/validate"
	"github.com/taibuivan/storyhub/pkg/uuid"
)

// Service serves the category list, read-through a [Cache] when one is set.
type Service struct {
	repo   Repository
	cache  Cache
	logger *slog.Logger
}

// NewService constructs a category [Service]. cache may be nil.
func NewService(repo Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// List returns every category in storage order.
func (service *Service) List(context context.Context) ([]*Category, error) {
	if service.cache != nil {
		if categories, ok := service.cache.Get(context); ok {
			return categories, nil
		}
	}

	categories, err := service.repo.List(context)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		service.cache.Set(context, categories)
	}
	return categories, nil
}

// Get fetches a category by exact name.
func (service *Service) Get(context context.Context, name string) (*Category, error) {
	return service.repo.FindByName(context, name)
}

/*
Seed inserts the named categories that do not exist yet.

Description: Names are trimmed and de-duplicated; each must be non-empty,
single-line and within [MaxNameLength]. Failures name the entry by position
(e.g. "name[2]"). Re-running with the same list is a no-op. The cached list
is dropped whenever something was added.

Returns:
  - int: Number of categories actually inserted
  - error: ValidationError naming the offending entry, or a storage error
*/
func (service *Service) Seed(context context.Context, names []string) (int, error) {
	validator := &validate.Validator{}
	seen := make(map[string]struct{}, len(names))

	categories := make([]*Category, 0, len(names))
	for index, raw := range names {
		name := strings.TrimSpace(raw)
		field := fmt.Sprintf("%s[%d]", FieldName, index)
		validator.Required(field, name).MaxLen(field, name, MaxNameLength).SingleLine(field, name)

		if _, dup := seen[name]; dup || name == "" {
			continue
		}
		seen[name] = struct{}{}
		categories = append(categories, &Category{ID: uuid.New(), Name: name})
	}

	if err := validator.Err(); err != nil {
		return 0, err
	}

	inserted, err := service.repo.Insert(context, categories)
	if err != nil {
		return 0, err
	}

	if inserted > 0 && service.cache != nil {
		service.cache.Invalidate(context)
	}

	service.logger.Info("categories_seeded",
		slog.Int("requested", len(categories)),
		slog.Int("inserted", inserted),
	)

	return inserted, nil
}
