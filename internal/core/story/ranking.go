// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story

import (
	"context"
	"fmt"

	"github.com/taibuivan/storyhub/internal/platform/apperr"
)

// # Aggregation Engine

const (
	// DefaultRankingLimit is the number of categories returned when the caller
	// does not ask for a specific count.
	DefaultRankingLimit = 5

	// MaxRankingLimit caps a single ranking response.
	MaxRankingLimit = 100
)

// TopCategoriesByViews ranks categories by the sum of their stories' views.
func (service *Service) TopCategoriesByViews(context context.Context, limit int) ([]CategoryTotal, error) {
	return service.topCategories(context, CounterViews, limit)
}

// TopCategoriesByDownloads ranks categories by the sum of their stories' downloads.
func (service *Service) TopCategoriesByDownloads(context context.Context, limit int) ([]CategoryTotal, error) {
	return service.topCategories(context, CounterDownloads, limit)
}

/*
topCategories groups every story by category and returns the limit largest
sums of field, descending.

Equal sums are ordered by the first appearance of the category in storage
order, so a fixed snapshot always ranks the same way.
*/
func (service *Service) topCategories(context context.Context, field CounterField, limit int) ([]CategoryTotal, error) {
	if limit <= 0 {
		return nil, apperr.InvalidArgument(fmt.Sprintf("Ranking limit must be positive, got %d", limit))
	}

	limit = min(limit, MaxRankingLimit)

	return service.repo.SumByCategory(context, field, limit)
}
