// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story

import (
	"context"
	"log/slog"

	"github.com/taibuivan/storyhub/internal/platform/apperr"
)

// # Engagement Counters

/*
Increment atomically adds one to field and returns the updated story.

Description: The delta is applied by the store in a single statement, so
concurrent increments from any number of processes are never lost. A failed
update changes nothing and is reported as-is; there are no retries.

Returns:
  - *Story: The post-update record
  - error: NotFound, StorageUnavailable or InvalidArgument for an unknown field
*/
func (service *Service) Increment(context context.Context, id string, field CounterField) (*Story, error) {
	return service.addToCounter(context, id, field, 1)
}

/*
Decrement atomically subtracts one from field. Only likes may be decremented,
and no floor is applied: unliking a story with zero likes yields -1.
*/
func (service *Service) Decrement(context context.Context, id string, field CounterField) (*Story, error) {
	if !field.Decrementable() {
		return nil, apperr.InvalidArgument("Counter '" + string(field) + "' cannot be decremented")
	}
	return service.addToCounter(context, id, field, -1)
}

func (service *Service) addToCounter(context context.Context, id string, field CounterField, delta int64) (*Story, error) {
	if _, err := ParseCounterField(string(field)); err != nil {
		return nil, err
	}

	story, err := service.repo.AddToCounter(context, id, field, delta)
	if err != nil {
		return nil, err
	}

	service.logger.Debug("story_counter_updated",
		slog.String("story_id", id),
		slog.String("field", string(field)),
		slog.Int64("delta", delta),
	)

	return story, nil
}
