// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/storyhub/internal/platform/apperr"
	"github.com/taibuivan/storyhub/internal/platform/dberr"
	"github.com/taibuivan/storyhub/internal/testutil"
)

// recordingRepository records calls and fails every one with err when set.
type recordingRepository struct {
	err       error
	calls     []string
	lastLimit int
	lastDelta int64
}

func (r *recordingRepository) record(call string) error {
	r.calls = append(r.calls, call)
	return r.err
}

func (r *recordingRepository) Create(_ context.Context, _ *Story) error {
	return r.record("Create")
}

func (r *recordingRepository) FindByID(_ context.Context, id string) (*Story, error) {
	return &Story{ID: id}, r.record("FindByID")
}

func (r *recordingRepository) FindByTitle(_ context.Context, title string) (*Story, error) {
	return &Story{Title: title}, r.record("FindByTitle")
}

func (r *recordingRepository) List(_ context.Context) ([]*Story, error) {
	return nil, r.record("List")
}

func (r *recordingRepository) ListByCategory(_ context.Context, _ string) ([]*Story, error) {
	return nil, r.record("ListByCategory")
}

func (r *recordingRepository) SearchTitle(_ context.Context, _ string) ([]*Story, error) {
	stories := []*Story{
		{Title: "a", Category: "X", Likes: 1},
		{Title: "b", Category: "Y", Likes: 7},
		{Title: "c", Category: "X", Likes: 3},
	}
	return stories, r.record("SearchTitle")
}

func (r *recordingRepository) AddToCounter(_ context.Context, id string, _ CounterField, delta int64) (*Story, error) {
	r.lastDelta = delta
	return &Story{ID: id, Likes: delta}, r.record("AddToCounter")
}

func (r *recordingRepository) SumByCategory(_ context.Context, _ CounterField, limit int) ([]CategoryTotal, error) {
	r.lastLimit = limit
	return []CategoryTotal{}, r.record("SumByCategory")
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		input  NewStory
		fields []string
	}{
		{"missing_title", NewStory{Category: "A"}, []string{FieldTitle}},
		{"blank_category", NewStory{Category: "   ", Title: "T"}, []string{FieldCategory}},
		{"both_missing", NewStory{}, []string{FieldCategory, FieldTitle}},
		{"title_too_long", NewStory{Category: "A", Title: strings.Repeat("t", MaxTitleLength+1)}, []string{FieldTitle}},
		{"author_too_long", NewStory{Category: "A", Title: "T", Author: strings.Repeat("a", MaxAuthorLength+1)}, []string{FieldAuthor}},
		{"title_spans_lines", NewStory{Category: "A", Title: "evil\r\nX-Hdr: 1"}, []string{FieldTitle}},
		{"category_with_nul", NewStory{Category: "Hor\x00ror", Title: "T"}, []string{FieldCategory}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &recordingRepository{}
			service := NewService(repo, testutil.Logger())

			_, err := service.Create(context.Background(), tt.input)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperr.CodeValidation, appErr.Code)

			var fields []string
			for _, detail := range appErr.Details {
				fields = append(fields, detail.Field)
			}
			assert.Equal(t, tt.fields, fields)
			assert.Empty(t, repo.calls, "store must not be touched")
		})
	}
}

func TestService_Create_TrimsNames(t *testing.T) {
	service := NewService(&recordingRepository{}, testutil.Logger())

	story, err := service.Create(context.Background(), NewStory{Category: " Horror ", Title: "\tThe Well\n", Content: "  kept  "})
	require.NoError(t, err)
	assert.Equal(t, "Horror", story.Category)
	assert.Equal(t, "The Well", story.Title)
	assert.Equal(t, "  kept  ", story.Content)
}

func TestService_Create_StorageUnavailable(t *testing.T) {
	repo := &recordingRepository{err: dberr.Wrap(errors.New("connection refused"), resourceStory, "create_story")}
	service := NewService(repo, testutil.Logger())

	_, err := service.Create(context.Background(), NewStory{Category: "A", Title: "T"})
	assert.True(t, apperr.HasCode(err, apperr.CodeStorageUnavailable))
}

func TestService_Decrement(t *testing.T) {
	repo := &recordingRepository{}
	service := NewService(repo, testutil.Logger())

	_, err := service.Decrement(context.Background(), "id", CounterViews)
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidArgument))
	assert.Empty(t, repo.calls)

	story, err := service.Decrement(context.Background(), "id", CounterLikes)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), repo.lastDelta)
	assert.Equal(t, int64(-1), story.Likes)
}

func TestService_Increment_UnknownField(t *testing.T) {
	repo := &recordingRepository{}
	service := NewService(repo, testutil.Logger())

	_, err := service.Increment(context.Background(), "id", CounterField("title"))
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidArgument))
	assert.Empty(t, repo.calls)
}

func TestService_TopCategories_Limit(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantErr   bool
		wantLimit int
	}{
		{"default", DefaultRankingLimit, false, 5},
		{"clamped", 500, false, MaxRankingLimit},
		{"zero", 0, true, 0},
		{"negative", -3, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &recordingRepository{}
			service := NewService(repo, testutil.Logger())

			_, err := service.TopCategoriesByDownloads(context.Background(), tt.limit)
			if tt.wantErr {
				assert.True(t, apperr.HasCode(err, apperr.CodeInvalidArgument))
				assert.Empty(t, repo.calls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, repo.lastLimit)
		})
	}
}

func TestService_Query(t *testing.T) {
	repo := &recordingRepository{}
	service := NewService(repo, testutil.Logger())

	stories, err := service.Query(context.Background(), Filter{Category: "X", Sort: "likes"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, titles(stories))

	unsorted, err := service.Query(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, titles(unsorted))
}

func TestService_Query_BadSortSkipsStore(t *testing.T) {
	repo := &recordingRepository{}
	service := NewService(repo, testutil.Logger())

	_, err := service.Query(context.Background(), Filter{Sort: "rating"})
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidArgument))
	assert.Empty(t, repo.calls)
}
