// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/storyhub/internal/platform/apperr"
	"github.com/taibuivan/storyhub/internal/testutil"
)

// repositoryContract exercises a [Repository] through the [Service]. newRepo
// must return an empty store on every call.
func repositoryContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	ctx := context.Background()

	newService := func(t *testing.T) *Service {
		return NewService(newRepo(t), testutil.Logger())
	}

	mustCreate := func(t *testing.T, service *Service, category, title string) *Story {
		t.Helper()
		story, err := service.Create(ctx, NewStory{Category: category, Title: title, Author: "anon", Content: "<p>" + title + "</p>"})
		require.NoError(t, err)
		return story
	}

	t.Run("Create_ZeroCounters", func(t *testing.T) {
		service := newService(t)

		created, err := service.Create(ctx, NewStory{Category: "Horror", Title: "The Well", Author: "Ann", Content: "<p>dark</p>"})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Zero(t, created.Views)
		assert.Zero(t, created.Downloads)
		assert.Zero(t, created.Likes)

		fetched, err := service.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, fetched)
	})

	t.Run("Create_EmptyContent", func(t *testing.T) {
		service := newService(t)

		created, err := service.Create(ctx, NewStory{Category: "Poems", Title: "Silence"})
		require.NoError(t, err)

		fetched, err := service.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "", fetched.Content)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		service := newService(t)
		mustCreate(t, service, "A", "Only")

		_, err := service.GetByID(ctx, "does-not-exist")
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

		all, err := service.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("GetByTitle_FirstMatchWins", func(t *testing.T) {
		service := newService(t)
		first := mustCreate(t, service, "A", "Twin")
		mustCreate(t, service, "B", "Twin")

		found, err := service.GetByTitle(ctx, "Twin")
		require.NoError(t, err)
		assert.Equal(t, first.ID, found.ID)

		_, err = service.GetByTitle(ctx, "twin")
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	})

	t.Run("ListByCategory_ExactMatch", func(t *testing.T) {
		service := newService(t)
		a1 := mustCreate(t, service, "Fantasy", "One")
		mustCreate(t, service, "fantasy", "Two")
		a3 := mustCreate(t, service, "Fantasy", "Three")

		stories, err := service.ListByCategory(ctx, "Fantasy")
		require.NoError(t, err)
		require.Len(t, stories, 2)
		assert.Equal(t, a1.ID, stories[0].ID)
		assert.Equal(t, a3.ID, stories[1].ID)

		orphan, err := service.ListByCategory(ctx, "Nope")
		require.NoError(t, err)
		assert.Empty(t, orphan)
		assert.NotNil(t, orphan)
	})

	t.Run("Search_CaseInsensitiveSubstring", func(t *testing.T) {
		service := newService(t)
		mustCreate(t, service, "X", "Category Tales")
		mustCreate(t, service, "X", "Dog Story")
		mustCreate(t, service, "X", "concatenate")

		stories, err := service.Search(ctx, "cat")
		require.NoError(t, err)
		require.Len(t, stories, 2)
		assert.Equal(t, "Category Tales", stories[0].Title)
		assert.Equal(t, "concatenate", stories[1].Title)

		all, err := service.Search(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("Search_UnicodeAndWildcards", func(t *testing.T) {
		service := newService(t)
		mustCreate(t, service, "X", "ÉCOLE de nuit")
		mustCreate(t, service, "X", "100% Love")
		mustCreate(t, service, "X", "1000 Loves")

		stories, err := service.Search(ctx, "école")
		require.NoError(t, err)
		require.Len(t, stories, 1)

		stories, err = service.Search(ctx, "0% l")
		require.NoError(t, err)
		require.Len(t, stories, 1)
		assert.Equal(t, "100% Love", stories[0].Title)
	})

	t.Run("Increment_Concurrent_NoLostUpdates", func(t *testing.T) {
		service := newService(t)
		story := mustCreate(t, service, "A", "Popular")

		const workers = 100
		var wg sync.WaitGroup
		errs := make(chan error, workers)

		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := service.Increment(ctx, story.ID, CounterViews); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}

		fetched, err := service.GetByID(ctx, story.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(workers), fetched.Views)
		assert.Zero(t, fetched.Downloads)
	})

	t.Run("Decrement_LikesGoNegative", func(t *testing.T) {
		service := newService(t)
		story := mustCreate(t, service, "A", "Disliked")

		updated, err := service.Decrement(ctx, story.ID, CounterLikes)
		require.NoError(t, err)
		assert.Equal(t, int64(-1), updated.Likes)

		updated, err = service.Increment(ctx, story.ID, CounterLikes)
		require.NoError(t, err)
		assert.Zero(t, updated.Likes)
	})

	t.Run("Increment_NotFound", func(t *testing.T) {
		service := newService(t)

		_, err := service.Increment(ctx, "missing", CounterDownloads)
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	})

	t.Run("TopCategories", func(t *testing.T) {
		service := newService(t)
		seed := []struct {
			category string
			views    int
		}{
			{"A", 10}, {"A", 5}, {"B", 20}, {"C", 1},
		}
		for i, s := range seed {
			story := mustCreate(t, service, s.category, string(rune('a'+i)))
			for range s.views {
				_, err := service.Increment(ctx, story.ID, CounterViews)
				require.NoError(t, err)
			}
		}

		top, err := service.TopCategoriesByViews(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []CategoryTotal{{"B", 20}, {"A", 15}}, top)

		downloads, err := service.TopCategoriesByDownloads(ctx, DefaultRankingLimit)
		require.NoError(t, err)
		assert.Equal(t, []CategoryTotal{{"A", 0}, {"B", 0}, {"C", 0}}, downloads)
	})
}

func TestSQLiteRepository(t *testing.T) {
	repositoryContract(t, func(t *testing.T) Repository {
		return NewSQLiteRepository(testutil.SQLite(t))
	})
}

func TestPostgresRepository(t *testing.T) {
	pool := testutil.Postgres(t)

	repositoryContract(t, func(t *testing.T) Repository {
		_, err := pool.Exec(context.Background(), "TRUNCATE story RESTART IDENTITY")
		require.NoError(t, err)
		return NewPostgresRepository(pool)
	})
}
