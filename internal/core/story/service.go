// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/storyhub/internal/platform/validate"
	"github.com/taibuivan/storyhub/pkg/uuid"
)

// # Service Layer

// Service orchestrates the business logic for the story catalogue.
// The [Repository] is the only source of records for every operation.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Story Management

/*
Create ingests a new story.

Description: Validates the ingestion attributes, assigns a UUIDv7 identity
and persists the record with every counter at zero.

Parameters:
  - context: context.Context
  - input: NewStory (category, title, author, already decoded content)

Returns:
  - *Story: The persisted record
  - error: ValidationError when title or category is blank, a name is too
    long or spans lines, or a storage error
*/
func (service *Service) Create(context context.Context, input NewStory) (*Story, error) {

	// Surrounding whitespace is not part of a name
	input.Category = strings.TrimSpace(input.Category)
	input.Title = strings.TrimSpace(input.Title)
	input.Author = strings.TrimSpace(input.Author)

	validator := &validate.Validator{}
	validator.Required(FieldCategory, input.Category).
		MaxLen(FieldCategory, input.Category, MaxCategoryLength).
		SingleLine(FieldCategory, input.Category)
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, MaxTitleLength).
		SingleLine(FieldTitle, input.Title)
	validator.MaxLen(FieldAuthor, input.Author, MaxAuthorLength).
		SingleLine(FieldAuthor, input.Author)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	story := &Story{
		ID:       uuid.New(),
		Category: input.Category,
		Title:    input.Title,
		Author:   input.Author,
		Content:  input.Content,
	}

	if err := service.repo.Create(context, story); err != nil {
		return nil, err
	}

	service.logger.Info("story_created",
		slog.String("story_id", story.ID),
		slog.String("category", story.Category),
		slog.Int("content_bytes", len(story.Content)),
	)

	return story, nil
}

// # Story Lookups

// GetByID fetches a story by identifier.
func (service *Service) GetByID(context context.Context, id string) (*Story, error) {
	return service.repo.FindByID(context, id)
}

/*
GetByTitle fetches a story by exact title.

Titles are not unique. When several stories share one, the earliest stored
wins; no relevance rule is applied.
*/
func (service *Service) GetByTitle(context context.Context, title string) (*Story, error) {
	return service.repo.FindByTitle(context, title)
}

// ListAll returns every story in storage order.
func (service *Service) ListAll(context context.Context) ([]*Story, error) {
	return service.repo.List(context)
}

// ListByCategory returns the stories filed under category (exact match).
// An unknown category simply yields an empty list.
func (service *Service) ListByCategory(context context.Context, category string) ([]*Story, error) {
	return service.repo.ListByCategory(context, category)
}
