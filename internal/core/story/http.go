// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
HTTP transport for the story catalogue.

Routing:

  - /stories: Lookup, search, upload, download and engagement counters.
  - /categories/{name}/stories: Stories filed under one category.
  - /rankings: Top categories by summed views or downloads.

The handler translates between the web/JSON layer and the domain [Service].
*/

package story

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/storyhub/internal/platform/apperr"
	"github.com/taibuivan/storyhub/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/storyhub/internal/platform/request"
	"github.com/taibuivan/storyhub/internal/platform/respond"
	"github.com/taibuivan/storyhub/internal/platform/validate"
	"github.com/taibuivan/storyhub/pkg/slug"
)

// Archiver keeps a copy of an uploaded source file. Implemented by the
// platform object store.
type Archiver interface {
	Archive(context context.Context, storyID, filename, contentType string, body []byte) error
}

const (
	// formFieldFile is the multipart field carrying the story source.
	formFieldFile = "file"

	// fallbackFilename is used when a title sanitizes to nothing.
	fallbackFilename = "story"
)

// # Handler Implementation

// Handler implements the HTTP layer for the story catalogue.
type Handler struct {
	service        *Service
	archiver       Archiver
	maxUploadBytes int64
}

// NewHandler constructs a story [Handler]. archiver may be nil, in which
// case uploads are not archived.
func NewHandler(service *Service, archiver Archiver, maxUploadBytes int64) *Handler {
	return &Handler{
		service:        service,
		archiver:       archiver,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns a [chi.Router] with the /stories endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Discovery
	router.Get("/", handler.listStories)
	router.Get("/by-title/{title}", handler.getStoryByTitle)
	router.Get("/{id}", handler.getStory)
	router.Get("/{id}/download", handler.downloadStory)

	// ## Ingestion
	router.Post("/", handler.createStory)

	// ## Engagement
	router.Post("/{id}/view", handler.increment(CounterViews))
	router.Post("/{id}/downloads", handler.increment(CounterDownloads))
	router.Post("/{id}/like", handler.increment(CounterLikes))
	router.Post("/{id}/unlike", handler.decrement(CounterLikes))

	return router
}

// RegisterCategoryRoutes adds the per-category story listing to the
// /categories router.
func (handler *Handler) RegisterCategoryRoutes(router chi.Router) {
	router.Get("/{name}/stories", handler.listCategoryStories)
}

// RankingRoutes returns a [chi.Router] with the /rankings endpoints.
func (handler *Handler) RankingRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/views", handler.ranking(handler.service.TopCategoriesByViews))
	router.Get("/downloads", handler.ranking(handler.service.TopCategoriesByDownloads))
	return router
}

// # Discovery Endpoints

/*
GET /stories.

Request:
  - search: string (case-insensitive title substring, optional)
  - category: string (exact match, optional)
  - sort: string (title, likes, views, downloads; always descending, optional)

Response:
  - 200: []Story
  - 400: INVALID_ARGUMENT for an unknown sort field
*/
func (handler *Handler) listStories(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	stories, err := handler.service.Query(request.Context(), Filter{
		Search:   query.Get("search"),
		Category: query.Get("category"),
		Sort:     query.Get("sort"),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stories)
}

/*
GET /categories/{name}/stories.

Request:
  - sort: string (optional, as for GET /stories)

Response:
  - 200: []Story (empty for an unknown category)
*/
func (handler *Handler) listCategoryStories(writer http.ResponseWriter, request *http.Request) {
	category := requestutil.Param(request, "name")
	sortParam := request.URL.Query().Get("sort")

	var sortField SortField
	if sortParam != "" {
		field, err := ParseSortField(sortParam)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		sortField = field
	}

	stories, err := handler.service.ListByCategory(request.Context(), category)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if sortField != "" {
		if stories, err = Sort(stories, sortField); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	respond.OK(writer, stories)
}

// GET /stories/{id}.
func (handler *Handler) getStory(writer http.ResponseWriter, request *http.Request) {
	story, err := handler.service.GetByID(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, story)
}

// GET /stories/by-title/{title}. Returns the earliest story with that exact title.
func (handler *Handler) getStoryByTitle(writer http.ResponseWriter, request *http.Request) {
	story, err := handler.service.GetByTitle(request.Context(), requestutil.Param(request, "title"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, story)
}

/*
GET /stories/{id}/download.

Description: Streams the stored content as an HTML attachment. The filename
derives from the untrusted title and is sanitized before reaching the header.
Fetching a download does not count it; clients call POST /downloads.

Response:
  - 200: text/html attachment with ETag
  - 304: If-None-Match matched the current ETag
  - 404: NOT_FOUND
*/
func (handler *Handler) downloadStory(writer http.ResponseWriter, request *http.Request) {
	story, err := handler.service.GetByID(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Attachment(writer, request, attachmentFor(ExportContent(story)))
}

// attachmentFor sanitizes the export filename and derives the ASCII fallback.
func attachmentFor(export Export) respond.File {
	base := slug.Filename(strings.TrimSuffix(export.Filename, ExportExtension))

	ascii := slug.From(base)
	if ascii == "" {
		ascii = fallbackFilename
	}
	ascii += ExportExtension

	name := ascii
	if base != "" {
		name = base + ExportExtension
	}

	return respond.File{
		ASCIIName: ascii,
		Name:      name,
		MediaType: export.MediaType,
		ETag:      export.Checksum,
		Body:      export.Body,
	}
}

// # Ingestion Endpoints

// upload is a decoded POST /stories body.
type upload struct {
	story NewStory

	// Set only for multipart uploads that carried a file.
	filename    string
	contentType string
	raw         []byte
}

/*
POST /stories.

Description: Accepts either multipart/form-data (category, title, author and
the source in the "file" field) or a JSON NewStory. The body is capped at the
configured upload size. When archiving is enabled the raw file is copied to
object storage; an archive failure is logged and does not fail the upload.

Response:
  - 201: Story
  - 400: VALIDATION_ERROR
  - 413: PAYLOAD_TOO_LARGE
*/
func (handler *Handler) createStory(writer http.ResponseWriter, request *http.Request) {
	if request.ContentLength > handler.maxUploadBytes {
		respond.Error(writer, request, apperr.PayloadTooLarge(handler.maxUploadBytes))
		return
	}
	request.Body = http.MaxBytesReader(writer, request.Body, handler.maxUploadBytes)

	input, err := handler.decodeUpload(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	story, err := handler.service.Create(request.Context(), input.story)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.archive(request, story, input)

	respond.Created(writer, story)
}

// decodeUpload picks the decoder from the request media type.
func (handler *Handler) decodeUpload(request *http.Request) (upload, error) {
	mediaType, _, _ := mime.ParseMediaType(request.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return handler.decodeMultipart(request)
	}

	var input NewStory
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return upload{}, err
	}
	return upload{story: input}, nil
}

// decodeMultipart reads the form fields and the optional source file. A
// missing file yields an empty story.
func (handler *Handler) decodeMultipart(request *http.Request) (upload, error) {
	if err := request.ParseMultipartForm(handler.maxUploadBytes); err != nil {
		if tooLarge := requestutil.AsTooLarge(err); tooLarge != nil {
			return upload{}, tooLarge
		}
		return upload{}, validate.ErrInvalidForm
	}
	defer func() { _ = request.MultipartForm.RemoveAll() }()

	result := upload{story: NewStory{
		Category: request.FormValue(FieldCategory),
		Title:    request.FormValue(FieldTitle),
		Author:   request.FormValue(FieldAuthor),
	}}

	file, header, err := request.FormFile(formFieldFile)
	if errors.Is(err, http.ErrMissingFile) {
		return result, nil
	}
	if err != nil {
		return upload{}, validate.ErrInvalidForm
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		if tooLarge := requestutil.AsTooLarge(err); tooLarge != nil {
			return upload{}, tooLarge
		}
		return upload{}, validate.ErrInvalidForm
	}

	result.story.Content = string(raw)
	result.filename = header.Filename
	result.contentType = header.Header.Get("Content-Type")
	result.raw = raw

	return result, nil
}

// archive copies the uploaded source to object storage when configured.
func (handler *Handler) archive(request *http.Request, story *Story, input upload) {
	if handler.archiver == nil || input.raw == nil {
		return
	}

	filename := slug.Filename(input.filename)
	if filename == "" {
		filename = fallbackFilename
	}

	contentType := input.contentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := handler.archiver.Archive(request.Context(), story.ID, filename, contentType, input.raw); err != nil {
		ctxutil.GetLogger(request.Context()).Warn("story_archive_failed",
			slog.String("story_id", story.ID),
			slog.Any("error", err),
		)
	}
}

// # Engagement Endpoints

// increment returns the handler for POST /stories/{id}/<counter>.
func (handler *Handler) increment(field CounterField) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		story, err := handler.service.Increment(request.Context(), requestutil.ID(request, "id"), field)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, story)
	}
}

// decrement returns the handler for POST /stories/{id}/unlike.
func (handler *Handler) decrement(field CounterField) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		story, err := handler.service.Decrement(request.Context(), requestutil.ID(request, "id"), field)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, story)
	}
}

// # Ranking Endpoints

/*
GET /rankings/{views|downloads}.

Request:
  - limit: int (default 5, capped at 100)

Response:
  - 200: []CategoryTotal, descending
  - 400: INVALID_ARGUMENT for a non-positive or non-numeric limit
*/
func (handler *Handler) ranking(rank func(context.Context, int) ([]CategoryTotal, error)) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		limit, err := requestutil.IntQuery(request, FieldLimit, DefaultRankingLimit)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		totals, err := rank(request.Context(), limit)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, totals)
	}
}
