// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package blog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/afrolatino/marketplace/internal/platform/middleware"
	requestutil "github.com/afrolatino/marketplace/internal/platform/request"
	"github.com/afrolatino/marketplace/internal/platform/respond"
	"github.com/afrolatino/marketplace/internal/platform/validate"
	"github.com/afrolatino/marketplace/pkg/pagination"
	"github.com/afrolatino/marketplace/pkg/pointer"
)

// Handler implements blog HTTP endpoints.
type Handler struct {
	blogService *Service
	resolver    middleware.IdentityResolver
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, resolver middleware.IdentityResolver) *Handler {
	return &Handler{blogService: service, resolver: resolver}
}

// Routes returns a [chi.Router] for the blog endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/slug/{slug}", handler.getBySlug)
	router.Get("/{id}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(handler.resolver))
		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

// GET /api/v1/blog
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	filter := Filter{
		Category:  request.URL.Query().Get("category"),
		Published: pointer.To(true),
	}

	// published=false widens the listing to drafts; the storefront
	// admin panel uses this behind its own login.
	if raw := request.URL.Query().Get("published"); raw != "" {
		if published, err := strconv.ParseBool(raw); err == nil && !published {
			filter.Published = nil
		}
	}

	params := pagination.FromRequest(request)
	posts, total, err := handler.blogService.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(params.Page, params.Limit, total))
}

// GET /api/v1/blog/{id}
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.blogService.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

// GET /api/v1/blog/slug/{slug}
func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.blogService.GetBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

type createPostRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Author        string   `json:"author"`
	FeaturedImage string   `json:"featured_image"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	Published     bool     `json:"published"`
}

// POST /api/v1/blog (admin)
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createPostRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("title", input.Title)
	validator.Required("content", input.Content)
	validator.Required("author", input.Author)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.blogService.Create(request.Context(), CreateInput{
		Title:         input.Title,
		Content:       input.Content,
		Excerpt:       input.Excerpt,
		Author:        input.Author,
		FeaturedImage: input.FeaturedImage,
		Category:      input.Category,
		Tags:          input.Tags,
		Published:     input.Published,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

type updatePostRequest struct {
	Title         *string  `json:"title"`
	Content       *string  `json:"content"`
	Excerpt       *string  `json:"excerpt"`
	FeaturedImage *string  `json:"featured_image"`
	Category      *string  `json:"category"`
	Tags          []string `json:"tags"`
	Published     *bool    `json:"published"`
}

// PUT /api/v1/blog/{id} (admin)
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updatePostRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required("title", *input.Title)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.blogService.Update(request.Context(), requestutil.ID(request, "id"), UpdateInput{
		Title:         input.Title,
		Content:       input.Content,
		Excerpt:       input.Excerpt,
		FeaturedImage: input.FeaturedImage,
		Category:      input.Category,
		Tags:          input.Tags,
		Published:     input.Published,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

// DELETE /api/v1/blog/{id} (admin)
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.blogService.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Blog post deleted"})
}
