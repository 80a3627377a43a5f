// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afrolatino/marketplace/internal/platform/middleware"
	requestutil "github.com/afrolatino/marketplace/internal/platform/request"
	"github.com/afrolatino/marketplace/internal/platform/respond"
	"github.com/afrolatino/marketplace/internal/platform/validate"
	"github.com/afrolatino/marketplace/pkg/uuidv7"
)

// Handler implements category HTTP endpoints.
type Handler struct {
	repository Repository
	resolver   middleware.IdentityResolver
}

// NewHandler constructs a new [Handler].
func NewHandler(repository Repository, resolver middleware.IdentityResolver) *Handler {
	return &Handler{repository: repository, resolver: resolver}
}

// Routes returns a [chi.Router] with the public list and admin mutations.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(handler.resolver))
		r.Post("/", handler.create)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

// GET /api/v1/categories
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.repository.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, categories)
}

type createCategoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// POST /api/v1/categories (admin)
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createCategoryRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("name", input.Name)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category := &Category{
		ID:   uuidv7.Must(),
		Name: input.Name,
		Icon: input.Icon,
	}

	if err := handler.repository.Create(request.Context(), category); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

// DELETE /api/v1/categories/{id} (admin)
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.repository.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Category deleted"})
}
