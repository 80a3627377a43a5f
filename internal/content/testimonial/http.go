// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package testimonial

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afrolatino/marketplace/internal/platform/middleware"
	requestutil "github.com/afrolatino/marketplace/internal/platform/request"
	"github.com/afrolatino/marketplace/internal/platform/respond"
	"github.com/afrolatino/marketplace/internal/platform/validate"
	"github.com/afrolatino/marketplace/pkg/uuidv7"
)

// Handler implements testimonial HTTP endpoints.
type Handler struct {
	repository Repository
	resolver   middleware.IdentityResolver
}

// NewHandler constructs a new [Handler].
func NewHandler(repository Repository, resolver middleware.IdentityResolver) *Handler {
	return &Handler{repository: repository, resolver: resolver}
}

// Routes returns a [chi.Router] with the public list and admin create.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(handler.resolver))
		r.Post("/", handler.create)
	})

	return router
}

// GET /api/v1/testimonials
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	testimonials, err := handler.repository.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, testimonials)
}

type createTestimonialRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Culture  string `json:"culture"`
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
	Avatar   string `json:"avatar"`
}

// POST /api/v1/testimonials (admin)
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createTestimonialRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.Rating == 0 {
		input.Rating = DefaultRating
	}

	validator := &validate.Validator{}
	validator.Required("name", input.Name)
	validator.Required("text", input.Text)
	validator.Range("rating", input.Rating, 1, 5)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	testimonial := &Testimonial{
		ID:       uuidv7.Must(),
		Name:     input.Name,
		Location: input.Location,
		Culture:  input.Culture,
		Rating:   input.Rating,
		Text:     input.Text,
		Avatar:   input.Avatar,
	}

	if err := handler.repository.Create(request.Context(), testimonial); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, testimonial)
}
