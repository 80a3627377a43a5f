// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package notice

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/afrolatino/marketplace/internal/platform/middleware"
	requestutil "github.com/afrolatino/marketplace/internal/platform/request"
	"github.com/afrolatino/marketplace/internal/platform/respond"
	"github.com/afrolatino/marketplace/internal/platform/validate"
	"github.com/afrolatino/marketplace/pkg/uuidv7"
)

// Handler implements holiday notice HTTP endpoints.
type Handler struct {
	repository Repository
	resolver   middleware.IdentityResolver
}

// NewHandler constructs a new [Handler].
func NewHandler(repository Repository, resolver middleware.IdentityResolver) *Handler {
	return &Handler{repository: repository, resolver: resolver}
}

// Routes returns a [chi.Router] with the public window view and admin CRUD.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listVisible)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(handler.resolver))
		r.Get("/all", handler.listAll)
		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

// GET /api/v1/notices
func (handler *Handler) listVisible(writer http.ResponseWriter, request *http.Request) {
	notices, err := handler.repository.ListVisible(request.Context(), time.Now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, notices)
}

// GET /api/v1/notices/all (admin)
func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	notices, err := handler.repository.ListAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, notices)
}

type createNoticeRequest struct {
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  *bool     `json:"is_active"`
}

// POST /api/v1/notices (admin)
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createNoticeRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("title", input.Title)
	validator.Required("message", input.Message)
	validator.Custom("start_date", input.StartDate.IsZero(), "This field is required")
	validator.Custom("end_date", input.EndDate.IsZero(), "This field is required")
	if !input.StartDate.IsZero() && !input.EndDate.IsZero() {
		validator.Custom("end_date", input.EndDate.Before(input.StartDate), "Must not be before start_date")
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	notice := &Notice{
		ID:        uuidv7.Must(),
		Title:     input.Title,
		Message:   input.Message,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		IsActive:  true,
	}
	if input.IsActive != nil {
		notice.IsActive = *input.IsActive
	}

	if err := handler.repository.Create(request.Context(), notice); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, notice)
}

type updateNoticeRequest struct {
	Title     *string    `json:"title"`
	Message   *string    `json:"message"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	IsActive  *bool      `json:"is_active"`
}

// PUT /api/v1/notices/{id} (admin)
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateNoticeRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	notice, err := handler.repository.FindByID(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Title != nil {
		notice.Title = *input.Title
	}
	if input.Message != nil {
		notice.Message = *input.Message
	}
	if input.StartDate != nil {
		notice.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		notice.EndDate = *input.EndDate
	}
	if input.IsActive != nil {
		notice.IsActive = *input.IsActive
	}

	validator := &validate.Validator{}
	validator.Custom("end_date", notice.EndDate.Before(notice.StartDate), "Must not be before start_date")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.repository.Update(request.Context(), notice); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, notice)
}

// DELETE /api/v1/notices/{id} (admin)
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.repository.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Notice deleted"})
}
