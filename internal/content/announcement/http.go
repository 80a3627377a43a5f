// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package announcement

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afrolatino/marketplace/internal/platform/middleware"
	requestutil "github.com/afrolatino/marketplace/internal/platform/request"
	"github.com/afrolatino/marketplace/internal/platform/respond"
	"github.com/afrolatino/marketplace/internal/platform/validate"
	"github.com/afrolatino/marketplace/pkg/uuidv7"
)

// Handler implements announcement HTTP endpoints.
type Handler struct {
	repository Repository
	resolver   middleware.IdentityResolver
}

// NewHandler constructs a new [Handler].
func NewHandler(repository Repository, resolver middleware.IdentityResolver) *Handler {
	return &Handler{repository: repository, resolver: resolver}
}

// Routes returns a [chi.Router] with the public banner and admin mutations.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listActive)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(handler.resolver))
		r.Get("/all", handler.listAll)
		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

// GET /api/v1/announcements
func (handler *Handler) listActive(writer http.ResponseWriter, request *http.Request) {
	announcements, err := handler.repository.ListActive(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, announcements)
}

// GET /api/v1/announcements/all (admin)
func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	announcements, err := handler.repository.ListAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, announcements)
}

type createAnnouncementRequest struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Type     string `json:"type"`
	Link     string `json:"link"`
	IsActive *bool  `json:"is_active"`
	Priority int    `json:"priority"`
}

// POST /api/v1/announcements (admin)
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createAnnouncementRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.Type == "" {
		input.Type = TypeInfo
	}

	validator := &validate.Validator{}
	validator.Required("title", input.Title)
	validator.Required("message", input.Message)
	validator.OneOf("type", input.Type, TypeInfo, TypeEvent, TypePromotion)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	announcement := &Announcement{
		ID:       uuidv7.Must(),
		Title:    input.Title,
		Message:  input.Message,
		Type:     input.Type,
		Link:     input.Link,
		IsActive: true,
		Priority: input.Priority,
	}
	if input.IsActive != nil {
		announcement.IsActive = *input.IsActive
	}

	if err := handler.repository.Create(request.Context(), announcement); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, announcement)
}

type updateAnnouncementRequest struct {
	Title    *string `json:"title"`
	Message  *string `json:"message"`
	Type     *string `json:"type"`
	Link     *string `json:"link"`
	IsActive *bool   `json:"is_active"`
	Priority *int    `json:"priority"`
}

// PUT /api/v1/announcements/{id} (admin)
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateAnnouncementRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Type != nil {
		validator.OneOf("type", *input.Type, TypeInfo, TypeEvent, TypePromotion)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	announcement, err := handler.repository.FindByID(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Title != nil {
		announcement.Title = *input.Title
	}
	if input.Message != nil {
		announcement.Message = *input.Message
	}
	if input.Type != nil {
		announcement.Type = *input.Type
	}
	if input.Link != nil {
		announcement.Link = *input.Link
	}
	if input.IsActive != nil {
		announcement.IsActive = *input.IsActive
	}
	if input.Priority != nil {
		announcement.Priority = *input.Priority
	}

	if err := handler.repository.Update(request.Context(), announcement); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, announcement)
}

// DELETE /api/v1/announcements/{id} (admin)
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.repository.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Announcement deleted"})
}
