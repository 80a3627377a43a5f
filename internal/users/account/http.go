// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afrolatino/marketplace/internal/platform/apperr"
	"github.com/afrolatino/marketplace/internal/platform/middleware"
	requestutil "github.com/afrolatino/marketplace/internal/platform/request"
	"github.com/afrolatino/marketplace/internal/platform/respond"
	"github.com/afrolatino/marketplace/internal/platform/validate"
	"github.com/afrolatino/marketplace/internal/users/auth"
	"github.com/afrolatino/marketplace/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements user administration HTTP endpoints.
type Handler struct {
	accountService *Service
	resolver       middleware.IdentityResolver
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, resolver middleware.IdentityResolver) *Handler {
	return &Handler{accountService: service, resolver: resolver}
}

// Routes returns a [chi.Router] configured with account routes.
//
// # Endpoints
//   - GET /       : Lists all users (admin only).
//   - PUT /{id}   : Updates a profile (owner or admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(handler.resolver))
		r.Get("/", handler.list)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(handler.resolver))
		r.Put("/{id}", handler.update)
	})

	return router
}

// # Request Payloads

type updateProfileRequest struct {
	Name    *string `json:"name"`
	Picture *string `json:"picture"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

/*
List returns the registered user base for the admin dashboard.

GET /api/v1/users?page=&limit=

Response:
  - 200: []User with pagination metadata
  - 401: Unauthorized: Missing or invalid credential
  - 403: Forbidden: Authenticated non-admin
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, total, err := handler.accountService.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Update applies profile changes to a user account.

PUT /api/v1/users/{id}

Description: Members may update only their own profile; admins may update
anyone's. Password and admin status cannot be changed here.

Request:
  - Body: updateProfileRequest (partial)

Response:
  - 200: User: Updated profile
  - 403: Forbidden: Editing someone else without admin rights
  - 404: NotFound: Unknown user ID
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actor := middleware.GetIdentity(request.Context())
	if actor == nil {
		respond.Error(writer, request, apperr.Unauthorized("Invalid authentication credentials"))
		return
	}

	targetID := requestutil.ID(request, "id")

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(auth.FieldName, *input.Name)
	}
	if input.Phone != nil {
		validator.MaxLen(auth.FieldPhone, *input.Phone, 32)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), actor, targetID, UpdateProfileInput{
		Name:    input.Name,
		Picture: input.Picture,
		Phone:   input.Phone,
		Address: input.Address,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
