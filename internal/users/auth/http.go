// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

/*
HTTP delivery layer for user identity management.

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Issues the session cookie alongside the JSON token payload.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/afrolatino/marketplace/internal/platform/constants"
	requestutil "github.com/afrolatino/marketplace/internal/platform/request"
	"github.com/afrolatino/marketplace/internal/platform/respond"
	"github.com/afrolatino/marketplace/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points (Registration,
// Login, current-identity lookup, Logout). It resolves credentials
// directly through the [Resolver] rather than through route middleware:
// these endpoints ARE the authentication surface.
type Handler struct {
	authService *Service
	resolver    *Resolver
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, resolver *Resolver) *Handler {
	return &Handler{authService: service, resolver: resolver}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account and logs it in.
//   - POST /login    : Authenticates and returns a signed token.
//   - GET  /me       : Returns the identity behind the current credential.
//   - POST /logout   : Clears the cookie and tears down opaque sessions.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Get("/me", handler.me)
	router.Post("/logout", handler.logout)

	return router
}

// # Request Payloads

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Description: Validates input, checks for an email conflict, persists the
new profile, and issues a signed token so the client is immediately
logged in.

Request:
  - Body: registerRequest (Email, Password, Name, Phone, Address)

Response:
  - 201: AuthResult: Token and created user profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8).
		Required(FieldName, input.Name)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Register(request.Context(), RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		Phone:    input.Phone,
		Address:  input.Address,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, result.AccessToken, result.ExpiresIn)
	respond.Created(writer, tokenPayload(result))
}

/*
Login authenticates a user on the password path.

POST /api/v1/auth/login

Description: Verifies the credentials and returns a signed access token,
mirrored into the session cookie for browser clients.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: AuthResult: Token and user profile
  - 401: Unauthorized: Wrong password, unknown email, or OAuth-only account
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, result.AccessToken, result.ExpiresIn)
	respond.OK(writer, tokenPayload(result))
}

/*
Me returns the identity behind the request's credential.

GET /api/v1/auth/me

Description: Resolves the cookie or bearer credential against the live
stores and returns the full profile. Works for both credential shapes.

Response:
  - 200: User: The authenticated profile
  - 401: Unauthorized: Missing or invalid credential
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.resolver.ResolveIdentity(request.Context(), CredentialFromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Logout ends the current session.

POST /api/v1/auth/logout

Description: Always clears the client-side cookie. When the credential is
an opaque session token, the backing store row is deleted as well so the
token can never resolve again. Signed tokens stay valid until expiry.

Response:
  - 200: message: Confirmation payload
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	credential := CredentialFromRequest(request)

	if err := handler.authService.Logout(request.Context(), credential); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearSessionCookie(writer)
	respond.OK(writer, map[string]string{FieldMessage: "Logged out"})
}

// # Cookie Management

// setSessionCookie mirrors the issued token into the session cookie so
// browser clients authenticate without managing the Authorization header.
func (handler *Handler) setSessionCookie(writer http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie immediately.
func (handler *Handler) clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// tokenPayload shapes the login/register response body.
func tokenPayload(result *AuthResult) map[string]interface{} {
	return map[string]interface{}{
		FieldAccessToken: result.AccessToken,
		FieldTokenType:   result.TokenType,
		FieldUser:        result.User,
	}
}
