// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

// Package middleware provides the HTTP middleware chain for the marketplace API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthZ/AuthN, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"net/http"

	"github.com/afrolatino/marketplace/internal/platform/ctxkey"
	"github.com/afrolatino/marketplace/internal/platform/respond"
	"github.com/afrolatino/marketplace/internal/users/auth"
)

// IdentityResolver defines the resolution contract needed by the guards.
//
// # Why an interface?
//
// Defining IdentityResolver here decouples the middleware from the `auth`
// service implementation, allowing us to easily inject fakes during unit
// testing.
type IdentityResolver interface {
	// ResolveIdentity resolves a raw credential into an authenticated user.
	ResolveIdentity(ctx context.Context, credential string) (*auth.User, error)

	// ResolveAdmin resolves a raw credential and enforces the admin flag.
	ResolveAdmin(ctx context.Context, credential string) (*auth.User, error)

	// TryResolveIdentity returns the user for the credential, or nil for
	// ANY failure. It never returns an error.
	TryResolveIdentity(ctx context.Context, credential string) *auth.User
}

// Authenticate is the optional-auth middleware.
//
// # Flow
//  1. Pull credential material from the session cookie or bearer header.
//  2. Attempt resolution; on ANY failure the request proceeds anonymous.
//  3. On success, inject the resolved [*auth.User] into the context.
//
// Endpoints that must not serve anonymous traffic use [RequireAuth] or
// [RequireAdmin] instead; this middleware never rejects a request.
func Authenticate(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			credential := auth.CredentialFromRequest(request)
			if credential == "" {
				next.ServeHTTP(writer, request)
				return
			}

			if user := resolver.TryResolveIdentity(request.Context(), credential); user != nil {
				request = request.WithContext(WithIdentity(request.Context(), user))
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireAuth blocks requests that cannot be resolved to an identity.
//
// Resolution happens here, against the live stores, rather than trusting a
// context value: the mandatory path must observe a user deleted after the
// credential was issued.
func RequireAuth(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			user, err := resolver.ResolveIdentity(request.Context(), auth.CredentialFromRequest(request))
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request.WithContext(WithIdentity(request.Context(), user)))
		})
	}
}

// RequireAdmin blocks requests whose identity lacks the admin flag.
//
// # Flow
//  1. Resolve the credential like [RequireAuth] (401 on failure).
//  2. Check the is_admin flag; abort with HTTP 403 when false.
//
// This is the only privilege gate in the system; there is no role
// hierarchy beyond the single boolean.
func RequireAdmin(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			user, err := resolver.ResolveAdmin(request.Context(), auth.CredentialFromRequest(request))
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request.WithContext(WithIdentity(request.Context(), user)))
		})
	}
}

// WithIdentity returns a new context carrying the resolved user.
func WithIdentity(ctx context.Context, user *auth.User) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetIdentity retrieves the resolved [*auth.User] from the context.
//
// # Returns
//   - The authenticated user, if a guard or [Authenticate] resolved one.
//   - nil if the request is anonymous.
func GetIdentity(ctx context.Context) *auth.User {
	user, ok := ctx.Value(ctxkey.KeyUser).(*auth.User)
	if !ok {
		return nil
	}
	return user
}
