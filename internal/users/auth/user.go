// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session) and the logic for
credential issuance, credential resolution, and the account lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.

Two credential shapes coexist:

  - Signed tokens: stateless HMAC-signed strings issued at login/registration.
  - Opaque sessions: server-held rows written by the Google OAuth callback.

The [Resolver] decides which path a raw credential takes and collapses every
failure into a single generic Unauthorized response.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered member of the AfroLatino marketplace.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Picture      string    `json:"picture,omitempty"`
	AuthProvider string    `json:"auth_provider"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session represents an opaque server-held credential created by the
// Google OAuth callback flow.
//
// The row is the sole source of truth for opaque-session validity. Expiry
// is checked at resolution time by comparing ExpiresAt against the clock;
// the store performs no TTL eviction of its own.
type Session struct {
	Token     string    `json:"-"` // Raw opaque token. Omitted for security.
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// # Auth Providers

const (
	// ProviderEmail marks accounts created through password registration.
	ProviderEmail = "email"

	// ProviderGoogle marks accounts created by the OAuth callback. These
	// accounts carry no password hash and must never pass the password path.
	ProviderGoogle = "google"
)

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldName        = "name"
	FieldPhone       = "phone"
	FieldAddress     = "address"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldUser        = "user"
	FieldMessage     = "message"
)
