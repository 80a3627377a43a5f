// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/afrolatino/marketplace/internal/platform/apperr"
)

// # Contracts & Types

// TokenVerifier defines the contract for verifying signed access tokens.
type TokenVerifier interface {
	// Verify checks the token's signature and expiry and returns the
	// user ID it was issued to.
	Verify(tokenString string) (string, error)
}

// credentialsMessage is the single client-facing text for EVERY
// authentication failure. Missing credential, bad signature, expired
// session, and deleted user are indistinguishable on the wire.
const credentialsMessage = "Invalid authentication credentials"

// Resolver turns raw credential material into an authenticated [User].
//
// # Resolution Paths
//
// A credential longer than [SessionTokenLengthThreshold] takes the opaque
// path: exact-match lookup in the session store, then an expiry check
// against the clock. Anything else takes the signed path: HMAC signature
// verification with the expiry enforced by the verifier. Both paths end
// with a live user lookup, so a deleted account fails even while its
// credential is otherwise valid.
type Resolver struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenVerifier     TokenVerifier
	now               func() time.Time
}

// NewResolver constructs a [Resolver] with its store and verifier dependencies.
func NewResolver(userRepo UserRepository, sessionRepo SessionRepository, verifier TokenVerifier) *Resolver {
	return &Resolver{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenVerifier:     verifier,
		now:               time.Now,
	}
}

// WithClock overrides the resolver's clock. Test helper.
func (resolver *Resolver) WithClock(now func() time.Time) *Resolver {
	resolver.now = now
	return resolver
}

// # Identity Resolution

/*
ResolveIdentity resolves a raw credential into an authenticated user.

Description: Classifies the credential by shape, validates it through the
matching path, and loads the live user record. Every failure collapses
into the same 401 so the response never reveals which step rejected the
attempt; the sub-reason is attached as the error cause for logging.

Parameters:
  - context: context.Context
  - credential: string (Raw material from cookie or bearer header)

Returns:
  - *User: Fully populated identity
  - error: apperr.Unauthorized or store connectivity failures
*/
func (resolver *Resolver) ResolveIdentity(context context.Context, credential string) (*User, error) {
	if credential == "" {
		return nil, unauthorized(errors.New("no credential material"))
	}

	userID, err := resolver.resolveUserID(context, credential)
	if err != nil {
		return nil, err
	}

	// Live lookup: a user deleted after issuance must not resolve.
	user, err := resolver.userRepository.FindByID(context, userID)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.HTTPStatus == 503 {
			return nil, err
		}
		return nil, unauthorized(err)
	}

	return user, nil
}

/*
ResolveAdmin resolves a credential and enforces the admin flag.

Description: Runs the full [ResolveIdentity] path first; a request that
cannot authenticate gets a 401 before the privilege check is reached. An
authenticated non-admin gets a 403.

Parameters:
  - context: context.Context
  - credential: string

Returns:
  - *User: The resolved admin identity
  - error: apperr.Unauthorized or apperr.Forbidden
*/
func (resolver *Resolver) ResolveAdmin(context context.Context, credential string) (*User, error) {
	user, err := resolver.ResolveIdentity(context, credential)
	if err != nil {
		return nil, err
	}

	if !user.IsAdmin {
		return nil, apperr.Forbidden("Admin access required")
	}

	return user, nil
}

/*
TryResolveIdentity attempts resolution without ever failing the request.

Description: The optional-auth entry point for endpoints that serve both
guests and members (e.g. guest checkout). Any failure, including a store
outage, yields nil.

Parameters:
  - context: context.Context
  - credential: string

Returns:
  - *User: The resolved identity, or nil for anonymous traffic
*/
func (resolver *Resolver) TryResolveIdentity(context context.Context, credential string) *User {
	user, err := resolver.ResolveIdentity(context, credential)
	if err != nil {
		return nil
	}
	return user
}

// # Resolution Paths

// resolveUserID validates the credential through its shape-matched path
// and returns the user ID it asserts.
func (resolver *Resolver) resolveUserID(context context.Context, credential string) (string, error) {
	if IsSessionToken(credential) {
		return resolver.resolveSession(context, credential)
	}
	return resolver.resolveSignedToken(credential)
}

// resolveSession looks the opaque token up in the session store and
// enforces expiry against the current clock.
func (resolver *Resolver) resolveSession(context context.Context, token string) (string, error) {
	session, err := resolver.sessionRepository.FindByToken(context, token)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.HTTPStatus == 503 {
			return "", err
		}
		return "", unauthorized(err)
	}

	// Expiry instants are normalized to UTC before comparison; rows written
	// by the OAuth callback may carry a different zone than the server clock.
	if !session.ExpiresAt.UTC().After(resolver.now().UTC()) {
		return "", unauthorized(errors.New("session expired"))
	}

	return session.UserID, nil
}

// resolveSignedToken verifies the HMAC signature and embedded expiry.
func (resolver *Resolver) resolveSignedToken(token string) (string, error) {
	userID, err := resolver.tokenVerifier.Verify(token)
	if err != nil {
		return "", unauthorized(err)
	}
	return userID, nil
}

// unauthorized builds the uniform 401 with the sub-reason attached as
// cause for server-side logs.
func unauthorized(cause error) *apperr.AppError {
	appErr := apperr.Unauthorized(credentialsMessage)
	appErr.Cause = cause
	return appErr
}
