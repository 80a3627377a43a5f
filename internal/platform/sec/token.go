// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the payload embedded inside a signed access token.
//
// The token asserts exactly one fact: which user it was issued to, and
// until when. Everything else about the user is looked up at resolution
// time, so profile or privilege changes take effect without re-issuing.
type AccessClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"user_id"`
}

// TokenService issues and verifies HMAC-signed access tokens.
//
// Tokens are stateless: no record of issuance is kept, and validity is
// decided entirely by signature correctness and the embedded expiry.
// Rotating the secret invalidates every outstanding token at once.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration

	// now is swappable in tests to exercise expiry behavior.
	now func() time.Time
}

// NewTokenService creates a TokenService for the given secret, algorithm
// name (HS256/HS384/HS512) and time-to-live in minutes.
//
// The secret is mandatory. There is intentionally no fallback value here:
// a hard-coded default secret is a credential leak waiting in the source.
func NewTokenService(secret, algorithm string, ttlMinutes int) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: signing secret is required")
	}

	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("sec: unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("sec: algorithm %q is not an HMAC method", algorithm)
	}

	if ttlMinutes <= 0 {
		return nil, fmt.Errorf("sec: token TTL must be positive, got %d minutes", ttlMinutes)
	}

	return &TokenService{
		secret: []byte(secret),
		method: method,
		ttl:    time.Duration(ttlMinutes) * time.Minute,
		now:    time.Now,
	}, nil
}

// TTL returns the configured token lifetime.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// Issue creates a signed token asserting {user_id, exp: now + TTL}.
func (service *TokenService) Issue(userID string) (string, error) {
	currentTime := service.now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(service.method, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks signature AND expiry in a single step and returns the
// user ID the token was issued to.
//
// It never panics on malformed input. Signature mismatch, algorithm
// mismatch, expiry, and a missing user_id claim all return an error;
// callers collapse them into a single authentication failure.
func (service *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return service.secret, nil
		},
		// Pin the configured algorithm. Without this, a token signed with
		// a different method but a colliding key would pass.
		jwt.WithValidMethods([]string{service.method.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return service.now() }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return "", errors.New("sec: invalid token claims")
	}

	if claims.UserID == "" {
		return "", errors.New("sec: token is missing the user_id claim")
	}

	return claims.UserID, nil
}

// WithClock replaces the service's clock. Test helper only.
func (service *TokenService) WithClock(now func() time.Time) *TokenService {
	service.now = now
	return service
}
