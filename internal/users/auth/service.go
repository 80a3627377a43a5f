// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/afrolatino/marketplace/internal/platform/apperr"
	"github.com/afrolatino/marketplace/internal/platform/sec"
	"github.com/afrolatino/marketplace/pkg/uuidv7"
)

// # Contracts & Types

// TokenIssuer defines the contract for minting signed access tokens.
type TokenIssuer interface {
	// Issue creates a signed token asserting the given user ID.
	Issue(userID string) (string, error)

	// TTL reports the configured token lifetime, used to align the
	// session cookie's Max-Age with the token's embedded expiry.
	TTL() time.Duration
}

// Service implements the authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing,
// registration, or login logic must be reviewed before merging.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenIssuer       TokenIssuer
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, sessionRepo SessionRepository, issuer TokenIssuer) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenIssuer:       issuer,
	}
}

// AuthResult carries a freshly issued credential and its owner.
type AuthResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
	User        *User
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Address  string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrolls a new member on the password path and immediately
issues a signed token so the client is logged in after registration.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *AuthResult: Token and created profile
  - error: Conflict (if the email exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*AuthResult, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.Must(),
		Email:        input.Email,
		Name:         input.Name,
		AuthProvider: ProviderEmail,
		PasswordHash: hashedPassword,
		Phone:        input.Phone,
		Address:      input.Address,
		IsAdmin:      false,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return service.issueFor(user)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues a signed access token.

Description: Verifies the password against the stored bcrypt hash. Every
rejection path returns the same generic Unauthorized so responses cannot
be used to enumerate accounts or discover OAuth-only users.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthResult: Token and authenticated profile
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthResult, error) {
	user, err := service.userRepository.FindByEmail(context, input.Email)

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, unauthorized(err)
	}

	// Google-provisioned accounts have no password hash and must never
	// authenticate here. Same generic message.
	if user.AuthProvider != ProviderEmail || user.PasswordHash == "" {
		return nil, unauthorized(fmt.Errorf("password login not available for provider %q", user.AuthProvider))
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, unauthorized(fmt.Errorf("password mismatch for user %s", user.ID))
	}

	return service.issueFor(user)
}

/*
Logout tears down the server-side half of an opaque session.

Description: A session-shaped credential gets its store row deleted so the
token can never resolve again. Signed tokens are stateless and cannot be
revoked; for those this is a no-op and only the client cookie is cleared
by the handler. Always idempotent.

Parameters:
  - context: context.Context
  - credential: string (Raw material from cookie or bearer header)

Returns:
  - err: Deletion failures
*/
func (service *Service) Logout(context context.Context, credential string) error {
	if !IsSessionToken(credential) {
		return nil
	}

	if err := service.sessionRepository.Delete(context, credential); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// issueFor mints a signed token for the user and assembles the result.
func (service *Service) issueFor(user *User) (*AuthResult, error) {
	token, err := service.tokenIssuer.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &AuthResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   service.tokenIssuer.TTL(),
		User:        user,
	}, nil
}
