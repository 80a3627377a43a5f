// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package auth_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrolatino/marketplace/internal/platform/apperr"
	"github.com/afrolatino/marketplace/internal/platform/sec"
	"github.com/afrolatino/marketplace/internal/users/auth"
)

// fakeIssuer mints predictable tokens.
type fakeIssuer struct{}

func (fakeIssuer) Issue(userID string) (string, error) { return "token-for-" + userID, nil }
func (fakeIssuer) TTL() time.Duration                  { return time.Hour }

/*
TestService_Register verifies enrollment, hashing, and conflict handling.
*/
func TestService_Register(t *testing.T) {
	userRepo := newFakeUserRepo()
	service := auth.NewService(userRepo, newFakeSessionRepo(), fakeIssuer{})

	result, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "ana@afrolatino.ca",
		Password: "plaintext-password",
		Name:     "Ana",
	})
	require.NoError(t, err)
	require.NotNil(t, result.User)

	// Token issued immediately, account on the email path, never admin
	assert.Equal(t, "token-for-"+result.User.ID, result.AccessToken)
	assert.Equal(t, "bearer", result.TokenType)
	assert.Equal(t, auth.ProviderEmail, result.User.AuthProvider)
	assert.False(t, result.User.IsAdmin)

	// The stored hash is bcrypt, not the plain text
	stored, err := userRepo.FindByEmail(context.Background(), "ana@afrolatino.ca")
	require.NoError(t, err)
	assert.NotEqual(t, "plaintext-password", stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("plaintext-password", stored.PasswordHash))

	// Duplicate email: client-safe conflict
	_, err = service.Register(context.Background(), auth.RegisterInput{
		Email:    "ana@afrolatino.ca",
		Password: "another-password",
		Name:     "Impostor",
	})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
}

/*
TestService_Login verifies the password path and its uniform rejections.
*/
func TestService_Login(t *testing.T) {
	hash, err := sec.HashPassword("right-password")
	require.NoError(t, err)

	emailUser := &auth.User{
		ID: "user-1", Email: "ana@afrolatino.ca", Name: "Ana",
		AuthProvider: auth.ProviderEmail, PasswordHash: hash,
	}
	googleUser := &auth.User{
		ID: "user-2", Email: "luis@afrolatino.ca", Name: "Luis",
		AuthProvider: auth.ProviderGoogle,
	}

	service := auth.NewService(newFakeUserRepo(emailUser, googleUser), newFakeSessionRepo(), fakeIssuer{})

	// Happy path
	result, err := service.Login(context.Background(), auth.LoginInput{
		Email: "ana@afrolatino.ca", Password: "right-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-for-user-1", result.AccessToken)
	assert.Equal(t, time.Hour, result.ExpiresIn)

	// Every rejection path returns the identical 401
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown_email", "nobody@afrolatino.ca", "right-password"},
		{"wrong_password", "ana@afrolatino.ca", "wrong-password"},
		{"google_account_no_password_path", "luis@afrolatino.ca", "right-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), auth.LoginInput{
				Email: tt.email, Password: tt.password,
			})
			assertUnauthorized(t, err)
		})
	}
}

/*
TestService_Logout verifies session teardown semantics per credential shape.
*/
func TestService_Logout(t *testing.T) {
	token := opaqueToken(240)
	sessionRepo := newFakeSessionRepo(&auth.Session{
		Token: token, UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour),
	})
	service := auth.NewService(newFakeUserRepo(), sessionRepo, fakeIssuer{})

	// Opaque session: the store row is removed
	require.NoError(t, service.Logout(context.Background(), token))
	_, err := sessionRepo.FindByToken(context.Background(), token)
	assert.Error(t, err)

	// Idempotent: logging out twice is fine
	require.NoError(t, service.Logout(context.Background(), token))

	// Signed tokens are stateless: no store interaction, no error
	require.NoError(t, service.Logout(context.Background(), "some-signed-token"))
	require.NoError(t, service.Logout(context.Background(), ""))
}
