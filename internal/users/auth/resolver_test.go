// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package auth_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrolatino/marketplace/internal/platform/apperr"
	"github.com/afrolatino/marketplace/internal/users/auth"
)

// # Test Fakes

type fakeUserRepo struct {
	byID    map[string]*auth.User
	byEmail map[string]*auth.User
	failure error
}

func newFakeUserRepo(users ...*auth.User) *fakeUserRepo {
	repo := &fakeUserRepo{
		byID:    make(map[string]*auth.User),
		byEmail: make(map[string]*auth.User),
	}
	for _, user := range users {
		repo.byID[user.ID] = user
		repo.byEmail[user.Email] = user
	}
	return repo
}

func (repo *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	if repo.failure != nil {
		return nil, repo.failure
	}
	if user, ok := repo.byID[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if repo.failure != nil {
		return nil, repo.failure
	}
	if user, ok := repo.byEmail[email]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	repo.byID[user.ID] = user
	repo.byEmail[user.Email] = user
	return nil
}

func (repo *fakeUserRepo) Update(_ context.Context, user *auth.User) error {
	repo.byID[user.ID] = user
	return nil
}

type fakeSessionRepo struct {
	byToken map[string]*auth.Session
	failure error
}

func newFakeSessionRepo(sessions ...*auth.Session) *fakeSessionRepo {
	repo := &fakeSessionRepo{byToken: make(map[string]*auth.Session)}
	for _, session := range sessions {
		repo.byToken[session.Token] = session
	}
	return repo
}

func (repo *fakeSessionRepo) Create(_ context.Context, session *auth.Session) error {
	repo.byToken[session.Token] = session
	return nil
}

func (repo *fakeSessionRepo) FindByToken(_ context.Context, token string) (*auth.Session, error) {
	if repo.failure != nil {
		return nil, repo.failure
	}
	if session, ok := repo.byToken[token]; ok {
		return session, nil
	}
	return nil, apperr.NotFound("Session")
}

func (repo *fakeSessionRepo) Delete(_ context.Context, token string) error {
	delete(repo.byToken, token)
	return nil
}

func (repo *fakeSessionRepo) DeleteAllForUser(_ context.Context, userID string) error {
	for token, session := range repo.byToken {
		if session.UserID == userID {
			delete(repo.byToken, token)
		}
	}
	return nil
}

// fakeVerifier maps known token strings to user IDs.
type fakeVerifier struct {
	tokens map[string]string
}

func (verifier *fakeVerifier) Verify(tokenString string) (string, error) {
	if userID, ok := verifier.tokens[tokenString]; ok {
		return userID, nil
	}
	return "", errors.New("bad signature")
}

// # Fixtures

// opaqueToken builds a session-shaped token of exactly n characters.
func opaqueToken(n int) string {
	return strings.Repeat("s", n)
}

func memberUser() *auth.User {
	return &auth.User{ID: "user-1", Email: "ana@afrolatino.ca", Name: "Ana", AuthProvider: auth.ProviderEmail}
}

func adminUser() *auth.User {
	return &auth.User{ID: "admin-1", Email: "admin@afrolatino.ca", Name: "Root", AuthProvider: auth.ProviderEmail, IsAdmin: true}
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
	assert.Equal(t, "Invalid authentication credentials", appErr.Message)
}

// # Resolution Tests

/*
TestResolver_SignedTokenPath verifies resolution of a valid signed token
to its live user record.
*/
func TestResolver_SignedTokenPath(t *testing.T) {
	user := memberUser()
	resolver := auth.NewResolver(
		newFakeUserRepo(user),
		newFakeSessionRepo(),
		&fakeVerifier{tokens: map[string]string{"valid-token": user.ID}},
	)

	resolved, err := resolver.ResolveIdentity(context.Background(), "valid-token")
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

/*
TestResolver_SessionPath verifies resolution of an unexpired opaque
session token.
*/
func TestResolver_SessionPath(t *testing.T) {
	user := memberUser()
	token := opaqueToken(240)
	resolver := auth.NewResolver(
		newFakeUserRepo(user),
		newFakeSessionRepo(&auth.Session{
			Token:     token,
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(time.Hour),
		}),
		&fakeVerifier{},
	)

	resolved, err := resolver.ResolveIdentity(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

/*
TestResolver_ClassificationBoundary pins the 200-character threshold:
exactly 200 goes to the signed path, 201 goes to the session path.
*/
func TestResolver_ClassificationBoundary(t *testing.T) {
	user := memberUser()
	atThreshold := opaqueToken(200)
	pastThreshold := opaqueToken(201)

	resolver := auth.NewResolver(
		newFakeUserRepo(user),
		newFakeSessionRepo(&auth.Session{
			Token:     pastThreshold,
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(time.Hour),
		}),
		&fakeVerifier{tokens: map[string]string{atThreshold: user.ID}},
	)

	// 200 characters: handled by the signature verifier
	resolved, err := resolver.ResolveIdentity(context.Background(), atThreshold)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	// 201 characters: handled by the session store
	resolved, err = resolver.ResolveIdentity(context.Background(), pastThreshold)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

/*
TestResolver_Failures verifies that every rejection path yields the same
generic 401.
*/
func TestResolver_Failures(t *testing.T) {
	user := memberUser()
	expiredToken := opaqueToken(210)
	orphanToken := opaqueToken(220)

	resolver := auth.NewResolver(
		newFakeUserRepo(user),
		newFakeSessionRepo(
			&auth.Session{Token: expiredToken, UserID: user.ID, ExpiresAt: time.Now().Add(-time.Minute)},
			&auth.Session{Token: orphanToken, UserID: "ghost-user", ExpiresAt: time.Now().Add(time.Hour)},
		),
		&fakeVerifier{tokens: map[string]string{"deleted-user-token": "ghost-user"}},
	)

	tests := []struct {
		name       string
		credential string
	}{
		{"missing_credential", ""},
		{"bad_signature", "tampered-token"},
		{"unknown_session", opaqueToken(250)},
		{"expired_session", expiredToken},
		{"session_user_deleted", orphanToken},
		{"token_user_deleted", "deleted-user-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.ResolveIdentity(context.Background(), tt.credential)
			assertUnauthorized(t, err)
		})
	}
}

/*
TestResolver_SessionExpiryUTC verifies that expiry instants stored in a
non-UTC zone are compared correctly.
*/
func TestResolver_SessionExpiryUTC(t *testing.T) {
	user := memberUser()
	token := opaqueToken(230)
	behindUTC := time.FixedZone("UTC-5", -5*3600)

	// Expires in one hour, expressed in a zone five hours behind UTC.
	resolver := auth.NewResolver(
		newFakeUserRepo(user),
		newFakeSessionRepo(&auth.Session{
			Token:     token,
			UserID:    user.ID,
			ExpiresAt: time.Now().In(behindUTC).Add(time.Hour),
		}),
		&fakeVerifier{},
	)

	resolved, err := resolver.ResolveIdentity(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	// Same zone, already past.
	expired := auth.NewResolver(
		newFakeUserRepo(user),
		newFakeSessionRepo(&auth.Session{
			Token:     token,
			UserID:    user.ID,
			ExpiresAt: time.Now().In(behindUTC).Add(-time.Minute),
		}),
		&fakeVerifier{},
	)

	_, err = expired.ResolveIdentity(context.Background(), token)
	assertUnauthorized(t, err)
}

/*
TestResolver_AdminGate verifies the privilege check ordering: 401 before
403, and 403 only for authenticated non-admins.
*/
func TestResolver_AdminGate(t *testing.T) {
	member := memberUser()
	admin := adminUser()

	resolver := auth.NewResolver(
		newFakeUserRepo(member, admin),
		newFakeSessionRepo(),
		&fakeVerifier{tokens: map[string]string{
			"member-token": member.ID,
			"admin-token":  admin.ID,
		}},
	)

	// Admin resolves
	resolved, err := resolver.ResolveAdmin(context.Background(), "admin-token")
	require.NoError(t, err)
	assert.True(t, resolved.IsAdmin)

	// Authenticated non-admin: 403
	_, err = resolver.ResolveAdmin(context.Background(), "member-token")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPStatus)

	// Unauthenticated: 401, never 403
	_, err = resolver.ResolveAdmin(context.Background(), "garbage")
	assertUnauthorized(t, err)
}

/*
TestResolver_TryResolveIdentity verifies the optional-auth entry point
never errors.
*/
func TestResolver_TryResolveIdentity(t *testing.T) {
	user := memberUser()
	userRepo := newFakeUserRepo(user)
	resolver := auth.NewResolver(
		userRepo,
		newFakeSessionRepo(),
		&fakeVerifier{tokens: map[string]string{"valid-token": user.ID}},
	)

	// Valid credential resolves
	resolved := resolver.TryResolveIdentity(context.Background(), "valid-token")
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)

	// Invalid and missing credentials are silently anonymous
	assert.Nil(t, resolver.TryResolveIdentity(context.Background(), "garbage"))
	assert.Nil(t, resolver.TryResolveIdentity(context.Background(), ""))

	// Even a store outage is anonymous here
	userRepo.failure = apperr.StoreUnavailable(errors.New("connection refused"))
	assert.Nil(t, resolver.TryResolveIdentity(context.Background(), "valid-token"))
}

/*
TestResolver_StoreOutage verifies that connectivity failures surface as
503, not as a generic 401.
*/
func TestResolver_StoreOutage(t *testing.T) {
	user := memberUser()
	outage := apperr.StoreUnavailable(errors.New("connection refused"))

	userRepo := newFakeUserRepo(user)
	userRepo.failure = outage
	resolver := auth.NewResolver(
		userRepo,
		newFakeSessionRepo(),
		&fakeVerifier{tokens: map[string]string{"valid-token": user.ID}},
	)

	_, err := resolver.ResolveIdentity(context.Background(), "valid-token")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)

	sessionRepo := newFakeSessionRepo()
	sessionRepo.failure = outage
	resolver = auth.NewResolver(newFakeUserRepo(user), sessionRepo, &fakeVerifier{})

	_, err = resolver.ResolveIdentity(context.Background(), opaqueToken(210))
	appErr = apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)
}
