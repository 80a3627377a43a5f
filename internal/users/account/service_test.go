// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package account_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrolatino/marketplace/internal/platform/apperr"
	"github.com/afrolatino/marketplace/internal/users/account"
	"github.com/afrolatino/marketplace/internal/users/auth"
	"github.com/afrolatino/marketplace/pkg/pagination"
	"github.com/afrolatino/marketplace/pkg/pointer"
)

// # Test Fakes

type fakeUserRepo struct {
	users map[string]*auth.User
}

func (repo *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := repo.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	repo.users[user.ID] = user
	return nil
}

func (repo *fakeUserRepo) Update(_ context.Context, user *auth.User) error {
	repo.users[user.ID] = user
	return nil
}

type fakeListRepo struct{}

func (fakeListRepo) List(_ context.Context, _ pagination.Params) ([]*auth.User, int, error) {
	return nil, 0, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// # Tests

/*
TestService_UpdateProfile verifies the owner-or-admin rule and the
immutability of privileged fields.
*/
func TestService_UpdateProfile(t *testing.T) {
	owner := &auth.User{ID: "user-1", Email: "ana@afrolatino.ca", Name: "Ana", PasswordHash: "hash", IsAdmin: false}
	other := &auth.User{ID: "user-2", Email: "luis@afrolatino.ca", Name: "Luis"}
	admin := &auth.User{ID: "admin-1", Email: "admin@afrolatino.ca", Name: "Root", IsAdmin: true}

	repo := &fakeUserRepo{users: map[string]*auth.User{
		owner.ID: owner, other.ID: other, admin.ID: admin,
	}}
	service := account.NewService(repo, fakeListRepo{}, discardLogger())

	// Owner updates own profile
	updated, err := service.UpdateProfile(context.Background(), owner, owner.ID, account.UpdateProfileInput{
		Name:  pointer.To("Ana Maria"),
		Phone: pointer.To("+1-416-555-0100"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)
	assert.Equal(t, "+1-416-555-0100", updated.Phone)

	// Privileged fields survive untouched
	assert.Equal(t, "hash", updated.PasswordHash)
	assert.False(t, updated.IsAdmin)

	// Member editing someone else: 403
	_, err = service.UpdateProfile(context.Background(), owner, other.ID, account.UpdateProfileInput{
		Name: pointer.To("Hijacked"),
	})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPStatus)

	// Admin editing someone else: allowed
	updated, err = service.UpdateProfile(context.Background(), admin, other.ID, account.UpdateProfileInput{
		Name: pointer.To("Luis Alberto"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Luis Alberto", updated.Name)

	// Unknown target: 404
	_, err = service.UpdateProfile(context.Background(), admin, "missing", account.UpdateProfileInput{})
	appErr = apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}
