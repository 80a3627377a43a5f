// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/afrolatino/marketplace/internal/platform/constants"
	"github.com/afrolatino/marketplace/internal/users/auth"
)

/*
TestCredentialFromRequest verifies credential extraction and source
precedence.
*/
func TestCredentialFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{"no_credential", "", "", ""},
		{"cookie_only", "cookie-token", "", "cookie-token"},
		{"bearer_only", "", "Bearer header-token", "header-token"},
		{"cookie_wins_over_bearer", "cookie-token", "Bearer header-token", "cookie-token"},
		{"bearer_without_prefix_ignored", "", "header-token", ""},
		{"basic_scheme_ignored", "", "Basic dXNlcjpwYXNz", ""},
		{"empty_bearer_ignored", "", "Bearer ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				request.Header.Set(constants.HeaderAuthorization, tt.header)
			}

			assert.Equal(t, tt.want, auth.CredentialFromRequest(request))
		})
	}
}

/*
TestIsSessionToken pins the classification threshold.
*/
func TestIsSessionToken(t *testing.T) {
	assert.False(t, auth.IsSessionToken(""))
	assert.False(t, auth.IsSessionToken(opaqueToken(200)))
	assert.True(t, auth.IsSessionToken(opaqueToken(201)))
}
