// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrolatino/marketplace/internal/platform/sec"
)

const testSecret = "unit-test-signing-secret"

/*
TestTokenService_New verifies the constructor's configuration guards.
*/
func TestTokenService_New(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		algorithm string
		ttl       int
		wantErr   bool
	}{
		{"valid_hs256", testSecret, "HS256", 10080, false},
		{"valid_hs512", testSecret, "HS512", 60, false},
		{"missing_secret", "", "HS256", 60, true},
		{"unknown_algorithm", testSecret, "HS666", 60, true},
		{"non_hmac_algorithm", testSecret, "RS256", 60, true},
		{"zero_ttl", testSecret, "HS256", 0, true},
		{"negative_ttl", testSecret, "HS256", -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := sec.NewTokenService(tt.secret, tt.algorithm, tt.ttl)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, service)
			} else {
				require.NoError(t, err)
				require.NotNil(t, service)
				assert.Equal(t, time.Duration(tt.ttl)*time.Minute, service.TTL())
			}
		})
	}
}

/*
TestTokenService_RoundTrip verifies that an issued token resolves back to
the user it was issued to.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "HS256", 10080)
	require.NoError(t, err)

	token, err := service.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

/*
TestTokenService_Expiry verifies that a token is rejected once the clock
passes its embedded expiry.
*/
func TestTokenService_Expiry(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	service, err := sec.NewTokenService(testSecret, "HS256", 60)
	require.NoError(t, err)
	service.WithClock(func() time.Time { return issuedAt })

	token, err := service.Issue("user-123")
	require.NoError(t, err)

	// Still valid just before expiry
	service.WithClock(func() time.Time { return issuedAt.Add(59 * time.Minute) })
	userID, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)

	// Rejected one minute past expiry
	service.WithClock(func() time.Time { return issuedAt.Add(61 * time.Minute) })
	_, err = service.Verify(token)
	assert.Error(t, err)
}

/*
TestTokenService_WrongSecret verifies that a token signed with another
secret never verifies.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	issuer, err := sec.NewTokenService("secret-a", "HS256", 60)
	require.NoError(t, err)

	verifier, err := sec.NewTokenService("secret-b", "HS256", 60)
	require.NoError(t, err)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

/*
TestTokenService_AlgorithmMismatch verifies that the verifier pins its
configured algorithm and rejects tokens signed with a different one.
*/
func TestTokenService_AlgorithmMismatch(t *testing.T) {
	issuer, err := sec.NewTokenService(testSecret, "HS512", 60)
	require.NoError(t, err)

	verifier, err := sec.NewTokenService(testSecret, "HS256", 60)
	require.NoError(t, err)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	// Same secret, different method: still rejected
	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

/*
TestTokenService_MalformedInput verifies that garbage input returns an
error instead of panicking.
*/
func TestTokenService_MalformedInput(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "HS256", 60)
	require.NoError(t, err)

	for _, input := range []string{"", "not-a-token", "a.b.c", "....."} {
		_, err := service.Verify(input)
		assert.Error(t, err, "input %q should not verify", input)
	}
}
