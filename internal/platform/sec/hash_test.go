// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrolatino/marketplace/internal/platform/sec"
)

/*
TestHashPassword verifies hashing and verification behavior.
*/
func TestHashPassword(t *testing.T) {
	password := "correct horse battery staple"

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// The hash must never equal the plain text
	assert.NotEqual(t, password, hash)

	// Verification succeeds for the right password, fails otherwise
	assert.True(t, sec.CheckPasswordHash(password, hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
}

/*
TestHashPassword_SaltedOutput verifies that two hashes of the same
password differ because of the embedded salt.
*/
func TestHashPassword_SaltedOutput(t *testing.T) {
	first, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	second, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestCheckPasswordHash_Malformed verifies that a corrupt stored hash is
treated as a mismatch rather than an error.
*/
func TestCheckPasswordHash_Malformed(t *testing.T) {
	assert.False(t, sec.CheckPasswordHash("anything", "not-a-bcrypt-hash"))
	assert.False(t, sec.CheckPasswordHash("anything", ""))
}
