// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package auth

import (
	"net/http"
	"strings"

	"github.com/afrolatino/marketplace/internal/platform/constants"
)

// # Credential Extraction

/*
CredentialFromRequest pulls raw credential material from an inbound request.

Description: Checks the session cookie first and the Authorization header
second. When both are present the cookie wins, even if the bearer value
would have resolved to a different identity.

Parameters:
  - request: *http.Request

Returns:
  - string: The raw credential, or "" when the request carries none
*/
func CredentialFromRequest(request *http.Request) string {

	// 1. Cookie takes precedence over the Authorization header
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	// 2. Fall back to "Authorization: Bearer <token>"
	header := request.Header.Get(constants.HeaderAuthorization)
	if token, found := strings.CutPrefix(header, "Bearer "); found && token != "" {
		return token
	}

	return ""
}

// # Credential Classification

// SessionTokenLengthThreshold separates opaque session tokens from signed
// tokens. OAuth session tokens are generated long enough to always exceed
// it, while a signed token with our minimal claim set stays well under.
//
// NOTE: this is a length heuristic, not a format tag. A signed token that
// ever grows past 200 characters (larger claim set, longer key IDs) would
// be misrouted to the session path and rejected there. If the claim set
// grows, switch to an explicit prefix on session tokens.
const SessionTokenLengthThreshold = 200

// IsSessionToken reports whether the raw credential should be resolved
// through the opaque session path rather than signature verification.
func IsSessionToken(credential string) bool {
	return len(credential) > SessionTokenLengthThreshold
}
