// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

/*
Package account handles user profile management and administrative user listing.

It provides functionality for members to update their own identity data and
for admins to inspect the registered user base.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Security: Profile writes are owner-or-admin; listing is admin-only.
  - Hard rule: the password hash and admin flag are never client-settable here.
*/
package account

import (
	"context"

	"github.com/afrolatino/marketplace/internal/users/auth"
	"github.com/afrolatino/marketplace/pkg/pagination"
)

// # Repository Contracts

// ListRepository defines the read contract for the administrative user index.
type ListRepository interface {
	/*
		List returns a page of user accounts ordered by creation time.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - []*auth.User: The requested page
		  - int: Total number of accounts
		  - error: Retrieval errors
	*/
	List(context context.Context, params pagination.Params) ([]*auth.User, int, error)
}
