// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afrolatino/marketplace/internal/users/auth"
	"github.com/afrolatino/marketplace/pkg/pagination"
)

// # Repository Implementations

// PostgresListRepository implements [ListRepository] using pgx.
type PostgresListRepository struct {
	pool *pgxpool.Pool
}

// NewListRepository creates a new Postgres implementation for the user index.
func NewListRepository(pool *pgxpool.Pool) *PostgresListRepository {
	return &PostgresListRepository{pool: pool}
}

/*
List returns a page of user accounts ordered by creation time descending.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []*auth.User: The requested page
  - int: Total account count
  - error: Retrieval failures
*/
func (repository *PostgresListRepository) List(context context.Context, params pagination.Params) ([]*auth.User, int, error) {
	const countQuery = "SELECT COUNT(*) FROM users.account"

	var total int
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_count_failed: %w", err)
	}

	const query = `
		SELECT id, email, name, picture, authprovider, passwordhash, phone, address, isadmin, createdat, updatedat
		FROM users.account
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users := make([]*auth.User, 0, params.Limit)
	for rows.Next() {
		user := &auth.User{}
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Name,
			&user.Picture,
			&user.AuthProvider,
			&user.PasswordHash,
			&user.Phone,
			&user.Address,
			&user.IsAdmin,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_account_repo_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_rows_failed: %w", err)
	}

	return users, total, nil
}
