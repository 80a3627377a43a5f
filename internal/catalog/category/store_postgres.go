// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package category

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afrolatino/marketplace/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the category Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// List returns every category ordered by name.
func (repository *PostgresRepository) List(context context.Context) ([]*Category, error) {
	const query = `
		SELECT id, name, icon, productcount, createdat
		FROM catalog.category
		ORDER BY name`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_category_repo_list_failed: %w", err)
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Icon, &category.ProductCount, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres_category_repo_scan_failed: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_category_repo_rows_failed: %w", err)
	}

	return categories, nil
}

// Create persists a new category.
func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	const query = `
		INSERT INTO catalog.category (id, name, icon, productcount, createdat)
		VALUES ($1, $2, $3, $4, $5)`

	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		category.ID, category.Name, category.Icon, category.ProductCount, category.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "category_create")
	}

	return nil
}

// Delete removes a category permanently.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM catalog.category WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "category_delete")
	}
	return nil
}

// AdjustProductCount shifts the denormalized count by delta. The count
// never goes below zero even if the bookkeeping drifts.
func (repository *PostgresRepository) AdjustProductCount(context context.Context, categoryName string, delta int) error {
	const query = `
		UPDATE catalog.category
		SET productcount = GREATEST(productcount + $2, 0)
		WHERE name = $1`

	_, err := repository.pool.Exec(context, query, categoryName, delta)
	if err != nil {
		return dberr.Wrap(err, "category_adjust_count")
	}
	return nil
}
