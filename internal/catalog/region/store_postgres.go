// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package region

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

// NewRepository creates a new PostgreSQL implementation of the region Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// List returns every region ordered by name.
func (repository *PostgresRepository) List(context context.Context) ([]*Region, error) {
	const query = `
		SELECT id, name, countries, image, createdat
		FROM catalog.region
		ORDER BY name`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_region_repo_list_failed: %w", err)
	}
	defer rows.Close()

	regions := make([]*Region, 0)
	for rows.Next() {
		region := &Region{}
		if err := rows.Scan(&region.ID, &region.Name, &region.Countries, &region.Image, &region.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres_region_repo_scan_failed: %w", err)
		}
		regions = append(regions, region)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_region_repo_rows_failed: %w", err)
	}

	return regions, nil
}

// Create persists a new region.
func (repository *PostgresRepository) Create(context context.Context, region *Region) error {
	const query = `
		INSERT INTO catalog.region (id, name, countries, image, createdat)
		VALUES ($1, $2, $3, $4, $5)`

	if region.CreatedAt.IsZero() {
		region.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		region.ID, region.Name, region.Countries, region.Image, region.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "region_create")
	}

	return nil
}

// Delete removes a region permanently.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM catalog.region WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "region_delete")
	}
	return nil
}
