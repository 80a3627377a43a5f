// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package testimonial

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

// NewRepository creates a new PostgreSQL implementation of the testimonial Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// List returns all testimonials, newest first.
func (repository *PostgresRepository) List(context context.Context) ([]*Testimonial, error) {
	const query = `
		SELECT id, name, location, culture, rating, text, avatar, createdat
		FROM content.testimonial
		ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_testimonial_repo_list_failed: %w", err)
	}
	defer rows.Close()

	testimonials := []*Testimonial{}
	for rows.Next() {
		testimonial := &Testimonial{}
		err := rows.Scan(
			&testimonial.ID,
			&testimonial.Name,
			&testimonial.Location,
			&testimonial.Culture,
			&testimonial.Rating,
			&testimonial.Text,
			&testimonial.Avatar,
			&testimonial.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_testimonial_repo_scan_failed: %w", err)
		}
		testimonials = append(testimonials, testimonial)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_testimonial_repo_rows_failed: %w", err)
	}

	return testimonials, nil
}

// Create persists a new testimonial.
func (repository *PostgresRepository) Create(context context.Context, testimonial *Testimonial) error {
	const query = `
		INSERT INTO content.testimonial (
			id, name, location, culture, rating, text, avatar, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if testimonial.CreatedAt.IsZero() {
		testimonial.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		testimonial.ID,
		testimonial.Name,
		testimonial.Location,
		testimonial.Culture,
		testimonial.Rating,
		testimonial.Text,
		testimonial.Avatar,
		testimonial.CreatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "testimonial_create")
	}

	return nil
}
