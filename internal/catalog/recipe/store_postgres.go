// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package recipe

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afrolatino/marketplace/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the recipe Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// List returns recipes matching the filter, newest first.
func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]*Recipe, error) {
	query := `
		SELECT id, title, culture, image, description, cooktime, difficulty,
			ingredients, instructions, createdat, updatedat
		FROM catalog.recipe`

	conditions := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)

	if filter.Culture != "" {
		args = append(args, filter.Culture)
		conditions = append(conditions, "culture = $"+strconv.Itoa(len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		placeholder := "$" + strconv.Itoa(len(args))
		conditions = append(conditions, "(title ILIKE "+placeholder+" OR description ILIKE "+placeholder+")")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY createdat DESC"

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_recipe_repo_list_failed: %w", err)
	}
	defer rows.Close()

	recipes := make([]*Recipe, 0)
	for rows.Next() {
		recipe := &Recipe{}
		err := rows.Scan(
			&recipe.ID,
			&recipe.Title,
			&recipe.Culture,
			&recipe.Image,
			&recipe.Description,
			&recipe.CookTime,
			&recipe.Difficulty,
			&recipe.Ingredients,
			&recipe.Instructions,
			&recipe.CreatedAt,
			&recipe.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_recipe_repo_scan_failed: %w", err)
		}
		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_recipe_repo_rows_failed: %w", err)
	}

	return recipes, nil
}

// Create persists a new recipe.
func (repository *PostgresRepository) Create(context context.Context, recipe *Recipe) error {
	const query = `
		INSERT INTO catalog.recipe (
			id, title, culture, image, description, cooktime, difficulty,
			ingredients, instructions, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	now := time.Now()
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = now
	}
	recipe.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		recipe.ID,
		recipe.Title,
		recipe.Culture,
		recipe.Image,
		recipe.Description,
		recipe.CookTime,
		recipe.Difficulty,
		recipe.Ingredients,
		recipe.Instructions,
		recipe.CreatedAt,
		recipe.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "recipe_create")
	}

	return nil
}

// Delete removes a recipe permanently.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM catalog.recipe WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "recipe_delete")
	}
	return nil
}
