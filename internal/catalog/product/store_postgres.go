// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package product

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afrolatino/marketplace/internal/platform/apperr"
	"github.com/afrolatino/marketplace/internal/platform/dberr"
	"github.com/afrolatino/marketplace/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the product Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const productColumns = `
	id, name, price, image, images, category, culture, country, region,
	description, ingredients, storageinstructions, instock, featured, createdat, updatedat`

// buildWhere translates a [Filter] into a WHERE clause and its arguments.
func buildWhere(filter Filter) (string, []interface{}) {
	conditions := make([]string, 0, 6)
	args := make([]interface{}, 0, 6)

	arg := func(value interface{}) string {
		args = append(args, value)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Culture != "" {
		// A culture filter always includes Fusion products.
		conditions = append(conditions, fmt.Sprintf("culture IN (%s, %s)", arg(filter.Culture), arg(CultureFusion)))
	}
	if filter.Category != "" {
		conditions = append(conditions, "category ILIKE "+arg("%"+filter.Category+"%"))
	}
	if filter.Region != "" {
		conditions = append(conditions, "region ILIKE "+arg("%"+filter.Region+"%"))
	}
	if filter.Country != "" {
		conditions = append(conditions, "country ILIKE "+arg("%"+filter.Country+"%"))
	}
	if filter.Featured != nil {
		conditions = append(conditions, "featured = "+arg(*filter.Featured))
	}
	if filter.Search != "" {
		pattern := arg("%" + filter.Search + "%")
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE %[1]s OR description ILIKE %[1]s OR category ILIKE %[1]s OR country ILIKE %[1]s)",
			pattern,
		))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// List returns a filtered page of products plus the total match count.
func (repository *PostgresRepository) List(context context.Context, filter Filter, params pagination.Params) ([]*Product, int, error) {
	where, args := buildWhere(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM catalog.product" + where
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_product_repo_count_failed: %w", err)
	}

	query := "SELECT " + productColumns + " FROM catalog.product" + where +
		fmt.Sprintf(" ORDER BY createdat DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_product_repo_list_failed: %w", err)
	}
	defer rows.Close()

	products := make([]*Product, 0, params.Limit)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_product_repo_rows_failed: %w", err)
	}

	return products, total, nil
}

// FindByID returns the product with the given ID.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Product, error) {
	query := "SELECT " + productColumns + " FROM catalog.product WHERE id = $1"

	product, err := scanProduct(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Product")
		}
		return nil, fmt.Errorf("postgres_product_repo_find_failed: %w", err)
	}

	return product, nil
}

// Create persists a new product.
func (repository *PostgresRepository) Create(context context.Context, product *Product) error {
	const query = `
		INSERT INTO catalog.product (
			id, name, price, image, images, category, culture, country, region,
			description, ingredients, storageinstructions, instock, featured, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		product.ID,
		product.Name,
		product.Price,
		product.Image,
		product.Images,
		product.Category,
		product.Culture,
		product.Country,
		product.Region,
		product.Description,
		product.Ingredients,
		product.StorageInstructions,
		product.InStock,
		product.Featured,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "product_create")
	}

	return nil
}

// Update persists changes to an existing product.
func (repository *PostgresRepository) Update(context context.Context, product *Product) error {
	const query = `
		UPDATE catalog.product
		SET name = $2, price = $3, image = $4, images = $5, category = $6,
			culture = $7, country = $8, region = $9, description = $10,
			ingredients = $11, storageinstructions = $12, instock = $13,
			featured = $14, updatedat = $15
		WHERE id = $1`

	product.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		product.ID,
		product.Name,
		product.Price,
		product.Image,
		product.Images,
		product.Category,
		product.Culture,
		product.Country,
		product.Region,
		product.Description,
		product.Ingredients,
		product.StorageInstructions,
		product.InStock,
		product.Featured,
		product.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "product_update")
	}

	return nil
}

// Delete removes a product permanently.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM catalog.product WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "product_delete")
	}
	return nil
}

// scanProduct hydrates one product from a row.
func scanProduct(row pgx.Row) (*Product, error) {
	product := &Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Image,
		&product.Images,
		&product.Category,
		&product.Culture,
		&product.Country,
		&product.Region,
		&product.Description,
		&product.Ingredients,
		&product.StorageInstructions,
		&product.InStock,
		&product.Featured,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}
