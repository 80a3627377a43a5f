// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

/*
Package category implements the product category reference data.

Each category carries a denormalized product_count maintained by the
product service as products are created, recategorized, and deleted.
*/
package category

import (
	"context"
	"time"
)

// Category groups products for storefront navigation.
type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Icon         string    `json:"icon"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Repository defines the data access contract for categories.
type Repository interface {
	// List returns every category.
	List(context context.Context) ([]*Category, error)

	// Create persists a new category with a zero product count.
	Create(context context.Context, category *Category) error

	// Delete removes a category permanently.
	Delete(context context.Context, id string) error

	// AdjustProductCount shifts the denormalized count by delta,
	// matching on category name.
	AdjustProductCount(context context.Context, categoryName string, delta int) error
}
