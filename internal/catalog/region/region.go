// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

// Package region implements the origin-region reference data for the catalog.
package region

import (
	"context"
	"time"
)

// Region groups countries of origin for storefront browsing.
type Region struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Countries []string  `json:"countries"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository defines the data access contract for regions.
type Repository interface {
	// List returns every region.
	List(context context.Context) ([]*Region, error)

	// Create persists a new region.
	Create(context context.Context, region *Region) error

	// Delete removes a region permanently.
	Delete(context context.Context, id string) error
}
