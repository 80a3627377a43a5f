// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

/*
Package product implements the marketplace product catalog.

Products are tagged with a culture (African, Latino, Fusion), a category,
and an origin country/region. Public reads support filtering and search;
all mutations are admin-only and keep the category product counts in sync.
*/
package product

import (
	"context"
	"time"

	"github.com/afrolatino/marketplace/pkg/pagination"
)

// # Domain Entities

// Cultures recognised by the catalog. Fusion products belong to every
// culture filter.
const (
	CultureAfrican = "African"
	CultureLatino  = "Latino"
	CultureFusion  = "Fusion"
)

// Product represents a single item offered by the marketplace.
type Product struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Price               float64   `json:"price"`
	Image               string    `json:"image"`
	Images              []string  `json:"images"`
	Category            string    `json:"category"`
	Culture             string    `json:"culture"`
	Country             string    `json:"country"`
	Region              string    `json:"region"`
	Description         string    `json:"description"`
	Ingredients         string    `json:"ingredients,omitempty"`
	StorageInstructions string    `json:"storage_instructions,omitempty"`
	InStock             bool      `json:"in_stock"`
	Featured            bool      `json:"featured"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Filter narrows a product listing.
//
// Culture matches the given culture OR Fusion. Category, Region and
// Country are case-insensitive substring matches. Search spans name,
// description, category and country.
type Filter struct {
	Culture  string
	Category string
	Region   string
	Country  string
	Featured *bool
	Search   string
}

// # Field Identifiers

const (
	FieldName     = "name"
	FieldPrice    = "price"
	FieldImage    = "image"
	FieldCategory = "category"
	FieldCulture  = "culture"
	FieldCountry  = "country"
	FieldRegion   = "region"
)

// # Repository Contract

// Repository defines the data access contract for products.
type Repository interface {
	// List returns a filtered page of products plus the total match count.
	List(context context.Context, filter Filter, params pagination.Params) ([]*Product, int, error)

	// FindByID returns the product with the given ID.
	FindByID(context context.Context, id string) (*Product, error)

	// Create persists a new product.
	Create(context context.Context, product *Product) error

	// Update persists changes to an existing product.
	Update(context context.Context, product *Product) error

	// Delete removes a product permanently.
	Delete(context context.Context, id string) error
}

// CategoryCounter adjusts the denormalized product count kept on each
// category row.
type CategoryCounter interface {
	AdjustProductCount(context context.Context, categoryName string, delta int) error
}
