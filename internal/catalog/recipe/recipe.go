// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

// Package recipe implements the cultural recipe collection shown on the
// storefront alongside the product catalog.
package recipe

import (
	"context"
	"time"
)

// Difficulty levels recognised by the collection.
const (
	DifficultyEasy     = "Easy"
	DifficultyMedium   = "Medium"
	DifficultyAdvanced = "Advanced"
)

// Recipe is a traditional dish with preparation instructions.
type Recipe struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Culture      string    `json:"culture"`
	Image        string    `json:"image"`
	Description  string    `json:"description"`
	CookTime     string    `json:"cook_time"`
	Difficulty   string    `json:"difficulty"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Filter narrows a recipe listing. Search spans title and description.
type Filter struct {
	Culture string
	Search  string
}

// Repository defines the data access contract for recipes.
type Repository interface {
	// List returns recipes matching the filter.
	List(context context.Context, filter Filter) ([]*Recipe, error)

	// Create persists a new recipe.
	Create(context context.Context, recipe *Recipe) error

	// Delete removes a recipe permanently.
	Delete(context context.Context, id string) error
}
