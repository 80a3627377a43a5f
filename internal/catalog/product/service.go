// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package product

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/afrolatino/marketplace/pkg/pagination"
	"github.com/afrolatino/marketplace/pkg/uuidv7"
)

// Service orchestrates product catalog business logic.
type Service struct {
	repository Repository
	categories CategoryCounter
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, categories CategoryCounter, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		categories: categories,
		logger:     logger,
	}
}

// List returns a filtered page of products.
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]*Product, int, error) {
	products, total, err := service.repository.List(context, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("product_service_list_failed: %w", err)
	}
	return products, total, nil
}

// Get returns a single product by ID.
func (service *Service) Get(context context.Context, id string) (*Product, error) {
	return service.repository.FindByID(context, id)
}

// CreateInput holds the data for a new product.
type CreateInput struct {
	Name                string
	Price               float64
	Image               string
	Images              []string
	Category            string
	Culture             string
	Country             string
	Region              string
	Description         string
	Ingredients         string
	StorageInstructions string
	Featured            bool
}

// Create persists a new product and bumps its category's product count.
func (service *Service) Create(context context.Context, input CreateInput) (*Product, error) {
	product := &Product{
		ID:                  uuidv7.Must(),
		Name:                input.Name,
		Price:               input.Price,
		Image:               input.Image,
		Images:              input.Images,
		Category:            input.Category,
		Culture:             input.Culture,
		Country:             input.Country,
		Region:              input.Region,
		Description:         input.Description,
		Ingredients:         input.Ingredients,
		StorageInstructions: input.StorageInstructions,
		InStock:             true,
		Featured:            input.Featured,
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	if err := service.repository.Create(context, product); err != nil {
		return nil, fmt.Errorf("product_service_create_failed: %w", err)
	}

	// Denormalized count; listing stays cheap at the cost of this write.
	if err := service.categories.AdjustProductCount(context, product.Category, 1); err != nil {
		service.logger.Warn("product_category_count_adjust_failed",
			slog.String("category", product.Category), slog.Any("error", err))
	}

	return product, nil
}

// UpdateInput holds a partial set of product changes.
type UpdateInput struct {
	Name                *string
	Price               *float64
	Image               *string
	Images              *[]string
	Category            *string
	Culture             *string
	Country             *string
	Region              *string
	Description         *string
	Ingredients         *string
	StorageInstructions *string
	InStock             *bool
	Featured            *bool
}

// Update overlays the provided fields onto the stored product. When the
// category changes the denormalized counts move with it.
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Product, error) {
	product, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	previousCategory := product.Category

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.Images != nil {
		product.Images = *input.Images
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Culture != nil {
		product.Culture = *input.Culture
	}
	if input.Country != nil {
		product.Country = *input.Country
	}
	if input.Region != nil {
		product.Region = *input.Region
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Ingredients != nil {
		product.Ingredients = *input.Ingredients
	}
	if input.StorageInstructions != nil {
		product.StorageInstructions = *input.StorageInstructions
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}

	if err := service.repository.Update(context, product); err != nil {
		return nil, fmt.Errorf("product_service_update_failed: %w", err)
	}

	if product.Category != previousCategory {
		if err := service.categories.AdjustProductCount(context, previousCategory, -1); err != nil {
			service.logger.Warn("product_category_count_adjust_failed",
				slog.String("category", previousCategory), slog.Any("error", err))
		}
		if err := service.categories.AdjustProductCount(context, product.Category, 1); err != nil {
			service.logger.Warn("product_category_count_adjust_failed",
				slog.String("category", product.Category), slog.Any("error", err))
		}
	}

	return product, nil
}

// Delete removes a product and decrements its category's product count.
func (service *Service) Delete(context context.Context, id string) error {
	product, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("product_service_delete_failed: %w", err)
	}

	if err := service.categories.AdjustProductCount(context, product.Category, -1); err != nil {
		service.logger.Warn("product_category_count_adjust_failed",
			slog.String("category", product.Category), slog.Any("error", err))
	}

	service.logger.Info("product_deleted", slog.String("product_id", id))

	return nil
}
