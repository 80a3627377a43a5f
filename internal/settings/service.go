// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/afrolatino/marketplace/internal/platform/apperr"
)

// Service orchestrates settings reads and writes with the cache in front.
type Service struct {
	repository Repository
	cache      Cache
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		cache:      cache,
		logger:     logger,
	}
}

// Get returns the current settings.
//
// Read path: cache, then database. A missing row is materialized from
// [Defaults] so the first read of a fresh deployment already succeeds.
func (service *Service) Get(context context.Context) (*SiteSettings, error) {
	if cached := service.cache.Get(context); cached != nil {
		return cached, nil
	}

	current, err := service.repository.Find(context)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.Code == "NOT_FOUND" {
			current = Defaults()
			if err := service.repository.Upsert(context, current); err != nil {
				return nil, fmt.Errorf("settings_service_create_defaults_failed: %w", err)
			}
			service.logger.Info("settings_defaults_created")
		} else {
			return nil, fmt.Errorf("settings_service_get_failed: %w", err)
		}
	}

	service.cache.Set(context, current)
	return current, nil
}

// UpdateInput is a partial overlay of the settings row. Nil fields keep
// their stored value.
type UpdateInput struct {
	FreeDeliveryThreshold *float64
	DeliveryBaseFee       *float64
	DeliveryPerKmFee      *float64
	SiteTitle             *string
	ContactEmail          *string
	StripeAPIKey          *string
	StripeWebhookSecret   *string
	PayPalClientID        *string
	PayPalClientSecret    *string
	FacebookURL           *string
	InstagramURL          *string
	TwitterURL            *string
	YouTubeURL            *string
}

// Update overlays the provided fields, persists the row, and drops the
// cache so the next read observes the change.
func (service *Service) Update(context context.Context, input UpdateInput) (*SiteSettings, error) {
	current, err := service.Get(context)
	if err != nil {
		return nil, err
	}

	if input.FreeDeliveryThreshold != nil {
		current.FreeDeliveryThreshold = *input.FreeDeliveryThreshold
	}
	if input.DeliveryBaseFee != nil {
		current.DeliveryBaseFee = *input.DeliveryBaseFee
	}
	if input.DeliveryPerKmFee != nil {
		current.DeliveryPerKmFee = *input.DeliveryPerKmFee
	}
	if input.SiteTitle != nil {
		current.SiteTitle = *input.SiteTitle
	}
	if input.ContactEmail != nil {
		current.ContactEmail = *input.ContactEmail
	}
	if input.StripeAPIKey != nil {
		current.StripeAPIKey = *input.StripeAPIKey
	}
	if input.StripeWebhookSecret != nil {
		current.StripeWebhookSecret = *input.StripeWebhookSecret
	}
	if input.PayPalClientID != nil {
		current.PayPalClientID = *input.PayPalClientID
	}
	if input.PayPalClientSecret != nil {
		current.PayPalClientSecret = *input.PayPalClientSecret
	}
	if input.FacebookURL != nil {
		current.FacebookURL = *input.FacebookURL
	}
	if input.InstagramURL != nil {
		current.InstagramURL = *input.InstagramURL
	}
	if input.TwitterURL != nil {
		current.TwitterURL = *input.TwitterURL
	}
	if input.YouTubeURL != nil {
		current.YouTubeURL = *input.YouTubeURL
	}

	if err := service.repository.Upsert(context, current); err != nil {
		return nil, fmt.Errorf("settings_service_update_failed: %w", err)
	}

	service.cache.Invalidate(context)
	service.logger.Info("settings_updated")

	return current, nil
}
