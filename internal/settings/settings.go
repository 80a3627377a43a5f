// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

/*
Package settings implements the site-wide configuration singleton.

One row holds delivery pricing, contact details, social links, and
payment provider credentials. The row is created with defaults on first
read, cached in Redis with a short TTL, and invalidated on every update.

# Security

Payment credentials live in the row so admins can rotate them without a
deploy. They are redacted from the public GET response and only flow to
the payment clients server-side.
*/
package settings

import (
	"context"
	"time"
)

// ID is the fixed primary key of the singleton row.
const ID = "site_settings"

// SiteSettings is the site-wide configuration singleton.
type SiteSettings struct {
	ID                    string    `json:"id"`
	FreeDeliveryThreshold float64   `json:"free_delivery_threshold"`
	DeliveryBaseFee       float64   `json:"delivery_base_fee"`
	DeliveryPerKmFee      float64   `json:"delivery_per_km_fee"`
	SiteTitle             string    `json:"site_title"`
	ContactEmail          string    `json:"contact_email"`
	StripeAPIKey          string    `json:"stripe_api_key,omitempty"`
	StripeWebhookSecret   string    `json:"stripe_webhook_secret,omitempty"`
	PayPalClientID        string    `json:"paypal_client_id,omitempty"`
	PayPalClientSecret    string    `json:"paypal_client_secret,omitempty"`
	FacebookURL           string    `json:"facebook_url"`
	InstagramURL          string    `json:"instagram_url"`
	TwitterURL            string    `json:"twitter_url"`
	YouTubeURL            string    `json:"youtube_url"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Defaults returns the settings created on first read.
func Defaults() *SiteSettings {
	return &SiteSettings{
		ID:                    ID,
		FreeDeliveryThreshold: 50.0,
		DeliveryBaseFee:       10.0,
		DeliveryPerKmFee:      2.0,
		SiteTitle:             "AfroLatino Marketplace",
		ContactEmail:          "info@afrolatino.ca",
		UpdatedAt:             time.Now(),
	}
}

// Redacted returns a copy safe for unauthenticated responses.
func (settings *SiteSettings) Redacted() *SiteSettings {
	public := *settings
	public.StripeAPIKey = ""
	public.StripeWebhookSecret = ""
	public.PayPalClientID = ""
	public.PayPalClientSecret = ""
	return &public
}

// Repository defines the persistence contract for the singleton.
type Repository interface {
	// Find returns the singleton row, or apperr.NotFound before first write.
	Find(context context.Context) (*SiteSettings, error)

	// Upsert writes the full row, creating it when absent.
	Upsert(context context.Context, settings *SiteSettings) error
}

// Cache defines the volatile read-through layer in front of the store.
type Cache interface {
	// Get returns the cached settings, or nil on miss or cache failure.
	Get(context context.Context) *SiteSettings

	// Set stores the settings with the cache's TTL. Best effort.
	Set(context context.Context, settings *SiteSettings)

	// Invalidate drops the cached entry. Best effort.
	Invalidate(context context.Context)
}
