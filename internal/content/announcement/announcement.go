// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

// Package announcement implements the community announcement banner.
//
// The storefront shows at most the five highest-priority active
// announcements; the full list is an admin-only view.
package announcement

import (
	"context"
	"time"
)

// ActiveLimit caps the public banner listing.
const ActiveLimit = 5

// # Announcement Types

const (
	TypeInfo      = "info"
	TypeEvent     = "event"
	TypePromotion = "promotion"
)

// Announcement is one banner entry.
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Link      string    `json:"link,omitempty"`
	IsActive  bool      `json:"is_active"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository defines the persistence operations for announcements.
type Repository interface {
	// ListActive returns active announcements, highest priority first,
	// capped at [ActiveLimit].
	ListActive(ctx context.Context) ([]*Announcement, error)

	// ListAll returns every announcement, newest first.
	ListAll(ctx context.Context) ([]*Announcement, error)

	FindByID(ctx context.Context, id string) (*Announcement, error)
	Create(ctx context.Context, announcement *Announcement) error
	Update(ctx context.Context, announcement *Announcement) error
	Delete(ctx context.Context, id string) error
}
