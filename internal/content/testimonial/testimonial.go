// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

// Package testimonial implements customer testimonials shown on the
// storefront landing page. Testimonials are curated: only admins create
// them, and there is no public submission path.
package testimonial

import (
	"context"
	"time"
)

// DefaultRating is assigned when a testimonial omits the rating.
const DefaultRating = 5

// Testimonial is one curated customer quote.
type Testimonial struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Culture   string    `json:"culture"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository defines the persistence operations for testimonials.
type Repository interface {
	List(ctx context.Context) ([]*Testimonial, error)
	Create(ctx context.Context, testimonial *Testimonial) error
}
