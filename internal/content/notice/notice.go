// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

// Package notice implements holiday and closure notices.
//
// A notice is visible to shoppers only while it is active AND the
// current time falls inside its [start, end] window. Admins manage the
// full set regardless of window.
package notice

import (
	"context"
	"time"
)

// Notice is one scheduled storefront notice.
type Notice struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository defines the persistence operations for notices.
type Repository interface {
	// ListVisible returns active notices whose window contains now.
	ListVisible(ctx context.Context, now time.Time) ([]*Notice, error)

	// ListAll returns every notice, newest first.
	ListAll(ctx context.Context) ([]*Notice, error)

	FindByID(ctx context.Context, id string) (*Notice, error)
	Create(ctx context.Context, notice *Notice) error
	Update(ctx context.Context, notice *Notice) error
	Delete(ctx context.Context, id string) error
}
