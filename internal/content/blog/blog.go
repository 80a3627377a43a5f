// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

/*
Package blog implements the marketplace blog.

Posts are reachable by ID or by slug; the slug is derived from the
title on create and re-derived whenever the title changes. Every public
read bumps the view counter.
*/
package blog

import (
	"context"
	"time"

	"github.com/afrolatino/marketplace/pkg/pagination"
)

// DefaultCategory is assigned when a post is created without one.
const DefaultCategory = "General"

// Post is a single blog article.
type Post struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Content       string    `json:"content"`
	Excerpt       string    `json:"excerpt"`
	Author        string    `json:"author"`
	FeaturedImage string    `json:"featured_image"`
	Category      string    `json:"category"`
	Tags          []string  `json:"tags"`
	Published     bool      `json:"published"`
	Views         int       `json:"views"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Filter narrows a post listing.
//
// Published defaults to true on the public endpoint; admins pass nil to
// see drafts too.
type Filter struct {
	Category  string
	Published *bool
}

// Repository defines the persistence operations for blog posts.
//
// IncrementViews is fire-and-forget from the caller's perspective; a
// lost increment is acceptable, a failed read is not.
type Repository interface {
	List(ctx context.Context, filter Filter, params pagination.Params) ([]*Post, int, error)
	FindByID(ctx context.Context, id string) (*Post, error)
	FindBySlug(ctx context.Context, slug string) (*Post, error)
	Create(ctx context.Context, post *Post) error
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}
