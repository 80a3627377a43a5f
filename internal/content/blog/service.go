// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package blog

import (
	"context"
	"log/slog"

	"github.com/afrolatino/marketplace/pkg/pagination"
	"github.com/afrolatino/marketplace/pkg/slug"
	"github.com/afrolatino/marketplace/pkg/uuidv7"
)

// Service orchestrates blog post reads and admin mutations.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// List returns a filtered page of posts.
func (service *Service) List(ctx context.Context, filter Filter, params pagination.Params) ([]*Post, int, error) {
	return service.repository.List(ctx, filter, params)
}

// Get returns one post by ID and counts the read.
func (service *Service) Get(ctx context.Context, id string) (*Post, error) {
	post, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	service.countView(ctx, post)
	return post, nil
}

// GetBySlug returns one post by slug and counts the read.
func (service *Service) GetBySlug(ctx context.Context, postSlug string) (*Post, error) {
	post, err := service.repository.FindBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}

	service.countView(ctx, post)
	return post, nil
}

// CreateInput carries the fields for a new post.
type CreateInput struct {
	Title         string
	Content       string
	Excerpt       string
	Author        string
	FeaturedImage string
	Category      string
	Tags          []string
	Published     bool
}

// Create persists a new post with a slug derived from the title.
func (service *Service) Create(ctx context.Context, input CreateInput) (*Post, error) {
	category := input.Category
	if category == "" {
		category = DefaultCategory
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	post := &Post{
		ID:            uuidv7.Must(),
		Title:         input.Title,
		Slug:          slug.From(input.Title),
		Content:       input.Content,
		Excerpt:       input.Excerpt,
		Author:        input.Author,
		FeaturedImage: input.FeaturedImage,
		Category:      category,
		Tags:          tags,
		Published:     input.Published,
	}

	if err := service.repository.Create(ctx, post); err != nil {
		return nil, err
	}

	service.logger.Info("blog_post_created",
		slog.String("post_id", post.ID),
		slog.String("slug", post.Slug),
	)

	return post, nil
}

// UpdateInput is a partial overlay; nil fields keep their stored value.
type UpdateInput struct {
	Title         *string
	Content       *string
	Excerpt       *string
	FeaturedImage *string
	Category      *string
	Tags          []string
	Published     *bool
}

// Update overlays the provided fields onto an existing post.
//
// A title change re-derives the slug, so published URLs follow the
// title. Old slugs are not redirected.
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*Post, error) {
	post, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
		post.Slug = slug.From(*input.Title)
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Excerpt != nil {
		post.Excerpt = *input.Excerpt
	}
	if input.FeaturedImage != nil {
		post.FeaturedImage = *input.FeaturedImage
	}
	if input.Category != nil {
		post.Category = *input.Category
	}
	if input.Tags != nil {
		post.Tags = input.Tags
	}
	if input.Published != nil {
		post.Published = *input.Published
	}

	if err := service.repository.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// Delete removes a post permanently.
func (service *Service) Delete(ctx context.Context, id string) error {
	if _, err := service.repository.FindByID(ctx, id); err != nil {
		return err
	}

	if err := service.repository.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Info("blog_post_deleted", slog.String("post_id", id))
	return nil
}

// countView bumps the counter and folds the increment into the response.
// A failed increment only costs a view, so it is logged and dropped.
func (service *Service) countView(ctx context.Context, post *Post) {
	if err := service.repository.IncrementViews(ctx, post.ID); err != nil {
		service.logger.Warn("blog_view_count_failed",
			slog.String("post_id", post.ID),
			slog.Any("error", err),
		)
		return
	}
	post.Views++
}
