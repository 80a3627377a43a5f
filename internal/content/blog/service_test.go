// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package blog_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrolatino/marketplace/internal/content/blog"
	"github.com/afrolatino/marketplace/internal/platform/apperr"
	"github.com/afrolatino/marketplace/pkg/pagination"
	"github.com/afrolatino/marketplace/pkg/pointer"
)

// # Test Fakes

type fakeRepo struct {
	byID          map[string]*blog.Post
	viewIncFails  bool
	viewIncCounts map[string]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*blog.Post{}, viewIncCounts: map[string]int{}}
}

func (repo *fakeRepo) List(_ context.Context, filter blog.Filter, _ pagination.Params) ([]*blog.Post, int, error) {
	matched := []*blog.Post{}
	for _, post := range repo.byID {
		if filter.Published != nil && post.Published != *filter.Published {
			continue
		}
		if filter.Category != "" && post.Category != filter.Category {
			continue
		}
		matched = append(matched, post)
	}
	return matched, len(matched), nil
}

func (repo *fakeRepo) FindByID(_ context.Context, id string) (*blog.Post, error) {
	post, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("Post")
	}
	return post, nil
}

func (repo *fakeRepo) FindBySlug(_ context.Context, slug string) (*blog.Post, error) {
	for _, post := range repo.byID {
		if post.Slug == slug {
			return post, nil
		}
	}
	return nil, apperr.NotFound("Post")
}

func (repo *fakeRepo) Create(_ context.Context, post *blog.Post) error {
	repo.byID[post.ID] = post
	return nil
}

func (repo *fakeRepo) Update(_ context.Context, post *blog.Post) error {
	repo.byID[post.ID] = post
	return nil
}

func (repo *fakeRepo) Delete(_ context.Context, id string) error {
	delete(repo.byID, id)
	return nil
}

func (repo *fakeRepo) IncrementViews(_ context.Context, id string) error {
	if repo.viewIncFails {
		return errors.New("counter unavailable")
	}
	repo.viewIncCounts[id]++
	if post, ok := repo.byID[id]; ok {
		post.Views++
	}
	return nil
}

func newService(repo *fakeRepo) *blog.Service {
	return blog.NewService(repo, slog.New(slog.DiscardHandler))
}

// # Tests

func TestService_Create_SlugDerivation(t *testing.T) {
	testCases := []struct {
		title    string
		wantSlug string
	}{
		{"Jollof Rice History", "jollof-rice-history"},
		{"Arepas & Empanadas: A Love Story!", "arepas-empanadas-a-love-story"},
		{"Café con Leche", "cafe-con-leche"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.wantSlug, func(t *testing.T) {
			repo := newFakeRepo()

			post, err := newService(repo).Create(context.Background(), blog.CreateInput{
				Title:   testCase.title,
				Content: "body",
				Author:  "Ana",
			})
			require.NoError(t, err)

			assert.Equal(t, testCase.wantSlug, post.Slug)
		})
	}
}

func TestService_Create_Defaults(t *testing.T) {
	repo := newFakeRepo()

	post, err := newService(repo).Create(context.Background(), blog.CreateInput{
		Title:   "Untitled Musings",
		Content: "body",
		Author:  "Ana",
	})
	require.NoError(t, err)

	assert.Equal(t, blog.DefaultCategory, post.Category)
	assert.NotNil(t, post.Tags)
	assert.Empty(t, post.Tags)
	assert.False(t, post.Published)
	assert.Zero(t, post.Views)
}

func TestService_Update_TitleChangeRewritesSlug(t *testing.T) {
	repo := newFakeRepo()
	service := newService(repo)

	post, err := service.Create(context.Background(), blog.CreateInput{
		Title:   "Original Title",
		Content: "body",
		Author:  "Ana",
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), post.ID, blog.UpdateInput{
		Title: pointer.To("Brand New Title"),
	})
	require.NoError(t, err)
	assert.Equal(t, "brand-new-title", updated.Slug)

	// A content-only update leaves the slug alone
	updated, err = service.Update(context.Background(), post.ID, blog.UpdateInput{
		Content: pointer.To("revised body"),
	})
	require.NoError(t, err)
	assert.Equal(t, "brand-new-title", updated.Slug)
	assert.Equal(t, "revised body", updated.Content)
}

func TestService_Get_CountsViews(t *testing.T) {
	repo := newFakeRepo()
	service := newService(repo)

	post, err := service.Create(context.Background(), blog.CreateInput{
		Title:   "Counted Post",
		Content: "body",
		Author:  "Ana",
	})
	require.NoError(t, err)

	byID, err := service.Get(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, byID.Views)

	bySlug, err := service.GetBySlug(context.Background(), "counted-post")
	require.NoError(t, err)
	assert.Equal(t, 2, bySlug.Views)

	assert.Equal(t, 2, repo.viewIncCounts[post.ID])
}

func TestService_Get_ViewCounterFailureIsNotFatal(t *testing.T) {
	repo := newFakeRepo()
	service := newService(repo)

	post, err := service.Create(context.Background(), blog.CreateInput{
		Title:   "Resilient Post",
		Content: "body",
		Author:  "Ana",
	})
	require.NoError(t, err)

	repo.viewIncFails = true

	fetched, err := service.Get(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Zero(t, fetched.Views)
}
