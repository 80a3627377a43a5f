// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package product_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrolatino/marketplace/internal/catalog/product"
	"github.com/afrolatino/marketplace/internal/platform/apperr"
	"github.com/afrolatino/marketplace/pkg/pagination"
	"github.com/afrolatino/marketplace/pkg/pointer"
)

type fakeRepo struct {
	byID map[string]*product.Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*product.Product{}}
}

func (f *fakeRepo) List(_ context.Context, _ product.Filter, _ pagination.Params) ([]*product.Product, int, error) {
	products := []*product.Product{}
	for _, p := range f.byID {
		products = append(products, p)
	}
	return products, len(products), nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFound("Product")
	}
	copied := *p
	return &copied, nil
}

func (f *fakeRepo) Create(_ context.Context, p *product.Product) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeRepo) Update(_ context.Context, p *product.Product) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

// fakeCounter records every count adjustment per category name.
type fakeCounter struct {
	adjustments map[string]int
	err         error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{adjustments: map[string]int{}}
}

func (f *fakeCounter) AdjustProductCount(_ context.Context, categoryName string, delta int) error {
	if f.err != nil {
		return f.err
	}
	f.adjustments[categoryName] += delta
	return nil
}

func newService(repo *fakeRepo, counter *fakeCounter) *product.Service {
	return product.NewService(repo, counter, slog.New(slog.DiscardHandler))
}

func TestService_Create(t *testing.T) {
	repo := newFakeRepo()
	counter := newFakeCounter()
	service := newService(repo, counter)

	created, err := service.Create(context.Background(), product.CreateInput{
		Name:     "Jollof Rice Mix",
		Price:    12.99,
		Category: "Grains",
		Culture:  product.CultureAfrican,
		Country:  "Nigeria",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.True(t, created.InStock)
	assert.NotNil(t, created.Images, "nil image list must serialize as []")
	assert.Equal(t, 1, counter.adjustments["Grains"])
}

func TestService_Create_CounterFailureNonFatal(t *testing.T) {
	repo := newFakeRepo()
	counter := newFakeCounter()
	counter.err = errors.New("count unavailable")
	service := newService(repo, counter)

	created, err := service.Create(context.Background(), product.CreateInput{
		Name:     "Plantain Chips",
		Price:    4.50,
		Category: "Snacks",
	})
	require.NoError(t, err)
	assert.Contains(t, repo.byID, created.ID)
}

func TestService_Update_CategoryChangeMovesCount(t *testing.T) {
	repo := newFakeRepo()
	counter := newFakeCounter()
	service := newService(repo, counter)

	created, err := service.Create(context.Background(), product.CreateInput{
		Name:     "Aji Amarillo Paste",
		Price:    7.25,
		Category: "Sauces",
		Culture:  product.CultureLatino,
	})
	require.NoError(t, err)
	require.Equal(t, 1, counter.adjustments["Sauces"])

	updated, err := service.Update(context.Background(), created.ID, product.UpdateInput{
		Category: pointer.To("Condiments"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Condiments", updated.Category)
	assert.Equal(t, 0, counter.adjustments["Sauces"])
	assert.Equal(t, 1, counter.adjustments["Condiments"])
}

func TestService_Update_SameCategoryLeavesCounts(t *testing.T) {
	repo := newFakeRepo()
	counter := newFakeCounter()
	service := newService(repo, counter)

	created, err := service.Create(context.Background(), product.CreateInput{
		Name:     "Cassava Flour",
		Price:    9.00,
		Category: "Grains",
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, product.UpdateInput{
		Price:   pointer.To(10.50),
		InStock: pointer.To(false),
	})
	require.NoError(t, err)

	assert.Equal(t, 10.50, updated.Price)
	assert.False(t, updated.InStock)
	assert.Equal(t, 1, counter.adjustments["Grains"])
}

func TestService_Delete_DecrementsCount(t *testing.T) {
	repo := newFakeRepo()
	counter := newFakeCounter()
	service := newService(repo, counter)

	created, err := service.Create(context.Background(), product.CreateInput{
		Name:     "Hibiscus Tea",
		Price:    6.75,
		Category: "Beverages",
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))

	assert.NotContains(t, repo.byID, created.ID)
	assert.Equal(t, 0, counter.adjustments["Beverages"])
}

func TestService_Update_UnknownProduct(t *testing.T) {
	service := newService(newFakeRepo(), newFakeCounter())

	_, err := service.Update(context.Background(), "missing", product.UpdateInput{
		Price: pointer.To(1.0),
	})
	require.Error(t, err)

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, 404, appError.HTTPStatus)
}
