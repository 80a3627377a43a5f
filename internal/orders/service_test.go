// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package orders_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrolatino/marketplace/internal/orders"
	"github.com/afrolatino/marketplace/internal/platform/apperr"
	"github.com/afrolatino/marketplace/internal/settings"
	"github.com/afrolatino/marketplace/internal/users/auth"
)

// # Test Fakes

type fakeRepo struct {
	byID map[string]*orders.Order
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*orders.Order{}}
}

func (repo *fakeRepo) Create(_ context.Context, order *orders.Order) error {
	repo.byID[order.ID] = order
	return nil
}

func (repo *fakeRepo) FindByID(_ context.Context, id string) (*orders.Order, error) {
	order, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("Order")
	}
	return order, nil
}

func (repo *fakeRepo) ListByUser(_ context.Context, userID string) ([]*orders.Order, error) {
	matched := []*orders.Order{}
	for _, order := range repo.byID {
		if order.UserID == userID {
			matched = append(matched, order)
		}
	}
	return matched, nil
}

func (repo *fakeRepo) MarkPaid(_ context.Context, id string) error {
	order, ok := repo.byID[id]
	if !ok {
		return apperr.NotFound("Order")
	}
	order.PaymentStatus = orders.PaymentStatusPaid
	return nil
}

type fakeSettings struct {
	current *settings.SiteSettings
}

func (source *fakeSettings) Get(_ context.Context) (*settings.SiteSettings, error) {
	return source.current, nil
}

func newService(repo *fakeRepo) *orders.Service {
	return orders.NewService(repo, &fakeSettings{current: settings.Defaults()}, slog.New(slog.DiscardHandler))
}

func cartItem(price float64, quantity int) orders.OrderItem {
	return orders.OrderItem{
		ProductID: "prod-1",
		Name:      "Jollof Rice Kit",
		Price:     price,
		Quantity:  quantity,
		Image:     "https://cdn.example.com/jollof.jpg",
	}
}

// # Tests

/*
TestService_Checkout_DeliveryFee exercises the fee schedule with the
default settings (free at $50, $10 base fee, $2 per km past 5 km, mocked
8 km distance).
*/
func TestService_Checkout_DeliveryFee(t *testing.T) {
	testCases := []struct {
		name         string
		items        []orders.OrderItem
		wantSubtotal float64
		wantFee      float64
	}{
		{
			name:         "free_delivery_at_threshold",
			items:        []orders.OrderItem{cartItem(25.0, 2)},
			wantSubtotal: 50.0,
			wantFee:      0,
		},
		{
			name:         "free_delivery_above_threshold",
			items:        []orders.OrderItem{cartItem(30.0, 3)},
			wantSubtotal: 90.0,
			wantFee:      0,
		},
		{
			name:         "per_km_fee_below_threshold",
			items:        []orders.OrderItem{cartItem(12.0, 2)},
			wantSubtotal: 24.0,
			wantFee:      16.0, // 10 base + (8 - 5) km * 2
		},
		{
			name:         "multiple_lines_summed",
			items:        []orders.OrderItem{cartItem(10.0, 1), cartItem(15.0, 2)},
			wantSubtotal: 40.0,
			wantFee:      16.0,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			repo := newFakeRepo()

			result, err := newService(repo).Checkout(context.Background(), nil, orders.CheckoutInput{
				Items:         testCase.items,
				PaymentMethod: orders.PaymentMethodStripe,
			})
			require.NoError(t, err)

			stored := repo.byID[result.OrderID]
			require.NotNil(t, stored)

			assert.Equal(t, testCase.wantSubtotal, stored.Subtotal)
			assert.Equal(t, testCase.wantFee, stored.DeliveryFee)
			assert.Equal(t, testCase.wantSubtotal+testCase.wantFee, stored.Total)
		})
	}
}

func TestService_Checkout_PaymentRedirect(t *testing.T) {
	repo := newFakeRepo()
	service := newService(repo)

	stripe, err := service.Checkout(context.Background(), nil, orders.CheckoutInput{
		Items:         []orders.OrderItem{cartItem(10.0, 1)},
		PaymentMethod: orders.PaymentMethodStripe,
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/payments/stripe/checkout/"+stripe.OrderID, stripe.PaymentURL)

	paypal, err := service.Checkout(context.Background(), nil, orders.CheckoutInput{
		Items:         []orders.OrderItem{cartItem(10.0, 1)},
		PaymentMethod: orders.PaymentMethodPayPal,
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/payments/paypal/checkout/"+paypal.OrderID, paypal.PaymentURL)
}

func TestService_Checkout_GuestAndOwner(t *testing.T) {
	repo := newFakeRepo()
	service := newService(repo)

	guest, err := service.Checkout(context.Background(), nil, orders.CheckoutInput{
		Items:         []orders.OrderItem{cartItem(10.0, 1)},
		PaymentMethod: orders.PaymentMethodStripe,
	})
	require.NoError(t, err)
	assert.Empty(t, repo.byID[guest.OrderID].UserID)
	assert.Equal(t, orders.PaymentStatusPending, repo.byID[guest.OrderID].PaymentStatus)
	assert.Equal(t, orders.StatusProcessing, repo.byID[guest.OrderID].OrderStatus)

	owner := &auth.User{ID: "user-1"}
	owned, err := service.Checkout(context.Background(), owner, orders.CheckoutInput{
		Items:         []orders.OrderItem{cartItem(10.0, 1)},
		PaymentMethod: orders.PaymentMethodStripe,
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", repo.byID[owned.OrderID].UserID)
}

/*
TestService_GetForUser verifies that foreign orders are indistinguishable
from missing ones.
*/
func TestService_GetForUser(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["ord-1"] = &orders.Order{ID: "ord-1", UserID: "user-1"}
	repo.byID["ord-2"] = &orders.Order{ID: "ord-2", UserID: "user-2"}
	repo.byID["ord-3"] = &orders.Order{ID: "ord-3"} // guest order

	service := newService(repo)

	own, err := service.GetForUser(context.Background(), "user-1", "ord-1")
	require.NoError(t, err)
	assert.Equal(t, "ord-1", own.ID)

	for _, orderID := range []string{"ord-2", "ord-3", "ord-missing"} {
		_, err := service.GetForUser(context.Background(), "user-1", orderID)
		require.Error(t, err)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, 404, appErr.HTTPStatus)
	}
}
