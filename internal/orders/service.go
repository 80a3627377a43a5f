// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package orders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/afrolatino/marketplace/internal/platform/apperr"
	"github.com/afrolatino/marketplace/internal/settings"
	"github.com/afrolatino/marketplace/internal/users/auth"
	"github.com/afrolatino/marketplace/pkg/uuidv7"
)

// Delivery distance is mocked until a geocoding provider is wired in.
// TODO: replace mockDistanceKm with a real distance lookup from the
// delivery address once a geocoding account exists.
const (
	mockDistanceKm = 8.0
	baseDistanceKm = 5.0
)

// SettingsSource supplies the delivery fee parameters.
type SettingsSource interface {
	Get(ctx context.Context) (*settings.SiteSettings, error)
}

// Service orchestrates checkout and order history.
type Service struct {
	repository Repository
	settings   SettingsSource
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, settingsSource SettingsSource, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		settings:   settingsSource,
		logger:     logger,
	}
}

// CheckoutInput carries the cart and delivery details for a new order.
type CheckoutInput struct {
	Items         []OrderItem
	DeliveryInfo  DeliveryInfo
	PaymentMethod string
}

// CheckoutResult is the redirect contract returned to the storefront.
type CheckoutResult struct {
	OrderID    string `json:"order_id"`
	PaymentURL string `json:"payment_url"`
}

/*
Checkout creates a new order and returns the payment redirect.

# Parameters
  - user: the resolved caller, or nil for guest checkout.
  - input: cart items, delivery contact, and the chosen payment method.

# Flow
 1. Sum the cart into a subtotal.
 2. Price delivery against the current site settings.
 3. Persist the order as pending.
 4. Hand back the provider-specific checkout URL.
*/
func (service *Service) Checkout(ctx context.Context, user *auth.User, input CheckoutInput) (*CheckoutResult, error) {
	current, err := service.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("order_service_settings_failed: %w", err)
	}

	subtotal := 0.0
	for _, item := range input.Items {
		subtotal += item.Price * float64(item.Quantity)
	}

	deliveryFee := deliveryFee(subtotal, current)

	now := time.Now()
	order := &Order{
		ID:            uuidv7.Must(),
		Items:         input.Items,
		DeliveryInfo:  input.DeliveryInfo,
		Subtotal:      subtotal,
		DeliveryFee:   deliveryFee,
		Total:         subtotal + deliveryFee,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: PaymentStatusPending,
		OrderStatus:   StatusProcessing,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if user != nil {
		order.UserID = user.ID
	}

	if err := service.repository.Create(ctx, order); err != nil {
		return nil, err
	}

	service.logger.Info("order_created",
		slog.String("order_id", order.ID),
		slog.String("payment_method", order.PaymentMethod),
		slog.Float64("total", order.Total),
		slog.Bool("guest", user == nil),
	)

	return &CheckoutResult{
		OrderID:    order.ID,
		PaymentURL: fmt.Sprintf("/api/v1/payments/%s/checkout/%s", order.PaymentMethod, order.ID),
	}, nil
}

// ListForUser returns the caller's orders, newest first.
func (service *Service) ListForUser(ctx context.Context, userID string) ([]*Order, error) {
	return service.repository.ListByUser(ctx, userID)
}

// GetForUser returns one of the caller's orders.
//
// An order owned by someone else (or by nobody, for guest orders) is
// reported as missing so the endpoint does not confirm foreign IDs.
func (service *Service) GetForUser(ctx context.Context, userID, orderID string) (*Order, error) {
	order, err := service.repository.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		return nil, apperr.NotFound("Order")
	}

	return order, nil
}

// deliveryFee prices delivery for a given subtotal.
//
// Free above the threshold; the base fee covers the first kilometers,
// then a per-km rate applies for the remainder.
func deliveryFee(subtotal float64, current *settings.SiteSettings) float64 {
	if subtotal >= current.FreeDeliveryThreshold {
		return 0
	}

	if mockDistanceKm <= baseDistanceKm {
		return current.DeliveryBaseFee
	}

	return current.DeliveryBaseFee + (mockDistanceKm-baseDistanceKm)*current.DeliveryPerKmFee
}
