// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

/*
Package orders implements checkout and order history for the marketplace.

# Architecture

Checkout is open to guests: a request with no credential (or a stale one)
still produces an order, just without an owner. Order history, on the
other hand, is strictly scoped to the authenticated caller. An order that
belongs to someone else is reported as missing, never as forbidden, so
the endpoint does not leak which IDs exist.

Orders are created with payment pending; the payments package flips them
to paid once the provider confirms the charge.
*/
package orders

import (
	"context"
	"time"
)

// # Payment Methods

const (
	PaymentMethodStripe = "stripe"
	PaymentMethodPayPal = "paypal"
)

// # Payment Status

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// # Order Status

const (
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// OrderItem is a single line of the cart, captured at checkout time.
//
// Price and name are snapshots: later catalog edits must not rewrite
// past orders.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// DeliveryInfo is the shipping contact attached to an order.
type DeliveryInfo struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Province      string `json:"province"`
	PostalCode    string `json:"postal_code"`
	DeliveryNotes string `json:"delivery_notes,omitempty"`
}

// Order is a placed order with its computed totals.
type Order struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id,omitempty"` // empty for guest checkout
	Items         []OrderItem  `json:"items"`
	DeliveryInfo  DeliveryInfo `json:"delivery_info"`
	Subtotal      float64      `json:"subtotal"`
	DeliveryFee   float64      `json:"delivery_fee"`
	Total         float64      `json:"total"`
	PaymentMethod string       `json:"payment_method"`
	PaymentStatus string       `json:"payment_status"`
	OrderStatus   string       `json:"order_status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// # Storage Contract

/*
Repository defines the persistence operations for orders.

# Contract

  - Create persists a new order row.
  - FindByID returns the order or an apperr.NotFound. It performs no
    ownership check; the service layer owns that decision.
  - ListByUser returns the given user's orders, newest first.
  - MarkPaid flips an order to paid/processing. It is idempotent and is
    called by the payments package on provider confirmation.
*/
type Repository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	MarkPaid(ctx context.Context, id string) error
}
