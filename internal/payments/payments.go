// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

/*
Package payments integrates Stripe and PayPal checkout for marketplace orders.

# Architecture

The package keeps a transaction ledger (one row per checkout attempt)
separate from the orders table. Providers confirm payment through two
channels that may race: the storefront polling the status endpoint, and
the provider's webhook. Both paths are idempotent; whichever lands first
marks the transaction and the order paid.

Provider credentials come from the site settings row so operators can
rotate keys without a deploy; environment variables act as a startup
fallback only.
*/
package payments

import (
	"context"
	"time"
)

// Currency is the only settlement currency the storefront sells in.
const Currency = "cad"

// PaymentTransaction is one checkout attempt against a provider.
type PaymentTransaction struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"order_id"`
	UserID          string    `json:"user_id,omitempty"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	PaymentMethod   string    `json:"payment_method"`
	PaymentStatus   string    `json:"payment_status"`
	StripeSessionID string    `json:"stripe_session_id,omitempty"`
	PayPalOrderID   string    `json:"paypal_order_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// # Storage Contract

/*
Repository defines the persistence operations for payment transactions.

# Contract

  - Create persists a new transaction row.
  - FindByStripeSession returns the transaction for a Stripe checkout
    session, or an apperr.NotFound.
  - UpdateStatusByStripeSession sets the payment status for the session's
    transaction. Unknown sessions are not an error; the webhook may
    arrive for a session created before a redeploy wiped the ledger.
*/
type Repository interface {
	Create(ctx context.Context, transaction *PaymentTransaction) error
	FindByStripeSession(ctx context.Context, sessionID string) (*PaymentTransaction, error)
	UpdateStatusByStripeSession(ctx context.Context, sessionID, status string) error
}

// # Provider Gateways

// StripeSessionInput describes the checkout session to create.
type StripeSessionInput struct {
	Amount     float64
	Currency   string
	OrderID    string
	SuccessURL string
	CancelURL  string
}

// StripeSession is the provider's view of a checkout session.
type StripeSession struct {
	SessionID     string
	URL           string
	Status        string
	PaymentStatus string
}

// StripeGateway is the thin client surface for Stripe Checkout.
type StripeGateway interface {
	CreateCheckoutSession(ctx context.Context, apiKey string, input StripeSessionInput) (*StripeSession, error)
	GetCheckoutSession(ctx context.Context, apiKey, sessionID string) (*StripeSession, error)
}

// PayPalCredentials is the client-credentials pair for PayPal's REST API.
type PayPalCredentials struct {
	ClientID     string
	ClientSecret string
}

// PayPalOrderInput describes the PayPal order to create.
type PayPalOrderInput struct {
	Amount    float64
	Currency  string
	OrderID   string
	ReturnURL string
	CancelURL string
}

// PayPalOrder is the provider's view of a created order.
type PayPalOrder struct {
	OrderID     string
	Status      string
	ApprovalURL string
}

// PayPalGateway is the thin client surface for PayPal Orders v2.
type PayPalGateway interface {
	CreateOrder(ctx context.Context, credentials PayPalCredentials, input PayPalOrderInput) (*PayPalOrder, error)
}
