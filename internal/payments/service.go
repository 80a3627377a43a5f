// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package payments

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/afrolatino/marketplace/internal/orders"
	"github.com/afrolatino/marketplace/internal/platform/apperr"
	"github.com/afrolatino/marketplace/internal/settings"
	"github.com/afrolatino/marketplace/pkg/uuidv7"
)

// stripePaidStatus is Stripe's payment_status value for a settled session.
const stripePaidStatus = "paid"

// OrderStore is the slice of the orders contract payments needs.
type OrderStore interface {
	FindByID(ctx context.Context, id string) (*orders.Order, error)
	MarkPaid(ctx context.Context, id string) error
}

// SettingsSource supplies the operator-managed provider credentials.
type SettingsSource interface {
	Get(ctx context.Context) (*settings.SiteSettings, error)
}

// Fallbacks are the environment-sourced credentials used when the site
// settings row carries none.
type Fallbacks struct {
	StripeAPIKey        string
	StripeWebhookSecret string
	PayPalClientID      string
	PayPalClientSecret  string
}

// Service orchestrates checkout sessions and payment confirmation.
type Service struct {
	transactions Repository
	orders       OrderStore
	settings     SettingsSource
	stripe       StripeGateway
	paypal       PayPalGateway
	fallbacks    Fallbacks
	logger       *slog.Logger
}

// NewService constructs a new [Service].
func NewService(
	transactions Repository,
	orderStore OrderStore,
	settingsSource SettingsSource,
	stripe StripeGateway,
	paypal PayPalGateway,
	fallbacks Fallbacks,
	logger *slog.Logger,
) *Service {
	return &Service{
		transactions: transactions,
		orders:       orderStore,
		settings:     settingsSource,
		stripe:       stripe,
		paypal:       paypal,
		fallbacks:    fallbacks,
		logger:       logger,
	}
}

// StripeCheckoutResult is the redirect payload for the storefront.
type StripeCheckoutResult struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

/*
StripeCheckout creates a Stripe checkout session for a pending order.

# Parameters
  - orderID: the marketplace order to charge.
  - hostURL: the public base URL of this deployment, used to build the
    success and cancel redirects.
*/
func (service *Service) StripeCheckout(ctx context.Context, orderID, hostURL string) (*StripeCheckoutResult, error) {
	order, err := service.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	apiKey, err := service.stripeKey(ctx)
	if err != nil {
		return nil, err
	}

	session, err := service.stripe.CreateCheckoutSession(ctx, apiKey, StripeSessionInput{
		Amount:     order.Total,
		Currency:   Currency,
		OrderID:    order.ID,
		SuccessURL: hostURL + "/order-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  hostURL + "/checkout",
	})
	if err != nil {
		return nil, fmt.Errorf("payments_stripe_checkout_failed: %w", err)
	}

	if err := service.recordTransaction(ctx, order, orders.PaymentMethodStripe, session.SessionID, ""); err != nil {
		return nil, err
	}

	service.logger.Info("stripe_checkout_created",
		slog.String("order_id", order.ID),
		slog.String("session_id", session.SessionID),
	)

	return &StripeCheckoutResult{URL: session.URL, SessionID: session.SessionID}, nil
}

// StripeStatusResult reports a session's state back to the polling storefront.
type StripeStatusResult struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// StripeStatus polls the provider for a session and syncs the ledger.
//
// When the session reports paid, both the transaction and the order flip
// to paid. The webhook may have done this already; both writes are
// idempotent.
func (service *Service) StripeStatus(ctx context.Context, sessionID string) (*StripeStatusResult, error) {
	apiKey, err := service.stripeKey(ctx)
	if err != nil {
		return nil, err
	}

	session, err := service.stripe.GetCheckoutSession(ctx, apiKey, sessionID)
	if err != nil {
		return nil, fmt.Errorf("payments_stripe_status_failed: %w", err)
	}

	if err := service.transactions.UpdateStatusByStripeSession(ctx, sessionID, session.PaymentStatus); err != nil {
		return nil, err
	}

	if session.PaymentStatus == stripePaidStatus {
		if err := service.settleStripeSession(ctx, sessionID); err != nil {
			return nil, err
		}
	}

	return &StripeStatusResult{Status: session.Status, PaymentStatus: session.PaymentStatus}, nil
}

/*
HandleStripeWebhook verifies and applies one webhook delivery.

# Flow
 1. Verify the Stripe-Signature header against the endpoint secret.
 2. Decode the event; anything but checkout.session.completed is
    acknowledged and dropped.
 3. Mark the session's transaction and order paid.

A bad signature surfaces as a 400-class error so Stripe retries do not
mask a misconfigured secret.
*/
func (service *Service) HandleStripeWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	secret := service.webhookSecret(ctx)
	if secret == "" {
		// No secret configured means verification is impossible; refuse
		// rather than accept forgeable events.
		return apperr.ValidationError("Webhook signing secret is not configured")
	}

	if err := VerifyWebhookSignature(payload, signatureHeader, secret, time.Now()); err != nil {
		service.logger.Warn("stripe_webhook_rejected", slog.Any("error", err))
		return apperr.ValidationError("Invalid webhook signature")
	}

	event, err := ParseWebhookEvent(payload)
	if err != nil {
		return apperr.ValidationError("Invalid webhook payload")
	}

	if event.Type != "checkout.session.completed" {
		return nil
	}

	if err := service.transactions.UpdateStatusByStripeSession(ctx, event.SessionID, orders.PaymentStatusPaid); err != nil {
		return err
	}

	if err := service.settleStripeSession(ctx, event.SessionID); err != nil {
		return err
	}

	service.logger.Info("stripe_webhook_settled", slog.String("session_id", event.SessionID))
	return nil
}

// PayPalCheckoutResult is the approval redirect for the storefront.
type PayPalCheckoutResult struct {
	URL           string `json:"url"`
	PayPalOrderID string `json:"paypal_order_id"`
}

// PayPalCheckout creates a PayPal order and returns the approval URL.
func (service *Service) PayPalCheckout(ctx context.Context, orderID, hostURL string) (*PayPalCheckoutResult, error) {
	order, err := service.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	credentials, err := service.paypalCredentials(ctx)
	if err != nil {
		return nil, err
	}

	paypalOrder, err := service.paypal.CreateOrder(ctx, credentials, PayPalOrderInput{
		Amount:    order.Total,
		Currency:  Currency,
		OrderID:   order.ID,
		ReturnURL: hostURL + "/order-success",
		CancelURL: hostURL + "/checkout",
	})
	if err != nil {
		return nil, fmt.Errorf("payments_paypal_checkout_failed: %w", err)
	}

	if err := service.recordTransaction(ctx, order, orders.PaymentMethodPayPal, "", paypalOrder.OrderID); err != nil {
		return nil, err
	}

	service.logger.Info("paypal_checkout_created",
		slog.String("order_id", order.ID),
		slog.String("paypal_order_id", paypalOrder.OrderID),
	)

	return &PayPalCheckoutResult{URL: paypalOrder.ApprovalURL, PayPalOrderID: paypalOrder.OrderID}, nil
}

// # Internals

// settleStripeSession marks the session's order paid, tolerating ledger
// rows that predate the session (missing transaction is not an error).
func (service *Service) settleStripeSession(ctx context.Context, sessionID string) error {
	transaction, err := service.transactions.FindByStripeSession(ctx, sessionID)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.HTTPStatus == 404 {
			service.logger.Warn("stripe_session_unknown", slog.String("session_id", sessionID))
			return nil
		}
		return err
	}

	return service.orders.MarkPaid(ctx, transaction.OrderID)
}

// recordTransaction writes one pending ledger row for a checkout attempt.
func (service *Service) recordTransaction(ctx context.Context, order *orders.Order, method, stripeSessionID, paypalOrderID string) error {
	now := time.Now()

	return service.transactions.Create(ctx, &PaymentTransaction{
		ID:              uuidv7.Must(),
		OrderID:         order.ID,
		UserID:          order.UserID,
		Amount:          order.Total,
		Currency:        Currency,
		PaymentMethod:   method,
		PaymentStatus:   orders.PaymentStatusPending,
		StripeSessionID: stripeSessionID,
		PayPalOrderID:   paypalOrderID,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
}

// stripeKey resolves the Stripe API key, settings first then env.
func (service *Service) stripeKey(ctx context.Context) (string, error) {
	current, err := service.settings.Get(ctx)
	if err == nil && current.StripeAPIKey != "" {
		return current.StripeAPIKey, nil
	}

	if service.fallbacks.StripeAPIKey != "" {
		return service.fallbacks.StripeAPIKey, nil
	}

	return "", apperr.ValidationError("Stripe is not configured")
}

// webhookSecret resolves the webhook signing secret, settings first then env.
func (service *Service) webhookSecret(ctx context.Context) string {
	current, err := service.settings.Get(ctx)
	if err == nil && current.StripeWebhookSecret != "" {
		return current.StripeWebhookSecret
	}

	return service.fallbacks.StripeWebhookSecret
}

// paypalCredentials resolves the PayPal pair, settings first then env.
func (service *Service) paypalCredentials(ctx context.Context) (PayPalCredentials, error) {
	current, err := service.settings.Get(ctx)
	if err == nil && current.PayPalClientID != "" && current.PayPalClientSecret != "" {
		return PayPalCredentials{
			ClientID:     current.PayPalClientID,
			ClientSecret: current.PayPalClientSecret,
		}, nil
	}

	if service.fallbacks.PayPalClientID != "" && service.fallbacks.PayPalClientSecret != "" {
		return PayPalCredentials{
			ClientID:     service.fallbacks.PayPalClientID,
			ClientSecret: service.fallbacks.PayPalClientSecret,
		}, nil
	}

	return PayPalCredentials{}, apperr.ValidationError("PayPal is not configured")
}
