// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package payments_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrolatino/marketplace/internal/orders"
	"github.com/afrolatino/marketplace/internal/payments"
	"github.com/afrolatino/marketplace/internal/platform/apperr"
	"github.com/afrolatino/marketplace/internal/settings"
)

// # Test Fakes

type fakeTransactions struct {
	rows map[string]*payments.PaymentTransaction // keyed by stripe session
}

func newFakeTransactions() *fakeTransactions {
	return &fakeTransactions{rows: map[string]*payments.PaymentTransaction{}}
}

func (repo *fakeTransactions) Create(_ context.Context, transaction *payments.PaymentTransaction) error {
	key := transaction.StripeSessionID
	if key == "" {
		key = transaction.PayPalOrderID
	}
	repo.rows[key] = transaction
	return nil
}

func (repo *fakeTransactions) FindByStripeSession(_ context.Context, sessionID string) (*payments.PaymentTransaction, error) {
	transaction, ok := repo.rows[sessionID]
	if !ok {
		return nil, apperr.NotFound("Transaction")
	}
	return transaction, nil
}

func (repo *fakeTransactions) UpdateStatusByStripeSession(_ context.Context, sessionID, status string) error {
	if transaction, ok := repo.rows[sessionID]; ok {
		transaction.PaymentStatus = status
	}
	return nil
}

type fakeOrders struct {
	byID map[string]*orders.Order
	paid []string
}

func (store *fakeOrders) FindByID(_ context.Context, id string) (*orders.Order, error) {
	order, ok := store.byID[id]
	if !ok {
		return nil, apperr.NotFound("Order")
	}
	return order, nil
}

func (store *fakeOrders) MarkPaid(_ context.Context, id string) error {
	store.paid = append(store.paid, id)
	return nil
}

type fakeSettings struct {
	current *settings.SiteSettings
}

func (source *fakeSettings) Get(_ context.Context) (*settings.SiteSettings, error) {
	return source.current, nil
}

type fakeStripe struct {
	created  []payments.StripeSessionInput
	sessions map[string]*payments.StripeSession
	lastKey  string
}

func (gateway *fakeStripe) CreateCheckoutSession(_ context.Context, apiKey string, input payments.StripeSessionInput) (*payments.StripeSession, error) {
	gateway.lastKey = apiKey
	gateway.created = append(gateway.created, input)
	return &payments.StripeSession{
		SessionID:     "cs_test_1",
		URL:           "https://checkout.stripe.com/pay/cs_test_1",
		Status:        "open",
		PaymentStatus: "unpaid",
	}, nil
}

func (gateway *fakeStripe) GetCheckoutSession(_ context.Context, apiKey, sessionID string) (*payments.StripeSession, error) {
	gateway.lastKey = apiKey
	session, ok := gateway.sessions[sessionID]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	return session, nil
}

type fakePayPal struct {
	lastCredentials payments.PayPalCredentials
}

func (gateway *fakePayPal) CreateOrder(_ context.Context, credentials payments.PayPalCredentials, input payments.PayPalOrderInput) (*payments.PayPalOrder, error) {
	gateway.lastCredentials = credentials
	return &payments.PayPalOrder{
		OrderID:     "pp_order_1",
		Status:      "CREATED",
		ApprovalURL: "https://www.paypal.com/checkoutnow?token=pp_order_1",
	}, nil
}

type fixture struct {
	transactions *fakeTransactions
	orderStore   *fakeOrders
	stripe       *fakeStripe
	paypal       *fakePayPal
	service      *payments.Service
}

func newFixture(current *settings.SiteSettings, fallbacks payments.Fallbacks) *fixture {
	transactions := newFakeTransactions()
	orderStore := &fakeOrders{byID: map[string]*orders.Order{
		"ord-1": {ID: "ord-1", UserID: "user-1", Total: 42.50, PaymentStatus: orders.PaymentStatusPending},
	}}
	stripe := &fakeStripe{sessions: map[string]*payments.StripeSession{}}
	paypal := &fakePayPal{}

	return &fixture{
		transactions: transactions,
		orderStore:   orderStore,
		stripe:       stripe,
		paypal:       paypal,
		service: payments.NewService(
			transactions, orderStore, &fakeSettings{current: current},
			stripe, paypal, fallbacks, slog.New(slog.DiscardHandler),
		),
	}
}

func configuredSettings() *settings.SiteSettings {
	current := settings.Defaults()
	current.StripeAPIKey = "sk_from_settings"
	current.StripeWebhookSecret = webhookSecret
	current.PayPalClientID = "paypal-id"
	current.PayPalClientSecret = "paypal-secret"
	return current
}

// # Tests

func TestService_StripeCheckout(t *testing.T) {
	fx := newFixture(configuredSettings(), payments.Fallbacks{})

	result, err := fx.service.StripeCheckout(context.Background(), "ord-1", "https://shop.afrolatino.ca")
	require.NoError(t, err)

	assert.Equal(t, "cs_test_1", result.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_1", result.URL)

	// The settings credential was used, and the session priced the order total
	assert.Equal(t, "sk_from_settings", fx.stripe.lastKey)
	require.Len(t, fx.stripe.created, 1)
	assert.Equal(t, 42.50, fx.stripe.created[0].Amount)
	assert.Equal(t, payments.Currency, fx.stripe.created[0].Currency)
	assert.Contains(t, fx.stripe.created[0].SuccessURL, "https://shop.afrolatino.ca/order-success")

	// A pending ledger row exists for the session
	transaction := fx.transactions.rows["cs_test_1"]
	require.NotNil(t, transaction)
	assert.Equal(t, "ord-1", transaction.OrderID)
	assert.Equal(t, "user-1", transaction.UserID)
	assert.Equal(t, orders.PaymentStatusPending, transaction.PaymentStatus)
}

func TestService_StripeCheckout_UnknownOrder(t *testing.T) {
	fx := newFixture(configuredSettings(), payments.Fallbacks{})

	_, err := fx.service.StripeCheckout(context.Background(), "ord-missing", "https://shop.afrolatino.ca")
	require.Error(t, err)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)
}

func TestService_CredentialFallback(t *testing.T) {
	// Settings carry no credentials; the env fallback must be used.
	fx := newFixture(settings.Defaults(), payments.Fallbacks{
		StripeAPIKey:       "sk_from_env",
		PayPalClientID:     "env-id",
		PayPalClientSecret: "env-secret",
	})

	_, err := fx.service.StripeCheckout(context.Background(), "ord-1", "https://shop.afrolatino.ca")
	require.NoError(t, err)
	assert.Equal(t, "sk_from_env", fx.stripe.lastKey)

	_, err = fx.service.PayPalCheckout(context.Background(), "ord-1", "https://shop.afrolatino.ca")
	require.NoError(t, err)
	assert.Equal(t, "env-id", fx.paypal.lastCredentials.ClientID)
}

func TestService_StripeCheckout_Unconfigured(t *testing.T) {
	fx := newFixture(settings.Defaults(), payments.Fallbacks{})

	_, err := fx.service.StripeCheckout(context.Background(), "ord-1", "https://shop.afrolatino.ca")
	require.Error(t, err)
	assert.Equal(t, 400, apperr.As(err).HTTPStatus)
}

func TestService_StripeStatus_MarksPaid(t *testing.T) {
	fx := newFixture(configuredSettings(), payments.Fallbacks{})

	_, err := fx.service.StripeCheckout(context.Background(), "ord-1", "https://shop.afrolatino.ca")
	require.NoError(t, err)

	fx.stripe.sessions["cs_test_1"] = &payments.StripeSession{
		SessionID:     "cs_test_1",
		Status:        "complete",
		PaymentStatus: "paid",
	}

	result, err := fx.service.StripeStatus(context.Background(), "cs_test_1")
	require.NoError(t, err)

	assert.Equal(t, "paid", result.PaymentStatus)
	assert.Equal(t, "paid", fx.transactions.rows["cs_test_1"].PaymentStatus)
	assert.Equal(t, []string{"ord-1"}, fx.orderStore.paid)
}

func TestService_StripeStatus_UnpaidLeavesOrderAlone(t *testing.T) {
	fx := newFixture(configuredSettings(), payments.Fallbacks{})

	_, err := fx.service.StripeCheckout(context.Background(), "ord-1", "https://shop.afrolatino.ca")
	require.NoError(t, err)

	fx.stripe.sessions["cs_test_1"] = &payments.StripeSession{
		SessionID:     "cs_test_1",
		Status:        "open",
		PaymentStatus: "unpaid",
	}

	result, err := fx.service.StripeStatus(context.Background(), "cs_test_1")
	require.NoError(t, err)

	assert.Equal(t, "unpaid", result.PaymentStatus)
	assert.Empty(t, fx.orderStore.paid)
}

func TestService_HandleStripeWebhook(t *testing.T) {
	fx := newFixture(configuredSettings(), payments.Fallbacks{})

	_, err := fx.service.StripeCheckout(context.Background(), "ord-1", "https://shop.afrolatino.ca")
	require.NoError(t, err)

	payload := []byte(`{"type":"checkout.session.completed","data":{"object":{"id":"cs_test_1"}}}`)
	header := signPayload(payload, webhookSecret, time.Now())

	require.NoError(t, fx.service.HandleStripeWebhook(context.Background(), payload, header))

	assert.Equal(t, orders.PaymentStatusPaid, fx.transactions.rows["cs_test_1"].PaymentStatus)
	assert.Equal(t, []string{"ord-1"}, fx.orderStore.paid)
}

func TestService_HandleStripeWebhook_Rejections(t *testing.T) {
	fx := newFixture(configuredSettings(), payments.Fallbacks{})
	payload := []byte(`{"type":"checkout.session.completed","data":{"object":{"id":"cs_test_1"}}}`)

	t.Run("bad_signature", func(t *testing.T) {
		header := signPayload(payload, "whsec_wrong", time.Now())
		err := fx.service.HandleStripeWebhook(context.Background(), payload, header)
		require.Error(t, err)
		assert.Equal(t, 400, apperr.As(err).HTTPStatus)
	})

	t.Run("other_event_types_acknowledged", func(t *testing.T) {
		other := []byte(`{"type":"payment_intent.created","data":{"object":{"id":"pi_1"}}}`)
		header := signPayload(other, webhookSecret, time.Now())
		assert.NoError(t, fx.service.HandleStripeWebhook(context.Background(), other, header))
		assert.Empty(t, fx.orderStore.paid)
	})

	t.Run("no_secret_configured", func(t *testing.T) {
		bare := newFixture(settings.Defaults(), payments.Fallbacks{})
		header := signPayload(payload, webhookSecret, time.Now())
		err := bare.service.HandleStripeWebhook(context.Background(), payload, header)
		require.Error(t, err)
		assert.Equal(t, 400, apperr.As(err).HTTPStatus)
	})
}

func TestService_PayPalCheckout(t *testing.T) {
	fx := newFixture(configuredSettings(), payments.Fallbacks{})

	result, err := fx.service.PayPalCheckout(context.Background(), "ord-1", "https://shop.afrolatino.ca")
	require.NoError(t, err)

	assert.Equal(t, "pp_order_1", result.PayPalOrderID)
	assert.Equal(t, "https://www.paypal.com/checkoutnow?token=pp_order_1", result.URL)
	assert.Equal(t, "paypal-id", fx.paypal.lastCredentials.ClientID)

	// Ledger row keyed by the PayPal order
	transaction := fx.transactions.rows["pp_order_1"]
	require.NotNil(t, transaction)
	assert.Equal(t, orders.PaymentMethodPayPal, transaction.PaymentMethod)
}
