// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package payments_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrolatino/marketplace/internal/payments"
)

const webhookSecret = "whsec_test_secret"

// signPayload builds a valid Stripe-Signature header for a body.
func signPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyWebhookSignature(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"type":"checkout.session.completed"}`)

	t.Run("valid_signature", func(t *testing.T) {
		header := signPayload(payload, webhookSecret, now)
		assert.NoError(t, payments.VerifyWebhookSignature(payload, header, webhookSecret, now))
	})

	t.Run("valid_among_multiple_v1", func(t *testing.T) {
		header := signPayload(payload, webhookSecret, now) + ",v1=deadbeef"
		assert.NoError(t, payments.VerifyWebhookSignature(payload, header, webhookSecret, now))
	})

	t.Run("wrong_secret", func(t *testing.T) {
		header := signPayload(payload, "whsec_other", now)
		err := payments.VerifyWebhookSignature(payload, header, webhookSecret, now)
		assert.ErrorIs(t, err, payments.ErrInvalidSignature)
	})

	t.Run("tampered_body", func(t *testing.T) {
		header := signPayload(payload, webhookSecret, now)
		tampered := []byte(`{"type":"checkout.session.completed","amount":0}`)
		err := payments.VerifyWebhookSignature(tampered, header, webhookSecret, now)
		assert.ErrorIs(t, err, payments.ErrInvalidSignature)
	})

	t.Run("stale_timestamp", func(t *testing.T) {
		header := signPayload(payload, webhookSecret, now.Add(-10*time.Minute))
		err := payments.VerifyWebhookSignature(payload, header, webhookSecret, now)
		assert.ErrorIs(t, err, payments.ErrInvalidSignature)
	})

	t.Run("malformed_headers", func(t *testing.T) {
		for _, header := range []string{"", "t=abc,v1=00", "v1=00", "t=1700000000"} {
			err := payments.VerifyWebhookSignature(payload, header, webhookSecret, now)
			assert.ErrorIs(t, err, payments.ErrInvalidSignature, "header %q", header)
		}
	})
}

func TestParseWebhookEvent(t *testing.T) {
	payload := []byte(`{
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test_123", "payment_status": "paid"}}
	}`)

	event, err := payments.ParseWebhookEvent(payload)
	require.NoError(t, err)

	assert.Equal(t, "checkout.session.completed", event.Type)
	assert.Equal(t, "cs_test_123", event.SessionID)

	_, err = payments.ParseWebhookEvent([]byte("not json"))
	assert.Error(t, err)
}
