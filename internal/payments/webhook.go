// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// webhookTolerance bounds how stale a webhook timestamp may be before
// the event is treated as a replay.
const webhookTolerance = 5 * time.Minute

var (
	// ErrInvalidSignature is returned when the Stripe-Signature header
	// fails verification.
	ErrInvalidSignature = errors.New("payments: invalid webhook signature")
)

// WebhookEvent is the subset of a Stripe event the marketplace acts on.
type WebhookEvent struct {
	Type      string
	SessionID string
}

/*
VerifyWebhookSignature checks a Stripe-Signature header against the raw
request body.

# Scheme

The header carries a unix timestamp and one or more v1 signatures:

	t=1700000000,v1=5257a869e7...

Each v1 value is HMAC-SHA256 over "<timestamp>.<body>" keyed with the
endpoint secret. Any matching v1 accepts the event; comparison uses
hmac.Equal to stay constant-time.

# Parameters
  - payload: the raw, unparsed request body.
  - header: the Stripe-Signature header value.
  - secret: the endpoint signing secret (whsec_...).
  - now: the verification clock, injectable for tests.
*/
func VerifyWebhookSignature(payload []byte, header, secret string, now time.Time) error {
	timestamp, signatures, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}

	age := now.Sub(time.Unix(timestamp, 0))
	if age > webhookTolerance || age < -webhookTolerance {
		return fmt.Errorf("%w: timestamp outside tolerance", ErrInvalidSignature)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, signature := range signatures {
		provided, err := hex.DecodeString(signature)
		if err != nil {
			continue
		}
		if hmac.Equal(expected, provided) {
			return nil
		}
	}

	return ErrInvalidSignature
}

// ParseWebhookEvent decodes the event type and checkout session ID from
// a verified webhook body.
func ParseWebhookEvent(payload []byte) (*WebhookEvent, error) {
	decoded := struct {
		Type string `json:"type"`
		Data struct {
			Object struct {
				ID string `json:"id"`
			} `json:"object"`
		} `json:"data"`
	}{}

	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("payments: webhook decode failed: %w", err)
	}

	return &WebhookEvent{
		Type:      decoded.Type,
		SessionID: decoded.Data.Object.ID,
	}, nil
}

// parseSignatureHeader splits "t=...,v1=...,v1=..." into its parts.
func parseSignatureHeader(header string) (int64, []string, error) {
	var (
		timestamp  int64
		signatures []string
		sawT       bool
	)

	for _, pair := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			continue
		}

		switch key {
		case "t":
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("%w: bad timestamp", ErrInvalidSignature)
			}
			timestamp = parsed
			sawT = true
		case "v1":
			signatures = append(signatures, value)
		}
	}

	if !sawT || len(signatures) == 0 {
		return 0, nil, fmt.Errorf("%w: malformed header", ErrInvalidSignature)
	}

	return timestamp, signatures, nil
}
