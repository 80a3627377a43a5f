// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultStripeBaseURL is the production Stripe API endpoint.
const DefaultStripeBaseURL = "https://api.stripe.com"

// StripeClient implements [StripeGateway] against the Stripe REST API.
//
// The Stripe API is form-encoded on the way in and JSON on the way out.
// Only the two checkout calls the storefront needs are implemented; a
// full SDK would be dead weight here.
type StripeClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewStripeClient constructs a [StripeClient]. An empty baseURL selects
// the production endpoint; tests point it at a local httptest server.
func NewStripeClient(baseURL string) *StripeClient {
	if baseURL == "" {
		baseURL = DefaultStripeBaseURL
	}

	return &StripeClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// stripeSessionResponse mirrors the fields we read off a checkout session.
type stripeSessionResponse struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// stripeErrorResponse mirrors Stripe's error envelope.
type stripeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCheckoutSession creates a hosted checkout session for one order.
func (client *StripeClient) CreateCheckoutSession(ctx context.Context, apiKey string, input StripeSessionInput) (*StripeSession, error) {
	// Stripe amounts are integer cents.
	amountCents := int64(input.Amount*100 + 0.5)

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", input.SuccessURL)
	form.Set("cancel_url", input.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", input.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(amountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", "AfroLatino Marketplace Order")
	form.Set("metadata[order_id]", input.OrderID)

	session, err := client.do(ctx, apiKey, http.MethodPost, "/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	return session, nil
}

// GetCheckoutSession fetches the current state of a checkout session.
func (client *StripeClient) GetCheckoutSession(ctx context.Context, apiKey, sessionID string) (*StripeSession, error) {
	return client.do(ctx, apiKey, http.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(sessionID), nil)
}

// do executes one authenticated Stripe call and decodes the session body.
func (client *StripeClient) do(ctx context.Context, apiKey, method, path string, body io.Reader) (*StripeSession, error) {
	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("stripe_request_build_failed: %w", err)
	}

	request.Header.Set("Authorization", "Bearer "+apiKey)
	if body != nil {
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("stripe_request_failed: %w", err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("stripe_response_read_failed: %w", err)
	}

	if response.StatusCode >= 400 {
		stripeError := stripeErrorResponse{}
		if err := json.Unmarshal(payload, &stripeError); err == nil && stripeError.Error.Message != "" {
			return nil, fmt.Errorf("stripe_api_error: %s (%s)", stripeError.Error.Message, stripeError.Error.Type)
		}
		return nil, fmt.Errorf("stripe_api_error: status %d", response.StatusCode)
	}

	decoded := stripeSessionResponse{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("stripe_response_decode_failed: %w", err)
	}

	return &StripeSession{
		SessionID:     decoded.ID,
		URL:           decoded.URL,
		Status:        decoded.Status,
		PaymentStatus: decoded.PaymentStatus,
	}, nil
}
