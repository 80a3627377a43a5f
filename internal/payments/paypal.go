// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultPayPalBaseURL is the live PayPal REST endpoint. Sandbox
// deployments override it via the constructor.
const DefaultPayPalBaseURL = "https://api-m.paypal.com"

// PayPalClient implements [PayPalGateway] against PayPal Orders v2.
//
// Every order creation performs a fresh client-credentials token
// exchange. Token caching is not worth the complexity at this volume.
type PayPalClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPayPalClient constructs a [PayPalClient]. An empty baseURL selects
// the live endpoint.
func NewPayPalClient(baseURL string) *PayPalClient {
	if baseURL == "" {
		baseURL = DefaultPayPalBaseURL
	}

	return &PayPalClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateOrder creates a CAPTURE-intent PayPal order and returns the
// approval URL the buyer must visit.
func (client *PayPalClient) CreateOrder(ctx context.Context, credentials PayPalCredentials, input PayPalOrderInput) (*PayPalOrder, error) {
	accessToken, err := client.authenticate(ctx, credentials)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{{
			"reference_id": input.OrderID,
			"amount": map[string]string{
				"currency_code": strings.ToUpper(input.Currency),
				"value":         fmt.Sprintf("%.2f", input.Amount),
			},
		}},
		"application_context": map[string]string{
			"return_url": input.ReturnURL,
			"cancel_url": input.CancelURL,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("paypal_order_encode_failed: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+"/v2/checkout/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("paypal_request_build_failed: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+accessToken)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("paypal_request_failed: %w", err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("paypal_response_read_failed: %w", err)
	}

	if response.StatusCode >= 400 {
		return nil, fmt.Errorf("paypal_api_error: status %d", response.StatusCode)
	}

	decoded := struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Links  []struct {
			Href string `json:"href"`
			Rel  string `json:"rel"`
		} `json:"links"`
	}{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("paypal_response_decode_failed: %w", err)
	}

	order := &PayPalOrder{OrderID: decoded.ID, Status: decoded.Status}
	for _, link := range decoded.Links {
		// "payer-action" appears instead of "approve" on some flows.
		if link.Rel == "approve" || link.Rel == "payer-action" {
			order.ApprovalURL = link.Href
			break
		}
	}

	if order.ApprovalURL == "" {
		return nil, fmt.Errorf("paypal_api_error: no approval link in response")
	}

	return order, nil
}

// authenticate performs the client-credentials token exchange.
func (client *PayPalClient) authenticate(ctx context.Context, credentials PayPalCredentials) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("paypal_token_request_build_failed: %w", err)
	}
	request.SetBasicAuth(credentials.ClientID, credentials.ClientSecret)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("paypal_token_request_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		return "", fmt.Errorf("paypal_token_error: status %d", response.StatusCode)
	}

	decoded := struct {
		AccessToken string `json:"access_token"`
	}{}
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("paypal_token_decode_failed: %w", err)
	}

	if decoded.AccessToken == "" {
		return "", fmt.Errorf("paypal_token_error: empty access token")
	}

	return decoded.AccessToken, nil
}
