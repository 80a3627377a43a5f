// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package payments

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/afrolatino/marketplace/internal/platform/request"
	"github.com/afrolatino/marketplace/internal/platform/respond"
	"github.com/afrolatino/marketplace/internal/platform/validate"
)

// maxWebhookBody bounds the webhook request body; Stripe events are
// small and anything larger is hostile.
const maxWebhookBody = 1 << 20

// Handler implements the payment provider HTTP endpoints.
//
// All routes are public. Guests check out too, and order IDs are
// unguessable UUIDv7 values.
type Handler struct {
	paymentService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{paymentService: service}
}

// Routes returns a [chi.Router] for the payments endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/stripe/checkout/{id}", handler.stripeCheckout)
	router.Get("/stripe/status/{sessionID}", handler.stripeStatus)
	router.Post("/stripe/webhook", handler.stripeWebhook)
	router.Get("/paypal/checkout/{id}", handler.paypalCheckout)

	return router
}

// GET /api/v1/payments/stripe/checkout/{id}
func (handler *Handler) stripeCheckout(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.paymentService.StripeCheckout(request.Context(), requestutil.ID(request, "id"), baseURL(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// GET /api/v1/payments/stripe/status/{sessionID}
func (handler *Handler) stripeStatus(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.paymentService.StripeStatus(request.Context(), requestutil.Param(request, "sessionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// POST /api/v1/payments/stripe/webhook
func (handler *Handler) stripeWebhook(writer http.ResponseWriter, request *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(request.Body, maxWebhookBody))
	if err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	err = handler.paymentService.HandleStripeWebhook(request.Context(), payload, request.Header.Get("Stripe-Signature"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"status": "success"})
}

// GET /api/v1/payments/paypal/checkout/{id}
func (handler *Handler) paypalCheckout(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.paymentService.PayPalCheckout(request.Context(), requestutil.ID(request, "id"), baseURL(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// baseURL reconstructs the public base URL for provider redirects.
func baseURL(request *http.Request) string {
	scheme := "https"
	if request.TLS == nil {
		scheme = "http"
	}
	if forwarded := request.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}

	return scheme + "://" + request.Host
}
