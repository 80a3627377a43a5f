// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afrolatino/marketplace/internal/platform/middleware"
	requestutil "github.com/afrolatino/marketplace/internal/platform/request"
	"github.com/afrolatino/marketplace/internal/platform/respond"
	"github.com/afrolatino/marketplace/internal/platform/validate"
)

// Handler implements site settings HTTP endpoints.
type Handler struct {
	settingsService *Service
	resolver        middleware.IdentityResolver
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, resolver middleware.IdentityResolver) *Handler {
	return &Handler{settingsService: service, resolver: resolver}
}

// Routes returns a [chi.Router] with the public read and the admin write.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(handler.resolver))
		r.Put("/", handler.update)
	})

	return router
}

// GET /api/v1/settings
//
// Payment credentials are redacted; this response feeds the public
// storefront.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	current, err := handler.settingsService.Get(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, current.Redacted())
}

type updateSettingsRequest struct {
	FreeDeliveryThreshold *float64 `json:"free_delivery_threshold"`
	DeliveryBaseFee       *float64 `json:"delivery_base_fee"`
	DeliveryPerKmFee      *float64 `json:"delivery_per_km_fee"`
	SiteTitle             *string  `json:"site_title"`
	ContactEmail          *string  `json:"contact_email"`
	StripeAPIKey          *string  `json:"stripe_api_key"`
	StripeWebhookSecret   *string  `json:"stripe_webhook_secret"`
	PayPalClientID        *string  `json:"paypal_client_id"`
	PayPalClientSecret    *string  `json:"paypal_client_secret"`
	FacebookURL           *string  `json:"facebook_url"`
	InstagramURL          *string  `json:"instagram_url"`
	TwitterURL            *string  `json:"twitter_url"`
	YouTubeURL            *string  `json:"youtube_url"`
}

// PUT /api/v1/settings (admin)
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateSettingsRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.ContactEmail != nil {
		validator.Email("contact_email", *input.ContactEmail)
	}
	if input.FreeDeliveryThreshold != nil {
		validator.Custom("free_delivery_threshold", *input.FreeDeliveryThreshold < 0, "must not be negative")
	}
	if input.DeliveryBaseFee != nil {
		validator.Custom("delivery_base_fee", *input.DeliveryBaseFee < 0, "must not be negative")
	}
	if input.DeliveryPerKmFee != nil {
		validator.Custom("delivery_per_km_fee", *input.DeliveryPerKmFee < 0, "must not be negative")
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	current, err := handler.settingsService.Update(request.Context(), UpdateInput{
		FreeDeliveryThreshold: input.FreeDeliveryThreshold,
		DeliveryBaseFee:       input.DeliveryBaseFee,
		DeliveryPerKmFee:      input.DeliveryPerKmFee,
		SiteTitle:             input.SiteTitle,
		ContactEmail:          input.ContactEmail,
		StripeAPIKey:          input.StripeAPIKey,
		StripeWebhookSecret:   input.StripeWebhookSecret,
		PayPalClientID:        input.PayPalClientID,
		PayPalClientSecret:    input.PayPalClientSecret,
		FacebookURL:           input.FacebookURL,
		InstagramURL:          input.InstagramURL,
		TwitterURL:            input.TwitterURL,
		YouTubeURL:            input.YouTubeURL,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Admins see the full row, secrets included.
	respond.OK(writer, current)
}
