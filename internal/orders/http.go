// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package orders

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afrolatino/marketplace/internal/platform/middleware"
	requestutil "github.com/afrolatino/marketplace/internal/platform/request"
	"github.com/afrolatino/marketplace/internal/platform/respond"
	"github.com/afrolatino/marketplace/internal/platform/validate"
)

// Handler implements order HTTP endpoints.
type Handler struct {
	orderService *Service
	resolver     middleware.IdentityResolver
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, resolver middleware.IdentityResolver) *Handler {
	return &Handler{orderService: service, resolver: resolver}
}

// Routes returns a [chi.Router] for the orders endpoints.
//
// Checkout runs behind the optional-auth middleware so guests can buy;
// order history requires a resolved identity.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(handler.resolver))
		r.Post("/", handler.checkout)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(handler.resolver))
		r.Get("/", handler.list)
		r.Get("/{id}", handler.get)
	})

	return router
}

type checkoutRequest struct {
	Items         []OrderItem  `json:"items"`
	DeliveryInfo  DeliveryInfo `json:"delivery_info"`
	PaymentMethod string       `json:"payment_method"`
}

// POST /api/v1/orders
func (handler *Handler) checkout(writer http.ResponseWriter, request *http.Request) {
	var input checkoutRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Custom("items", len(input.Items) == 0, "Cart must contain at least one item")
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			validator.Custom("items", true, "Item quantity must be greater than zero")
			break
		}
	}
	validator.OneOf("payment_method", input.PaymentMethod, PaymentMethodStripe, PaymentMethodPayPal)
	validator.Required("delivery_info.first_name", input.DeliveryInfo.FirstName)
	validator.Required("delivery_info.last_name", input.DeliveryInfo.LastName)
	validator.Email("delivery_info.email", input.DeliveryInfo.Email)
	validator.Required("delivery_info.phone", input.DeliveryInfo.Phone)
	validator.Required("delivery_info.address", input.DeliveryInfo.Address)
	validator.Required("delivery_info.postal_code", input.DeliveryInfo.PostalCode)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Local delivery defaults for the storefront's home market.
	if input.DeliveryInfo.City == "" {
		input.DeliveryInfo.City = "Moncton"
	}
	if input.DeliveryInfo.Province == "" {
		input.DeliveryInfo.Province = "NB"
	}

	// nil identity means guest checkout; that is fine here.
	result, err := handler.orderService.Checkout(request.Context(), middleware.GetIdentity(request.Context()), CheckoutInput{
		Items:         input.Items,
		DeliveryInfo:  input.DeliveryInfo,
		PaymentMethod: input.PaymentMethod,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

// GET /api/v1/orders
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	user := middleware.GetIdentity(request.Context())

	orders, err := handler.orderService.ListForUser(request.Context(), user.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, orders)
}

// GET /api/v1/orders/{id}
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	user := middleware.GetIdentity(request.Context())

	order, err := handler.orderService.GetForUser(request.Context(), user.ID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, order)
}
