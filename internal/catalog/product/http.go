// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package product

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/afrolatino/marketplace/internal/platform/middleware"
	requestutil "github.com/afrolatino/marketplace/internal/platform/request"
	"github.com/afrolatino/marketplace/internal/platform/respond"
	"github.com/afrolatino/marketplace/internal/platform/validate"
	"github.com/afrolatino/marketplace/pkg/pagination"
)

// Handler implements product catalog HTTP endpoints.
type Handler struct {
	productService *Service
	resolver       middleware.IdentityResolver
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, resolver middleware.IdentityResolver) *Handler {
	return &Handler{productService: service, resolver: resolver}
}

// Routes returns a [chi.Router] with public reads and admin mutations.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(handler.resolver))
		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

// filterFromRequest parses the listing filters from the query string.
func filterFromRequest(request *http.Request) Filter {
	query := request.URL.Query()

	filter := Filter{
		Culture:  query.Get("culture"),
		Category: query.Get("category"),
		Region:   query.Get("region"),
		Country:  query.Get("country"),
		Search:   query.Get("search"),
	}

	if raw := query.Get("featured"); raw != "" {
		if featured, err := strconv.ParseBool(raw); err == nil {
			filter.Featured = &featured
		}
	}

	return filter
}

// GET /api/v1/products
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	products, total, err := handler.productService.List(request.Context(), filterFromRequest(request), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, products, pagination.NewMeta(params.Page, params.Limit, total))
}

// GET /api/v1/products/{id}
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	product, err := handler.productService.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

type createProductRequest struct {
	Name                string   `json:"name"`
	Price               float64  `json:"price"`
	Image               string   `json:"image"`
	Images              []string `json:"images"`
	Category            string   `json:"category"`
	Culture             string   `json:"culture"`
	Country             string   `json:"country"`
	Region              string   `json:"region"`
	Description         string   `json:"description"`
	Ingredients         string   `json:"ingredients"`
	StorageInstructions string   `json:"storage_instructions"`
	Featured            bool     `json:"featured"`
}

// POST /api/v1/products (admin)
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createProductRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		Required(FieldCategory, input.Category).
		Required(FieldCulture, input.Culture).
		OneOf(FieldCulture, input.Culture, CultureAfrican, CultureLatino, CultureFusion).
		Custom(FieldPrice, input.Price <= 0, "must be greater than zero")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.productService.Create(request.Context(), CreateInput{
		Name:                input.Name,
		Price:               input.Price,
		Image:               input.Image,
		Images:              input.Images,
		Category:            input.Category,
		Culture:             input.Culture,
		Country:             input.Country,
		Region:              input.Region,
		Description:         input.Description,
		Ingredients:         input.Ingredients,
		StorageInstructions: input.StorageInstructions,
		Featured:            input.Featured,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, product)
}

type updateProductRequest struct {
	Name                *string   `json:"name"`
	Price               *float64  `json:"price"`
	Image               *string   `json:"image"`
	Images              *[]string `json:"images"`
	Category            *string   `json:"category"`
	Culture             *string   `json:"culture"`
	Country             *string   `json:"country"`
	Region              *string   `json:"region"`
	Description         *string   `json:"description"`
	Ingredients         *string   `json:"ingredients"`
	StorageInstructions *string   `json:"storage_instructions"`
	InStock             *bool     `json:"in_stock"`
	Featured            *bool     `json:"featured"`
}

// PUT /api/v1/products/{id} (admin)
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateProductRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Culture != nil {
		validator.OneOf(FieldCulture, *input.Culture, CultureAfrican, CultureLatino, CultureFusion)
	}
	if input.Price != nil {
		validator.Custom(FieldPrice, *input.Price <= 0, "must be greater than zero")
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.productService.Update(request.Context(), requestutil.ID(request, "id"), UpdateInput{
		Name:                input.Name,
		Price:               input.Price,
		Image:               input.Image,
		Images:              input.Images,
		Category:            input.Category,
		Culture:             input.Culture,
		Country:             input.Country,
		Region:              input.Region,
		Description:         input.Description,
		Ingredients:         input.Ingredients,
		StorageInstructions: input.StorageInstructions,
		InStock:             input.InStock,
		Featured:            input.Featured,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

// DELETE /api/v1/products/{id} (admin)
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.productService.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Product deleted successfully"})
}
