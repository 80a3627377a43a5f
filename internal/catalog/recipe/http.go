// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package recipe

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afrolatino/marketplace/internal/platform/middleware"
	requestutil "github.com/afrolatino/marketplace/internal/platform/request"
	"github.com/afrolatino/marketplace/internal/platform/respond"
	"github.com/afrolatino/marketplace/internal/platform/validate"
	"github.com/afrolatino/marketplace/pkg/uuidv7"
)

// Handler implements recipe HTTP endpoints.
type Handler struct {
	repository Repository
	resolver   middleware.IdentityResolver
}

// NewHandler constructs a new [Handler].
func NewHandler(repository Repository, resolver middleware.IdentityResolver) *Handler {
	return &Handler{repository: repository, resolver: resolver}
}

// Routes returns a [chi.Router] with the public list and admin mutations.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(handler.resolver))
		r.Post("/", handler.create)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

// GET /api/v1/recipes?culture=&search=
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	filter := Filter{
		Culture: request.URL.Query().Get("culture"),
		Search:  request.URL.Query().Get("search"),
	}

	recipes, err := handler.repository.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, recipes)
}

type createRecipeRequest struct {
	Title        string   `json:"title"`
	Culture      string   `json:"culture"`
	Image        string   `json:"image"`
	Description  string   `json:"description"`
	CookTime     string   `json:"cook_time"`
	Difficulty   string   `json:"difficulty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// POST /api/v1/recipes (admin)
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRecipeRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("title", input.Title).
		Required("culture", input.Culture).
		OneOf("difficulty", input.Difficulty, DifficultyEasy, DifficultyMedium, DifficultyAdvanced)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipe := &Recipe{
		ID:           uuidv7.Must(),
		Title:        input.Title,
		Culture:      input.Culture,
		Image:        input.Image,
		Description:  input.Description,
		CookTime:     input.CookTime,
		Difficulty:   input.Difficulty,
		Ingredients:  input.Ingredients,
		Instructions: input.Instructions,
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = []string{}
	}
	if recipe.Instructions == nil {
		recipe.Instructions = []string{}
	}

	if err := handler.repository.Create(request.Context(), recipe); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, recipe)
}

// DELETE /api/v1/recipes/{id} (admin)
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.repository.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Recipe deleted"})
}
