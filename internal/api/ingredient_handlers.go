package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/forkfulapp/forkful-server/internal/domain"
	"github.com/forkfulapp/forkful-server/internal/service"
)

func (s *Server) registerIngredientRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listIngredients",
		Method:      http.MethodGet,
		Path:        "/api/v1/ingredients",
		Summary:     "List ingredients",
		Description: "Returns ingredients whose name starts with the given prefix",
		Tags:        []string{"Ingredients"},
	}, s.handleListIngredients)

	huma.Register(s.api, huma.Operation{
		OperationID: "getIngredient",
		Method:      http.MethodGet,
		Path:        "/api/v1/ingredients/{id}",
		Summary:     "Get ingredient",
		Description: "Returns an ingredient by ID",
		Tags:        []string{"Ingredients"},
	}, s.handleGetIngredient)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createIngredient",
		Method:        http.MethodPost,
		Path:          "/api/v1/ingredients",
		Summary:       "Create ingredient",
		Description:   "Creates a new ingredient (admin only)",
		Tags:          []string{"Ingredients"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateIngredient)
}

// === DTOs ===

// IngredientResponse is a catalog ingredient in API responses.
type IngredientResponse struct {
	ID              string `json:"id" doc:"Ingredient ID"`
	Name            string `json:"name" doc:"Ingredient name"`
	MeasurementUnit string `json:"measurement_unit" doc:"Unit the ingredient is measured in"`
}

// IngredientOutput wraps a single ingredient for Huma.
type IngredientOutput struct {
	Body IngredientResponse
}

// IngredientsOutput wraps a list of ingredients for Huma.
type IngredientsOutput struct {
	Body []IngredientResponse
}

// ListIngredientsInput holds the ingredient search parameters.
type ListIngredientsInput struct {
	Name string `query:"name" doc:"Case-insensitive name prefix to search for"`
}

// IngredientIDInput holds an ingredient ID path parameter.
type IngredientIDInput struct {
	ID string `path:"id" doc:"Ingredient ID"`
}

// CreateIngredientInput wraps the ingredient creation request for Huma.
type CreateIngredientInput struct {
	Body service.IngredientRequest
}

// === Handlers ===

func (s *Server) handleListIngredients(ctx context.Context, input *ListIngredientsInput) (*IngredientsOutput, error) {
	ingredients, err := s.services.Ingredient.Search(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	views := make([]IngredientResponse, len(ingredients))
	for i, ing := range ingredients {
		views[i] = newIngredientResponse(ing)
	}
	return &IngredientsOutput{Body: views}, nil
}

func (s *Server) handleGetIngredient(ctx context.Context, input *IngredientIDInput) (*IngredientOutput, error) {
	ing, err := s.services.Ingredient.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &IngredientOutput{Body: newIngredientResponse(ing)}, nil
}

func (s *Server) handleCreateIngredient(ctx context.Context, input *CreateIngredientInput) (*IngredientOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	ing, err := s.services.Ingredient.Create(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &IngredientOutput{Body: newIngredientResponse(ing)}, nil
}

func newIngredientResponse(ing *domain.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:              ing.ID,
		Name:            ing.Name,
		MeasurementUnit: ing.MeasurementUnit,
	}
}
