package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/forkfulapp/forkful-server/internal/domain"
	"github.com/forkfulapp/forkful-server/internal/id"
	"github.com/forkfulapp/forkful-server/internal/store"
	"github.com/forkfulapp/forkful-server/internal/validation"
)

// maxIngredientResults caps name searches so an empty prefix can't
// stream the entire catalog into one response.
const maxIngredientResults = 100

// IngredientService manages the ingredient catalog.
type IngredientService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewIngredientService creates a new ingredient service.
func NewIngredientService(store *store.Store, logger *slog.Logger) *IngredientService {
	return &IngredientService{
		store:  store,
		logger: logger,
	}
}

// IngredientRequest contains the writable fields of an ingredient.
type IngredientRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=200"`
}

// Create validates and stores a new ingredient.
func (s *IngredientService) Create(ctx context.Context, req IngredientRequest) (*domain.Ingredient, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	ingredientID, err := id.Generate(id.PrefixIngredient)
	if err != nil {
		return nil, fmt.Errorf("generate ingredient ID: %w", err)
	}

	ing := &domain.Ingredient{
		ID:              ingredientID,
		Name:            req.Name,
		MeasurementUnit: req.MeasurementUnit,
		CreatedAt:       time.Now(),
	}
	if err := s.store.CreateIngredient(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

// Get retrieves an ingredient by ID.
func (s *IngredientService) Get(ctx context.Context, ingredientID string) (*domain.Ingredient, error) {
	return s.store.GetIngredient(ctx, ingredientID)
}

// Search returns ingredients whose name starts with the given prefix,
// case-insensitively, ordered by name. An empty prefix lists the
// catalog up to the result cap.
func (s *IngredientService) Search(ctx context.Context, namePrefix string) ([]*domain.Ingredient, error) {
	return s.store.ListIngredients(ctx, namePrefix, maxIngredientResults)
}
