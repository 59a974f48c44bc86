package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/forkfulapp/forkful-server/internal/domain"
	"github.com/forkfulapp/forkful-server/internal/errors"
	"github.com/forkfulapp/forkful-server/internal/id"
	"github.com/forkfulapp/forkful-server/internal/store"
	"github.com/forkfulapp/forkful-server/internal/validation"
)

// RecipeService manages recipe CRUD. Only the author may update or
// delete a recipe.
type RecipeService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(store *store.Store, logger *slog.Logger) *RecipeService {
	return &RecipeService{
		store:  store,
		logger: logger,
	}
}

// IngredientLineRequest is one ingredient row in a recipe write.
type IngredientLineRequest struct {
	IngredientID string `json:"ingredient_id" validate:"required"`
	Amount       int    `json:"amount" validate:"gte=1"`
}

// RecipeRequest contains the writable fields of a recipe. Used for
// both create and update; updates replace tags and ingredients
// wholesale.
type RecipeRequest struct {
	Name        string                  `json:"name" validate:"required,max=200"`
	Image       string                  `json:"image,omitempty"`
	Text        string                  `json:"text" validate:"required"`
	CookingTime int                     `json:"cooking_time" validate:"gte=1,lte=1440"`
	TagIDs      []string                `json:"tag_ids" validate:"required,min=1"`
	Ingredients []IngredientLineRequest `json:"ingredients" validate:"required,min=1,dive"`
}

// Create validates and stores a new recipe for the author.
func (s *RecipeService) Create(ctx context.Context, authorID string, req RecipeRequest) (*domain.Recipe, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	recipeID, err := id.Generate(id.PrefixRecipe)
	if err != nil {
		return nil, fmt.Errorf("generate recipe ID: %w", err)
	}

	now := time.Now()
	recipe := &domain.Recipe{
		ID:          recipeID,
		AuthorID:    authorID,
		Name:        req.Name,
		Image:       req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		TagIDs:      req.TagIDs,
		Ingredients: toIngredientLines(req.Ingredients),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, recipe); err != nil {
		return nil, err
	}

	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		return nil, err
	}

	s.logger.Info("recipe created", "recipe_id", recipeID, "author_id", authorID)

	return recipe, nil
}

// Update rewrites a recipe. Returns FORBIDDEN when the caller is not
// the author and NOT_FOUND when the recipe does not exist.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID string, req RecipeRequest) (*domain.Recipe, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	existing, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != userID {
		return nil, errors.Forbidden("only the author can edit this recipe")
	}

	recipe := &domain.Recipe{
		ID:          recipeID,
		AuthorID:    existing.AuthorID,
		Name:        req.Name,
		Image:       req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		TagIDs:      req.TagIDs,
		Ingredients: toIngredientLines(req.Ingredients),
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now(),
	}
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, recipe); err != nil {
		return nil, err
	}

	if err := s.store.UpdateRecipe(ctx, recipe); err != nil {
		return nil, err
	}

	return recipe, nil
}

// Delete removes a recipe. Returns FORBIDDEN when the caller is not
// the author and NOT_FOUND when the recipe does not exist.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID string) error {
	existing, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if existing.AuthorID != userID {
		return errors.Forbidden("only the author can delete this recipe")
	}

	if err := s.store.DeleteRecipe(ctx, recipeID); err != nil {
		return err
	}

	s.logger.Info("recipe deleted", "recipe_id", recipeID, "author_id", userID)

	return nil
}

// Get retrieves a recipe by ID.
func (s *RecipeService) Get(ctx context.Context, recipeID string) (*domain.Recipe, error) {
	return s.store.GetRecipe(ctx, recipeID)
}

// List returns recipes matching the filter, newest first.
func (s *RecipeService) List(ctx context.Context, filter store.RecipeFilter) ([]*domain.Recipe, error) {
	return s.store.ListRecipes(ctx, filter)
}

// checkReferences resolves the recipe's tags and ingredients so a bad
// ID surfaces as a clean NOT_FOUND instead of a constraint failure
// mid-transaction.
func (s *RecipeService) checkReferences(ctx context.Context, recipe *domain.Recipe) error {
	if _, err := s.store.GetTagsByIDs(ctx, recipe.TagIDs); err != nil {
		return err
	}

	ingredientIDs := make([]string, len(recipe.Ingredients))
	for i, line := range recipe.Ingredients {
		ingredientIDs[i] = line.IngredientID
	}
	if _, err := s.store.GetIngredientsByIDs(ctx, ingredientIDs); err != nil {
		return err
	}
	return nil
}

func toIngredientLines(reqs []IngredientLineRequest) []domain.IngredientLine {
	lines := make([]domain.IngredientLine, len(reqs))
	for i, r := range reqs {
		lines[i] = domain.IngredientLine{
			IngredientID: r.IngredientID,
			Amount:       r.Amount,
		}
	}
	return lines
}
