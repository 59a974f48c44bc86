package domain

import (
	"time"

	"github.com/forkfulapp/forkful-server/internal/errors"
)

// Cooking time bounds in minutes. A recipe must take at least a minute
// and no more than a day.
const (
	MinCookingTime = 1
	MaxCookingTime = 1440
)

// MinIngredientAmount is the smallest amount an ingredient line may carry.
const MinIngredientAmount = 1

// Recipe is a user-authored recipe. Recipes are listed most-recent-first.
type Recipe struct {
	ID          string           `json:"id"`
	AuthorID    string           `json:"author_id"`
	Name        string           `json:"name"`
	Image       string           `json:"image"` // opaque reference resolved by image storage
	Text        string           `json:"text"`
	CookingTime int              `json:"cooking_time"` // minutes
	TagIDs      []string         `json:"tag_ids"`
	Ingredients []IngredientLine `json:"ingredients"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// IngredientLine links a recipe to one ingredient with an amount.
// An ingredient appears at most once per recipe.
type IngredientLine struct {
	IngredientID string `json:"ingredient_id"`
	Amount       int    `json:"amount"`
}

// Touch updates the UpdatedAt timestamp.
func (r *Recipe) Touch() {
	r.UpdatedAt = time.Now()
}

// Validate checks the recipe invariants that must hold before any row is
// persisted: cooking time bounds, a non-empty tag set with no duplicate
// tag, and a non-empty ingredient list with positive amounts and no
// duplicate ingredient.
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return errors.Validation("recipe name is required")
	}
	if r.CookingTime < MinCookingTime {
		return errors.Validationf("cooking time must be at least %d minute", MinCookingTime)
	}
	if r.CookingTime > MaxCookingTime {
		return errors.Validationf("cooking time must not exceed %d minutes", MaxCookingTime)
	}
	if len(r.TagIDs) == 0 {
		return errors.Validation("at least one tag is required")
	}
	seenTags := make(map[string]bool, len(r.TagIDs))
	for _, tagID := range r.TagIDs {
		if seenTags[tagID] {
			return errors.Validationf("duplicate tag %s in recipe", tagID)
		}
		seenTags[tagID] = true
	}
	if len(r.Ingredients) == 0 {
		return errors.Validation("at least one ingredient is required")
	}

	seen := make(map[string]bool, len(r.Ingredients))
	for _, line := range r.Ingredients {
		if line.Amount < MinIngredientAmount {
			return errors.Validationf("ingredient amount must be at least %d", MinIngredientAmount)
		}
		if seen[line.IngredientID] {
			return errors.Validationf("duplicate ingredient %s in recipe", line.IngredientID)
		}
		seen[line.IngredientID] = true
	}

	return nil
}
