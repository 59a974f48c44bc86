// Package dto builds the viewer-dependent read projections served by
// the API. A view is a domain object plus the flags only meaningful
// relative to whoever is looking: is_favorited, is_in_shopping_cart,
// is_subscribed.
package dto

import "time"

// TagView is a tag as served to clients.
type TagView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// IngredientView is an ingredient line within a recipe view, joining
// the catalog entry with the recipe's amount.
type IngredientView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// ProfileView is a user as seen by a viewer.
type ProfileView struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`

	// RecipesCount and Recipes are filled only on subscription views.
	RecipesCount *int           `json:"recipes_count,omitempty"`
	Recipes      []RecipeSummary `json:"recipes,omitempty"`
}

// RecipeSummary is the short recipe form used inside subscription
// views and toggle responses.
type RecipeSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeView is a full recipe as seen by a viewer.
type RecipeView struct {
	ID               string           `json:"id"`
	Author           ProfileView      `json:"author"`
	Name             string           `json:"name"`
	Image            string           `json:"image"`
	Text             string           `json:"text"`
	CookingTime      int              `json:"cooking_time"`
	Tags             []TagView        `json:"tags"`
	Ingredients      []IngredientView `json:"ingredients"`
	IsFavorited      bool             `json:"is_favorited"`
	IsInShoppingCart bool             `json:"is_in_shopping_cart"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
