package domain

import "time"

// Tag is static reference data for categorizing recipes.
// Name and Slug are each unique; Color is a hex string like "#49B64E".
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Ingredient is reference data for a single ingredient.
// The (Name, MeasurementUnit) pair is unique: "sugar"/"g" and
// "sugar"/"tbsp" are distinct ingredients.
type Ingredient struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	CreatedAt       time.Time `json:"created_at"`
}
