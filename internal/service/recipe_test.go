package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkfulapp/forkful-server/internal/errors"
	"github.com/forkfulapp/forkful-server/internal/store"
)

func TestRecipeCreate_Validation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recipes := NewRecipeService(s, testLogger())
	author := createTestUser(t, s, "author@example.com", "author")
	tagID, sugarID, _ := createTestCatalog(t, s)

	valid := RecipeRequest{
		Name:        "Cake",
		Text:        "Bake it.",
		CookingTime: 60,
		TagIDs:      []string{tagID},
		Ingredients: []IngredientLineRequest{{IngredientID: sugarID, Amount: 100}},
	}

	tests := []struct {
		name   string
		mutate func(*RecipeRequest)
	}{
		{"missing name", func(r *RecipeRequest) { r.Name = "" }},
		{"cooking time zero", func(r *RecipeRequest) { r.CookingTime = 0 }},
		{"cooking time too large", func(r *RecipeRequest) { r.CookingTime = 1441 }},
		{"no tags", func(r *RecipeRequest) { r.TagIDs = nil }},
		{"duplicate tag", func(r *RecipeRequest) { r.TagIDs = append(r.TagIDs, tagID) }},
		{"no ingredients", func(r *RecipeRequest) { r.Ingredients = nil }},
		{"zero amount", func(r *RecipeRequest) { r.Ingredients[0].Amount = 0 }},
		{"duplicate ingredient", func(r *RecipeRequest) {
			r.Ingredients = append(r.Ingredients, IngredientLineRequest{IngredientID: sugarID, Amount: 5})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			req.TagIDs = append([]string(nil), valid.TagIDs...)
			req.Ingredients = append([]IngredientLineRequest(nil), valid.Ingredients...)
			tt.mutate(&req)

			_, err := recipes.Create(ctx, author.ID, req)
			assert.True(t, errors.Is(err, errors.ErrValidation), "got %v", err)
		})
	}

	// The untouched request succeeds.
	_, err := recipes.Create(ctx, author.ID, valid)
	assert.NoError(t, err)
}

func TestRecipeCreate_UnknownReferences(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recipes := NewRecipeService(s, testLogger())
	author := createTestUser(t, s, "author@example.com", "author")
	tagID, sugarID, _ := createTestCatalog(t, s)

	_, err := recipes.Create(ctx, author.ID, RecipeRequest{
		Name:        "Cake",
		Text:        "Bake it.",
		CookingTime: 60,
		TagIDs:      []string{"tag_missing"},
		Ingredients: []IngredientLineRequest{{IngredientID: sugarID, Amount: 100}},
	})
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = recipes.Create(ctx, author.ID, RecipeRequest{
		Name:        "Cake",
		Text:        "Bake it.",
		CookingTime: 60,
		TagIDs:      []string{tagID},
		Ingredients: []IngredientLineRequest{{IngredientID: "ing_missing", Amount: 100}},
	})
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestRecipeUpdate_AuthorOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recipes := NewRecipeService(s, testLogger())
	author := createTestUser(t, s, "author@example.com", "author")
	other := createTestUser(t, s, "other@example.com", "other")
	tagID, sugarID, _ := createTestCatalog(t, s)
	recipe := createTestRecipe(t, recipes, author.ID, tagID, []IngredientLineRequest{
		{IngredientID: sugarID, Amount: 100},
	})

	req := RecipeRequest{
		Name:        "Renamed",
		Text:        "Still tasty.",
		CookingTime: 45,
		TagIDs:      []string{tagID},
		Ingredients: []IngredientLineRequest{{IngredientID: sugarID, Amount: 50}},
	}

	_, err := recipes.Update(ctx, other.ID, recipe.ID, req)
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	updated, err := recipes.Update(ctx, author.ID, recipe.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 45, updated.CookingTime)

	// CreatedAt is preserved across updates.
	assert.Equal(t, recipe.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestRecipeDelete_AuthorOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recipes := NewRecipeService(s, testLogger())
	author := createTestUser(t, s, "author@example.com", "author")
	other := createTestUser(t, s, "other@example.com", "other")
	tagID, sugarID, _ := createTestCatalog(t, s)
	recipe := createTestRecipe(t, recipes, author.ID, tagID, []IngredientLineRequest{
		{IngredientID: sugarID, Amount: 100},
	})

	err := recipes.Delete(ctx, other.ID, recipe.ID)
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	require.NoError(t, recipes.Delete(ctx, author.ID, recipe.ID))

	_, err = recipes.Get(ctx, recipe.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestRecipeList_ByAuthor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recipes := NewRecipeService(s, testLogger())
	author := createTestUser(t, s, "author@example.com", "author")
	other := createTestUser(t, s, "other@example.com", "other")
	tagID, sugarID, _ := createTestCatalog(t, s)

	createTestRecipe(t, recipes, author.ID, tagID, []IngredientLineRequest{{IngredientID: sugarID, Amount: 1}})
	createTestRecipe(t, recipes, other.ID, tagID, []IngredientLineRequest{{IngredientID: sugarID, Amount: 1}})

	got, err := recipes.List(ctx, store.RecipeFilter{AuthorID: author.ID})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, author.ID, got[0].AuthorID)
}
