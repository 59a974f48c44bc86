package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/forkfulapp/forkful-server/internal/domain"
	"github.com/forkfulapp/forkful-server/internal/id"
	"github.com/forkfulapp/forkful-server/internal/store"
)

// newTestStore creates a temporary SQLite store for service tests.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.DiscardHandler)

	s, err := store.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// createTestUser creates a user directly in the store.
func createTestUser(t *testing.T, s *store.Store, email, username string) *domain.User {
	t.Helper()

	userID, err := id.Generate(id.PrefixUser)
	require.NoError(t, err)

	now := time.Now()
	user := &domain.User{
		ID:           userID,
		Email:        email,
		Username:     username,
		PasswordHash: "$argon2id$fakehashfortest",
		FirstName:    "Test",
		LastName:     "User",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.CreateUser(context.Background(), user))

	return user
}

// createTestCatalog seeds one tag and two ingredients and returns their IDs.
func createTestCatalog(t *testing.T, s *store.Store) (tagID, sugarID, saltID string) {
	t.Helper()
	ctx := context.Background()

	tag := &domain.Tag{ID: "tag_dinner", Name: "Dinner", Color: "#E26C2D", Slug: "dinner", CreatedAt: time.Now()}
	require.NoError(t, s.CreateTag(ctx, tag))

	sugar := &domain.Ingredient{ID: "ing_sugar", Name: "Sugar", MeasurementUnit: "g", CreatedAt: time.Now()}
	require.NoError(t, s.CreateIngredient(ctx, sugar))

	salt := &domain.Ingredient{ID: "ing_salt", Name: "Salt", MeasurementUnit: "g", CreatedAt: time.Now()}
	require.NoError(t, s.CreateIngredient(ctx, salt))

	return tag.ID, sugar.ID, salt.ID
}

// createTestRecipe creates a recipe through the recipe service.
func createTestRecipe(t *testing.T, svc *RecipeService, authorID, tagID string, lines []IngredientLineRequest) *domain.Recipe {
	t.Helper()

	recipe, err := svc.Create(context.Background(), authorID, RecipeRequest{
		Name:        "Test Recipe",
		Text:        "Mix and cook.",
		CookingTime: 30,
		TagIDs:      []string{tagID},
		Ingredients: lines,
	})
	require.NoError(t, err)

	return recipe
}
