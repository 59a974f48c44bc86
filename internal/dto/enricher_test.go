package dto

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkfulapp/forkful-server/internal/domain"
	"github.com/forkfulapp/forkful-server/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := store.Open(dbPath, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func seedUser(t *testing.T, s *store.Store, id, username string) *domain.User {
	t.Helper()
	now := time.Now()
	u := &domain.User{
		ID:           id,
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "User",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func seedRecipe(t *testing.T, s *store.Store, id, authorID string, createdAt time.Time) *domain.Recipe {
	t.Helper()
	r := &domain.Recipe{
		ID:          id,
		AuthorID:    authorID,
		Name:        "Recipe " + id,
		CookingTime: 30,
		TagIDs:      []string{"tag_1"},
		Ingredients: []domain.IngredientLine{{IngredientID: "ing_1", Amount: 100}},
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, s.CreateRecipe(context.Background(), r))
	return r
}

func seedCatalog(t *testing.T, s *store.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.CreateTag(ctx, &domain.Tag{
		ID: "tag_1", Name: "Dinner", Color: "#E26C2D", Slug: "dinner", CreatedAt: time.Now(),
	}))
	require.NoError(t, s.CreateIngredient(ctx, &domain.Ingredient{
		ID: "ing_1", Name: "Sugar", MeasurementUnit: "g", CreatedAt: time.Now(),
	}))
}

func seedRelation(t *testing.T, s *store.Store, kind domain.RelationKind, userID, targetID string) {
	t.Helper()
	require.NoError(t, s.AddRelation(context.Background(), &domain.Relation{
		Kind: kind, UserID: userID, TargetID: targetID, CreatedAt: time.Now(),
	}))
}

func TestRecipeViews_ViewerFlags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	e := NewEnricher(s)

	author := seedUser(t, s, "usr_author", "author")
	viewer := seedUser(t, s, "usr_viewer", "viewer")
	seedCatalog(t, s)
	r1 := seedRecipe(t, s, "rcp_1", author.ID, time.Now())
	r2 := seedRecipe(t, s, "rcp_2", author.ID, time.Now())

	seedRelation(t, s, domain.RelationFavorite, viewer.ID, r1.ID)
	seedRelation(t, s, domain.RelationCart, viewer.ID, r2.ID)
	seedRelation(t, s, domain.RelationSubscription, viewer.ID, author.ID)

	views, err := e.RecipeViews(ctx, domain.Viewer(viewer.ID), []*domain.Recipe{r1, r2})
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.True(t, views[0].IsFavorited)
	assert.False(t, views[0].IsInShoppingCart)
	assert.False(t, views[1].IsFavorited)
	assert.True(t, views[1].IsInShoppingCart)
	assert.True(t, views[0].Author.IsSubscribed)

	// Tag and ingredient details are joined in.
	require.Len(t, views[0].Tags, 1)
	assert.Equal(t, "dinner", views[0].Tags[0].Slug)
	require.Len(t, views[0].Ingredients, 1)
	assert.Equal(t, "Sugar", views[0].Ingredients[0].Name)
	assert.Equal(t, 100, views[0].Ingredients[0].Amount)
}

func TestRecipeViews_AnonymousViewer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	e := NewEnricher(s)

	author := seedUser(t, s, "usr_author", "author")
	other := seedUser(t, s, "usr_other", "other")
	seedCatalog(t, s)
	r := seedRecipe(t, s, "rcp_1", author.ID, time.Now())

	// Someone else's flags must not leak into the anonymous view.
	seedRelation(t, s, domain.RelationFavorite, other.ID, r.ID)
	seedRelation(t, s, domain.RelationCart, other.ID, r.ID)

	views, err := e.RecipeViews(ctx, domain.Anonymous, []*domain.Recipe{r})
	require.NoError(t, err)
	require.Len(t, views, 1)

	assert.False(t, views[0].IsFavorited)
	assert.False(t, views[0].IsInShoppingCart)
	assert.False(t, views[0].Author.IsSubscribed)
}

func TestProfileViews(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	e := NewEnricher(s)

	alice := seedUser(t, s, "usr_alice", "alice")
	bob := seedUser(t, s, "usr_bob", "bob")
	carol := seedUser(t, s, "usr_carol", "carol")

	seedRelation(t, s, domain.RelationSubscription, alice.ID, bob.ID)

	views, err := e.ProfileViews(ctx, domain.Viewer(alice.ID), []*domain.User{bob, carol})
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.True(t, views[0].IsSubscribed)
	assert.False(t, views[1].IsSubscribed)

	// Base profiles carry no recipe payload.
	assert.Nil(t, views[0].RecipesCount)
	assert.Empty(t, views[0].Recipes)
}

func TestSubscriptionView_RecipesLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	e := NewEnricher(s)

	author := seedUser(t, s, "usr_author", "author")
	viewer := seedUser(t, s, "usr_viewer", "viewer")
	seedCatalog(t, s)

	base := time.Now().Add(-time.Hour)
	for i := range 5 {
		seedRecipe(t, s, fmt.Sprintf("rcp_%d", i), author.ID, base.Add(time.Duration(i)*time.Minute))
	}
	seedRelation(t, s, domain.RelationSubscription, viewer.ID, author.ID)

	view, err := e.SubscriptionView(ctx, domain.Viewer(viewer.ID), author, 3)
	require.NoError(t, err)

	assert.True(t, view.IsSubscribed)
	require.NotNil(t, view.RecipesCount)

	// The count reflects the full catalog even when the list is truncated.
	assert.Equal(t, 5, *view.RecipesCount)
	require.Len(t, view.Recipes, 3)

	// Most recent first.
	assert.Equal(t, "rcp_4", view.Recipes[0].ID)

	// A non-positive limit means no truncation.
	view, err = e.SubscriptionView(ctx, domain.Viewer(viewer.ID), author, 0)
	require.NoError(t, err)
	assert.Len(t, view.Recipes, 5)
}
