package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/forkfulapp/forkful-server/internal/auth"
	"github.com/forkfulapp/forkful-server/internal/domain"
	"github.com/forkfulapp/forkful-server/internal/dto"
	"github.com/forkfulapp/forkful-server/internal/service"
	"github.com/forkfulapp/forkful-server/internal/store"
)

const testAccessKeyHex = "0000000000000000000000000000000000000000000000000000000000000000"

const testPassword = "Sup3rSecret!"

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api          humatest.TestAPI
	tokenService *auth.TokenService
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.DiscardHandler)

	st, err := store.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	tokenService, err := auth.NewTokenService(testAccessKeyHex, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	services := &Services{
		Auth:       service.NewAuthService(st, tokenService, logger),
		User:       service.NewUserService(st, logger),
		Tag:        service.NewTagService(st, logger),
		Ingredient: service.NewIngredientService(st, logger),
		Recipe:     service.NewRecipeService(st, logger),
		Relation:   service.NewRelationService(st, logger),
		Shopping:   service.NewShoppingService(st, logger),
	}

	s := NewServer(st, services, logger)

	return &testServer{
		Server:       s,
		api:          humatest.Wrap(t, s.api),
		tokenService: tokenService,
	}
}

// registerAndLogin creates a user through the API and returns an access
// token plus the user ID.
func (ts *testServer) registerAndLogin(t *testing.T, email, username string) (token, userID string) {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":      email,
		"username":   username,
		"password":   testPassword,
		"first_name": "Test",
		"last_name":  "User",
	})
	require.Equal(t, http.StatusCreated, resp.Code, "register failed: %s", resp.Body.String())

	resp = ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.Code, "login failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)

	return envelope.Data.AccessToken, envelope.Data.User.ID
}

// adminToken creates an admin account directly in the store and mints
// an access token for it.
func (ts *testServer) adminToken(t *testing.T) string {
	t.Helper()

	now := time.Now()
	admin := &domain.User{
		ID:           "usr_admin",
		Email:        "admin@example.com",
		Username:     "admin",
		PasswordHash: "$argon2id$fakehashfortest",
		FirstName:    "Admin",
		LastName:     "User",
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, ts.store.CreateUser(context.Background(), admin))

	token, err := ts.tokenService.GenerateAccessToken(admin)
	require.NoError(t, err)

	return token
}

// seedCatalog creates one tag and two ingredients directly in the store.
func (ts *testServer) seedCatalog(t *testing.T) (tagID, sugarID, saltID string) {
	t.Helper()
	ctx := context.Background()

	tag := &domain.Tag{ID: "tag_dinner", Name: "Dinner", Color: "#E26C2D", Slug: "dinner", CreatedAt: time.Now()}
	require.NoError(t, ts.store.CreateTag(ctx, tag))

	sugar := &domain.Ingredient{ID: "ing_sugar", Name: "Sugar", MeasurementUnit: "g", CreatedAt: time.Now()}
	require.NoError(t, ts.store.CreateIngredient(ctx, sugar))

	salt := &domain.Ingredient{ID: "ing_salt", Name: "Salt", MeasurementUnit: "g", CreatedAt: time.Now()}
	require.NoError(t, ts.store.CreateIngredient(ctx, salt))

	return tag.ID, sugar.ID, salt.ID
}

// createRecipe creates a recipe through the API and returns its ID.
func (ts *testServer) createRecipe(t *testing.T, token, name, tagID string, ingredients []map[string]any) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/recipes", map[string]any{
		"name":         name,
		"text":         "Mix and cook.",
		"cooking_time": 30,
		"tag_ids":      []string{tagID},
		"ingredients":  ingredients,
	}, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code, "create recipe failed: %s", resp.Body.String())

	var envelope testEnvelope[dto.RecipeView]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.ID)

	return envelope.Data.ID
}
