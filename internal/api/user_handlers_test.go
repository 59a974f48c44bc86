package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkfulapp/forkful-server/internal/dto"
)

func TestGetCurrentUser_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/users/me")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGetCurrentUser(t *testing.T) {
	ts := setupTestServer(t)
	token, userID := ts.registerAndLogin(t, "alice@example.com", "alice")

	resp := ts.api.Get("/api/v1/users/me", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[dto.ProfileView]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, userID, envelope.Data.ID)
	assert.Equal(t, "alice", envelope.Data.Username)
	assert.False(t, envelope.Data.IsSubscribed)
}

func TestListUsers(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerAndLogin(t, "alice@example.com", "alice")
	ts.registerAndLogin(t, "bob@example.com", "bob_b")

	resp := ts.api.Get("/api/v1/users")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[[]dto.ProfileView]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "alice", envelope.Data[0].Username)
	assert.Equal(t, "bob_b", envelope.Data[1].Username)
}

func TestGetUser_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/users/usr_missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSubscribe_Flow(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerAndLogin(t, "alice@example.com", "alice")
	_, authorID := ts.registerAndLogin(t, "bob@example.com", "bob_b")

	resp := ts.api.Post("/api/v1/users/"+authorID+"/subscribe", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var envelope testEnvelope[dto.ProfileView]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, authorID, envelope.Data.ID)
	assert.True(t, envelope.Data.IsSubscribed)
	require.NotNil(t, envelope.Data.RecipesCount)
	assert.Equal(t, 0, *envelope.Data.RecipesCount)

	// Subscribing twice is a conflict.
	resp = ts.api.Post("/api/v1/users/"+authorID+"/subscribe", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = ts.api.Delete("/api/v1/users/"+authorID+"/subscribe", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	// Unsubscribing again reports no subscription.
	resp = ts.api.Delete("/api/v1/users/"+authorID+"/subscribe", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSubscribe_ToSelf(t *testing.T) {
	ts := setupTestServer(t)
	token, userID := ts.registerAndLogin(t, "alice@example.com", "alice")

	resp := ts.api.Post("/api/v1/users/"+userID+"/subscribe", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSubscribe_UnknownAuthor(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerAndLogin(t, "alice@example.com", "alice")

	resp := ts.api.Post("/api/v1/users/usr_missing/subscribe", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListSubscriptions_RecipesLimit(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerAndLogin(t, "alice@example.com", "alice")
	authorToken, authorID := ts.registerAndLogin(t, "bob@example.com", "bob_b")

	tagID, sugarID, _ := ts.seedCatalog(t)
	for _, name := range []string{"Pancakes", "Waffles", "Crepes"} {
		ts.createRecipe(t, authorToken, name, tagID, []map[string]any{
			{"ingredient_id": sugarID, "amount": 100},
		})
	}

	resp := ts.api.Post("/api/v1/users/"+authorID+"/subscribe", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.api.Get("/api/v1/users/subscriptions?recipes_limit=2", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[[]dto.ProfileView]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data, 1)
	author := envelope.Data[0]
	assert.Equal(t, authorID, author.ID)
	assert.True(t, author.IsSubscribed)
	require.NotNil(t, author.RecipesCount)
	assert.Equal(t, 3, *author.RecipesCount)
	assert.Len(t, author.Recipes, 2)

	// A junk limit is ignored rather than rejected.
	resp = ts.api.Get("/api/v1/users/subscriptions?recipes_limit=abc", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope = testEnvelope[[]dto.ProfileView]{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Len(t, envelope.Data[0].Recipes, 3)
}

func TestListSubscriptions_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/users/subscriptions")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
