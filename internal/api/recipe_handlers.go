package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/forkfulapp/forkful-server/internal/dto"
	"github.com/forkfulapp/forkful-server/internal/service"
	"github.com/forkfulapp/forkful-server/internal/store"
)

func (s *Server) registerRecipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes",
		Summary:     "List recipes",
		Description: "Returns recipes matching the filters, newest first",
		Tags:        []string{"Recipes"},
	}, s.handleListRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createRecipe",
		Method:        http.MethodPost,
		Path:          "/api/v1/recipes",
		Summary:       "Create recipe",
		Description:   "Creates a new recipe authored by the authenticated user",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "downloadShoppingCart",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/download_shopping_cart",
		Summary:     "Download shopping list",
		Description: "Returns the aggregated shopping list as a plain text file",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDownloadShoppingCart)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecipe",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Get recipe",
		Description: "Returns a recipe by ID",
		Tags:        []string{"Recipes"},
	}, s.handleGetRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateRecipe",
		Method:      http.MethodPatch,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Update recipe",
		Description: "Rewrites a recipe; only the author may edit",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteRecipe",
		Method:      http.MethodDelete,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Delete recipe",
		Description: "Deletes a recipe; only the author may delete",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID:   "favoriteRecipe",
		Method:        http.MethodPost,
		Path:          "/api/v1/recipes/{id}/favorite",
		Summary:       "Favorite recipe",
		Description:   "Adds a recipe to the authenticated user's favorites",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleFavoriteRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "unfavoriteRecipe",
		Method:      http.MethodDelete,
		Path:        "/api/v1/recipes/{id}/favorite",
		Summary:     "Unfavorite recipe",
		Description: "Removes a recipe from the authenticated user's favorites",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUnfavoriteRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addRecipeToCart",
		Method:        http.MethodPost,
		Path:          "/api/v1/recipes/{id}/shopping_cart",
		Summary:       "Add recipe to shopping cart",
		Description:   "Adds a recipe to the authenticated user's shopping cart",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddRecipeToCart)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeRecipeFromCart",
		Method:      http.MethodDelete,
		Path:        "/api/v1/recipes/{id}/shopping_cart",
		Summary:     "Remove recipe from shopping cart",
		Description: "Removes a recipe from the authenticated user's shopping cart",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveRecipeFromCart)
}

// === DTOs ===

// ListRecipesInput holds the recipe listing filters. The favorited and
// cart filters only apply to authenticated viewers; anonymous requests
// ignore them.
type ListRecipesInput struct {
	Author           string   `query:"author" doc:"Filter by author ID"`
	Tags             []string `query:"tags" doc:"Filter by tag slug; repeat for OR matching"`
	IsFavorited      bool     `query:"is_favorited" doc:"Only recipes the viewer has favorited"`
	IsInShoppingCart bool     `query:"is_in_shopping_cart" doc:"Only recipes in the viewer's shopping cart"`
	Limit            int      `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum number of recipes to return"`
	Offset           int      `query:"offset" default:"0" minimum:"0" doc:"Number of recipes to skip"`
}

// RecipeOutput wraps a single recipe view for Huma.
type RecipeOutput struct {
	Body dto.RecipeView
}

// RecipesOutput wraps a list of recipe views for Huma.
type RecipesOutput struct {
	Body []dto.RecipeView
}

// RecipeIDInput holds a recipe ID path parameter.
type RecipeIDInput struct {
	ID string `path:"id" doc:"Recipe ID"`
}

// CreateRecipeInput wraps the recipe creation request for Huma.
type CreateRecipeInput struct {
	Body service.RecipeRequest
}

// UpdateRecipeInput wraps the recipe update request for Huma.
type UpdateRecipeInput struct {
	ID   string `path:"id" doc:"Recipe ID"`
	Body service.RecipeRequest
}

// RecipeSummaryOutput wraps the short recipe form returned by the
// favorite and shopping cart toggles.
type RecipeSummaryOutput struct {
	Body dto.RecipeSummary
}

// ShoppingCartFileOutput is the plain text shopping list download.
type ShoppingCartFileOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// === Handlers ===

func (s *Server) handleListRecipes(ctx context.Context, input *ListRecipesInput) (*RecipesOutput, error) {
	filter := store.RecipeFilter{
		AuthorID: input.Author,
		TagSlugs: input.Tags,
		Limit:    input.Limit,
		Offset:   input.Offset,
	}

	viewer := GetViewer(ctx)
	if !viewer.IsAnonymous() {
		if input.IsFavorited {
			filter.FavoritedBy = viewer.UserID()
		}
		if input.IsInShoppingCart {
			filter.InCartOf = viewer.UserID()
		}
	}

	recipes, err := s.services.Recipe.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views, err := s.enricher.RecipeViews(ctx, viewer, recipes)
	if err != nil {
		return nil, err
	}
	return &RecipesOutput{Body: views}, nil
}

func (s *Server) handleCreateRecipe(ctx context.Context, input *CreateRecipeInput) (*RecipeOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Recipe.Create(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}

	view, err := s.enricher.RecipeView(ctx, GetViewer(ctx), recipe)
	if err != nil {
		return nil, err
	}
	return &RecipeOutput{Body: *view}, nil
}

func (s *Server) handleGetRecipe(ctx context.Context, input *RecipeIDInput) (*RecipeOutput, error) {
	recipe, err := s.services.Recipe.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	view, err := s.enricher.RecipeView(ctx, GetViewer(ctx), recipe)
	if err != nil {
		return nil, err
	}
	return &RecipeOutput{Body: *view}, nil
}

func (s *Server) handleUpdateRecipe(ctx context.Context, input *UpdateRecipeInput) (*RecipeOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Recipe.Update(ctx, userID, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	view, err := s.enricher.RecipeView(ctx, GetViewer(ctx), recipe)
	if err != nil {
		return nil, err
	}
	return &RecipeOutput{Body: *view}, nil
}

func (s *Server) handleDeleteRecipe(ctx context.Context, input *RecipeIDInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Recipe.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Recipe deleted"}}, nil
}

func (s *Server) handleFavoriteRecipe(ctx context.Context, input *RecipeIDInput) (*RecipeSummaryOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Relation.Favorite(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	return &RecipeSummaryOutput{Body: dto.NewRecipeSummary(recipe)}, nil
}

func (s *Server) handleUnfavoriteRecipe(ctx context.Context, input *RecipeIDInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Relation.Unfavorite(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Removed from favorites"}}, nil
}

func (s *Server) handleAddRecipeToCart(ctx context.Context, input *RecipeIDInput) (*RecipeSummaryOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Relation.AddToCart(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	return &RecipeSummaryOutput{Body: dto.NewRecipeSummary(recipe)}, nil
}

func (s *Server) handleRemoveRecipeFromCart(ctx context.Context, input *RecipeIDInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Relation.RemoveFromCart(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Removed from shopping cart"}}, nil
}

func (s *Server) handleDownloadShoppingCart(ctx context.Context, _ *struct{}) (*ShoppingCartFileOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.services.Shopping.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ShoppingCartFileOutput{
		ContentType:        "text/plain; charset=utf-8",
		ContentDisposition: `attachment; filename="shopping_cart.txt"`,
		Body:               []byte(s.services.Shopping.Render(items)),
	}, nil
}
