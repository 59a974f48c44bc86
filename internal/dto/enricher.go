package dto

import (
	"context"
	"fmt"

	"github.com/forkfulapp/forkful-server/internal/domain"
	"github.com/forkfulapp/forkful-server/internal/store"
)

// Enricher joins domain objects with the viewer-dependent flags. All
// lookups are batched, so enriching a page of recipes costs a fixed
// number of queries regardless of page size.
type Enricher struct {
	store *store.Store
}

// NewEnricher creates a new view enricher.
func NewEnricher(store *store.Store) *Enricher {
	return &Enricher{store: store}
}

// RecipeViews builds full recipe views for the viewer. An anonymous
// viewer gets false for every flag.
func (e *Enricher) RecipeViews(ctx context.Context, viewer domain.Viewer, recipes []*domain.Recipe) ([]RecipeView, error) {
	if len(recipes) == 0 {
		return []RecipeView{}, nil
	}

	recipeIDs := make([]string, len(recipes))
	authorIDSet := make(map[string]struct{})
	tagIDSet := make(map[string]struct{})
	ingredientIDSet := make(map[string]struct{})
	for i, r := range recipes {
		recipeIDs[i] = r.ID
		authorIDSet[r.AuthorID] = struct{}{}
		for _, tagID := range r.TagIDs {
			tagIDSet[tagID] = struct{}{}
		}
		for _, line := range r.Ingredients {
			ingredientIDSet[line.IngredientID] = struct{}{}
		}
	}

	favorited, err := e.store.RelationFlags(ctx, domain.RelationFavorite, viewer.UserID(), recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("favorite flags: %w", err)
	}
	inCart, err := e.store.RelationFlags(ctx, domain.RelationCart, viewer.UserID(), recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("cart flags: %w", err)
	}

	tagsByID, err := e.tagsByID(ctx, setToSlice(tagIDSet))
	if err != nil {
		return nil, err
	}
	ingredientsByID, err := e.store.GetIngredientsByIDs(ctx, setToSlice(ingredientIDSet))
	if err != nil {
		return nil, fmt.Errorf("resolve ingredients: %w", err)
	}
	authorsByID, subscribed, err := e.authorViews(ctx, viewer, setToSlice(authorIDSet))
	if err != nil {
		return nil, err
	}

	views := make([]RecipeView, len(recipes))
	for i, r := range recipes {
		author := authorsByID[r.AuthorID]
		author.IsSubscribed = subscribed[r.AuthorID]

		tags := make([]TagView, 0, len(r.TagIDs))
		for _, tagID := range r.TagIDs {
			if t, ok := tagsByID[tagID]; ok {
				tags = append(tags, t)
			}
		}

		ingredients := make([]IngredientView, 0, len(r.Ingredients))
		for _, line := range r.Ingredients {
			ing := ingredientsByID[line.IngredientID]
			ingredients = append(ingredients, IngredientView{
				ID:              ing.ID,
				Name:            ing.Name,
				MeasurementUnit: ing.MeasurementUnit,
				Amount:          line.Amount,
			})
		}

		views[i] = RecipeView{
			ID:               r.ID,
			Author:           author,
			Name:             r.Name,
			Image:            r.Image,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
			Tags:             tags,
			Ingredients:      ingredients,
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			CreatedAt:        r.CreatedAt,
			UpdatedAt:        r.UpdatedAt,
		}
	}
	return views, nil
}

// RecipeView builds a single recipe view.
func (e *Enricher) RecipeView(ctx context.Context, viewer domain.Viewer, recipe *domain.Recipe) (*RecipeView, error) {
	views, err := e.RecipeViews(ctx, viewer, []*domain.Recipe{recipe})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ProfileView builds a user profile as seen by the viewer.
func (e *Enricher) ProfileView(ctx context.Context, viewer domain.Viewer, user *domain.User) (*ProfileView, error) {
	views, err := e.ProfileViews(ctx, viewer, []*domain.User{user})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ProfileViews builds profile views for the viewer. Anonymous viewers
// see is_subscribed false everywhere.
func (e *Enricher) ProfileViews(ctx context.Context, viewer domain.Viewer, users []*domain.User) ([]ProfileView, error) {
	if len(users) == 0 {
		return []ProfileView{}, nil
	}

	userIDs := make([]string, len(users))
	for i, u := range users {
		userIDs[i] = u.ID
	}
	subscribed, err := e.store.RelationFlags(ctx, domain.RelationSubscription, viewer.UserID(), userIDs)
	if err != nil {
		return nil, fmt.Errorf("subscription flags: %w", err)
	}

	views := make([]ProfileView, len(users))
	for i, u := range users {
		views[i] = baseProfileView(u)
		views[i].IsSubscribed = subscribed[u.ID]
	}
	return views, nil
}

// SubscriptionView builds the extended profile served on subscription
// endpoints: the base profile plus the author's recipe count and their
// most recent recipes. A recipesLimit < 1 means no truncation.
func (e *Enricher) SubscriptionView(ctx context.Context, viewer domain.Viewer, author *domain.User, recipesLimit int) (*ProfileView, error) {
	view, err := e.ProfileView(ctx, viewer, author)
	if err != nil {
		return nil, err
	}

	count, err := e.store.CountRecipesByAuthor(ctx, author.ID)
	if err != nil {
		return nil, fmt.Errorf("count recipes: %w", err)
	}
	view.RecipesCount = &count

	recipes, err := e.store.ListRecipes(ctx, store.RecipeFilter{
		AuthorID: author.ID,
		Limit:    recipesLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list author recipes: %w", err)
	}

	view.Recipes = make([]RecipeSummary, len(recipes))
	for i, r := range recipes {
		view.Recipes[i] = NewRecipeSummary(r)
	}
	return view, nil
}

// NewRecipeSummary builds the short recipe form.
func NewRecipeSummary(r *domain.Recipe) RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

func (e *Enricher) tagsByID(ctx context.Context, ids []string) (map[string]TagView, error) {
	tags, err := e.store.GetTagsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}
	byID := make(map[string]TagView, len(tags))
	for _, t := range tags {
		byID[t.ID] = TagView{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
	}
	return byID, nil
}

func (e *Enricher) authorViews(ctx context.Context, viewer domain.Viewer, authorIDs []string) (map[string]ProfileView, map[string]bool, error) {
	subscribed, err := e.store.RelationFlags(ctx, domain.RelationSubscription, viewer.UserID(), authorIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("subscription flags: %w", err)
	}

	users, err := e.store.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve authors: %w", err)
	}

	byID := make(map[string]ProfileView, len(authorIDs))
	for _, authorID := range authorIDs {
		u, ok := users[authorID]
		if !ok {
			return nil, nil, fmt.Errorf("author %s not found", authorID)
		}
		byID[authorID] = baseProfileView(u)
	}
	return byID, subscribed, nil
}

func baseProfileView(u *domain.User) ProfileView {
	return ProfileView{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
