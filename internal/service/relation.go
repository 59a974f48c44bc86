package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/forkfulapp/forkful-server/internal/domain"
	"github.com/forkfulapp/forkful-server/internal/errors"
	"github.com/forkfulapp/forkful-server/internal/store"
)

// RelationService manages the per-user relation rows behind favorites,
// shopping carts, and subscriptions. All three share the same add and
// remove shape; only the target check and the error messages differ.
type RelationService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewRelationService creates a new relation service.
func NewRelationService(store *store.Store, logger *slog.Logger) *RelationService {
	return &RelationService{
		store:  store,
		logger: logger,
	}
}

// Favorite adds a recipe to the user's favorites.
// Returns ALREADY_EXISTS if it is already favorited and NOT_FOUND if
// the recipe does not exist.
func (s *RelationService) Favorite(ctx context.Context, userID, recipeID string) (*domain.Recipe, error) {
	return s.addRecipeRelation(ctx, domain.RelationFavorite, userID, recipeID,
		"recipe is already in favorites")
}

// Unfavorite removes a recipe from the user's favorites.
// Returns NOT_FOUND if it was not favorited.
func (s *RelationService) Unfavorite(ctx context.Context, userID, recipeID string) error {
	return s.removeRelation(ctx, domain.RelationFavorite, userID, recipeID,
		"recipe is not in favorites")
}

// AddToCart adds a recipe to the user's shopping cart.
// Returns ALREADY_EXISTS if it is already in the cart and NOT_FOUND if
// the recipe does not exist.
func (s *RelationService) AddToCart(ctx context.Context, userID, recipeID string) (*domain.Recipe, error) {
	return s.addRecipeRelation(ctx, domain.RelationCart, userID, recipeID,
		"recipe is already in the shopping cart")
}

// RemoveFromCart removes a recipe from the user's shopping cart.
// Returns NOT_FOUND if it was not in the cart.
func (s *RelationService) RemoveFromCart(ctx context.Context, userID, recipeID string) error {
	return s.removeRelation(ctx, domain.RelationCart, userID, recipeID,
		"recipe is not in the shopping cart")
}

// Subscribe subscribes a user to an author.
// Returns SELF_SUBSCRIPTION when the user targets themselves,
// NOT_FOUND when the author does not exist, and ALREADY_EXISTS when
// the subscription is already present.
func (s *RelationService) Subscribe(ctx context.Context, userID, authorID string) (*domain.User, error) {
	if userID == authorID {
		return nil, errors.SelfSubscription("cannot subscribe to yourself")
	}

	author, err := s.store.GetUser(ctx, authorID)
	if err != nil {
		return nil, err
	}

	err = s.store.AddRelation(ctx, &domain.Relation{
		Kind:      domain.RelationSubscription,
		UserID:    userID,
		TargetID:  authorID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		if errors.Is(err, errors.ErrAlreadyExists) {
			return nil, errors.AlreadyExists("already subscribed to this author")
		}
		return nil, fmt.Errorf("add subscription: %w", err)
	}

	s.logger.Debug("subscription added", "user_id", userID, "author_id", authorID)

	return author, nil
}

// Unsubscribe removes a subscription.
// Returns NOT_SUBSCRIBED when no subscription exists.
func (s *RelationService) Unsubscribe(ctx context.Context, userID, authorID string) error {
	err := s.store.RemoveRelation(ctx, domain.RelationSubscription, userID, authorID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NotSubscribed("not subscribed to this author")
		}
		return fmt.Errorf("remove subscription: %w", err)
	}
	return nil
}

// Subscriptions returns the authors the user is subscribed to, most
// recently subscribed first.
func (s *RelationService) Subscriptions(ctx context.Context, userID string) ([]*domain.User, error) {
	authorIDs, err := s.store.ListRelationTargets(ctx, domain.RelationSubscription, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	byID, err := s.store.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve authors: %w", err)
	}

	authors := make([]*domain.User, 0, len(authorIDs))
	for _, authorID := range authorIDs {
		// A missing author was deleted; skip the dangling row.
		if author, ok := byID[authorID]; ok {
			authors = append(authors, author)
		}
	}
	return authors, nil
}

func (s *RelationService) addRecipeRelation(ctx context.Context, kind domain.RelationKind, userID, recipeID, conflictMsg string) (*domain.Recipe, error) {
	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	err = s.store.AddRelation(ctx, &domain.Relation{
		Kind:      kind,
		UserID:    userID,
		TargetID:  recipeID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		if errors.Is(err, errors.ErrAlreadyExists) {
			return nil, errors.AlreadyExists(conflictMsg)
		}
		return nil, fmt.Errorf("add %s relation: %w", kind, err)
	}

	s.logger.Debug("relation added", "kind", string(kind), "user_id", userID, "recipe_id", recipeID)

	return recipe, nil
}

func (s *RelationService) removeRelation(ctx context.Context, kind domain.RelationKind, userID, targetID, missingMsg string) error {
	err := s.store.RemoveRelation(ctx, kind, userID, targetID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NotFound(missingMsg)
		}
		return fmt.Errorf("remove %s relation: %w", kind, err)
	}
	return nil
}
