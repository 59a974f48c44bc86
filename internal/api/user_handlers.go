package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/forkfulapp/forkful-server/internal/dto"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Description: "Returns user profiles ordered by username",
		Tags:        []string{"Users"},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get current user",
		Description: "Returns the authenticated user's profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSubscriptions",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/subscriptions",
		Summary:     "List subscriptions",
		Description: "Returns the authors the user is subscribed to, with their recipes",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListSubscriptions)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}",
		Summary:     "Get user",
		Description: "Returns a user profile by ID",
		Tags:        []string{"Users"},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID:   "subscribe",
		Method:        http.MethodPost,
		Path:          "/api/v1/users/{id}/subscribe",
		Summary:       "Subscribe to author",
		Description:   "Subscribes the authenticated user to an author",
		Tags:          []string{"Users"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleSubscribe)

	huma.Register(s.api, huma.Operation{
		OperationID: "unsubscribe",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/{id}/subscribe",
		Summary:     "Unsubscribe from author",
		Description: "Removes the authenticated user's subscription to an author",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUnsubscribe)
}

// === DTOs ===

// ListUsersInput holds pagination parameters for user listing.
type ListUsersInput struct {
	Limit  int `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum number of users to return"`
	Offset int `query:"offset" default:"0" minimum:"0" doc:"Number of users to skip"`
}

// ProfileOutput wraps a single profile view for Huma.
type ProfileOutput struct {
	Body dto.ProfileView
}

// ProfilesOutput wraps a list of profile views for Huma.
type ProfilesOutput struct {
	Body []dto.ProfileView
}

// UserIDInput holds a user ID path parameter.
type UserIDInput struct {
	ID string `path:"id" doc:"User ID"`
}

// SubscribeInput holds the subscribe parameters. RecipesLimit is a raw
// string so junk values can be ignored instead of rejected.
type SubscribeInput struct {
	ID           string `path:"id" doc:"Author ID"`
	RecipesLimit string `query:"recipes_limit" doc:"Maximum number of recipes to include per author"`
}

// SubscriptionsInput holds the subscription listing parameters.
type SubscriptionsInput struct {
	RecipesLimit string `query:"recipes_limit" doc:"Maximum number of recipes to include per author"`
}

// === Handlers ===

func (s *Server) handleListUsers(ctx context.Context, input *ListUsersInput) (*ProfilesOutput, error) {
	users, err := s.services.User.List(ctx, input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}

	views, err := s.enricher.ProfileViews(ctx, GetViewer(ctx), users)
	if err != nil {
		return nil, err
	}
	return &ProfilesOutput{Body: views}, nil
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.User.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	view, err := s.enricher.ProfileView(ctx, GetViewer(ctx), user)
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: *view}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *UserIDInput) (*ProfileOutput, error) {
	user, err := s.services.User.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	view, err := s.enricher.ProfileView(ctx, GetViewer(ctx), user)
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: *view}, nil
}

func (s *Server) handleListSubscriptions(ctx context.Context, input *SubscriptionsInput) (*ProfilesOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	authors, err := s.services.Relation.Subscriptions(ctx, userID)
	if err != nil {
		return nil, err
	}

	recipesLimit := parseRecipesLimit(input.RecipesLimit)
	viewer := GetViewer(ctx)

	views := make([]dto.ProfileView, 0, len(authors))
	for _, author := range authors {
		view, err := s.enricher.SubscriptionView(ctx, viewer, author, recipesLimit)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return &ProfilesOutput{Body: views}, nil
}

func (s *Server) handleSubscribe(ctx context.Context, input *SubscribeInput) (*ProfileOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	author, err := s.services.Relation.Subscribe(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	view, err := s.enricher.SubscriptionView(ctx, GetViewer(ctx), author, parseRecipesLimit(input.RecipesLimit))
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: *view}, nil
}

func (s *Server) handleUnsubscribe(ctx context.Context, input *UserIDInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Relation.Unsubscribe(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Unsubscribed"}}, nil
}

// parseRecipesLimit interprets the recipes_limit query parameter.
// Anything that is not a positive integer means no truncation.
func parseRecipesLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0
	}
	return n
}
