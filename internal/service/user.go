package service

import (
	"context"
	"log/slog"

	"github.com/forkfulapp/forkful-server/internal/domain"
	"github.com/forkfulapp/forkful-server/internal/store"
)

// UserService provides read access to user accounts.
type UserService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store *store.Store, logger *slog.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.GetUser(ctx, userID)
}

// List returns users ordered by username with limit/offset pagination.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return s.store.ListUsers(ctx, limit, offset)
}
