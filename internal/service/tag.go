package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/forkfulapp/forkful-server/internal/domain"
	"github.com/forkfulapp/forkful-server/internal/id"
	"github.com/forkfulapp/forkful-server/internal/store"
	"github.com/forkfulapp/forkful-server/internal/validation"
)

// TagService manages the fixed tag vocabulary. Tags are created by
// admins or seed tooling; everyone can read them.
type TagService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store *store.Store, logger *slog.Logger) *TagService {
	return &TagService{
		store:  store,
		logger: logger,
	}
}

// TagRequest contains the writable fields of a tag.
type TagRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"required,hexcolor"`
	Slug  string `json:"slug" validate:"required,max=200"`
}

// Create validates and stores a new tag.
func (s *TagService) Create(ctx context.Context, req TagRequest) (*domain.Tag, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	tagID, err := id.Generate(id.PrefixTag)
	if err != nil {
		return nil, fmt.Errorf("generate tag ID: %w", err)
	}

	tag := &domain.Tag{
		ID:        tagID,
		Name:      req.Name,
		Color:     req.Color,
		Slug:      req.Slug,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateTag(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.Info("tag created", "tag_id", tagID, "slug", tag.Slug)

	return tag, nil
}

// Get retrieves a tag by ID.
func (s *TagService) Get(ctx context.Context, tagID string) (*domain.Tag, error) {
	return s.store.GetTag(ctx, tagID)
}

// List returns all tags ordered by name.
func (s *TagService) List(ctx context.Context) ([]*domain.Tag, error) {
	return s.store.ListTags(ctx)
}
