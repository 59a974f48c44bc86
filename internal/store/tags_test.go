package store

import (
	"context"
	"testing"
	"time"

	"github.com/forkfulapp/forkful-server/internal/domain"
	"github.com/forkfulapp/forkful-server/internal/errors"
)

func TestCreateAndListTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTag(t, s, "tag_1", "Dinner", "dinner")
	mustCreateTag(t, s, "tag_2", "Breakfast", "breakfast")

	tags, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(tags))
	}
	// Ordered by name.
	if tags[0].Name != "Breakfast" || tags[1].Name != "Dinner" {
		t.Errorf("unexpected order: %s, %s", tags[0].Name, tags[1].Name)
	}
}

func TestCreateTag_DuplicateSlug(t *testing.T) {
	s := newTestStore(t)

	mustCreateTag(t, s, "tag_1", "Dinner", "dinner")

	err := s.CreateTag(context.Background(), &domain.Tag{
		ID:        "tag_2",
		Name:      "Supper",
		Slug:      "dinner",
		CreatedAt: time.Now(),
	})
	if !errors.Is(err, errors.ErrAlreadyExists) {
		t.Fatalf("expected ALREADY_EXISTS, got %v", err)
	}
}

func TestGetTag_NotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetTag(context.Background(), "missing"); !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if _, err := s.GetTagBySlug(context.Background(), "missing"); !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestGetTagsByIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTag(t, s, "tag_1", "Dinner", "dinner")
	mustCreateTag(t, s, "tag_2", "Breakfast", "breakfast")

	tags, err := s.GetTagsByIDs(ctx, []string{"tag_1", "tag_2"})
	if err != nil {
		t.Fatalf("GetTagsByIDs: %v", err)
	}
	if len(tags) != 2 || tags[0].Name != "Breakfast" {
		t.Errorf("unexpected result: %+v", tags)
	}

	if _, err := s.GetTagsByIDs(ctx, []string{"tag_1", "missing"}); !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND for unknown ID, got %v", err)
	}
}
