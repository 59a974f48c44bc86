package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/forkfulapp/forkful-server/internal/domain"
	"github.com/forkfulapp/forkful-server/internal/store"
)

// ShoppingService builds the aggregated shopping list for a user's cart.
type ShoppingService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewShoppingService creates a new shopping list service.
func NewShoppingService(store *store.Store, logger *slog.Logger) *ShoppingService {
	return &ShoppingService{
		store:  store,
		logger: logger,
	}
}

// List returns the user's shopping list: one entry per (name, unit)
// pair with amounts summed across every recipe in the cart, sorted by
// ingredient name.
func (s *ShoppingService) List(ctx context.Context, userID string) ([]domain.ShoppingItem, error) {
	return s.store.AggregateShoppingList(ctx, userID)
}

// Render formats a shopping list as downloadable plain text.
func (s *ShoppingService) Render(items []domain.ShoppingItem) string {
	var b strings.Builder
	b.WriteString("Shopping list:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "%s — %d %s\n", item.Name, item.Amount, item.MeasurementUnit)
	}
	if len(items) > 0 {
		b.WriteString("\nHappy cooking!\n")
	}
	return b.String()
}
