package store

import (
	"context"

	"github.com/forkfulapp/forkful-server/internal/domain"
)

// AggregateShoppingList sums ingredient amounts across every recipe in
// the user's cart. Lines sharing an ingredient name and measurement
// unit collapse into one entry; results come back sorted by name, then
// unit. An empty cart yields an empty slice.
func (s *Store) AggregateShoppingList(ctx context.Context, userID string) ([]domain.ShoppingItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.name, i.measurement_unit, SUM(ri.amount) AS total
		FROM user_relations ur
		JOIN recipe_ingredients ri ON ri.recipe_id = ur.target_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ur.kind = 'cart' AND ur.user_id = ?
		GROUP BY i.name, i.measurement_unit
		ORDER BY i.name ASC, i.measurement_unit ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.ShoppingItem{}
	for rows.Next() {
		var item domain.ShoppingItem
		if err := rows.Scan(&item.Name, &item.MeasurementUnit, &item.Amount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
