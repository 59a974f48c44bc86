package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/forkfulapp/forkful-server/internal/domain"
	"github.com/forkfulapp/forkful-server/internal/errors"
)

const ingredientColumns = `id, name, measurement_unit, created_at`

func scanIngredient(scanner interface{ Scan(dest ...any) error }) (*domain.Ingredient, error) {
	var ing domain.Ingredient

	var createdAt string

	err := scanner.Scan(
		&ing.ID,
		&ing.Name,
		&ing.MeasurementUnit,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if ing.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}

	return &ing, nil
}

// CreateIngredient inserts a new ingredient.
// Returns ALREADY_EXISTS on a duplicate (name, measurement_unit) pair.
func (s *Store) CreateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingredients (id, name, measurement_unit, created_at)
		VALUES (?, ?, ?, ?)`,
		ing.ID,
		ing.Name,
		ing.MeasurementUnit,
		formatTime(ing.CreatedAt),
	)
	return translateConstraintErr(err, "ingredient with this name and unit already exists")
}

// GetIngredient retrieves an ingredient by ID.
// Returns NOT_FOUND if the ingredient does not exist.
func (s *Store) GetIngredient(ctx context.Context, ingredientID string) (*domain.Ingredient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id = ?`, ingredientID)

	ing, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("ingredient not found")
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// ListIngredients returns ingredients ordered by name, optionally
// narrowed to those whose name starts with namePrefix (case-insensitive).
// A limit <= 0 means no limit.
func (s *Store) ListIngredients(ctx context.Context, namePrefix string, limit int) ([]*domain.Ingredient, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `SELECT ` + ingredientColumns + ` FROM ingredients`
	args := []any{}
	if namePrefix != "" {
		// Escape LIKE wildcards in the user-supplied prefix.
		escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(namePrefix)
		query += ` WHERE name LIKE ? ESCAPE '\' COLLATE NOCASE`
		args = append(args, escaped+"%")
	}
	query += ` ORDER BY name ASC, measurement_unit ASC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []*domain.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

// GetIngredientsByIDs returns the ingredients for the given IDs.
// Returns NOT_FOUND if any ID does not resolve to an ingredient.
func (s *Store) GetIngredientsByIDs(ctx context.Context, ids []string) (map[string]*domain.Ingredient, error) {
	if len(ids) == 0 {
		return map[string]*domain.Ingredient{}, nil
	}

	placeholders := strings.Repeat("?,", len(ids)-1) + "?"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id IN (`+placeholders+`)`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]*domain.Ingredient, len(ids))
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		byID[ing.ID] = ing
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, errors.NotFoundf("ingredient %s not found", id)
		}
	}
	return byID, nil
}
