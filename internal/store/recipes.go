package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/forkfulapp/forkful-server/internal/domain"
	"github.com/forkfulapp/forkful-server/internal/errors"
)

const recipeColumns = `id, author_id, name, image, text, cooking_time, created_at, updated_at`

// RecipeFilter narrows ListRecipes. Zero values mean "no filter".
type RecipeFilter struct {
	AuthorID    string
	TagSlugs    []string // recipes carrying ANY of these tags
	FavoritedBy string   // recipes favorited by this user
	InCartOf    string   // recipes in this user's shopping cart
	Limit       int
	Offset      int
}

func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*domain.Recipe, error) {
	var r domain.Recipe

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&r.ID,
		&r.AuthorID,
		&r.Name,
		&r.Image,
		&r.Text,
		&r.CookingTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &r, nil
}

// CreateRecipe inserts a recipe together with its tag links and
// ingredient lines in one transaction.
func (s *Store) CreateRecipe(ctx context.Context, r *domain.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recipes (id, author_id, name, image, text, cooking_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.AuthorID,
		r.Name,
		r.Image,
		r.Text,
		r.CookingTime,
		formatTime(r.CreatedAt),
		formatTime(r.UpdatedAt),
	)
	if err != nil {
		return translateConstraintErr(err, "recipe already exists")
	}

	if err := insertRecipeLinks(ctx, tx, r); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateRecipe rewrites the recipe row and replaces its tag links and
// ingredient lines wholesale, all in one transaction.
func (s *Store) UpdateRecipe(ctx context.Context, r *domain.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE recipes SET name = ?, image = ?, text = ?, cooking_time = ?, updated_at = ?
		WHERE id = ?`,
		r.Name,
		r.Image,
		r.Text,
		r.CookingTime,
		formatTime(r.UpdatedAt),
		r.ID,
	)
	if err != nil {
		return translateConstraintErr(err, "recipe already exists")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NotFound("recipe not found")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = ?`, r.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, r.ID); err != nil {
		return err
	}

	if err := insertRecipeLinks(ctx, tx, r); err != nil {
		return err
	}

	return tx.Commit()
}

func insertRecipeLinks(ctx context.Context, tx *sql.Tx, r *domain.Recipe) error {
	for _, tagID := range r.TagIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_tags (recipe_id, tag_id) VALUES (?, ?)`,
			r.ID, tagID)
		if err != nil {
			return translateConstraintErr(err, "duplicate tag on recipe")
		}
	}
	for _, line := range r.Ingredients {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount) VALUES (?, ?, ?)`,
			r.ID, line.IngredientID, line.Amount)
		if err != nil {
			return translateConstraintErr(err, "duplicate ingredient on recipe")
		}
	}
	return nil
}

// DeleteRecipe removes a recipe. Tag links and ingredient lines cascade;
// favorite and cart rows reference recipes only by ID, so they are
// swept in the same transaction.
// Returns NOT_FOUND if the recipe does not exist.
func (s *Store) DeleteRecipe(ctx context.Context, recipeID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, recipeID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NotFound("recipe not found")
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM user_relations
		WHERE kind IN ('favorite', 'cart') AND target_id = ?`, recipeID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetRecipe retrieves a recipe with its tag IDs and ingredient lines.
// Returns NOT_FOUND if the recipe does not exist.
func (s *Store) GetRecipe(ctx context.Context, recipeID string) (*domain.Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, recipeID)

	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("recipe not found")
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadRecipeLinks(ctx, []*domain.Recipe{r}); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRecipes returns recipes matching the filter, most recent first.
// Tag IDs and ingredient lines are loaded for every returned recipe.
func (s *Store) ListRecipes(ctx context.Context, filter RecipeFilter) ([]*domain.Recipe, error) {
	var (
		where []string
		args  []any
	)

	if filter.AuthorID != "" {
		where = append(where, `r.author_id = ?`)
		args = append(args, filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		placeholders, tagArgs := inClause(filter.TagSlugs)
		where = append(where, `r.id IN (
			SELECT rt.recipe_id FROM recipe_tags rt
			JOIN tags t ON t.id = rt.tag_id
			WHERE t.slug IN (`+placeholders+`))`)
		args = append(args, tagArgs...)
	}
	if filter.FavoritedBy != "" {
		where = append(where, `r.id IN (
			SELECT target_id FROM user_relations
			WHERE kind = 'favorite' AND user_id = ?)`)
		args = append(args, filter.FavoritedBy)
	}
	if filter.InCartOf != "" {
		where = append(where, `r.id IN (
			SELECT target_id FROM user_relations
			WHERE kind = 'cart' AND user_id = ?)`)
		args = append(args, filter.InCartOf)
	}

	query := `SELECT ` + recipeColumns + ` FROM recipes r`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY r.created_at DESC, r.id ASC LIMIT ? OFFSET ?`

	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []*domain.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadRecipeLinks(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// CountRecipesByAuthor counts the recipes a user has published.
func (s *Store) CountRecipesByAuthor(ctx context.Context, authorID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recipes WHERE author_id = ?`, authorID).Scan(&n)
	return n, err
}

// loadRecipeLinks fills TagIDs and Ingredients for the given recipes
// with two batched queries.
func (s *Store) loadRecipeLinks(ctx context.Context, recipes []*domain.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	ids := make([]string, len(recipes))
	byID := make(map[string]*domain.Recipe, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
		byID[r.ID] = r
		r.TagIDs = []string{}
		r.Ingredients = []domain.IngredientLine{}
	}

	placeholders, args := inClause(ids)

	tagRows, err := s.db.QueryContext(ctx, `
		SELECT rt.recipe_id, rt.tag_id FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id IN (`+placeholders+`)
		ORDER BY t.name ASC`,
		args...)
	if err != nil {
		return err
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var recipeID, tagID string
		if err := tagRows.Scan(&recipeID, &tagID); err != nil {
			return err
		}
		r := byID[recipeID]
		r.TagIDs = append(r.TagIDs, tagID)
	}
	if err := tagRows.Err(); err != nil {
		return err
	}

	lineRows, err := s.db.QueryContext(ctx, `
		SELECT ri.recipe_id, ri.ingredient_id, ri.amount FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id IN (`+placeholders+`)
		ORDER BY i.name ASC, i.measurement_unit ASC`,
		args...)
	if err != nil {
		return err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var (
			recipeID string
			line     domain.IngredientLine
		)
		if err := lineRows.Scan(&recipeID, &line.IngredientID, &line.Amount); err != nil {
			return err
		}
		r := byID[recipeID]
		r.Ingredients = append(r.Ingredients, line)
	}
	return lineRows.Err()
}
