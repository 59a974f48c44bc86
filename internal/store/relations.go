package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/forkfulapp/forkful-server/internal/domain"
	"github.com/forkfulapp/forkful-server/internal/errors"
)

// AddRelation records a relation between a user and a target row.
// Returns ALREADY_EXISTS when the exact relation is already present,
// so callers can distinguish a repeat toggle from a first one.
func (s *Store) AddRelation(ctx context.Context, rel *domain.Relation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_relations (kind, user_id, target_id, created_at)
		VALUES (?, ?, ?, ?)`,
		string(rel.Kind),
		rel.UserID,
		rel.TargetID,
		formatTime(rel.CreatedAt),
	)
	return translateConstraintErr(err, "relation already exists")
}

// RemoveRelation deletes a relation.
// Returns NOT_FOUND when no such relation exists.
func (s *Store) RemoveRelation(ctx context.Context, kind domain.RelationKind, userID, targetID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM user_relations
		WHERE kind = ? AND user_id = ? AND target_id = ?`,
		string(kind), userID, targetID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NotFound("relation not found")
	}
	return nil
}

// HasRelation reports whether the relation exists.
func (s *Store) HasRelation(ctx context.Context, kind domain.RelationKind, userID, targetID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM user_relations
		WHERE kind = ? AND user_id = ? AND target_id = ?`,
		string(kind), userID, targetID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RelationFlags returns, for each target ID, whether the user holds the
// relation. Targets without the relation map to false. An empty user ID
// (anonymous viewer) yields all-false without touching the database.
func (s *Store) RelationFlags(ctx context.Context, kind domain.RelationKind, userID string, targetIDs []string) (map[string]bool, error) {
	flags := make(map[string]bool, len(targetIDs))
	for _, id := range targetIDs {
		flags[id] = false
	}
	if userID == "" || len(targetIDs) == 0 {
		return flags, nil
	}

	placeholders, args := inClause(targetIDs)
	args = append([]any{string(kind), userID}, args...)

	rows, err := s.db.QueryContext(ctx, `
		SELECT target_id FROM user_relations
		WHERE kind = ? AND user_id = ? AND target_id IN (`+placeholders+`)`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var targetID string
		if err := rows.Scan(&targetID); err != nil {
			return nil, err
		}
		flags[targetID] = true
	}
	return flags, rows.Err()
}

// ListRelationTargets returns the target IDs of the user's relations of
// the given kind, most recent first.
func (s *Store) ListRelationTargets(ctx context.Context, kind domain.RelationKind, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT target_id FROM user_relations
		WHERE kind = ? AND user_id = ?
		ORDER BY created_at DESC, target_id ASC`,
		string(kind), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []string
	for rows.Next() {
		var targetID string
		if err := rows.Scan(&targetID); err != nil {
			return nil, err
		}
		targets = append(targets, targetID)
	}
	return targets, rows.Err()
}

// CountRelationsByTarget counts how many users hold the relation on the
// target, e.g. a user's subscriber count.
func (s *Store) CountRelationsByTarget(ctx context.Context, kind domain.RelationKind, targetID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM user_relations WHERE kind = ? AND target_id = ?`,
		string(kind), targetID).Scan(&n)
	return n, err
}

// touchRelationTime is used by tests to age relation rows.
func (s *Store) touchRelationTime(ctx context.Context, kind domain.RelationKind, userID, targetID string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE user_relations SET created_at = ?
		WHERE kind = ? AND user_id = ? AND target_id = ?`,
		formatTime(at), string(kind), userID, targetID)
	return err
}
