package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/forkfulapp/forkful-server/internal/domain"
	"github.com/forkfulapp/forkful-server/internal/errors"
)

const sessionColumns = `id, user_id, refresh_token_hash, created_at, expires_at, revoked_at`

func scanSession(scanner interface{ Scan(dest ...any) error }) (*domain.Session, error) {
	var sess domain.Session

	var (
		createdAt string
		expiresAt string
		revokedAt sql.NullString
	)

	err := scanner.Scan(
		&sess.ID,
		&sess.UserID,
		&sess.RefreshTokenHash,
		&createdAt,
		&expiresAt,
		&revokedAt,
	)
	if err != nil {
		return nil, err
	}

	if sess.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if sess.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return nil, err
	}
	if sess.RevokedAt, err = parseNullableTime(revokedAt); err != nil {
		return nil, err
	}

	return &sess, nil
}

// CreateSession inserts a new refresh session.
func (s *Store) CreateSession(ctx context.Context, sess *domain.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, refresh_token_hash, created_at, expires_at, revoked_at)
		VALUES (?, ?, ?, ?, ?, NULL)`,
		sess.ID,
		sess.UserID,
		sess.RefreshTokenHash,
		formatTime(sess.CreatedAt),
		formatTime(sess.ExpiresAt),
	)
	return translateConstraintErr(err, "session already exists")
}

// GetSessionByTokenHash retrieves a session by refresh token hash.
// Returns NOT_FOUND if no such session exists.
func (s *Store) GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE refresh_token_hash = ?`, tokenHash)

	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("session not found")
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// RevokeSession marks a session as revoked. Revoking an already revoked
// session is a no-op.
func (s *Store) RevokeSession(ctx context.Context, sessionID string, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`,
		formatTime(at), sessionID)
	if err != nil {
		return err
	}
	if _, err := res.RowsAffected(); err != nil {
		return err
	}
	return nil
}

// DeleteExpiredSessions removes sessions that expired before the cutoff.
// Returns the number of rows deleted.
func (s *Store) DeleteExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
