package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TokenStore implements the store.TokenStore interface
// using a PostgreSQL database as the storage backend.
type TokenStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTokenStore creates a new PostgreSQL implementation of the TokenStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller.
func NewTokenStore(db store.DBTX, logger *slog.Logger) *TokenStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TokenStore{
		db:     db,
		logger: logger.With(slog.String("component", "token_store")),
	}
}

// Ensure TokenStore implements store.TokenStore interface
var _ store.TokenStore = (*TokenStore)(nil)

// Create implements store.TokenStore.Create
func (s *TokenStore) Create(ctx context.Context, token *domain.AuthToken) error {
	if err := token.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO auth_tokens (id, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.db.ExecContext(ctx, query,
		token.ID,
		token.UserID,
		token.CreatedAt,
		token.ExpiresAt,
	)
	if err != nil {
		s.logger.Error("failed to insert auth token", "error", err, "token_id", token.ID, "user_id", token.UserID)
		return fmt.Errorf("failed to insert auth token: %w", err)
	}

	return nil
}

// GetActive implements store.TokenStore.GetActive
func (s *TokenStore) GetActive(ctx context.Context, id uuid.UUID) (*domain.AuthToken, error) {
	query := `
		SELECT id, user_id, created_at, expires_at, revoked_at
		FROM auth_tokens
		WHERE id = $1 AND revoked_at IS NULL
	`

	var (
		token     domain.AuthToken
		revokedAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&token.ID,
		&token.UserID,
		&token.CreatedAt,
		&token.ExpiresAt,
		&revokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTokenNotFound
		}
		s.logger.Error("failed to scan auth token row", "error", err, "token_id", id)
		return nil, fmt.Errorf("failed to scan auth token row: %w", err)
	}

	if revokedAt.Valid {
		t := revokedAt.Time
		token.RevokedAt = &t
	}

	return &token, nil
}

// Revoke implements store.TokenStore.Revoke. Unknown and already revoked
// tokens are a no-op, so logout stays idempotent.
func (s *TokenStore) Revoke(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE auth_tokens
		SET revoked_at = $1
		WHERE id = $2 AND revoked_at IS NULL
	`

	if _, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id); err != nil {
		s.logger.Error("failed to revoke auth token", "error", err, "token_id", id)
		return fmt.Errorf("failed to revoke auth token: %w", err)
	}

	return nil
}
