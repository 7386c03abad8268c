package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TokenStore defines the interface for auth token persistence.
// A row per issued token is what makes bearer credentials revocable:
// validation requires both a good signature and a live row.
type TokenStore interface {
	// Create saves the record of a freshly issued token.
	Create(ctx context.Context, token *domain.AuthToken) error

	// GetActive retrieves a token by ID only if it has not been revoked.
	// Returns ErrTokenNotFound for unknown or revoked tokens; expiry is
	// checked by the caller against the signed claims.
	GetActive(ctx context.Context, id uuid.UUID) (*domain.AuthToken, error)

	// Revoke marks the token revoked. Revoking an unknown or already
	// revoked token is a no-op, which makes logout idempotent.
	Revoke(ctx context.Context, id uuid.UUID) error
}
