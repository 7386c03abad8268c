package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AuthToken validation errors
var (
	ErrTokenIDEmpty     = errors.New("token ID cannot be empty")
	ErrTokenUserIDEmpty = errors.New("token user ID cannot be empty")
	ErrTokenNoExpiry    = errors.New("token expiry cannot be zero")
)

// AuthToken is the server-side record of an issued bearer credential.
// The ID doubles as the signed token's jti claim; deleting or revoking the
// row invalidates the credential even though the signature stays valid.
// A user may hold any number of live tokens at once.
type AuthToken struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"-"`
}

// NewAuthToken creates the persistence record for a token issued to userID.
// The caller supplies the jti and expiry produced by the token signer.
func NewAuthToken(id, userID uuid.UUID, expiresAt time.Time) (*AuthToken, error) {
	token := &AuthToken{
		ID:        id,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	}

	if err := token.Validate(); err != nil {
		return nil, err
	}

	return token, nil
}

// Validate checks if the AuthToken has valid data.
func (t *AuthToken) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTokenIDEmpty
	}
	if t.UserID == uuid.Nil {
		return ErrTokenUserIDEmpty
	}
	if t.ExpiresAt.IsZero() {
		return ErrTokenNoExpiry
	}
	return nil
}

// Revoked reports whether the token has been revoked.
func (t *AuthToken) Revoked() bool {
	return t.RevokedAt != nil
}

// Expired reports whether the token's lifetime has elapsed at the given time.
func (t *AuthToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
