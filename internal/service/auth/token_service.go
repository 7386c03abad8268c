package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
)

// TokenService defines operations for signing and verifying bearer tokens.
// Signature and expiry checks live here; revocation is the Service's
// concern because it needs the token store.
type TokenService interface {
	// Generate creates a signed bearer token for the user.
	// Returns the token string, its unique ID (the jti claim, which the
	// caller persists for revocation), and the expiry time.
	Generate(ctx context.Context, userID uuid.UUID) (token string, tokenID uuid.UUID, expiresAt time.Time, err error)

	// Validate verifies the token's signature and time claims and extracts
	// the claims. Returns ErrExpiredToken or ErrInvalidToken on failure.
	Validate(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims carries the verified content of a bearer token.
type Claims struct {
	// UserID is the user the token was issued for.
	UserID uuid.UUID

	// TokenID is the jti claim; its auth_tokens row must be live for the
	// token to authenticate a request.
	TokenID uuid.UUID

	// ExpiresAt is when the token stops being valid.
	ExpiresAt time.Time
}

// hmacTokenService is an implementation of TokenService using HMAC-SHA signing.
type hmacTokenService struct {
	signingKey    []byte
	tokenLifetime time.Duration
	timeFunc      func() time.Time // Injectable for testing
	clockSkew     time.Duration    // Allowed drift when validating time claims
}

// tokenClaims defines the structure of the JWT claims we sign.
type tokenClaims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

// Ensure hmacTokenService implements TokenService interface
var _ TokenService = (*hmacTokenService)(nil)

// NewTokenService creates a new token service using HMAC-SHA256 signing.
func NewTokenService(cfg config.AuthConfig) (TokenService, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	return &hmacTokenService{
		signingKey:    []byte(cfg.JWTSecret),
		tokenLifetime: time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		timeFunc:      time.Now,
		clockSkew:     2 * time.Minute,
	}, nil
}

// Generate creates a signed bearer token with user claims.
func (s *hmacTokenService) Generate(ctx context.Context, userID uuid.UUID) (string, uuid.UUID, time.Time, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()
	tokenID := uuid.New()
	expiresAt := now.Add(s.tokenLifetime)

	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        tokenID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign bearer token",
			"error", err,
			"user_id", userID,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", uuid.Nil, time.Time{}, fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}

	return signed, tokenID, expiresAt, nil
}

// Validate verifies a bearer token and returns the claims if valid.
func (s *hmacTokenService) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", "error", err)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token validation failed: malformed or bad signature", "error", err)
			return nil, ErrInvalidToken
		default:
			log.Debug("token validation failed",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	tokenID, err := uuid.Parse(claims.ID)
	if err != nil {
		log.Debug("token validation failed: jti is not a UUID", "error", err)
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID:    claims.UserID,
		TokenID:   tokenID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
