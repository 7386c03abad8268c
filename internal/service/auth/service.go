package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// RegisterInput carries the validated fields of a registration request.
type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// Service implements registration, login, and logout on top of the user and
// token stores. Every method takes its identity explicitly; the service
// holds no ambient request state.
type Service struct {
	users    store.UserStore
	tokens   store.TokenStore
	tokenSvc TokenService
	hasher   PasswordHasher
	verifier PasswordVerifier
	logger   *slog.Logger
}

// NewService creates a new auth Service with the given dependencies.
func NewService(
	users store.UserStore,
	tokens store.TokenStore,
	tokenSvc TokenService,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		users:    users,
		tokens:   tokens,
		tokenSvc: tokenSvc,
		hasher:   hasher,
		verifier: verifier,
		logger:   log.With(slog.String("component", "auth_service")),
	}
}

// Register creates a new user account and issues its first bearer token.
//
// All constraint checks happen before any write: confirmation mismatch and
// weak passwords fail as field-scoped validation errors, and a duplicate
// email surfaces as a validation error on the email field rather than a
// storage error. On success the password exists only as a bcrypt hash.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	if input.Password != input.PasswordConfirmation {
		return nil, "", domain.NewValidationError("password", "Password confirmation does not match.", nil)
	}

	if err := domain.ValidatePasswordStrength(input.Password); err != nil {
		return nil, "", domain.NewValidationError("password", capitalizeError(err), err)
	}

	user, err := domain.NewUser(input.Name, input.Email)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, "", domain.NewValidationError("email", "This email is already registered.", err)
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login verifies the credentials and issues a fresh bearer token.
// An unknown email and a wrong password return the identical
// ErrInvalidCredentials, so the response does not reveal whether an
// account exists.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// Logout revokes the token presented by the current request.
// Idempotent: revoking an unknown or already revoked token succeeds.
func (s *Service) Logout(ctx context.Context, tokenID uuid.UUID) error {
	if tokenID == uuid.Nil {
		return nil
	}
	if err := s.tokens.Revoke(ctx, tokenID); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// CheckToken verifies a bearer token end to end: signature and expiry via
// the token service, then the live server-side record. Used by the
// authentication middleware.
func (s *Service) CheckToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.tokenSvc.Validate(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	record, err := s.tokens.GetActive(ctx, claims.TokenID)
	if err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			return nil, ErrRevokedToken
		}
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}

	if record.UserID != claims.UserID {
		// Signed claims disagreeing with the stored row means the token
		// cannot be trusted at all.
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// issueToken signs a fresh token and persists its revocation record.
func (s *Service) issueToken(ctx context.Context, userID uuid.UUID) (string, error) {
	signed, tokenID, expiresAt, err := s.tokenSvc.Generate(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	record, err := domain.NewAuthToken(tokenID, userID, expiresAt)
	if err != nil {
		return "", fmt.Errorf("failed to build token record: %w", err)
	}

	if err := s.tokens.Create(ctx, record); err != nil {
		return "", fmt.Errorf("failed to persist token record: %w", err)
	}

	return signed, nil
}

// capitalizeError upper-cases the first byte of an error message so it can
// be shown as a user-facing sentence.
func capitalizeError(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	if msg[0] >= 'a' && msg[0] <= 'z' {
		return string(msg[0]-('a'-'A')) + msg[1:]
	}
	return msg
}
