package domain

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// User validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrNameTooLong         = errors.New("name must be at most 100 characters long")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmailTooLong        = errors.New("email must be at most 150 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")

	// Password strength policy errors. The policy requires at least 8
	// characters containing letters in both cases, a digit, and a symbol.
	// The upper bound is bcrypt's 72-byte input limit.
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong   = errors.New("password must be at most 72 characters long")
	ErrPasswordNoLetter  = errors.New("password must contain at least one letter")
	ErrPasswordNoDigit   = errors.New("password must contain at least one digit")
	ErrPasswordNoMixCase = errors.New("password must contain both upper and lower case letters")
	ErrPasswordNoSymbol  = errors.New("password must contain at least one symbol")
)

// User represents a registered user of the task API.
// The password is persisted only as a bcrypt hash; the plaintext never
// survives the registration or login request that carried it.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose the hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given name and email.
// It generates a new UUID for the user ID and sets the creation/update
// timestamps. The caller is responsible for hashing the password and
// assigning HashedPassword before the user is stored.
// Returns an error if validation fails.
func NewUser(name, email string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// HashedPassword is intentionally not checked here: a freshly constructed
// user has no hash yet. Stores enforce its presence via ValidateForStorage.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(u.Name) > 100 {
		return ErrNameTooLong
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if utf8.RuneCountInString(u.Email) > 150 {
		return ErrEmailTooLong
	}
	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidateForStorage checks the invariants a user must satisfy before it
// can be persisted, which includes having a password hash.
func (u *User) ValidateForStorage() error {
	if err := u.Validate(); err != nil {
		return err
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

// ValidatePasswordStrength checks a plaintext password against the
// registration policy: 8-72 characters with letters in both cases,
// at least one digit, and at least one symbol.
func ValidatePasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return ErrPasswordTooShort
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}

	var hasLetter, hasDigit, hasUpper, hasLower, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasLetter = true
			hasUpper = true
		case unicode.IsLower(r):
			hasLetter = true
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	switch {
	case !hasLetter:
		return ErrPasswordNoLetter
	case !hasUpper || !hasLower:
		return ErrPasswordNoMixCase
	case !hasDigit:
		return ErrPasswordNoDigit
	case !hasSymbol:
		return ErrPasswordNoSymbol
	}

	return nil
}

// validateEmailFormat performs basic validation of email format.
// It checks for a non-empty local part and a domain containing a dot,
// which matches the permissiveness of the upstream validation layer;
// the request DTOs apply the stricter validator `email` rule first.
func validateEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
