// Package auth implements registration, credential verification, and the
// issue/validate/revoke lifecycle of signed bearer tokens.
package auth

import "errors"

// Authentication errors returned by the auth service and token service.
var (
	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password. The two cases are deliberately indistinguishable so
	// login does not confirm whether an account exists.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned when a token is malformed, carries a bad
	// signature, or was signed with an unexpected method.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token's lifetime has elapsed.
	ErrExpiredToken = errors.New("token expired")

	// ErrRevokedToken is returned when a token's server-side record has
	// been revoked (or never existed), typically after logout.
	ErrRevokedToken = errors.New("token revoked")
)
