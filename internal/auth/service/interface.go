// Package service provides the cryptographic services of the token kernel:
// access token signing and verification, opaque refresh token generation, and
// password hashing for login issuance.
package service

import (
	"time"

	authDomain "github.com/allisson/petclinic-auth/internal/auth/domain"
)

// AccessTokenService issues and validates signed access tokens.
type AccessTokenService interface {
	// Issue builds and signs an access token for the user, bound to the
	// given owner profile id. Returns the compact token and its expiry.
	Issue(user *authDomain.User, ownerID int64, now time.Time) (token string, expiresAt time.Time, err error)

	// Verify validates signature, algorithm, issuer, audience and expiry,
	// returning the embedded claims.
	Verify(token string) (*authDomain.AccessClaims, error)

	// ExtractExpiredClaims validates everything Verify does except expiry.
	// Used by callers that need to recover identity from a token known to be
	// stale. Returns ErrInvalidAccessToken on any structural or signature failure.
	ExtractExpiredClaims(token string) (*authDomain.AccessClaims, error)
}

// RefreshTokenService generates opaque refresh token values.
type RefreshTokenService interface {
	// Generate draws 64 bytes from a cryptographically secure random source
	// and returns them base64 URL-encoded.
	Generate() (string, error)
}

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	// HashPassword hashes a plain text password for storage.
	HashPassword(plain string) (string, error)

	// ComparePassword performs a constant-time comparison between a plain
	// password and its stored hash.
	ComparePassword(plain string, hashed string) bool
}
