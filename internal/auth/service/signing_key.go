package service

import (
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/allisson/petclinic-auth/internal/errors"
)

// minSigningSecretLength is the minimum accepted secret size in bytes.
// HS256 secrets shorter than the hash output weaken the MAC.
const minSigningSecretLength = 32

// SigningKey holds the process-wide symmetric signing secret and algorithm.
// Immutable for the process lifetime; constructed once at startup.
type SigningKey struct {
	secret []byte
	method *jwt.SigningMethodHMAC
}

// NewSigningKey validates and wraps the configured signing secret.
// An empty or short secret is a fatal startup configuration error, not a
// per-call failure.
func NewSigningKey(secret string) (*SigningKey, error) {
	if len(secret) < minSigningSecretLength {
		return nil, apperrors.New("jwt signing secret must be at least 32 bytes")
	}
	return &SigningKey{
		secret: []byte(secret),
		method: jwt.SigningMethodHS256,
	}, nil
}

// Secret returns the raw secret bytes for signing and verification.
func (k *SigningKey) Secret() []byte {
	return k.secret
}

// Method returns the fixed signing method. Tokens declaring any other
// algorithm are rejected before the key is used.
func (k *SigningKey) Method() *jwt.SigningMethodHMAC {
	return k.method
}
