package service

import (
	"crypto/rand"
	"encoding/base64"

	apperrors "github.com/allisson/petclinic-auth/internal/errors"
)

// refreshTokenEntropyBytes is the amount of entropy in a refresh token.
// 64 bytes keeps offline guessing and enumeration computationally infeasible
// even with the plaintext-at-rest storage model.
const refreshTokenEntropyBytes = 64

// refreshTokenService implements RefreshTokenService over crypto/rand.
type refreshTokenService struct{}

// Generate creates a new cryptographically secure 64-byte random token.
// The token is base64 URL-encoded for easy transmission and storage.
func (r *refreshTokenService) Generate() (string, error) {
	randomBytes := make([]byte, refreshTokenEntropyBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", apperrors.Wrap(err, "failed to generate refresh token")
	}

	return base64.URLEncoding.EncodeToString(randomBytes), nil
}

// NewRefreshTokenService creates a new RefreshTokenService instance.
func NewRefreshTokenService() RefreshTokenService {
	return &refreshTokenService{}
}
