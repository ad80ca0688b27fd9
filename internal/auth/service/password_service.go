package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/petclinic-auth/internal/errors"
)

// passwordService implements PasswordService using Argon2id.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// HashPassword hashes a plain text password using Argon2id.
func (s *passwordService) HashPassword(plain string) (string, error) {
	hashed, err := s.hasher.Hash([]byte(plain))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashed, nil
}

// ComparePassword performs a constant-time comparison between a plain
// password and its stored hash.
func (s *passwordService) ComparePassword(plain string, hashed string) bool {
	ok, err := s.hasher.Verify([]byte(plain), hashed)
	if err != nil {
		return false
	}
	return ok
}

// NewPasswordService creates a new PasswordService instance using Argon2id.
// Uses the Moderate policy for a balance between security and performance.
func NewPasswordService() PasswordService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &passwordService{
		hasher: hasher,
	}
}
