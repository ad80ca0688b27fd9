package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordService(t *testing.T) {
	service := NewPasswordService()
	assert.NotNil(t, service)
	assert.IsType(t, &passwordService{}, service)
}

func TestPasswordService_HashPassword(t *testing.T) {
	service := NewPasswordService()

	t.Run("Success_HashPassword", func(t *testing.T) {
		hashed, err := service.HashPassword("correct-horse-battery-staple")
		require.NoError(t, err)

		assert.NotEmpty(t, hashed)
		assert.NotEqual(t, "correct-horse-battery-staple", hashed)
		assert.True(t, strings.HasPrefix(hashed, "$argon2id$"), "hash should use argon2id")
	})

	t.Run("Success_UniqueSalts", func(t *testing.T) {
		hash1, err := service.HashPassword("same-password")
		require.NoError(t, err)

		hash2, err := service.HashPassword("same-password")
		require.NoError(t, err)

		assert.NotEqual(t, hash1, hash2, "each hash should use a fresh salt")
	})
}

func TestPasswordService_ComparePassword(t *testing.T) {
	service := NewPasswordService()

	hashed, err := service.HashPassword("correct-horse-battery-staple")
	require.NoError(t, err)

	t.Run("Success_MatchingPassword", func(t *testing.T) {
		assert.True(t, service.ComparePassword("correct-horse-battery-staple", hashed))
	})

	t.Run("Failure_WrongPassword", func(t *testing.T) {
		assert.False(t, service.ComparePassword("wrong-password", hashed))
	})

	t.Run("Failure_InvalidHash", func(t *testing.T) {
		assert.False(t, service.ComparePassword("correct-horse-battery-staple", "not-a-hash"))
	})
}
