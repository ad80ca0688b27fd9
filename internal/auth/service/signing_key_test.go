package service

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSigningKey(t *testing.T) {
	t.Run("Success_ValidSecret", func(t *testing.T) {
		secret := strings.Repeat("a", 32)

		key, err := NewSigningKey(secret)
		require.NoError(t, err)

		assert.Equal(t, []byte(secret), key.Secret())
		assert.Equal(t, jwt.SigningMethodHS256, key.Method())
	})

	t.Run("Failure_EmptySecret", func(t *testing.T) {
		key, err := NewSigningKey("")

		assert.Error(t, err)
		assert.Nil(t, key)
		assert.Contains(t, err.Error(), "at least 32 bytes")
	})

	t.Run("Failure_ShortSecret", func(t *testing.T) {
		key, err := NewSigningKey(strings.Repeat("a", 31))

		assert.Error(t, err)
		assert.Nil(t, key)
	})
}
