package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefreshToken_States(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-1 * time.Hour)
	future := now.Add(1 * time.Hour)
	successor := "successor-token"

	tests := []struct {
		name          string
		token         *RefreshToken
		expectRevoked bool
		expectRotated bool
		expectExpired bool
		expectActive  bool
	}{
		{
			name: "Active",
			token: &RefreshToken{
				Token:     "token-1",
				ExpiresAt: future,
			},
			expectRevoked: false,
			expectRotated: false,
			expectExpired: false,
			expectActive:  true,
		},
		{
			name: "Expired",
			token: &RefreshToken{
				Token:     "token-2",
				ExpiresAt: past,
			},
			expectRevoked: false,
			expectRotated: false,
			expectExpired: true,
			expectActive:  false,
		},
		{
			name: "Rotated",
			token: &RefreshToken{
				Token:      "token-3",
				ExpiresAt:  future,
				RevokedAt:  &past,
				ReplacedBy: &successor,
			},
			expectRevoked: true,
			expectRotated: true,
			expectExpired: false,
			expectActive:  false,
		},
		{
			name: "Revoked",
			token: &RefreshToken{
				Token:     "token-4",
				ExpiresAt: future,
				RevokedAt: &past,
			},
			expectRevoked: true,
			expectRotated: false,
			expectExpired: false,
			expectActive:  false,
		},
		{
			name: "RevokedAndExpired",
			token: &RefreshToken{
				Token:     "token-5",
				ExpiresAt: past,
				RevokedAt: &past,
			},
			expectRevoked: true,
			expectRotated: false,
			expectExpired: true,
			expectActive:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectRevoked, tt.token.Revoked())
			assert.Equal(t, tt.expectRotated, tt.token.Rotated())
			assert.Equal(t, tt.expectExpired, tt.token.Expired(now))
			assert.Equal(t, tt.expectActive, tt.token.Active(now))
		})
	}
}

func TestRefreshToken_ExpiryBoundary(t *testing.T) {
	now := time.Now().UTC()
	token := &RefreshToken{
		Token:     "boundary-token",
		ExpiresAt: now,
	}

	// A token expiring exactly now is no longer usable.
	assert.True(t, token.Expired(now))
	assert.False(t, token.Active(now))
	assert.False(t, token.Expired(now.Add(-time.Nanosecond)))
}
