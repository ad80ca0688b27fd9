package dto

import "time"

// TokenPairResponse carries a freshly issued access/refresh token pair.
type TokenPairResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SessionResponse describes one live refresh session. Token values are never
// included.
type SessionResponse struct {
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	DeviceInfo string    `json:"device_info,omitempty"`
}

// SessionListResponse wraps the active sessions listing.
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}
