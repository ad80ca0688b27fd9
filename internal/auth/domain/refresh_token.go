package domain

import "time"

// RefreshToken is a persisted long-lived credential. The opaque token value is
// the record's natural key and is immutable after creation. Records are never
// deleted by the lifecycle itself; revoked and rotated rows remain as the
// session audit trail.
//
// State machine:
//   - Active:  RevokedAt unset, ExpiresAt in the future.
//   - Expired: RevokedAt unset, ExpiresAt passed.
//   - Rotated: RevokedAt set by rotation, ReplacedBy set.
//   - Revoked: RevokedAt set by logout or family revocation, ReplacedBy unset.
//
// RevokedAt is monotonic: once set it is never cleared, and ReplacedBy is only
// ever set together with RevokedAt.
type RefreshToken struct {
	Token      string
	UserID     int64
	CreatedAt  time.Time
	ExpiresAt  time.Time
	RevokedAt  *time.Time
	ReplacedBy *string
	DeviceInfo *string
}

// Revoked reports whether the record has been retired, either by rotation or
// by explicit revocation.
func (r *RefreshToken) Revoked() bool {
	return r.RevokedAt != nil
}

// Rotated reports whether the record was retired by rotation into a successor.
func (r *RefreshToken) Rotated() bool {
	return r.RevokedAt != nil && r.ReplacedBy != nil
}

// Expired reports whether the record's expiry has passed at the given instant.
func (r *RefreshToken) Expired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}

// Active reports whether the record can still be rotated at the given instant.
func (r *RefreshToken) Active(now time.Time) bool {
	return !r.Revoked() && !r.Expired(now)
}

// TokenPair is the result of login issuance and of a successful rotation.
// The refresh token value is only ever returned here; ExpiresAt is the access
// token's expiry.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// IssueTokenInput carries the credentials presented at login issuance.
type IssueTokenInput struct {
	Email      string
	Password   string
	DeviceInfo string
}

// Session is the read model returned by the active sessions listing.
type Session struct {
	CreatedAt  time.Time
	ExpiresAt  time.Time
	DeviceInfo string
}
