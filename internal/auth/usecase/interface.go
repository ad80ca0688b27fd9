// Package usecase defines business logic interfaces for the credential
// lifecycle: issuance, rotation, reuse response and revocation.
package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/petclinic-auth/internal/auth/domain"
)

// UserRepository defines the read-only identity lookups consumed by the token
// kernel. Implementations must support transaction-aware operations via
// context propagation.
type UserRepository interface {
	// Get retrieves a user by id. Returns ErrUserNotFound if not found.
	Get(ctx context.Context, userID int64) (*authDomain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*authDomain.User, error)

	// GetOwnerByUserID retrieves the owner profile for a user.
	// Returns ErrOwnerNotFound if the user has no owner profile.
	GetOwnerByUserID(ctx context.Context, userID int64) (*authDomain.Owner, error)

	// Create stores a new user. Used only by the bootstrap command.
	Create(ctx context.Context, user *authDomain.User) error

	// CreateOwner stores a new owner profile. Used only by the bootstrap command.
	CreateOwner(ctx context.Context, owner *authDomain.Owner) error
}

// RefreshTokenRepository defines persistence operations for refresh token
// records. The repository exclusively owns the records; no other component
// mutates them directly. Implementations must support transaction-aware
// operations via context propagation.
type RefreshTokenRepository interface {
	// Create stores a new refresh token record.
	Create(ctx context.Context, token *authDomain.RefreshToken) error

	// GetByToken retrieves a record by its token value.
	// Returns ErrRefreshTokenNotFound if no record matches.
	GetByToken(ctx context.Context, token string) (*authDomain.RefreshToken, error)

	// GetActiveByUser retrieves all non-revoked, unexpired records for a user,
	// newest first.
	GetActiveByUser(ctx context.Context, userID int64) ([]*authDomain.RefreshToken, error)

	// Revoke conditionally sets revoked_at on the record if it is still
	// unset. Returns true if this call performed the transition, false if the
	// record was already revoked (or does not exist). This conditional write
	// is the serialization point for concurrent rotations of the same token.
	Revoke(ctx context.Context, token string, at time.Time) (bool, error)

	// RevokeAllByUser sets revoked_at on every non-revoked record belonging
	// to the user. Idempotent; overlapping invocations converge.
	RevokeAllByUser(ctx context.Context, userID int64, at time.Time) error

	// SetReplacedBy links a retired record to its successor token value.
	SetReplacedBy(ctx context.Context, token string, successor string) error

	// DeleteExpiredBefore removes records whose expiry passed before the
	// cutoff. Returns the number of rows removed. Maintenance only; the
	// lifecycle itself never deletes records.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// CountExpiredBefore counts records DeleteExpiredBefore would remove.
	CountExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// TokenUseCase defines the credential lifecycle operations exposed to the
// surrounding service.
type TokenUseCase interface {
	// Issue performs login issuance: validates the presented credentials,
	// gates on account status and type, resolves the owner profile, and
	// returns a new token pair while persisting the refresh record.
	//
	// Returns ErrInvalidCredentials for unknown emails and wrong passwords
	// alike, ErrAccountUnauthorized for inactive or non-owner accounts, and
	// ErrOwnerNotFound when the owner profile is missing.
	Issue(ctx context.Context, input *authDomain.IssueTokenInput) (*authDomain.TokenPair, error)

	// Rotate exchanges a refresh token for a new pair, retiring the old
	// record. Presenting an already-revoked token is treated as a
	// stolen-credential signal: every live session for the owning user is
	// revoked and ErrRefreshTokenReuse is returned.
	Rotate(ctx context.Context, oldToken string) (*authDomain.TokenPair, error)

	// RevokeOne idempotently revokes a single refresh token. Missing and
	// already-revoked tokens are successful no-ops.
	RevokeOne(ctx context.Context, token string) error

	// RevokeFamily revokes every live refresh token belonging to the user.
	RevokeFamily(ctx context.Context, userID int64) error

	// ActiveSessions lists the user's live refresh sessions.
	ActiveSessions(ctx context.Context, userID int64) ([]*authDomain.Session, error)

	// Authenticate fully validates an access token and returns its claims.
	Authenticate(ctx context.Context, accessToken string) (*authDomain.AccessClaims, error)
}
