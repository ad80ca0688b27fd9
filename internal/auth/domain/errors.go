package domain

import (
	"github.com/allisson/petclinic-auth/internal/errors"
)

// Rotation outcome errors. All of these are expected, recoverable results of
// presenting a refresh token; infrastructure faults are wrapped separately and
// must never collapse into one of these.
var (
	// ErrRefreshTokenNotFound indicates no record matches the presented value.
	ErrRefreshTokenNotFound = errors.Wrap(errors.ErrUnauthorized, "refresh token not found")

	// ErrRefreshTokenReuse indicates the record matched but was already
	// revoked: a stolen-credential signal. Rotation responds by revoking the
	// user's entire session family before returning this error.
	ErrRefreshTokenReuse = errors.Wrap(errors.ErrUnauthorized, "refresh token reuse detected")

	// ErrRefreshTokenExpired indicates the record matched, is not revoked,
	// but its expiry has passed.
	ErrRefreshTokenExpired = errors.Wrap(errors.ErrUnauthorized, "refresh token expired")

	// ErrAccountUnauthorized indicates the owning user is missing, inactive,
	// or not an owner account.
	ErrAccountUnauthorized = errors.Wrap(errors.ErrUnauthorized, "account not authorized")

	// ErrOwnerNotFound indicates the owner profile is missing for an
	// otherwise valid user.
	ErrOwnerNotFound = errors.Wrap(errors.ErrUnauthorized, "owner profile not found")
)

// Identity and credential errors.
var (
	// ErrUserNotFound indicates a user with the specified id or email was not found.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrInvalidCredentials indicates the presented email/password pair is wrong.
	// Kept generic to prevent account enumeration.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidAccessToken indicates an access token failed structural,
	// signature, issuer, audience, or algorithm validation.
	ErrInvalidAccessToken = errors.Wrap(errors.ErrUnauthorized, "invalid access token")
)
