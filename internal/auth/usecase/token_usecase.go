// Package usecase implements business logic orchestration for the credential
// lifecycle.
package usecase

import (
	"context"
	"errors"
	"time"

	authDomain "github.com/allisson/petclinic-auth/internal/auth/domain"
	authService "github.com/allisson/petclinic-auth/internal/auth/service"
	"github.com/allisson/petclinic-auth/internal/config"
	"github.com/allisson/petclinic-auth/internal/database"
)

// tokenUseCase implements TokenUseCase for issuing, rotating and revoking
// credentials.
type tokenUseCase struct {
	config              *config.Config
	userRepo            UserRepository
	refreshTokenRepo    RefreshTokenRepository
	txManager           database.TxManager
	accessTokenService  authService.AccessTokenService
	refreshTokenService authService.RefreshTokenService
	passwordService     authService.PasswordService
}

// Issue authenticates a user by email and password and generates a new token
// pair.
//
// This method:
// 1. Looks up the user by email
// 2. Verifies the password against the stored hash
// 3. Gates on account status and account type
// 4. Resolves the owner profile
// 5. Generates and persists a refresh token, signs an access token
//
// Security Notes:
//   - Returns ErrInvalidCredentials for both unknown emails and wrong
//     passwords to prevent account enumeration
//   - Returns ErrAccountUnauthorized for inactive or non-owner accounts
//   - The refresh token value is only ever returned here and at rotation
func (t *tokenUseCase) Issue(
	ctx context.Context,
	input *authDomain.IssueTokenInput,
) (*authDomain.TokenPair, error) {
	// Get the user by email
	user, err := t.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		// If user not found, return generic error to prevent enumeration
		if errors.Is(err, authDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	// Verify the password
	if !t.passwordService.ComparePassword(input.Password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	// Gate on account status and type
	if !user.CanAuthenticate() {
		return nil, authDomain.ErrAccountUnauthorized
	}

	// Resolve the owner profile
	owner, err := t.userRepo.GetOwnerByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	// Generate the opaque refresh token value
	refreshValue, err := t.refreshTokenService.Generate()
	if err != nil {
		return nil, err
	}

	// Sign the access token
	accessToken, accessExpiresAt, err := t.accessTokenService.Issue(user, owner.ID, now)
	if err != nil {
		return nil, err
	}

	// Persist the refresh token record
	record := &authDomain.RefreshToken{
		Token:      refreshValue,
		UserID:     user.ID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(t.config.RefreshTokenExpiration),
		DeviceInfo: optionalString(input.DeviceInfo),
	}
	if err := t.refreshTokenRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &authDomain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshValue,
		ExpiresAt:    accessExpiresAt,
	}, nil
}

// Rotate exchanges a valid refresh token for a new pair, retiring the old
// record.
//
// This method:
// 1. Looks up the record by token value
// 2. Treats an already-revoked record as credential theft: revokes every
//    live token belonging to the user and returns ErrRefreshTokenReuse
// 3. Rejects expired records
// 4. Gates on the owning user's account status and type
// 5. Resolves the owner profile
// 6. Atomically retires the old record, creates the successor and links them
//
// The retire step is a conditional update on revoked_at. When two rotations
// of the same token race, exactly one wins the conditional write; the loser's
// transaction rolls back and is answered with the reuse response, so a new
// pair never leaks on the losing path.
func (t *tokenUseCase) Rotate(ctx context.Context, oldToken string) (*authDomain.TokenPair, error) {
	record, err := t.refreshTokenRepo.GetByToken(ctx, oldToken)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	// An already-revoked token means its value was captured and replayed
	if record.Revoked() {
		return nil, t.respondToReuse(ctx, record.UserID, now)
	}

	if record.Expired(now) {
		return nil, authDomain.ErrRefreshTokenExpired
	}

	// Gate on the owning user
	user, err := t.userRepo.Get(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, authDomain.ErrUserNotFound) {
			return nil, authDomain.ErrAccountUnauthorized
		}
		return nil, err
	}
	if !user.CanAuthenticate() {
		return nil, authDomain.ErrAccountUnauthorized
	}

	// Resolve the owner profile
	owner, err := t.userRepo.GetOwnerByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	// Generate the successor value
	refreshValue, err := t.refreshTokenService.Generate()
	if err != nil {
		return nil, err
	}

	// Sign the access token
	accessToken, accessExpiresAt, err := t.accessTokenService.Issue(user, owner.ID, now)
	if err != nil {
		return nil, err
	}

	// Retire the old record, create the successor and link them atomically
	err = t.txManager.WithTx(ctx, func(ctx context.Context) error {
		revoked, err := t.refreshTokenRepo.Revoke(ctx, oldToken, now)
		if err != nil {
			return err
		}
		if !revoked {
			// A concurrent rotation won the conditional write
			return authDomain.ErrRefreshTokenReuse
		}

		successor := &authDomain.RefreshToken{
			Token:      refreshValue,
			UserID:     record.UserID,
			CreatedAt:  now,
			ExpiresAt:  now.Add(t.config.RefreshTokenExpiration),
			DeviceInfo: record.DeviceInfo,
		}
		if err := t.refreshTokenRepo.Create(ctx, successor); err != nil {
			return err
		}

		return t.refreshTokenRepo.SetReplacedBy(ctx, oldToken, refreshValue)
	})
	if err != nil {
		if errors.Is(err, authDomain.ErrRefreshTokenReuse) {
			return nil, t.respondToReuse(ctx, record.UserID, now)
		}
		return nil, err
	}

	return &authDomain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshValue,
		ExpiresAt:    accessExpiresAt,
	}, nil
}

// RevokeOne revokes a single refresh token. Missing and already-revoked
// tokens are successful no-ops, so logout never leaks whether a presented
// value was live.
func (t *tokenUseCase) RevokeOne(ctx context.Context, token string) error {
	_, err := t.refreshTokenRepo.Revoke(ctx, token, time.Now().UTC())
	return err
}

// RevokeFamily revokes every live refresh token belonging to the user.
func (t *tokenUseCase) RevokeFamily(ctx context.Context, userID int64) error {
	return t.refreshTokenRepo.RevokeAllByUser(ctx, userID, time.Now().UTC())
}

// ActiveSessions lists the user's live refresh sessions as a read model that
// never exposes token values.
func (t *tokenUseCase) ActiveSessions(ctx context.Context, userID int64) ([]*authDomain.Session, error) {
	records, err := t.refreshTokenRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sessions := make([]*authDomain.Session, 0, len(records))
	for _, record := range records {
		session := &authDomain.Session{
			CreatedAt: record.CreatedAt,
			ExpiresAt: record.ExpiresAt,
		}
		if record.DeviceInfo != nil {
			session.DeviceInfo = *record.DeviceInfo
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// Authenticate fully validates an access token and returns its claims.
func (t *tokenUseCase) Authenticate(ctx context.Context, accessToken string) (*authDomain.AccessClaims, error) {
	return t.accessTokenService.Verify(accessToken)
}

// respondToReuse revokes the user's entire session family and returns
// ErrRefreshTokenReuse. Infrastructure failures during the family revocation
// are propagated instead, so a partial response is never mistaken for the
// reuse outcome.
func (t *tokenUseCase) respondToReuse(ctx context.Context, userID int64, now time.Time) error {
	if err := t.refreshTokenRepo.RevokeAllByUser(ctx, userID, now); err != nil {
		return err
	}
	return authDomain.ErrRefreshTokenReuse
}

// optionalString maps the empty string to a NULL-able column value.
func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	config *config.Config,
	userRepo UserRepository,
	refreshTokenRepo RefreshTokenRepository,
	txManager database.TxManager,
	accessTokenService authService.AccessTokenService,
	refreshTokenService authService.RefreshTokenService,
	passwordService authService.PasswordService,
) TokenUseCase {
	return &tokenUseCase{
		config:              config,
		userRepo:            userRepo,
		refreshTokenRepo:    refreshTokenRepo,
		txManager:           txManager,
		accessTokenService:  accessTokenService,
		refreshTokenService: refreshTokenService,
		passwordService:     passwordService,
	}
}
