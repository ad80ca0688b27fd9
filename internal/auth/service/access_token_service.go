package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/allisson/petclinic-auth/internal/auth/domain"
	apperrors "github.com/allisson/petclinic-auth/internal/errors"
)

// accessTokenService implements AccessTokenService using HMAC-signed JWTs.
type accessTokenService struct {
	key      *SigningKey
	issuer   string
	audience string
	lifetime time.Duration
}

// NewAccessTokenService creates an AccessTokenService bound to the process
// signing key and the configured issuer, audience and access token lifetime.
func NewAccessTokenService(key *SigningKey, issuer, audience string, lifetime time.Duration) AccessTokenService {
	return &accessTokenService{
		key:      key,
		issuer:   issuer,
		audience: audience,
		lifetime: lifetime,
	}
}

// Issue builds the claims set for the user, signs it and returns the compact
// token with its expiry. Pure function of its inputs and the process
// configuration; no side effects.
func (s *accessTokenService) Issue(
	user *authDomain.User,
	ownerID int64,
	now time.Time,
) (string, time.Time, error) {
	expiresAt := now.Add(s.lifetime)

	claims := authDomain.NewAccessClaims(user, ownerID)
	claims.Issuer = s.issuer
	claims.Audience = jwt.ClaimStrings{s.audience}
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(expiresAt)

	token := jwt.NewWithClaims(s.key.Method(), claims)
	signed, err := token.SignedString(s.key.Secret())
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign access token")
	}

	return signed, expiresAt, nil
}

// Verify performs full validation: algorithm, signature, issuer, audience and
// expiry. Returns ErrInvalidAccessToken on any failure.
func (s *accessTokenService) Verify(token string) (*authDomain.AccessClaims, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&authDomain.AccessClaims{},
		s.keyFunc,
		jwt.WithValidMethods([]string{s.key.Method().Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, authDomain.ErrInvalidAccessToken
	}

	claims, ok := parsed.Claims.(*authDomain.AccessClaims)
	if !ok {
		return nil, authDomain.ErrInvalidAccessToken
	}
	return claims, nil
}

// ExtractExpiredClaims validates signature, algorithm, issuer and audience
// exactly as Verify does, but does not reject a token solely because its
// expiry has passed.
func (s *accessTokenService) ExtractExpiredClaims(token string) (*authDomain.AccessClaims, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&authDomain.AccessClaims{},
		s.keyFunc,
		jwt.WithValidMethods([]string{s.key.Method().Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !parsed.Valid {
		return nil, authDomain.ErrInvalidAccessToken
	}

	claims, ok := parsed.Claims.(*authDomain.AccessClaims)
	if !ok {
		return nil, authDomain.ErrInvalidAccessToken
	}

	// Claims validation was skipped above; issuer and audience still apply.
	if claims.Issuer != s.issuer {
		return nil, authDomain.ErrInvalidAccessToken
	}
	if !claimsHasAudience(claims.Audience, s.audience) {
		return nil, authDomain.ErrInvalidAccessToken
	}

	return claims, nil
}

// keyFunc rejects tokens whose declared signing algorithm is not HMAC before
// handing out the secret. Guards against algorithm substitution.
func (s *accessTokenService) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, authDomain.ErrInvalidAccessToken
	}
	return s.key.Secret(), nil
}

// claimsHasAudience reports whether the expected audience appears in the
// token's audience list.
func claimsHasAudience(audiences jwt.ClaimStrings, expected string) bool {
	for _, aud := range audiences {
		if aud == expected {
			return true
		}
	}
	return false
}
