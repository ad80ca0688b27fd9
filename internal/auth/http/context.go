// Package http provides HTTP handlers and middleware for the credential
// lifecycle endpoints.
package http

import (
	"context"

	authDomain "github.com/allisson/petclinic-auth/internal/auth/domain"
)

// claimsKey is a context key type for storing authenticated access claims.
type claimsKey struct{}

// WithClaims stores validated access claims in the context.
// This is typically called by the authentication middleware after successful
// token validation.
func WithClaims(ctx context.Context, claims *authDomain.AccessClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves validated access claims from the context.
// Returns (claims, true) if claims are present, or (nil, false) if no claims
// were set.
func GetClaims(ctx context.Context) (*authDomain.AccessClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*authDomain.AccessClaims)
	return claims, ok
}
