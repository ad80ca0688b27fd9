package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/petclinic-auth/internal/auth/domain"
	"github.com/allisson/petclinic-auth/internal/metrics"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for login issuance operations.
func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	input *authDomain.IssueTokenInput,
) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := t.next.Issue(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", "token_issue", status)
	t.metrics.RecordDuration(ctx, "auth", "token_issue", time.Since(start), status)

	return pair, err
}

// Rotate records metrics for token rotation operations.
func (t *tokenUseCaseWithMetrics) Rotate(ctx context.Context, oldToken string) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := t.next.Rotate(ctx, oldToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", "token_rotate", status)
	t.metrics.RecordDuration(ctx, "auth", "token_rotate", time.Since(start), status)

	return pair, err
}

// RevokeOne records metrics for single token revocation operations.
func (t *tokenUseCaseWithMetrics) RevokeOne(ctx context.Context, token string) error {
	start := time.Now()
	err := t.next.RevokeOne(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", "token_revoke", status)
	t.metrics.RecordDuration(ctx, "auth", "token_revoke", time.Since(start), status)

	return err
}

// RevokeFamily records metrics for family revocation operations.
func (t *tokenUseCaseWithMetrics) RevokeFamily(ctx context.Context, userID int64) error {
	start := time.Now()
	err := t.next.RevokeFamily(ctx, userID)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", "family_revoke", status)
	t.metrics.RecordDuration(ctx, "auth", "family_revoke", time.Since(start), status)

	return err
}

// ActiveSessions records metrics for session listing operations.
func (t *tokenUseCaseWithMetrics) ActiveSessions(
	ctx context.Context,
	userID int64,
) ([]*authDomain.Session, error) {
	start := time.Now()
	sessions, err := t.next.ActiveSessions(ctx, userID)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", "sessions_list", status)
	t.metrics.RecordDuration(ctx, "auth", "sessions_list", time.Since(start), status)

	return sessions, err
}

// Authenticate records metrics for access token validation operations.
func (t *tokenUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	accessToken string,
) (*authDomain.AccessClaims, error) {
	start := time.Now()
	claims, err := t.next.Authenticate(ctx, accessToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", "token_authenticate", status)
	t.metrics.RecordDuration(ctx, "auth", "token_authenticate", time.Since(start), status)

	return claims, err
}
