// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/petclinic-auth/internal/auth/domain"
)

// MockTokenUseCase is a mock implementation of TokenUseCase for testing.
type MockTokenUseCase struct {
	mock.Mock
}

// Issue mocks the Issue method of TokenUseCase.
func (m *MockTokenUseCase) Issue(
	ctx context.Context,
	input *authDomain.IssueTokenInput,
) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

// Rotate mocks the Rotate method of TokenUseCase.
func (m *MockTokenUseCase) Rotate(ctx context.Context, oldToken string) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, oldToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

// RevokeOne mocks the RevokeOne method of TokenUseCase.
func (m *MockTokenUseCase) RevokeOne(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// RevokeFamily mocks the RevokeFamily method of TokenUseCase.
func (m *MockTokenUseCase) RevokeFamily(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// ActiveSessions mocks the ActiveSessions method of TokenUseCase.
func (m *MockTokenUseCase) ActiveSessions(
	ctx context.Context,
	userID int64,
) ([]*authDomain.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Session), args.Error(1)
}

// Authenticate mocks the Authenticate method of TokenUseCase.
func (m *MockTokenUseCase) Authenticate(
	ctx context.Context,
	accessToken string,
) (*authDomain.AccessClaims, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.AccessClaims), args.Error(1)
}
