package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/petclinic-auth/internal/auth/domain"
	"github.com/allisson/petclinic-auth/internal/auth/http/dto"
	authUseCase "github.com/allisson/petclinic-auth/internal/auth/usecase"
	apperrors "github.com/allisson/petclinic-auth/internal/errors"
	"github.com/allisson/petclinic-auth/internal/httputil"
	customValidation "github.com/allisson/petclinic-auth/internal/validation"
)

const bearerTokenType = "Bearer"

// TokenHandler handles HTTP requests for the credential lifecycle: login
// issuance, rotation, logout and session listing.
type TokenHandler struct {
	tokenUseCase authUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// IssueTokenHandler authenticates a user and issues a new token pair.
// POST /v1/auth/token - No authentication required (this is the login endpoint).
// Returns 201 Created with the access token, refresh token and expiration.
func (h *TokenHandler) IssueTokenHandler(c *gin.Context) {
	var req dto.IssueTokenRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Create input for use case
	input := &authDomain.IssueTokenInput{
		Email:      req.Email,
		Password:   req.Password,
		DeviceInfo: req.DeviceInfo,
	}

	// Call use case
	pair, err := h.tokenUseCase.Issue(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, tokenPairResponse(pair))
}

// RefreshTokenHandler rotates a refresh token into a new pair.
// POST /v1/auth/refresh - No authentication required; the refresh token is
// the credential.
// Returns 200 OK with the replacement pair.
//
// Presenting an already-used token is answered with 401 like any other
// invalid token, but the event is logged at WARN level since it revoked the
// user's entire session family.
func (h *TokenHandler) RefreshTokenHandler(c *gin.Context) {
	var req dto.RefreshTokenRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Call use case
	pair, err := h.tokenUseCase.Rotate(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrRefreshTokenReuse) {
			h.logger.Warn("refresh token reuse detected, session family revoked",
				slog.String("client_ip", c.ClientIP()),
			)
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse(pair))
}

// LogoutHandler revokes a single refresh token.
// POST /v1/auth/logout - No authentication required; the refresh token is
// the credential.
// Returns 204 No Content whether or not the token was live, so logout never
// leaks token validity.
func (h *TokenHandler) LogoutHandler(c *gin.Context) {
	var req dto.LogoutRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Call use case
	if err := h.tokenUseCase.RevokeOne(c.Request.Context(), req.RefreshToken); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListSessionsHandler lists the authenticated user's live refresh sessions.
// GET /v1/auth/sessions - Requires Bearer access token authentication.
// Returns 200 OK with the session read models; token values are never included.
func (h *TokenHandler) ListSessionsHandler(c *gin.Context) {
	claims, ok := GetClaims(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	userID, ok := claims.UserID()
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	sessions, err := h.tokenUseCase.ActiveSessions(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.SessionListResponse{Sessions: make([]dto.SessionResponse, 0, len(sessions))}
	for _, session := range sessions {
		response.Sessions = append(response.Sessions, dto.SessionResponse{
			CreatedAt:  session.CreatedAt,
			ExpiresAt:  session.ExpiresAt,
			DeviceInfo: session.DeviceInfo,
		})
	}

	c.JSON(http.StatusOK, response)
}

// tokenPairResponse maps a domain token pair to its response shape.
func tokenPairResponse(pair *authDomain.TokenPair) dto.TokenPairResponse {
	return dto.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    bearerTokenType,
		ExpiresAt:    pair.ExpiresAt,
	}
}
