package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/petclinic-auth/internal/auth/usecase"
	apperrors "github.com/allisson/petclinic-auth/internal/errors"
	"github.com/allisson/petclinic-auth/internal/httputil"
)

// AuthenticationMiddleware provides authentication via Bearer access token in
// the Authorization header.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Fully validates it via tokenUseCase.Authenticate()
// 3. Stores the validated claims in the request context
// 4. Allows downstream handlers to access the claims via GetClaims()
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer")
//
// Error handling:
//   - Missing Authorization header → 401 Unauthorized
//   - Malformed Authorization header → 401 Unauthorized
//   - Invalid/expired access token → 401 Unauthorized
func AuthenticationMiddleware(
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Extract Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		accessToken := authHeader[len(bearerPrefix):]
		if accessToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Validate the access token
		claims, err := tokenUseCase.Authenticate(c.Request.Context(), accessToken)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		// Store validated claims in context
		ctx := WithClaims(c.Request.Context(), claims)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("subject", claims.Subject),
			slog.String("email", claims.Email))

		// Continue to next handler
		c.Next()
	}
}
