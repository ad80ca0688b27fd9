package app

import (
	"fmt"

	authHTTP "github.com/allisson/petclinic-auth/internal/auth/http"
	authRepository "github.com/allisson/petclinic-auth/internal/auth/repository"
	authService "github.com/allisson/petclinic-auth/internal/auth/service"
	authUseCase "github.com/allisson/petclinic-auth/internal/auth/usecase"
)

// SigningKey returns the access token signing key.
// A missing or too-short secret is a fatal configuration error.
func (c *Container) SigningKey() (*authService.SigningKey, error) {
	c.signingKeyInit.Do(func() {
		key, err := authService.NewSigningKey(c.config.JWTSigningSecret)
		if err != nil {
			c.initErrors["signingKey"] = fmt.Errorf("failed to load signing key: %w", err)
			return
		}
		c.signingKey = key
	})
	if storedErr, exists := c.initErrors["signingKey"]; exists {
		return nil, storedErr
	}
	return c.signingKey, nil
}

// AccessTokenService returns the service that signs and verifies access tokens.
func (c *Container) AccessTokenService() (authService.AccessTokenService, error) {
	c.accessTokenServiceInit.Do(func() {
		service, err := c.initAccessTokenService()
		if err != nil {
			c.initErrors["accessTokenService"] = err
			return
		}
		c.accessTokenService = service
	})
	if storedErr, exists := c.initErrors["accessTokenService"]; exists {
		return nil, storedErr
	}
	return c.accessTokenService, nil
}

// RefreshTokenService returns the opaque refresh token generator.
func (c *Container) RefreshTokenService() authService.RefreshTokenService {
	c.refreshTokenServiceInit.Do(func() {
		c.refreshTokenService = authService.NewRefreshTokenService()
	})
	return c.refreshTokenService
}

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() authService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = authService.NewPasswordService()
	})
	return c.passwordService
}

// UserRepository returns the user repository based on database driver.
func (c *Container) UserRepository() (authUseCase.UserRepository, error) {
	c.userRepositoryInit.Do(func() {
		repo, err := c.initUserRepository()
		if err != nil {
			c.initErrors["userRepository"] = err
			return
		}
		c.userRepository = repo
	})
	if storedErr, exists := c.initErrors["userRepository"]; exists {
		return nil, storedErr
	}
	return c.userRepository, nil
}

// RefreshTokenRepository returns the refresh token repository based on database driver.
func (c *Container) RefreshTokenRepository() (authUseCase.RefreshTokenRepository, error) {
	c.refreshTokenRepositoryInit.Do(func() {
		repo, err := c.initRefreshTokenRepository()
		if err != nil {
			c.initErrors["refreshTokenRepository"] = err
			return
		}
		c.refreshTokenRepository = repo
	})
	if storedErr, exists := c.initErrors["refreshTokenRepository"]; exists {
		return nil, storedErr
	}
	return c.refreshTokenRepository, nil
}

// TokenUseCase returns the token use case.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	c.tokenUseCaseInit.Do(func() {
		useCase, err := c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
			return
		}
		c.tokenUseCase = useCase
	})
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// TokenHandler returns the HTTP handler for token operations.
func (c *Container) TokenHandler() (*authHTTP.TokenHandler, error) {
	c.tokenHandlerInit.Do(func() {
		handler, err := c.initTokenHandler()
		if err != nil {
			c.initErrors["tokenHandler"] = err
			return
		}
		c.tokenHandler = handler
	})
	if storedErr, exists := c.initErrors["tokenHandler"]; exists {
		return nil, storedErr
	}
	return c.tokenHandler, nil
}

// initAccessTokenService creates the access token service from the signing key.
func (c *Container) initAccessTokenService() (authService.AccessTokenService, error) {
	key, err := c.SigningKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get signing key for access token service: %w", err)
	}

	return authService.NewAccessTokenService(
		key,
		c.config.JWTIssuer,
		c.config.JWTAudience,
		c.config.AccessTokenExpiration,
	), nil
}

// initUserRepository creates the user repository based on the database driver.
func (c *Container) initUserRepository() (authUseCase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authRepository.NewPostgreSQLUserRepository(db), nil
	case "mysql":
		return authRepository.NewMySQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRefreshTokenRepository creates the refresh token repository based on the database driver.
func (c *Container) initRefreshTokenRepository() (authUseCase.RefreshTokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for refresh token repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authRepository.NewPostgreSQLRefreshTokenRepository(db), nil
	case "mysql":
		return authRepository.NewMySQLRefreshTokenRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenUseCase creates the token use case with all its dependencies.
func (c *Container) initTokenUseCase() (authUseCase.TokenUseCase, error) {
	userRepository, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for token use case: %w", err)
	}

	refreshTokenRepository, err := c.RefreshTokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token repository for token use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for token use case: %w", err)
	}

	accessTokenService, err := c.AccessTokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get access token service for token use case: %w", err)
	}

	baseUseCase := authUseCase.NewTokenUseCase(
		c.config,
		userRepository,
		refreshTokenRepository,
		txManager,
		accessTokenService,
		c.RefreshTokenService(),
		c.PasswordService(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		return authUseCase.NewTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initTokenHandler creates the token HTTP handler with all its dependencies.
func (c *Container) initTokenHandler() (*authHTTP.TokenHandler, error) {
	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for token handler: %w", err)
	}

	return authHTTP.NewTokenHandler(tokenUseCase, c.Logger()), nil
}
