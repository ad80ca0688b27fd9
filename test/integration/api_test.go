// Package integration provides end-to-end integration tests for the token
// lifecycle API. Tests all endpoints against both PostgreSQL and MySQL.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/petclinic-auth/internal/app"
	authDomain "github.com/allisson/petclinic-auth/internal/auth/domain"
	authDTO "github.com/allisson/petclinic-auth/internal/auth/http/dto"
	"github.com/allisson/petclinic-auth/internal/config"
	"github.com/allisson/petclinic-auth/internal/testutil"
)

const (
	testUserEmail    = "integration-owner@example.com"
	testUserPassword = "Correct-Horse-Battery-42"
)

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	userID    int64
	ownerID   int64
	dbDriver  string
}

// makeRequest performs an HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	accessToken string,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// login issues a token pair through the API, asserting success.
func (ctx *integrationTestContext) login(t *testing.T, deviceInfo string) authDTO.TokenPairResponse {
	t.Helper()

	resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/auth/token", authDTO.IssueTokenRequest{
		Email:      testUserEmail,
		Password:   testUserPassword,
		DeviceInfo: deviceInfo,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, "login failed: %s", string(body))

	var pair authDTO.TokenPairResponse
	require.NoError(t, json.Unmarshal(body, &pair))
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	return pair
}

// setupIntegrationTest initializes all components for integration testing.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		testutil.SkipIfNoPostgres(t)
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		testutil.SkipIfNoMySQL(t)
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	cfg := &config.Config{
		ServerHost:             "localhost",
		ServerPort:             8080,
		DBDriver:               dbDriver,
		DBConnectionString:     dsn,
		DBMaxOpenConnections:   10,
		DBMaxIdleConnections:   5,
		DBConnMaxLifetime:      time.Hour,
		LogLevel:               "error",
		JWTSigningSecret:       "integration-test-signing-secret-0042",
		JWTIssuer:              "petclinic-auth",
		JWTAudience:            "petclinic-api",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 30 * 24 * time.Hour,
		RateLimitTokenEnabled:  false,
		MetricsEnabled:         false,
	}

	container := app.NewContainer(cfg)

	// Seed the owner account through the container's own services so the
	// stored hash matches what login verifies against.
	passwordHash, err := container.PasswordService().HashPassword(testUserPassword)
	require.NoError(t, err, "failed to hash test password")

	userRepo, err := container.UserRepository()
	require.NoError(t, err, "failed to get user repository")

	user := &authDomain.User{
		Email:        testUserEmail,
		Name:         "Integration Owner",
		PasswordHash: passwordHash,
		Status:       authDomain.AccountStatusActive,
		Type:         authDomain.AccountTypeOwner,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, userRepo.Create(context.Background(), user), "failed to create test user")

	owner := &authDomain.Owner{
		UserID:    user.ID,
		Phone:     "555-0100",
		Address:   "1 Test Street",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, userRepo.CreateOwner(context.Background(), owner), "failed to create test owner")

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	testServer := httptest.NewServer(handler)

	t.Logf("Integration test setup complete for %s (user_id=%d)", dbDriver, user.ID)

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    testServer,
		userID:    user.ID,
		ownerID:   owner.ID,
		dbDriver:  dbDriver,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}

	t.Logf("Integration test teardown complete for %s", ctx.dbDriver)
}

func driverTestCases() []struct {
	name     string
	dbDriver string
} {
	return []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}
}

// TestIntegration_Health_BasicChecks validates the health and readiness endpoints.
func TestIntegration_Health_BasicChecks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range driverTestCases() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			t.Run("01_HealthCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil, "")
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response map[string]string
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "healthy", response["status"])
			})

			t.Run("02_ReadinessCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/ready", nil, "")
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response struct {
					Status     string            `json:"status"`
					Components map[string]string `json:"components"`
				}
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "ready", response.Status)
				assert.Equal(t, "ok", response.Components["database"])
			})
		})
	}
}

// TestIntegration_TokenLifecycle_CompleteFlow exercises login issuance,
// session listing, rotation, reuse detection with family revocation, and
// logout against a live database.
func TestIntegration_TokenLifecycle_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range driverTestCases() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			t.Run("01_Login_WrongPassword", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/auth/token", authDTO.IssueTokenRequest{
					Email:    testUserEmail,
					Password: "wrong-password",
				}, "")
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			t.Run("02_Login_UnknownEmail", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/auth/token", authDTO.IssueTokenRequest{
					Email:    "nobody@example.com",
					Password: testUserPassword,
				}, "")
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			t.Run("03_Login_Success", func(t *testing.T) {
				pair := ctx.login(t, "integration-device")

				assert.Equal(t, "Bearer", pair.TokenType)
				assert.True(t, pair.ExpiresAt.After(time.Now()))
			})

			t.Run("04_ListSessions", func(t *testing.T) {
				pair := ctx.login(t, "session-listing-device")

				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/auth/sessions", nil, pair.AccessToken)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var sessions authDTO.SessionListResponse
				require.NoError(t, json.Unmarshal(body, &sessions))
				assert.NotEmpty(t, sessions.Sessions)

				found := false
				for _, session := range sessions.Sessions {
					if session.DeviceInfo == "session-listing-device" {
						found = true
					}
					assert.True(t, session.ExpiresAt.After(time.Now()))
				}
				assert.True(t, found, "expected the new session in the listing")
			})

			t.Run("05_ListSessions_NoToken", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/auth/sessions", nil, "")
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			t.Run("06_Refresh_Rotation", func(t *testing.T) {
				pair := ctx.login(t, "rotation-device")

				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/auth/refresh", authDTO.RefreshTokenRequest{
					RefreshToken: pair.RefreshToken,
				}, "")
				require.Equal(t, http.StatusOK, resp.StatusCode, "rotation failed: %s", string(body))

				var rotated authDTO.TokenPairResponse
				require.NoError(t, json.Unmarshal(body, &rotated))
				assert.NotEmpty(t, rotated.AccessToken)
				assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

				// The successor keeps working.
				resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/auth/refresh", authDTO.RefreshTokenRequest{
					RefreshToken: rotated.RefreshToken,
				}, "")
				assert.Equal(t, http.StatusOK, resp.StatusCode)
			})

			t.Run("07_Refresh_ReuseRevokesFamily", func(t *testing.T) {
				pair := ctx.login(t, "reuse-device")

				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/auth/refresh", authDTO.RefreshTokenRequest{
					RefreshToken: pair.RefreshToken,
				}, "")
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var rotated authDTO.TokenPairResponse
				require.NoError(t, json.Unmarshal(body, &rotated))

				// Replaying the retired token is treated as theft.
				resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/auth/refresh", authDTO.RefreshTokenRequest{
					RefreshToken: pair.RefreshToken,
				}, "")
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

				// The successor was revoked along with the rest of the family.
				resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/auth/refresh", authDTO.RefreshTokenRequest{
					RefreshToken: rotated.RefreshToken,
				}, "")
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			t.Run("08_Logout", func(t *testing.T) {
				pair := ctx.login(t, "logout-device")

				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/auth/logout", authDTO.LogoutRequest{
					RefreshToken: pair.RefreshToken,
				}, "")
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)

				// The revoked token no longer rotates.
				resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/auth/refresh", authDTO.RefreshTokenRequest{
					RefreshToken: pair.RefreshToken,
				}, "")
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

				// Logout stays a no-op on repeat.
				resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/auth/logout", authDTO.LogoutRequest{
					RefreshToken: pair.RefreshToken,
				}, "")
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)
			})

			t.Run("09_Validation", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/auth/token", authDTO.IssueTokenRequest{
					Password: testUserPassword,
				}, "")
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

				resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/auth/refresh", authDTO.RefreshTokenRequest{}, "")
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			})

			t.Run("10_UnknownRefreshToken", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/auth/refresh", authDTO.RefreshTokenRequest{
					RefreshToken: fmt.Sprintf("never-issued-%d", time.Now().UnixNano()),
				}, "")
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})
		})
	}
}
