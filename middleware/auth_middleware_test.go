package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"marketpulse/config"
	"marketpulse/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := models.JwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func makeAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/test", Authenticate, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userID":   c.Locals("userID"),
			"userRole": c.Locals("userRole"),
		})
	})
	return app
}

func TestAuthenticateMissingHeader(t *testing.T) {
	config.AppConfig.JWTSecret = testSecret
	app := makeAuthApp()

	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	config.AppConfig.JWTSecret = testSecret
	app := makeAuthApp()

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "not-a-bearer-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticateValidToken(t *testing.T) {
	config.AppConfig.JWTSecret = testSecret
	app := makeAuthApp()

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", "owner", time.Hour))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	config.AppConfig.JWTSecret = testSecret
	app := makeAuthApp()

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", "owner", -time.Hour))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticateWrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "a-different-secret"
	app := makeAuthApp()

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", "owner", time.Hour))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func makeRoleApp(role string, allowed ...string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userRole", role)
		return c.Next()
	})
	app.Get("/test", CheckRole(allowed...), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestCheckRoleAllows(t *testing.T) {
	app := makeRoleApp("admin", "owner", "admin")
	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCheckRoleDenies(t *testing.T) {
	app := makeRoleApp("staff", "owner", "admin")
	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
