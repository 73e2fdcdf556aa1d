package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(secret []byte) *fiber.App {
	app := fiber.New()
	app.Use(Auth(secret))
	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString(ctx.Locals("subject").(string))
	})

	return app
}

func TestAuth(t *testing.T) {
	secret := []byte("s3cret")
	app := newApp(secret)

	valid, err := GenerateToken("admin", secret, time.Hour)
	require.NoError(t, err)

	expired, err := GenerateToken("admin", secret, -time.Minute)
	require.NoError(t, err)

	foreign, err := GenerateToken("admin", []byte("other"), time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"alg none", "Bearer " + none, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
