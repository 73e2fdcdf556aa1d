// Package middleware holds the fiber handlers wrapped around the v1 API.
package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var errInvalidToken = errors.New("invalid token")

// Claims identify the dashboard admin.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken issues an HS256 token for subject.
func GenerateToken(subject string, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	})

	return token.SignedString(secret)
}

func parseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errInvalidToken
	}

	return claims, nil
}

// Auth rejects requests without a valid bearer token. The token subject is
// stored in Locals under "subject".
func Auth(secret []byte) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			return ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}

		claims, err := parseToken(tokenString, secret)
		if err != nil {
			return ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}

		ctx.Locals("subject", claims.Subject)

		return ctx.Next()
	}
}
