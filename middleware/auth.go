package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"fintrack-go-be/auth"
)

// ClaimsKey is the Locals key the gates store verified claims under.
const ClaimsKey = "authClaims"

// ClaimsFrom returns the identity attached by RequireAuth or OptionalAuth,
// or nil when the request is anonymous.
func ClaimsFrom(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(ClaimsKey).(*auth.Claims)
	return claims
}

// RequireAuth rejects requests without a valid bearer token: 401 when the
// token is missing entirely, 403 when it is present but fails verification.
func RequireAuth(ts *auth.TokenService, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"ok":      false,
				"message": "Authentication required",
			})
		}

		claims, err := ts.Verify(tokenStr)
		if err != nil {
			log.Warn("token verification failed", "error", err, "path", c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"ok":      false,
				"message": "Invalid or expired token",
			})
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// continues anonymously otherwise. It never rejects.
func OptionalAuth(ts *auth.TokenService, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenStr := bearerToken(c); tokenStr != "" {
			if claims, err := ts.Verify(tokenStr); err == nil {
				c.Locals(ClaimsKey, claims)
			} else {
				log.Debug("optional auth ignored invalid token", "error", err, "path", c.Path())
			}
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
