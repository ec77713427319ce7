package httpapi

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spirocarbon/farmrecord/internal/logging"
	"github.com/spirocarbon/farmrecord/internal/server/auth"
)

// localUserID is the fiber.Ctx locals key under which AuthRequired stores
// the authenticated user id.
const localUserID = "userID"

// AuthRequired rejects requests without a bearer token (401) and requests
// whose token fails verification (403). On success the user id from the
// token claims is stored in the request locals.
func AuthRequired(tokens *auth.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return respondError(c, fiber.StatusUnauthorized, "No authorization token found!")
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			return respondError(c, fiber.StatusForbidden, "Unauthorized!")
		}

		c.Locals(localUserID, userID)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return "", auth.ErrMissingToken
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")), nil
}

// RequestLogger tags every request with a generated id and logs method,
// path and resulting status.
func RequestLogger(log logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := uuid.NewString()
		c.Set("X-Request-Id", reqID)

		start := time.Now()
		err := c.Next()

		log.Info(c.Context(), "request",
			"request_id", reqID,
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start).String(),
		)
		return err
	}
}
