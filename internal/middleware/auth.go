package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

const webhookTokenHeader = "X-Webhook-Token"

// GatewayAuth rejects webhook calls that do not carry the shared secret
// agreed with the payment gateway. On failure nothing downstream runs:
// no store access, no idempotency check, no side effects.
func GatewayAuth(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Request().Header.Get(webhookTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid webhook token")
			}
			return next(c)
		}
	}
}
