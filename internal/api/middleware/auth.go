package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/summercamp/campfund/internal/pkg/token"
)

// Context keys set by Auth and RequireRole.
const (
	ContextKeyEmail = "email"
	ContextKeyUser  = "user"
)

// Auth validates the bearer JWT and injects the email claim into context.
// It never touches the database.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	secret := []byte(jwtSecret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := token.Parse(parts[1], secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access").SetInternal(err)
			}

			c.Set(ContextKeyEmail, claims.Email)

			return next(c)
		}
	}
}
