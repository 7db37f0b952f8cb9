package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/summercamp/campfund/internal/core/domain"
	"github.com/summercamp/campfund/internal/core/ports"
)

// RequireRole lets the request through only when the caller's stored role is
// in allowed. It must run after Auth. The resolved user is stored under
// ContextKeyUser.
func RequireRole(authz ports.Authorizer, allowed domain.RoleSet) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get(ContextKeyEmail).(string)
			if email == "" {
				return domain.ErrUnauthorized
			}

			user, err := authz.Authorize(c.Request().Context(), email, allowed)
			if err != nil {
				return err
			}

			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}
