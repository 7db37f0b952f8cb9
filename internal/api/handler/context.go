package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/summercamp/campfund/internal/api/middleware"
	"github.com/summercamp/campfund/internal/core/domain"
)

// ctxEmail returns the email claim injected by the Auth middleware. An empty
// value means the route was mounted without Auth and is rejected as 401.
func ctxEmail(c echo.Context) (string, error) {
	email, _ := c.Get(middleware.ContextKeyEmail).(string)
	if email == "" {
		return "", domain.ErrUnauthorized
	}
	return email, nil
}

// ctxUser returns the User Record resolved by RequireRole, if any.
func ctxUser(c echo.Context) *domain.User {
	u, _ := c.Get(middleware.ContextKeyUser).(*domain.User)
	return u
}
