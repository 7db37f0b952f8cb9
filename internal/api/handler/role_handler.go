package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/summercamp/campfund/internal/core/domain"
)

// RoleHandler answers role checks. The role guard has already run, so the
// handler only confirms which guard admitted the caller.
type RoleHandler struct{}

func NewRoleHandler() *RoleHandler {
	return &RoleHandler{}
}

// Instructor handles GET /users/instructor/:email.
//
// @Summary      Confirm instructor role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Caller email"
// @Success      200    {object}  roleResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /users/instructor/{email} [get]
func (h *RoleHandler) Instructor(c echo.Context) error {
	return h.confirm(c, domain.RoleInstructor)
}

// Admin handles GET /users/admin/:email.
//
// @Summary      Confirm admin role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Caller email"
// @Success      200    {object}  roleResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /users/admin/{email} [get]
func (h *RoleHandler) Admin(c echo.Context) error {
	return h.confirm(c, domain.RoleAdmin)
}

func (h *RoleHandler) confirm(c echo.Context, role domain.Role) error {
	caller, err := ctxEmail(c)
	if err != nil {
		return err
	}
	if ctxUser(c) == nil {
		return domain.ErrForbidden
	}
	if email := c.Param("email"); email != "" && !strings.EqualFold(email, caller) {
		return domain.ErrForbidden
	}
	return c.JSON(http.StatusOK, roleResponse{Role: string(role)})
}

// Root handles GET /.
//
// @Summary      Liveness banner
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "Summer Camp is running!"
// @Router       / [get]
func Root(c echo.Context) error {
	return c.String(http.StatusOK, "Summer Camp is running!")
}
