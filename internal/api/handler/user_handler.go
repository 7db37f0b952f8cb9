package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/summercamp/campfund/internal/core/domain"
	"github.com/summercamp/campfund/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register creates a User Record unless the email is already registered.
//
// @Summary      Register a user
// @Description  Idempotent on email. The role is always the server default.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerUserRequest  true  "User"
// @Success      200   {object}  domain.InsertResult
// @Success      200   {object}  messageResponse      "user already exists"
// @Failure      400   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, created, err := h.service.Register(c.Request().Context(), ports.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Photo:    req.Photo,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	if !created {
		return c.JSON(http.StatusOK, messageResponse{Message: "user already exists"})
	}
	return c.JSON(http.StatusOK, res)
}

// List handles GET /users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.User
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Teachers handles GET /teachers.
//
// @Summary      List teachers
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.User
// @Router       /teachers [get]
func (h *UserHandler) Teachers(c echo.Context) error {
	users, err := h.service.ListTeachers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// PopularTeachers handles GET /teachers/popularteachers.
//
// @Summary      List popular teachers
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.PopularTeacher
// @Router       /teachers/popularteachers [get]
func (h *UserHandler) PopularTeachers(c echo.Context) error {
	teachers, err := h.service.ListPopularTeachers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teachers)
}

// UpdateRole handles PATCH /all-users-data?email=...
//
// @Summary      Set a user's role
// @Description  The role is read from the body, falling back to the role query parameter.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        email  query     string             true   "User email"
// @Param        role   query     string             false  "New role"
// @Param        body   body      updateRoleRequest  false  "New role"
// @Success      200    {object}  domain.UpdateResult
// @Failure      400    {object}  errorResponse
// @Router       /all-users-data [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}
	role := req.Role
	if role == "" {
		role = c.QueryParam("role")
	}

	res, err := h.service.UpdateRole(c.Request().Context(), c.QueryParam("email"), domain.Role(role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
