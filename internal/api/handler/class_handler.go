package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/summercamp/campfund/internal/core/ports"
)

type ClassHandler struct {
	service ports.ClassService
}

func NewClassHandler(service ports.ClassService) *ClassHandler {
	return &ClassHandler{service: service}
}

// List handles GET /classes.
//
// @Summary      List approved classes
// @Description  Sorted by enrolled ascending.
// @Tags         classes
// @Produce      json
// @Success      200  {array}   domain.Class
// @Router       /classes [get]
func (h *ClassHandler) List(c echo.Context) error {
	classes, err := h.service.ListApproved(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, classes)
}

// Popular handles GET /classes/popularclasses.
//
// @Summary      List popular classes
// @Description  At most 6 approved classes with more than 5 enrollments.
// @Tags         classes
// @Produce      json
// @Success      200  {array}   domain.Class
// @Router       /classes/popularclasses [get]
func (h *ClassHandler) Popular(c echo.Context) error {
	classes, err := h.service.ListPopular(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, classes)
}

// Create handles POST /classes.
//
// @Summary      Create a class
// @Description  New classes start as pending unless a status is given.
// @Tags         classes
// @Accept       json
// @Produce      json
// @Param        body  body      createClassRequest  true  "Class"
// @Success      200   {object}  domain.InsertResult
// @Failure      400   {object}  errorResponse
// @Router       /classes [post]
func (h *ClassHandler) Create(c echo.Context) error {
	var req createClassRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.Create(c.Request().Context(), toClass(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Enroll handles PATCH /classes-cart/:id where :id is the class id.
//
// @Summary      Enroll in a class
// @Description  Increments enrolled; with seat tracking also decrements seats.
// @Tags         classes
// @Produce      json
// @Param        id   path      string  true  "Class id"
// @Success      200  {object}  domain.UpdateResult
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /classes-cart/{id} [patch]
func (h *ClassHandler) Enroll(c echo.Context) error {
	res, err := h.service.Enroll(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Review handles PATCH /all-classes-data?id=...
//
// @Summary      Review a class
// @Tags         classes
// @Accept       json
// @Produce      json
// @Param        id    query     string              true  "Class id"
// @Param        body  body      reviewClassRequest  true  "Feedback and/or status"
// @Success      200   {object}  domain.UpdateResult
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /all-classes-data [patch]
func (h *ClassHandler) Review(c echo.Context) error {
	var req reviewClassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}

	res, err := h.service.Review(c.Request().Context(), c.QueryParam("id"), toClassReview(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
