package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/summercamp/campfund/internal/core/domain"
	"github.com/summercamp/campfund/internal/core/ports"
)

type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// Add handles POST /classes-cart.
//
// @Summary      Add a cart entry
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addCartRequest  true  "Cart entry"
// @Success      200   {object}  domain.InsertResult
// @Failure      400   {object}  errorResponse
// @Router       /classes-cart [post]
func (h *CartHandler) Add(c echo.Context) error {
	var req addCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.Add(c.Request().Context(), toCartItem(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// List handles GET /classes-cart?email=...
//
// @Summary      List the caller's cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  true  "Owner email; must be the caller"
// @Success      200    {array}   domain.CartItem
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /classes-cart [get]
func (h *CartHandler) List(c echo.Context) error {
	caller, err := ctxEmail(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListFor(c.Request().Context(), c.QueryParam("email"), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// StudentCart handles GET /user/student/:email.
//
// @Summary      List a student's cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Student email; must be the caller"
// @Success      200    {array}   domain.CartItem
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /user/student/{email} [get]
func (h *CartHandler) StudentCart(c echo.Context) error {
	caller, err := ctxEmail(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListFor(c.Request().Context(), c.Param("email"), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /classes-cart/:id.
//
// @Summary      Get a cart entry
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Cart entry id"
// @Success      200  {object}  domain.CartItem
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /classes-cart/{id} [get]
func (h *CartHandler) Get(c echo.Context) error {
	caller, err := ctxEmail(c)
	if err != nil {
		return err
	}

	item, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !strings.EqualFold(item.Email, caller) {
		return domain.ErrForbidden
	}
	return c.JSON(http.StatusOK, item)
}

// Remove handles DELETE /classes-cart/:id.
//
// @Summary      Delete a cart entry
// @Tags         cart
// @Produce      json
// @Param        id   path      string  true  "Cart entry id"
// @Success      200  {object}  domain.DeleteResult
// @Failure      400  {object}  errorResponse
// @Router       /classes-cart/{id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	res, err := h.service.Remove(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
