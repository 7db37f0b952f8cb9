package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/summercamp/campfund/internal/core/ports"
)

// HeaderIdempotencyKey makes POST /payments retries replay the first result.
const HeaderIdempotencyKey = "Idempotency-Key"

type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreateIntent handles POST /create-payment-intent.
//
// @Summary      Create a payment intent
// @Description  Amount is price*100 cents in USD.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      createIntentRequest  true  "Price"
// @Success      200   {object}  clientSecretResponse
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req createIntentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	intent, err := h.service.CreateIntent(c.Request().Context(), req.Price)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientSecretResponse{ClientSecret: intent.ClientSecret})
}

// Checkout handles POST /payments.
//
// @Summary      Record a payment
// @Description  Stores the payment and deletes the paid cart entry atomically.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string          false  "Replays the first result on retry"
// @Param        body             body      paymentRequest  true   "Payment"
// @Success      200              {object}  domain.CheckoutResult
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /payments [post]
func (h *PaymentHandler) Checkout(c echo.Context) error {
	caller, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req paymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	key := c.Request().Header.Get(HeaderIdempotencyKey)
	res, err := h.service.Checkout(c.Request().Context(), toCheckoutInput(req, caller, key))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// History handles GET /payments.
//
// @Summary      List the caller's payments
// @Description  Newest first.
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Payment
// @Failure      401  {object}  errorResponse
// @Router       /payments [get]
func (h *PaymentHandler) History(c echo.Context) error {
	caller, err := ctxEmail(c)
	if err != nil {
		return err
	}

	payments, err := h.service.History(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}
