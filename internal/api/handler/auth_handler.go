package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/summercamp/campfund/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// IssueToken verifies the caller's identity and returns a session token.
//
// @Summary      Issue a session token
// @Description  The proof required depends on AUTH_MODE: password, a Casdoor idToken, or none in open mode.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      jwtRequest  true  "Identity proof"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /jwt [post]
func (h *AuthHandler) IssueToken(c echo.Context) error {
	var req jwtRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.IssueToken(c.Request().Context(), ports.IdentityProof{
		Email:    req.Email,
		Password: req.Password,
		IDToken:  req.IDToken,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}
