package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tradesoncall/backend/internal/apperr"
	"github.com/tradesoncall/backend/internal/service"
)

// VerifyHandler covers phone verification code requests and confirmations.
type VerifyHandler struct {
	Verification *service.VerificationService
}

func NewVerifyHandler(v *service.VerificationService) *VerifyHandler {
	return &VerifyHandler{Verification: v}
}

type verifyRequest struct {
	Phone string `json:"phone"`
}

type verifyConfirmRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// RequestCode handles POST /api/v1/users/verify/request.  The response is
// the same whether or not the phone number is registered.
func (h *VerifyHandler) RequestCode(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	if req.Phone == "" {
		return apperr.Validation("phone is required")
	}

	if err := h.Verification.RequestCode(c.Request().Context(), req.Phone); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success("If the phone number is registered, a verification code has been sent", nil))
}

// ConfirmCode handles POST /api/v1/users/verify/confirm.
func (h *VerifyHandler) ConfirmCode(c echo.Context) error {
	var req verifyConfirmRequest
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	if req.Phone == "" || req.Code == "" {
		return apperr.Validation("phone and code are required")
	}

	user, err := h.Verification.ConfirmCode(c.Request().Context(), req.Phone, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success("Phone number verified", toUserResponse(user)))
}
