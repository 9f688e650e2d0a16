package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zoo-arcadia/arcadia-api/internal/api/metrics"
	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
	"github.com/zoo-arcadia/arcadia-api/internal/core/ports"
)

type PasswordHandler struct {
	passwordService ports.PasswordService
}

func NewPasswordHandler(passwordService ports.PasswordService) *PasswordHandler {
	return &PasswordHandler{passwordService: passwordService}
}

type initiateResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyResetRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type verifyResponse struct {
	IsValid bool `json:"isValid"`
}

// InitiateReset issues a reset code and emails it. The response is the same
// generic message whether or not an account exists for the email.
//
// @Summary      Initiate a password reset
// @Tags         password-reset
// @Accept       json
// @Produce      json
// @Param        body  body      initiateResetRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Router       /password-reset/initiate [post]
func (h *PasswordHandler) InitiateReset(c echo.Context) error {
	var req initiateResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.passwordService.InitiateReset(c.Request().Context(), req.Email); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("initiate", "failure").Inc()
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("initiate", "success").Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Message: "if an account exists for this email, a reset code has been sent",
	})
}

// VerifyResetCode checks a code without consuming it. A mismatched code is a
// normal 200 with isValid=false; an absent or expired entry is an error.
//
// @Summary      Verify a password reset code
// @Tags         password-reset
// @Accept       json
// @Produce      json
// @Param        body  body      verifyResetRequest  true  "Email and code"
// @Success      200   {object}  verifyResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      410   {object}  map[string]string
// @Router       /password-reset/verify [post]
func (h *PasswordHandler) VerifyResetCode(c echo.Context) error {
	var req verifyResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.passwordService.VerifyResetCode(c.Request().Context(), req.Email, req.Code)
	switch {
	case err == nil:
		metrics.PasswordResetsTotal.WithLabelValues("verify", "success").Inc()
		return c.JSON(http.StatusOK, verifyResponse{IsValid: true})
	case errors.Is(err, domain.ErrResetCodeInvalid):
		metrics.PasswordResetsTotal.WithLabelValues("verify", "invalid").Inc()
		return c.JSON(http.StatusOK, verifyResponse{IsValid: false})
	case errors.Is(err, domain.ErrResetCodeExpired):
		metrics.PasswordResetsTotal.WithLabelValues("verify", "expired").Inc()
		return err
	case errors.Is(err, domain.ErrResetCodeNotFound):
		metrics.PasswordResetsTotal.WithLabelValues("verify", "not_found").Inc()
		return err
	default:
		metrics.PasswordResetsTotal.WithLabelValues("verify", "failure").Inc()
		return err
	}
}

// ResetPassword consumes a valid code and replaces the account password.
//
// @Summary      Reset a password with a code
// @Tags         password-reset
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Email, code and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      410   {object}  map[string]string
// @Router       /password-reset/reset [post]
func (h *PasswordHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.passwordService.ResetPassword(c.Request().Context(), req.Email, req.Code, req.NewPassword); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("reset", "failure").Inc()
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("reset", "success").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}
