package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CoreDX1/File-Explorer-2/internal/usecase"
)

// PasswordHandler exposes the password-reset endpoints.
type PasswordHandler struct {
	reset *usecase.PasswordResetService
}

// NewPasswordHandler constructs PasswordHandler.
func NewPasswordHandler(reset *usecase.PasswordResetService) *PasswordHandler {
	return &PasswordHandler{reset: reset}
}

// ForgotPassword initiates a reset. The response is the same whether or
// not the email belongs to an account.
func (h *PasswordHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "Invalid request body"))
		return
	}

	result := h.reset.InitiatePasswordReset(c.Request.Context(), req.Email)
	respondMessage(c, http.StatusOK, result,
		"If the email is registered, a reset link has been sent")
}

// ResetPassword redeems a reset token and installs the new credential.
func (h *PasswordHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "Invalid request body"))
		return
	}

	result := h.reset.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	respondMessage(c, http.StatusOK, result, "Password has been reset")
}
