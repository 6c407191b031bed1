package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CoreDX1/File-Explorer-2/internal/usecase"
)

// AuthHandler exposes the credential endpoints: login and registration.
type AuthHandler struct {
	auth         *usecase.AuthService
	registration *usecase.RegistrationService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *usecase.AuthService, registration *usecase.RegistrationService) *AuthHandler {
	return &AuthHandler{auth: auth, registration: registration}
}

// Login verifies credentials and returns the profile with a signed token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "Invalid request body"))
		return
	}

	result := h.auth.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	respond(c, http.StatusOK, result)
}

// Register creates a new account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "Invalid request body"))
		return
	}

	result := h.registration.RegisterUser(c.Request.Context(), usecase.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	respond(c, http.StatusCreated, result)
}
