package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CoreDX1/File-Explorer-2/internal/usecase"
)

// UserHandler exposes profile endpoints behind authentication.
type UserHandler struct {
	users *usecase.UserService
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(users *usecase.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetUser returns the profile view for an account.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result := h.users.FindByID(c.Request.Context(), id)
	respond(c, http.StatusOK, result)
}

// EditUser updates profile fields, optionally replacing the password.
func (h *UserHandler) EditUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req EditUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "Invalid request body"))
		return
	}

	result := h.users.UpdateUserProfile(c.Request.Context(), id, usecase.UpdateProfileInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	respond(c, http.StatusOK, result)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "Invalid user id"))
		return 0, false
	}
	return id, true
}
