package handlers

import (
	"errors"
	"strings"

	"caribe-tours/internal/core/services"
	"caribe-tours/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles traveler profile endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetProfile handles getting the caller's own profile
// @Summary Get own profile
// @Description Get the authenticated user's profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/me [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get profile")
	}

	return response.Success(c, "Profile retrieved successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// UpdateProfileRequest represents profile update request body
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateProfile handles updating the caller's own profile
// @Summary Update own profile
// @Description Update the authenticated user's name and phone
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateProfileRequest true "Profile data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/me [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateUserInput{
		Name:  strings.TrimSpace(req.Name),
		Phone: strings.TrimSpace(req.Phone),
	}

	user, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, "Profile updated successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// ChangePasswordRequest represents change password request body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles changing the caller's own password
// @Summary Change password
// @Description Change the authenticated user's password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChangePasswordRequest true "Passwords"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/me/password [put]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return response.BadRequest(c, "Current and new password are required")
	}
	if len(req.NewPassword) < 8 {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	if err := h.userService.ChangePassword(c.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			return response.BadRequest(c, "Current password is incorrect")
		case errors.Is(err, services.ErrExternalAccount):
			return response.BadRequest(c, "This account uses external login")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to change password")
		}
	}

	return response.Success(c, "Password changed successfully", nil)
}
