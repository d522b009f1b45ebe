package handlers

import (
	"errors"
	"strconv"
	"strings"

	"caribe-tours/internal/core/services"
	"caribe-tours/internal/pkg/pagination"
	"caribe-tours/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles admin moderation endpoints.
// All routes behind this handler require the ADMIN role.
type AdminHandler struct {
	adminService  *services.AdminService
	agencyService *services.AgencyService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService, agencyService *services.AgencyService) *AdminHandler {
	return &AdminHandler{
		adminService:  adminService,
		agencyService: agencyService,
	}
}

// ListUsers handles listing all users
// @Summary List all users
// @Description Get a paginated list of all users (Admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.adminService.ListUsers(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved successfully", pagination.NewResponse(users, params, total))
}

// SetUserRoleRequest represents role change request body
type SetUserRoleRequest struct {
	Role string `json:"role"`
}

// SetUserRole handles changing a user's role
// @Summary Set user role
// @Description Change a user's role to USER, AGENCY or ADMIN (Admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body SetUserRoleRequest true "New role"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id}/role [put]
func (h *AdminHandler) SetUserRole(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req SetUserRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))

	user, err := h.adminService.SetUserRole(c.Context(), uint(id), role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRole):
			return response.BadRequest(c, "Role must be USER, AGENCY or ADMIN")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to update user role")
		}
	}

	return response.Success(c, "User role updated successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// ListAgencies handles listing agencies for moderation
// @Summary List agencies
// @Description Get a paginated list of agencies, optionally filtered by status (Admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/agencies [get]
func (h *AdminHandler) ListAgencies(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	status := strings.ToUpper(strings.TrimSpace(c.Query("status")))

	agencies, total, err := h.agencyService.List(c.Context(), status, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list agencies")
	}

	return response.Success(c, "Agencies retrieved successfully", pagination.NewResponse(agencies, params, total))
}

// SetAgencyStatusRequest represents agency status request body
type SetAgencyStatusRequest struct {
	Status string `json:"status"`
}

// SetAgencyStatus handles changing an agency's operational status
// @Summary Set agency status
// @Description Set an agency to PENDING, ACTIVE, PAUSED or SUSPENDED (Admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Agency ID"
// @Param body body SetAgencyStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/agencies/{id}/status [put]
func (h *AdminHandler) SetAgencyStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid agency ID")
	}

	var req SetAgencyStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))

	agency, err := h.agencyService.SetStatus(c.Context(), uint(id), status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return response.BadRequest(c, "Status must be PENDING, ACTIVE, PAUSED or SUSPENDED")
		case errors.Is(err, services.ErrAgencyNotFound):
			return response.NotFound(c, "Agency not found")
		default:
			return response.InternalServerError(c, "Failed to update agency status")
		}
	}

	return response.Success(c, "Agency status updated successfully", fiber.Map{
		"agency": agency.ToResponse(),
	})
}

// SetAgencyVerifiedRequest represents verification flag request body
type SetAgencyVerifiedRequest struct {
	IsVerified bool `json:"is_verified"`
}

// SetAgencyVerified handles toggling the agency verification badge.
// The badge is display-only; the operational gate is the status field.
// @Summary Set agency verified flag
// @Description Toggle the agency's verification badge (Admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Agency ID"
// @Param body body SetAgencyVerifiedRequest true "Verified flag"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/agencies/{id}/verify [put]
func (h *AdminHandler) SetAgencyVerified(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid agency ID")
	}

	var req SetAgencyVerifiedRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	agency, err := h.agencyService.SetVerified(c.Context(), uint(id), req.IsVerified)
	if err != nil {
		if errors.Is(err, services.ErrAgencyNotFound) {
			return response.NotFound(c, "Agency not found")
		}
		return response.InternalServerError(c, "Failed to update agency")
	}

	return response.Success(c, "Agency updated successfully", fiber.Map{
		"agency": agency.ToResponse(),
	})
}

// SetAgencyCommissionRequest represents commission rate request body
type SetAgencyCommissionRequest struct {
	CommissionRate float64 `json:"commission_rate"`
}

// SetAgencyCommission handles setting an agency's base commission percentage
// @Summary Set agency commission rate
// @Description Set the base commission percentage charged to an agency (Admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Agency ID"
// @Param body body SetAgencyCommissionRequest true "Commission rate"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/agencies/{id}/commission [put]
func (h *AdminHandler) SetAgencyCommission(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid agency ID")
	}

	var req SetAgencyCommissionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	agency, err := h.agencyService.SetCommissionRate(c.Context(), uint(id), req.CommissionRate)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCommission):
			return response.BadRequest(c, "Commission rate must be between 0 and 100")
		case errors.Is(err, services.ErrAgencyNotFound):
			return response.NotFound(c, "Agency not found")
		default:
			return response.InternalServerError(c, "Failed to update commission rate")
		}
	}

	return response.Success(c, "Commission rate updated successfully", fiber.Map{
		"agency": agency.ToResponse(),
	})
}

// ListAgencyTransactions handles listing any agency's payment transactions
// @Summary List agency transactions
// @Description Get a paginated list of an agency's payment transactions (Admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Agency ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/agencies/{id}/transactions [get]
func (h *AdminHandler) ListAgencyTransactions(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid agency ID")
	}

	params := pagination.GetParams(c)

	transactions, total, err := h.agencyService.ListTransactionsByAgencyID(c.Context(), uint(id), params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, services.ErrAgencyNotFound) {
			return response.NotFound(c, "Agency not found")
		}
		return response.InternalServerError(c, "Failed to list transactions")
	}

	return response.Success(c, "Transactions retrieved successfully", pagination.NewResponse(transactions, params, total))
}

// ModerateTourRequest represents moderation request body
type ModerateTourRequest struct {
	Action string `json:"action"`
}

// ModerateTour handles moderating any tour regardless of owner
// @Summary Moderate tour
// @Description Apply PAUSE, PUBLISH or DELETE to any tour (Admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tour ID"
// @Param body body ModerateTourRequest true "Moderation action"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/tours/{id}/moderate [post]
func (h *AdminHandler) ModerateTour(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tour ID")
	}

	var req ModerateTourRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	action := strings.ToUpper(strings.TrimSpace(req.Action))

	tour, err := h.adminService.ModerateTour(c.Context(), uint(id), action)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidModeration):
			return response.BadRequest(c, "Action must be PAUSE, PUBLISH or DELETE")
		case errors.Is(err, services.ErrTourNotFound):
			return response.NotFound(c, "Tour not found")
		default:
			return response.InternalServerError(c, "Failed to moderate tour")
		}
	}

	if tour == nil {
		return response.Success(c, "Tour deleted successfully", nil)
	}

	return response.Success(c, "Tour moderated successfully", fiber.Map{
		"tour": tour,
	})
}

// DeleteBooking handles hard deleting any booking
// @Summary Delete booking
// @Description Hard delete any booking (Admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/bookings/{id} [delete]
func (h *AdminHandler) DeleteBooking(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid booking ID")
	}

	if err := h.adminService.DeleteBooking(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			return response.NotFound(c, "Booking not found")
		}
		return response.InternalServerError(c, "Failed to delete booking")
	}

	return response.Success(c, "Booking deleted successfully", nil)
}
