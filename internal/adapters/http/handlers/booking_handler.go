package handlers

import (
	"errors"
	"strconv"
	"strings"

	"caribe-tours/internal/adapters/persistence/models"
	"caribe-tours/internal/core/services"
	"caribe-tours/internal/pkg/pagination"
	"caribe-tours/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookingHandler handles booking endpoints
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// PaymentDetailsRequest carries an already-captured external payment
type PaymentDetailsRequest struct {
	ID string `json:"id"`
}

// CreateBookingRequest represents create booking request body
type CreateBookingRequest struct {
	TourID         uint                   `json:"tour_id"`
	Date           string                 `json:"date"`
	People         int                    `json:"people"`
	TotalPrice     float64                `json:"total_price"`
	PaymentMethod  string                 `json:"payment_method"`
	PaymentDetails *PaymentDetailsRequest `json:"payment_details"`
	Phone          string                 `json:"phone"`
}

// CreateBooking handles creating a booking
// @Summary Create booking
// @Description Book a tour, optionally with an inline payment confirmation
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateBookingRequest true "Booking data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.TourID == 0 {
		return response.BadRequest(c, "Tour ID is required")
	}
	if req.Date == "" {
		return response.BadRequest(c, "Date is required")
	}
	if req.People <= 0 {
		return response.BadRequest(c, "People must be greater than zero")
	}
	if req.TotalPrice <= 0 {
		return response.BadRequest(c, "Total price must be greater than zero")
	}

	input := &services.CreateBookingInput{
		TourID:        req.TourID,
		Date:          strings.TrimSpace(req.Date),
		People:        req.People,
		TotalPrice:    req.TotalPrice,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Phone:         strings.TrimSpace(req.Phone),
	}
	if req.PaymentDetails != nil {
		input.PaymentDetails = &services.PaymentDetails{ID: strings.TrimSpace(req.PaymentDetails.ID)}
	}

	booking, err := h.bookingService.Create(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStaleSession):
			return response.Unauthorized(c, "Session no longer valid, please login again")
		case errors.Is(err, services.ErrTourNotFound):
			return response.NotFound(c, "Tour not found")
		case errors.Is(err, services.ErrInvalidBookingData):
			return response.BadRequest(c, "Invalid booking data")
		default:
			return response.InternalServerError(c, "Failed to create booking")
		}
	}

	return response.Created(c, "Booking created successfully", fiber.Map{
		"booking": booking.ToResponse(),
	})
}

// GetBooking handles getting a single booking
// @Summary Get booking by ID
// @Description Get a booking. Visible to the traveler, the owning agency and admins
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid booking ID")
	}

	booking, err := h.bookingService.Get(c.Context(), userID, role, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			return response.NotFound(c, "Booking not found")
		}
		return response.InternalServerError(c, "Failed to get booking")
	}

	return response.Success(c, "Booking retrieved successfully", fiber.Map{
		"booking": booking.ToResponse(),
	})
}

// ListMyBookings handles listing the traveler's own bookings
// @Summary List own bookings
// @Description List the authenticated traveler's bookings, newest first
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /bookings [get]
func (h *BookingHandler) ListMyBookings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	bookings, total, err := h.bookingService.ListMine(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list bookings")
	}

	return response.Success(c, "Bookings retrieved successfully", pagination.NewResponse(toBookingResponses(bookings), params, total))
}

// ListAgencyBookings handles listing bookings against the agency's tours
// @Summary List agency bookings
// @Description List bookings made against the authenticated agency's tours
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /agency/bookings [get]
func (h *BookingHandler) ListAgencyBookings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	bookings, total, err := h.bookingService.ListForAgency(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, services.ErrAgencyNotFound) {
			return response.NotFound(c, "Agency profile not found")
		}
		return response.InternalServerError(c, "Failed to list bookings")
	}

	return response.Success(c, "Bookings retrieved successfully", pagination.NewResponse(toBookingResponses(bookings), params, total))
}

// UpdateBookingStatusRequest represents status update request body
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// UpdateBookingStatus handles the agency updating a reservation status
// @Summary Update booking status
// @Description Set the reservation status of a booking against the agency's tour
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param body body UpdateBookingStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agency/bookings/{id}/status [put]
func (h *BookingHandler) UpdateBookingStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid booking ID")
	}

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))

	booking, err := h.bookingService.UpdateStatus(c.Context(), userID, uint(id), status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidBookingData):
			return response.BadRequest(c, "Invalid booking status")
		case errors.Is(err, services.ErrBookingNotFound):
			return response.NotFound(c, "Booking not found")
		case errors.Is(err, services.ErrNotBookingAgency):
			return response.Forbidden(c, "Booking does not belong to your agency")
		default:
			return response.InternalServerError(c, "Failed to update booking")
		}
	}

	return response.Success(c, "Booking updated successfully", fiber.Map{
		"booking": booking.ToResponse(),
	})
}

// SubmitReceiptRequest represents receipt submission request body
type SubmitReceiptRequest struct {
	ReceiptURL string `json:"receipt_url"`
}

// SubmitReceipt handles a traveler attaching a payment receipt
// @Summary Submit payment receipt
// @Description Attach a payment receipt URL to the traveler's own booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param body body SubmitReceiptRequest true "Receipt URL"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id}/receipt [post]
func (h *BookingHandler) SubmitReceipt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid booking ID")
	}

	var req SubmitReceiptRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	booking, err := h.bookingService.SubmitReceipt(c.Context(), userID, uint(id), strings.TrimSpace(req.ReceiptURL))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidBookingData):
			return response.BadRequest(c, "Receipt URL is required")
		case errors.Is(err, services.ErrBookingNotFound):
			return response.NotFound(c, "Booking not found")
		case errors.Is(err, services.ErrNotBookingOwner):
			return response.Forbidden(c, "You don't own this booking")
		default:
			return response.InternalServerError(c, "Failed to submit receipt")
		}
	}

	return response.Success(c, "Receipt submitted successfully", fiber.Map{
		"booking": booking.ToResponse(),
	})
}

// toBookingResponses converts bookings to their DTO form
func toBookingResponses(bookings []*models.Booking) []*models.BookingResponse {
	out := make([]*models.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ToResponse())
	}
	return out
}
