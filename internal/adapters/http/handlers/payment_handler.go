package handlers

import (
	"errors"
	"strings"

	"caribe-tours/internal/core/services"
	"caribe-tours/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles external payment verification endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
	agencyService  *services.AgencyService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService, agencyService *services.AgencyService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		agencyService:  agencyService,
	}
}

// VerifyPaymentRequest represents a captured external payment
type VerifyPaymentRequest struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Type     string  `json:"type"`
	Metadata struct {
		TourID   uint   `json:"tour_id"`
		PlanSlug string `json:"plan_slug"`
	} `json:"metadata"`
}

// VerifyPayment handles applying a completed external payment.
// The caller is the agency that made the purchase; the agency ID is
// resolved from the session, never trusted from the body.
// @Summary Verify payment
// @Description Record a captured external payment and apply its effect
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body VerifyPaymentRequest true "Payment confirmation"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /payments/verify [post]
func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.OrderID == "" {
		return response.BadRequest(c, "Order ID is required")
	}
	if req.Amount <= 0 {
		return response.BadRequest(c, "Amount must be greater than zero")
	}
	if req.Type == "" {
		return response.BadRequest(c, "Payment type is required")
	}

	agency, err := h.agencyService.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrAgencyNotFound) {
			return response.NotFound(c, "Agency profile not found")
		}
		return response.InternalServerError(c, "Failed to verify payment")
	}

	input := &services.VerifyPaymentInput{
		OrderID:  strings.TrimSpace(req.OrderID),
		AgencyID: agency.ID,
		Amount:   req.Amount,
		Currency: strings.TrimSpace(req.Currency),
		Type:     strings.ToUpper(strings.TrimSpace(req.Type)),
		Metadata: services.VerifyPaymentMetadata{
			TourID:   req.Metadata.TourID,
			PlanSlug: strings.TrimSpace(req.Metadata.PlanSlug),
		},
	}

	tx, err := h.paymentService.Verify(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateOrder):
			return response.Conflict(c, "Order already processed")
		case errors.Is(err, services.ErrInvalidPaymentType):
			return response.BadRequest(c, "Payment type must be MEMBERSHIP_PRO or AD_PROMOTION")
		case errors.Is(err, services.ErrMissingMetadata):
			return response.BadRequest(c, "Payment metadata is incomplete")
		case errors.Is(err, services.ErrPlanNotFound):
			return response.NotFound(c, "Plan not found")
		case errors.Is(err, services.ErrWrongPlanKind):
			return response.BadRequest(c, "Plan does not match the payment type")
		case errors.Is(err, services.ErrTourNotFound):
			return response.NotFound(c, "Tour not found")
		case errors.Is(err, services.ErrNotTourOwner):
			return response.Forbidden(c, "You don't own this tour")
		case errors.Is(err, services.ErrAgencyNotFound):
			return response.NotFound(c, "Agency not found")
		default:
			return response.InternalServerError(c, "Failed to verify payment")
		}
	}

	return response.Success(c, "Payment verified successfully", fiber.Map{
		"transaction": tx,
	})
}
