package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"caribe-tours/internal/core/services"
	"caribe-tours/internal/pkg/pagination"
	"caribe-tours/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AgencyHandler handles agency profile and payout endpoints
type AgencyHandler struct {
	agencyService *services.AgencyService
}

// NewAgencyHandler creates a new agency handler
func NewAgencyHandler(agencyService *services.AgencyService) *AgencyHandler {
	return &AgencyHandler{
		agencyService: agencyService,
	}
}

// GetProfile handles getting the caller's agency profile
// @Summary Get own agency profile
// @Description Get the authenticated agency's profile
// @Tags Agencies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agency/profile [get]
func (h *AgencyHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	agency, err := h.agencyService.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrAgencyNotFound) {
			return response.NotFound(c, "Agency profile not found")
		}
		return response.InternalServerError(c, "Failed to get agency profile")
	}

	return response.Success(c, "Agency profile retrieved successfully", fiber.Map{
		"agency":                    agency.ToResponse(),
		"effective_commission_rate": h.agencyService.EffectiveCommissionRate(agency, time.Now()),
	})
}

// UpdateAgencyProfileRequest represents agency profile update request body
type UpdateAgencyProfileRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	PayoutAccount string `json:"payout_account"`
}

// UpdateProfile handles updating the caller's agency profile
// @Summary Update own agency profile
// @Description Update the authenticated agency's profile
// @Tags Agencies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateAgencyProfileRequest true "Profile data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agency/profile [put]
func (h *AgencyHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req UpdateAgencyProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateProfileInput{
		Name:          strings.TrimSpace(req.Name),
		Description:   strings.TrimSpace(req.Description),
		PayoutAccount: strings.TrimSpace(req.PayoutAccount),
	}

	agency, err := h.agencyService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		if errors.Is(err, services.ErrAgencyNotFound) {
			return response.NotFound(c, "Agency profile not found")
		}
		return response.InternalServerError(c, "Failed to update agency profile")
	}

	return response.Success(c, "Agency profile updated successfully", fiber.Map{
		"agency": agency.ToResponse(),
	})
}

// AddBankAccountRequest represents bank account request body
type AddBankAccountRequest struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	Currency      string `json:"currency"`
}

// AddBankAccount handles adding a payout bank account
// @Summary Add bank account
// @Description Add a payout bank account to the agency
// @Tags Agencies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddBankAccountRequest true "Bank account data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /agency/bank-accounts [post]
func (h *AgencyHandler) AddBankAccount(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req AddBankAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.BankName == "" || req.AccountName == "" || req.AccountNumber == "" {
		return response.BadRequest(c, "Bank name, account name and account number are required")
	}

	input := &services.AddBankAccountInput{
		BankName:      strings.TrimSpace(req.BankName),
		AccountName:   strings.TrimSpace(req.AccountName),
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		Currency:      strings.TrimSpace(req.Currency),
	}

	account, err := h.agencyService.AddBankAccount(c.Context(), userID, input)
	if err != nil {
		if errors.Is(err, services.ErrAgencyNotFound) {
			return response.NotFound(c, "Agency profile not found")
		}
		return response.InternalServerError(c, "Failed to add bank account")
	}

	return response.Created(c, "Bank account added successfully", fiber.Map{
		"bank_account": account,
	})
}

// ListBankAccounts handles listing the agency's bank accounts
// @Summary List bank accounts
// @Description List the agency's payout bank accounts
// @Tags Agencies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /agency/bank-accounts [get]
func (h *AgencyHandler) ListBankAccounts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	accounts, err := h.agencyService.ListBankAccounts(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrAgencyNotFound) {
			return response.NotFound(c, "Agency profile not found")
		}
		return response.InternalServerError(c, "Failed to list bank accounts")
	}

	return response.Success(c, "Bank accounts retrieved successfully", fiber.Map{
		"bank_accounts": accounts,
	})
}

// RemoveBankAccount handles removing a bank account
// @Summary Remove bank account
// @Description Remove one of the agency's bank accounts
// @Tags Agencies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bank account ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agency/bank-accounts/{id} [delete]
func (h *AgencyHandler) RemoveBankAccount(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid bank account ID")
	}

	if err := h.agencyService.RemoveBankAccount(c.Context(), userID, uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrBankAccountNotFound):
			return response.NotFound(c, "Bank account not found")
		case errors.Is(err, services.ErrNotAccountOwner):
			return response.Forbidden(c, "You don't own this bank account")
		case errors.Is(err, services.ErrAgencyNotFound):
			return response.NotFound(c, "Agency profile not found")
		default:
			return response.InternalServerError(c, "Failed to remove bank account")
		}
	}

	return response.Success(c, "Bank account removed successfully", nil)
}

// ListTransactions handles listing the agency's revenue ledger
// @Summary List agency transactions
// @Description List the agency's paid transactions, newest first
// @Tags Agencies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /agency/transactions [get]
func (h *AgencyHandler) ListTransactions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	transactions, total, err := h.agencyService.ListTransactions(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, services.ErrAgencyNotFound) {
			return response.NotFound(c, "Agency profile not found")
		}
		return response.InternalServerError(c, "Failed to list transactions")
	}

	return response.Success(c, "Transactions retrieved successfully", pagination.NewResponse(transactions, params, total))
}

// GetPublicProfile handles the public agency page
// @Summary Get public agency profile
// @Description Get an agency's public profile by ID
// @Tags Agencies
// @Accept json
// @Produce json
// @Param id path int true "Agency ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agencies/{id} [get]
func (h *AgencyHandler) GetPublicProfile(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid agency ID")
	}

	agency, err := h.agencyService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrAgencyNotFound) {
			return response.NotFound(c, "Agency not found")
		}
		return response.InternalServerError(c, "Failed to get agency")
	}

	return response.Success(c, "Agency retrieved successfully", fiber.Map{
		"agency": agency.ToResponse(),
	})
}
