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

// TourHandler handles tour catalog endpoints
type TourHandler struct {
	tourService *services.TourService
}

// NewTourHandler creates a new tour handler
func NewTourHandler(tourService *services.TourService) *TourHandler {
	return &TourHandler{
		tourService: tourService,
	}
}

// ListTours handles the public catalog listing
// @Summary List published tours
// @Description List published tours, optionally filtered by location
// @Tags Tours
// @Accept json
// @Produce json
// @Param location query string false "Location filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /tours [get]
func (h *TourHandler) ListTours(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	location := strings.TrimSpace(c.Query("location"))

	tours, total, err := h.tourService.ListPublished(c.Context(), location, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list tours")
	}

	return response.Success(c, "Tours retrieved successfully", pagination.NewResponse(tours, params, total))
}

// ListFeatured handles the featured strip listing
// @Summary List featured tours
// @Description List tours with an active paid promotion
// @Tags Tours
// @Accept json
// @Produce json
// @Param limit query int false "Max items" default(10)
// @Success 200 {object} response.Response
// @Router /tours/featured [get]
func (h *TourHandler) ListFeatured(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 || limit > pagination.MaxLimit {
		limit = 10
	}

	tours, err := h.tourService.ListFeatured(c.Context(), limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list featured tours")
	}

	return response.Success(c, "Featured tours retrieved successfully", fiber.Map{
		"tours": tours,
	})
}

// GetTour handles getting a single tour
// @Summary Get tour by ID
// @Description Get a tour. Unpublished tours are visible only to their owner or an admin
// @Tags Tours
// @Accept json
// @Produce json
// @Param id path int true "Tour ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tours/{id} [get]
func (h *TourHandler) GetTour(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tour ID")
	}

	// Optional auth: anonymous callers see published tours only
	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	tour, err := h.tourService.Get(c.Context(), uint(id), userID, role)
	if err != nil {
		if errors.Is(err, services.ErrTourNotFound) {
			return response.NotFound(c, "Tour not found")
		}
		return response.InternalServerError(c, "Failed to get tour")
	}

	return response.Success(c, "Tour retrieved successfully", fiber.Map{
		"tour": tour,
	})
}

// TourImageRequest represents one image in a tour request body
type TourImageRequest struct {
	URL      string `json:"url"`
	Position int    `json:"position"`
}

// CreateTourRequest represents create tour request body
type CreateTourRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Location    string             `json:"location"`
	Latitude    *float64           `json:"latitude"`
	Longitude   *float64           `json:"longitude"`
	Price       float64            `json:"price"`
	Currency    string             `json:"currency"`
	Images      []TourImageRequest `json:"images"`
	Dates       []string           `json:"dates"`
}

// CreateTour handles creating a new tour
// @Summary Create tour
// @Description Create a new tour for the authenticated agency
// @Tags Tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateTourRequest true "Tour data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /agency/tours [post]
func (h *TourHandler) CreateTour(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateTourRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title == "" {
		return response.BadRequest(c, "Title is required")
	}
	if req.Location == "" {
		return response.BadRequest(c, "Location is required")
	}
	if req.Price <= 0 {
		return response.BadRequest(c, "Price must be greater than zero")
	}

	input := &services.CreateTourInput{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Price:       req.Price,
		Currency:    strings.TrimSpace(req.Currency),
		Images:      toImageInputs(req.Images),
		Dates:       req.Dates,
	}

	tour, err := h.tourService.Create(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAgencyNotFound):
			return response.NotFound(c, "Agency profile not found")
		case errors.Is(err, services.ErrAgencyNotActive):
			return response.Forbidden(c, "Agency is not active")
		default:
			return response.BadRequest(c, "Failed to create tour")
		}
	}

	return response.Created(c, "Tour created successfully", fiber.Map{
		"tour": tour,
	})
}

// UpdateTourRequest represents update tour request body
type UpdateTourRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Location    string             `json:"location"`
	Latitude    *float64           `json:"latitude"`
	Longitude   *float64           `json:"longitude"`
	Price       *float64           `json:"price"`
	Currency    string             `json:"currency"`
	Status      string             `json:"status"`
	Images      []TourImageRequest `json:"images"`
	Dates       []string           `json:"dates"`
}

// UpdateTour handles updating a tour
// @Summary Update tour
// @Description Update a tour owned by the authenticated agency
// @Tags Tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tour ID"
// @Param body body UpdateTourRequest true "Tour data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agency/tours/{id} [put]
func (h *TourHandler) UpdateTour(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tour ID")
	}

	var req UpdateTourRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateTourInput{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Price:       req.Price,
		Currency:    strings.TrimSpace(req.Currency),
		Status:      strings.TrimSpace(req.Status),
		Images:      toImageInputs(req.Images),
		Dates:       req.Dates,
	}

	tour, err := h.tourService.Update(c.Context(), userID, role, uint(id), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTourNotFound):
			return response.NotFound(c, "Tour not found")
		case errors.Is(err, services.ErrNotTourOwner):
			return response.Forbidden(c, "You don't own this tour")
		default:
			return response.BadRequest(c, "Failed to update tour")
		}
	}

	return response.Success(c, "Tour updated successfully", fiber.Map{
		"tour": tour,
	})
}

// DeleteTour handles archiving a tour
// @Summary Delete tour
// @Description Archive a tour owned by the authenticated agency
// @Tags Tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tour ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agency/tours/{id} [delete]
func (h *TourHandler) DeleteTour(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tour ID")
	}

	if err := h.tourService.Delete(c.Context(), userID, role, uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrTourNotFound):
			return response.NotFound(c, "Tour not found")
		case errors.Is(err, services.ErrNotTourOwner):
			return response.Forbidden(c, "You don't own this tour")
		default:
			return response.InternalServerError(c, "Failed to delete tour")
		}
	}

	return response.Success(c, "Tour deleted successfully", nil)
}

// PromoteTourRequest represents a promotion request body
type PromoteTourRequest struct {
	PlanSlug string `json:"plan_slug"`
}

// PromoteTour handles applying a paid promotion plan to a tour
// @Summary Promote tour
// @Description Apply a promotion plan so the tour appears in the featured strip
// @Tags Tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tour ID"
// @Param body body PromoteTourRequest true "Plan"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agency/tours/{id}/promote [post]
func (h *TourHandler) PromoteTour(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tour ID")
	}

	var req PromoteTourRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.PlanSlug == "" {
		return response.BadRequest(c, "Plan slug is required")
	}

	tour, err := h.tourService.Promote(c.Context(), userID, role, uint(id), req.PlanSlug)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTourNotFound):
			return response.NotFound(c, "Tour not found")
		case errors.Is(err, services.ErrNotTourOwner):
			return response.Forbidden(c, "You don't own this tour")
		case errors.Is(err, services.ErrPlanNotFound):
			return response.NotFound(c, "Plan not found")
		case errors.Is(err, services.ErrWrongPlanKind):
			return response.BadRequest(c, "Plan is not a promotion plan")
		default:
			return response.InternalServerError(c, "Failed to promote tour")
		}
	}

	return response.Success(c, "Tour promoted successfully", fiber.Map{
		"tour": tour,
	})
}

// ListMyTours handles listing the agency's own tours
// @Summary List own tours
// @Description List the authenticated agency's tours in any status
// @Tags Tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /agency/tours [get]
func (h *TourHandler) ListMyTours(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	tours, total, err := h.tourService.ListMine(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, services.ErrAgencyNotFound) {
			return response.NotFound(c, "Agency profile not found")
		}
		return response.InternalServerError(c, "Failed to list tours")
	}

	return response.Success(c, "Tours retrieved successfully", pagination.NewResponse(tours, params, total))
}

// ListPlans handles listing the plan catalog
// @Summary List plans
// @Description List active plans, optionally filtered by kind (AD or MEMBERSHIP)
// @Tags Tours
// @Accept json
// @Produce json
// @Param kind query string false "Plan kind"
// @Success 200 {object} response.Response
// @Router /plans [get]
func (h *TourHandler) ListPlans(c *fiber.Ctx) error {
	kind := strings.ToUpper(strings.TrimSpace(c.Query("kind")))

	plans, err := h.tourService.ListPlans(c.Context(), kind)
	if err != nil {
		return response.InternalServerError(c, "Failed to list plans")
	}

	return response.Success(c, "Plans retrieved successfully", fiber.Map{
		"plans": plans,
	})
}

// toImageInputs converts request images to service inputs
func toImageInputs(images []TourImageRequest) []services.TourImageInput {
	if len(images) == 0 {
		return nil
	}
	out := make([]services.TourImageInput, 0, len(images))
	for _, img := range images {
		out = append(out, services.TourImageInput{
			URL:      img.URL,
			Position: img.Position,
		})
	}
	return out
}
