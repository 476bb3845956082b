package handler

import (
	"net/http"

	"github.com/Pesokrava/market_ledger/internal/delivery/http/middleware"
	"github.com/Pesokrava/market_ledger/internal/delivery/http/request"
	"github.com/Pesokrava/market_ledger/internal/delivery/http/response"
	"github.com/Pesokrava/market_ledger/internal/pkg/logger"
	"github.com/Pesokrava/market_ledger/internal/usecase/market"
)

// DiscountHandler handles HTTP requests for discounts
type DiscountHandler struct {
	service *market.Service
	logger  *logger.Logger
}

// NewDiscountHandler creates a new discount handler
func NewDiscountHandler(service *market.Service, log *logger.Logger) *DiscountHandler {
	return &DiscountHandler{
		service: service,
		logger:  log,
	}
}

// CreateDiscountRequest represents the request body for creating a discount.
// The window is [start_height, end_height).
type CreateDiscountRequest struct {
	ProductID   uint64 `json:"product_id"`
	Percent     uint64 `json:"percent"`
	StartHeight uint64 `json:"start_height"`
	EndHeight   uint64 `json:"end_height"`
}

// UpdateDiscountRequest represents the request body for updating a discount
type UpdateDiscountRequest struct {
	Percent   uint64 `json:"percent"`
	EndHeight uint64 `json:"end_height"`
}

// Create handles POST /api/v1/discounts
// @Summary Add a discount
// @Tags Discounts
// @Accept json
// @Produce json
// @Param X-Principal header string true "Caller principal"
// @Param discount body CreateDiscountRequest true "Discount"
// @Success 201 {object} map[string]interface{} "Discount created"
// @Failure 400 {object} domain.Error "Invalid discount"
// @Failure 403 {object} domain.Error "Not authorized"
// @Failure 404 {object} domain.Error "Product not found"
// @Router /discounts [post]
func (h *DiscountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDiscountRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	caller := middleware.CallerFrom(r.Context())
	id, err := h.service.AddDiscount(r.Context(), caller, req.ProductID, req.Percent, req.StartHeight, req.EndHeight)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	discount, err := h.service.GetDiscount(id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Created(w, discount)
}

// GetByID handles GET /api/v1/discounts/{id}
// @Summary Get a discount
// @Tags Discounts
// @Produce json
// @Param id path int true "Discount ID"
// @Success 200 {object} map[string]interface{} "Discount"
// @Failure 404 {object} domain.Error "Unknown discount"
// @Router /discounts/{id} [get]
func (h *DiscountHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUint64Param(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	discount, err := h.service.GetDiscount(id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, discount)
}

// Update handles PUT /api/v1/discounts/{id}
// @Summary Update a discount
// @Tags Discounts
// @Accept json
// @Produce json
// @Param X-Principal header string true "Caller principal"
// @Param id path int true "Discount ID"
// @Param discount body UpdateDiscountRequest true "New percent and end height"
// @Success 200 {object} map[string]interface{} "Discount"
// @Failure 400 {object} domain.Error "Invalid discount"
// @Failure 404 {object} domain.Error "Unknown discount"
// @Router /discounts/{id} [put]
func (h *DiscountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUint64Param(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req UpdateDiscountRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	caller := middleware.CallerFrom(r.Context())
	if err := h.service.UpdateDiscount(r.Context(), caller, id, req.Percent, req.EndHeight); err != nil {
		handleError(w, h.logger, err)
		return
	}

	discount, err := h.service.GetDiscount(id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, discount)
}

// Deactivate handles POST /api/v1/discounts/{id}/deactivate
// @Summary Deactivate a discount
// @Tags Discounts
// @Produce json
// @Param X-Principal header string true "Caller principal"
// @Param id path int true "Discount ID"
// @Success 200 {object} map[string]interface{} "Discount"
// @Failure 404 {object} domain.Error "Unknown discount"
// @Router /discounts/{id}/deactivate [post]
func (h *DiscountHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUint64Param(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.service.DeactivateDiscount(r.Context(), middleware.CallerFrom(r.Context()), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	discount, err := h.service.GetDiscount(id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, discount)
}
