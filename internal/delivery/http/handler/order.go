package handler

import (
	"net/http"

	"github.com/Pesokrava/market_ledger/internal/delivery/http/middleware"
	"github.com/Pesokrava/market_ledger/internal/delivery/http/request"
	"github.com/Pesokrava/market_ledger/internal/delivery/http/response"
	"github.com/Pesokrava/market_ledger/internal/domain"
	"github.com/Pesokrava/market_ledger/internal/pkg/logger"
	"github.com/Pesokrava/market_ledger/internal/usecase/market"
)

const (
	// IdempotencyKeyHeader lets clients retry order placement safely
	IdempotencyKeyHeader = "Idempotency-Key"
	// ReplayedHeader is set when a retried request returned an existing order
	ReplayedHeader = "Idempotent-Replayed"
)

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	service *market.Service
	logger  *logger.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service *market.Service, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  log,
	}
}

// PlaceOrderRequest represents the request body for placing an order.
// Buyer defaults to the caller.
type PlaceOrderRequest struct {
	ProductID uint64 `json:"product_id"`
	Quantity  uint64 `json:"quantity"`
	Buyer     string `json:"buyer,omitempty"`
}

// Place handles POST /api/v1/orders
// @Summary Place an order
// @Description Reserve inventory for a buyer. A repeated Idempotency-Key returns the original order.
// @Tags Orders
// @Accept json
// @Produce json
// @Param X-Principal header string true "Caller principal"
// @Param Idempotency-Key header string false "Client retry key"
// @Param order body PlaceOrderRequest true "Order"
// @Success 201 {object} map[string]interface{} "Order placed"
// @Success 200 {object} map[string]interface{} "Existing order for this key"
// @Failure 400 {object} domain.Error "Invalid quantity or buyer"
// @Failure 404 {object} domain.Error "Product not found"
// @Failure 409 {object} domain.Error "Inactive product or insufficient inventory"
// @Router /orders [post]
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	caller := middleware.CallerFrom(r.Context())
	buyer := domain.Principal(req.Buyer)
	if buyer == "" {
		buyer = caller
	}

	key := r.Header.Get(IdempotencyKeyHeader)
	id, replayed, err := h.service.PlaceOrder(r.Context(), caller, req.ProductID, req.Quantity, buyer, key)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	order, err := h.service.GetOrder(id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if replayed {
		w.Header().Set(ReplayedHeader, "true")
		response.Success(w, order)
		return
	}

	response.Created(w, order)
}

// List handles GET /api/v1/orders
// @Summary List orders
// @Tags Orders
// @Produce json
// @Success 200 {object} map[string]interface{} "Orders by id"
// @Router /orders [get]
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.service.ListOrders())
}

// GetByID handles GET /api/v1/orders/{id}
// @Summary Get an order
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]interface{} "Order"
// @Failure 404 {object} domain.Error "Order not found"
// @Router /orders/{id} [get]
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUint64Param(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	order, err := h.service.GetOrder(id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, order)
}

// Cancel handles POST /api/v1/orders/{id}/cancel
// @Summary Cancel a pending order
// @Description Releases the reserved inventory (buyer, manager or owner)
// @Tags Orders
// @Produce json
// @Param X-Principal header string true "Caller principal"
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]interface{} "Order"
// @Failure 400 {object} domain.Error "Restoring the quantity would overflow inventory"
// @Failure 403 {object} domain.Error "Not authorized"
// @Failure 404 {object} domain.Error "Order not found"
// @Failure 409 {object} domain.Error "Order is not pending"
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUint64Param(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.service.CancelOrder(r.Context(), middleware.CallerFrom(r.Context()), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	order, err := h.service.GetOrder(id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, order)
}

// Mint handles POST /api/v1/orders/{id}/mint
// @Summary Mint the product NFT for an order
// @Description Mints one token to the buyer and completes the order
// @Tags Orders
// @Produce json
// @Param X-Principal header string true "Caller principal"
// @Param id path int true "Order ID"
// @Success 200 {object} market.MintResult "Minted token"
// @Failure 403 {object} domain.Error "Owner only"
// @Failure 404 {object} domain.Error "Order or NFT binding not found"
// @Failure 409 {object} domain.Error "Order is not pending"
// @Router /orders/{id}/mint [post]
func (h *OrderHandler) Mint(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUint64Param(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	result, err := h.service.MintForOrder(r.Context(), middleware.CallerFrom(r.Context()), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, result)
}
