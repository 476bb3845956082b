package handler

import (
	"net/http"

	"github.com/Pesokrava/market_ledger/internal/delivery/http/middleware"
	"github.com/Pesokrava/market_ledger/internal/delivery/http/request"
	"github.com/Pesokrava/market_ledger/internal/delivery/http/response"
	"github.com/Pesokrava/market_ledger/internal/pkg/logger"
	"github.com/Pesokrava/market_ledger/internal/usecase/market"
)

// ProductHandler handles HTTP requests for products, their inventory, price and NFT binding
type ProductHandler struct {
	service *market.Service
	logger  *logger.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *market.Service, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  log,
	}
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	ID          *uint64 `json:"id" validate:"required"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       uint64  `json:"price"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       uint64  `json:"price"`
}

// InventoryRequest represents the request body for setting stock
type InventoryRequest struct {
	Quantity uint64 `json:"quantity"`
}

// ProductNFTRequest represents the request body for binding a product to a token contract
type ProductNFTRequest struct {
	TokenContract string  `json:"token_contract"`
	URITemplate   *string `json:"uri_template,omitempty"`
}

// Create handles POST /api/v1/products
// @Summary Add a product
// @Description Register a product under a caller-chosen id (owner or manager)
// @Tags Products
// @Accept json
// @Produce json
// @Param X-Principal header string true "Caller principal"
// @Param product body CreateProductRequest true "Product details"
// @Success 201 {object} map[string]interface{} "Product created"
// @Failure 400 {object} domain.Error "Invalid field"
// @Failure 403 {object} domain.Error "Not authorized"
// @Failure 409 {object} domain.Error "Duplicate id or list full"
// @Router /products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := request.DecodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	id := *req.ID
	caller := middleware.CallerFrom(r.Context())
	if err := h.service.AddProduct(r.Context(), caller, id, req.Price, req.Name, req.Description); err != nil {
		handleError(w, h.logger, err)
		return
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Created(w, product)
}

// List handles GET /api/v1/products
// @Summary List active products
// @Tags Products
// @Produce json
// @Success 200 {object} map[string]interface{} "Active products in insertion order"
// @Router /products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.service.ListProducts())
}

// GetByID handles GET /api/v1/products/{id}
// @Summary Get a product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]interface{} "Product details"
// @Failure 404 {object} domain.Error "Product not found"
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUint64Param(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, product)
}

// Update handles PUT /api/v1/products/{id}
// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Param X-Principal header string true "Caller principal"
// @Param id path int true "Product ID"
// @Param product body UpdateProductRequest true "Updated product details"
// @Success 200 {object} map[string]interface{} "Product updated"
// @Failure 400 {object} domain.Error "Invalid field"
// @Failure 404 {object} domain.Error "Product not found"
// @Router /products/{id} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUint64Param(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req UpdateProductRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	caller := middleware.CallerFrom(r.Context())
	if err := h.service.UpdateProduct(r.Context(), caller, id, req.Price, req.Name, req.Description); err != nil {
		handleError(w, h.logger, err)
		return
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, product)
}

// Delete handles DELETE /api/v1/products/{id}
// @Summary Remove a product
// @Description Deactivate a product; it stays readable as INACTIVE
// @Tags Products
// @Param X-Principal header string true "Caller principal"
// @Param id path int true "Product ID"
// @Success 204 "Product removed"
// @Failure 404 {object} domain.Error "Product not found"
// @Failure 409 {object} domain.Error "Product inactive"
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUint64Param(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.service.RemoveProduct(r.Context(), middleware.CallerFrom(r.Context()), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.NoContent(w)
}

// GetInventory handles GET /api/v1/products/{id}/inventory
// @Summary Quantity on hand
// @Tags Inventory
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]interface{} "Inventory"
// @Router /products/{id}/inventory [get]
func (h *ProductHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUint64Param(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, map[string]uint64{
		"product_id": id,
		"quantity":   h.service.GetInventory(id),
	})
}

// SetInventory handles PUT /api/v1/products/{id}/inventory
// @Summary Set quantity on hand
// @Tags Inventory
// @Accept json
// @Produce json
// @Param X-Principal header string true "Caller principal"
// @Param id path int true "Product ID"
// @Param inventory body InventoryRequest true "New quantity"
// @Success 200 {object} map[string]interface{} "Inventory"
// @Failure 403 {object} domain.Error "Not authorized"
// @Failure 404 {object} domain.Error "Product not found"
// @Router /products/{id}/inventory [put]
func (h *ProductHandler) SetInventory(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUint64Param(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req InventoryRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.service.UpdateInventory(r.Context(), middleware.CallerFrom(r.Context()), id, req.Quantity); err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, map[string]uint64{
		"product_id": id,
		"quantity":   req.Quantity,
	})
}

// GetPrice handles GET /api/v1/products/{id}/price
// @Summary Discounted price at the current height
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]interface{} "Price"
// @Failure 404 {object} domain.Error "Product not found"
// @Router /products/{id}/price [get]
func (h *ProductHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUint64Param(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	price, err := h.service.DiscountedPrice(id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, map[string]uint64{
		"product_id": id,
		"price":      price,
	})
}

// GetNFT handles GET /api/v1/products/{id}/nft
// @Summary Product NFT binding
// @Tags NFT
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]interface{} "Binding"
// @Failure 404 {object} domain.Error "No binding"
// @Router /products/{id}/nft [get]
func (h *ProductHandler) GetNFT(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUint64Param(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	binding, err := h.service.GetProductNFT(id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, binding)
}

// SetNFT handles PUT /api/v1/products/{id}/nft
// @Summary Bind a product to a token contract
// @Tags NFT
// @Accept json
// @Produce json
// @Param X-Principal header string true "Caller principal"
// @Param id path int true "Product ID"
// @Param binding body ProductNFTRequest true "Binding"
// @Success 200 {object} map[string]interface{} "Binding"
// @Failure 403 {object} domain.Error "Not authorized"
// @Failure 404 {object} domain.Error "Product not found"
// @Router /products/{id}/nft [put]
func (h *ProductHandler) SetNFT(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUint64Param(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req ProductNFTRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	caller := middleware.CallerFrom(r.Context())
	if err := h.service.SetProductNFT(r.Context(), caller, id, req.TokenContract, req.URITemplate); err != nil {
		handleError(w, h.logger, err)
		return
	}

	binding, err := h.service.GetProductNFT(id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, binding)
}
