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

// StoreHandler handles HTTP requests for store info, managers and the audit log
type StoreHandler struct {
	service *market.Service
	logger  *logger.Logger
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(service *market.Service, log *logger.Logger) *StoreHandler {
	return &StoreHandler{
		service: service,
		logger:  log,
	}
}

// UpdateStoreRequest represents the request body for updating store info
type UpdateStoreRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Banner      string `json:"banner"`
}

// ManagerRequest represents the request body for granting the manager role
type ManagerRequest struct {
	Principal string `json:"principal"`
}

// GetStore handles GET /api/v1/store
// @Summary Get store info
// @Tags Store
// @Produce json
// @Success 200 {object} map[string]interface{} "Store info"
// @Router /store [get]
func (h *StoreHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]interface{}{
		"owner": h.service.Owner(),
		"info":  h.service.StoreInfo(),
	})
}

// UpdateStore handles PUT /api/v1/store
// @Summary Update store info
// @Description Replace the storefront name, description, logo and banner (owner only)
// @Tags Store
// @Accept json
// @Produce json
// @Param X-Principal header string true "Caller principal"
// @Param store body UpdateStoreRequest true "Store info"
// @Success 200 {object} map[string]interface{} "Store updated"
// @Failure 400 {object} domain.Error "Invalid field"
// @Failure 403 {object} domain.Error "Owner only"
// @Router /store [put]
func (h *StoreHandler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	var req UpdateStoreRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	info := domain.StoreInfo{
		Name:        req.Name,
		Description: req.Description,
		Logo:        req.Logo,
		Banner:      req.Banner,
	}

	if err := h.service.UpdateStoreInfo(r.Context(), middleware.CallerFrom(r.Context()), info); err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, info)
}

// ListManagers handles GET /api/v1/managers
// @Summary List managers
// @Tags Managers
// @Produce json
// @Success 200 {object} map[string]interface{} "Managers"
// @Router /managers [get]
func (h *StoreHandler) ListManagers(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.service.Managers())
}

// AddManager handles POST /api/v1/managers
// @Summary Grant the manager role
// @Tags Managers
// @Accept json
// @Produce json
// @Param X-Principal header string true "Caller principal"
// @Param manager body ManagerRequest true "Principal to promote"
// @Success 201 {object} map[string]interface{} "Manager added"
// @Failure 400 {object} domain.Error "Invalid principal"
// @Failure 403 {object} domain.Error "Owner only"
// @Router /managers [post]
func (h *StoreHandler) AddManager(w http.ResponseWriter, r *http.Request) {
	var req ManagerRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	p := domain.Principal(req.Principal)
	if err := h.service.AddManager(r.Context(), middleware.CallerFrom(r.Context()), p); err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Created(w, map[string]domain.Principal{"principal": p})
}

// RemoveManager handles DELETE /api/v1/managers/{principal}
// @Summary Revoke the manager role
// @Tags Managers
// @Param X-Principal header string true "Caller principal"
// @Param principal path string true "Manager principal"
// @Success 204 "Manager removed"
// @Failure 403 {object} domain.Error "Owner only"
// @Router /managers/{principal} [delete]
func (h *StoreHandler) RemoveManager(w http.ResponseWriter, r *http.Request) {
	p, err := request.GetPrincipalParam(r, "principal")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.service.RemoveManager(r.Context(), middleware.CallerFrom(r.Context()), p); err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.NoContent(w)
}

// LastLog handles GET /api/v1/logs/last
// @Summary Most recent audit log entry
// @Tags Logs
// @Produce json
// @Success 200 {object} map[string]interface{} "Log entry"
// @Failure 404 {object} domain.Error "Log is empty"
// @Router /logs/last [get]
func (h *StoreHandler) LastLog(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.LastLog()
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, entry)
}

// LogNonce handles GET /api/v1/logs/nonce
// @Summary Number of audit log entries ever written
// @Tags Logs
// @Produce json
// @Success 200 {object} map[string]interface{} "Nonce"
// @Router /logs/nonce [get]
func (h *StoreHandler) LogNonce(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]uint64{"nonce": h.service.LogNonce()})
}
