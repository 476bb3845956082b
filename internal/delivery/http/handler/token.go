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

// TokenHandler handles HTTP requests for the token registry and the NFT contract switch
type TokenHandler struct {
	service *market.Service
	logger  *logger.Logger
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(service *market.Service, log *logger.Logger) *TokenHandler {
	return &TokenHandler{
		service: service,
		logger:  log,
	}
}

// MintRequest represents the request body for minting a token
type MintRequest struct {
	To string `json:"to"`
}

// TokenURIRequest represents the request body for setting a token URI
type TokenURIRequest struct {
	URI string `json:"uri"`
}

// TransferRequest represents the request body for transferring a token
type TransferRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// NFTContractRequest represents the request body for the contract-wide NFT switch
type NFTContractRequest struct {
	Contract string `json:"contract"`
	Enabled  bool   `json:"enabled"`
}

// Mint handles POST /api/v1/tokens
// @Summary Mint a token
// @Tags Tokens
// @Accept json
// @Produce json
// @Param X-Principal header string true "Caller principal"
// @Param token body MintRequest true "Recipient"
// @Success 201 {object} map[string]interface{} "Token minted"
// @Failure 400 {object} domain.Error "Invalid principal"
// @Failure 403 {object} domain.Error "Not authorized"
// @Router /tokens [post]
func (h *TokenHandler) Mint(w http.ResponseWriter, r *http.Request) {
	var req MintRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	id, err := h.service.Mint(r.Context(), middleware.CallerFrom(r.Context()), domain.Principal(req.To))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	token, err := h.service.GetToken(id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Created(w, token)
}

// LastTokenID handles GET /api/v1/tokens/last
// @Summary Id of the last minted token
// @Tags Tokens
// @Produce json
// @Success 200 {object} map[string]interface{} "Last token id"
// @Router /tokens/last [get]
func (h *TokenHandler) LastTokenID(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]uint64{"last_token_id": h.service.LastTokenID()})
}

// GetByID handles GET /api/v1/tokens/{id}
// @Summary Get a token
// @Tags Tokens
// @Produce json
// @Param id path int true "Token ID"
// @Success 200 {object} map[string]interface{} "Token"
// @Failure 404 {object} domain.Error "Unknown token"
// @Router /tokens/{id} [get]
func (h *TokenHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUint64Param(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	token, err := h.service.GetToken(id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, token)
}

// SetURI handles PUT /api/v1/tokens/{id}/uri
// @Summary Attach an ipfs:// URI to a token
// @Tags Tokens
// @Accept json
// @Produce json
// @Param X-Principal header string true "Caller principal"
// @Param id path int true "Token ID"
// @Param uri body TokenURIRequest true "URI"
// @Success 200 {object} map[string]interface{} "Token"
// @Failure 400 {object} domain.Error "Invalid URI"
// @Failure 404 {object} domain.Error "Unknown token"
// @Router /tokens/{id}/uri [put]
func (h *TokenHandler) SetURI(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUint64Param(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req TokenURIRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.service.SetTokenURI(r.Context(), middleware.CallerFrom(r.Context()), id, req.URI); err != nil {
		handleError(w, h.logger, err)
		return
	}

	token, err := h.service.GetToken(id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, token)
}

// Transfer handles POST /api/v1/tokens/{id}/transfer
// @Summary Transfer a token
// @Tags Tokens
// @Accept json
// @Produce json
// @Param X-Principal header string true "Caller principal"
// @Param id path int true "Token ID"
// @Param transfer body TransferRequest true "Sender and recipient"
// @Success 200 {object} map[string]interface{} "Token"
// @Failure 403 {object} domain.Error "Not authorized"
// @Failure 404 {object} domain.Error "Unknown token"
// @Router /tokens/{id}/transfer [post]
func (h *TokenHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUint64Param(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req TransferRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	caller := middleware.CallerFrom(r.Context())
	if err := h.service.Transfer(r.Context(), caller, id, domain.Principal(req.From), domain.Principal(req.To)); err != nil {
		handleError(w, h.logger, err)
		return
	}

	token, err := h.service.GetToken(id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, token)
}

// GetContract handles GET /api/v1/nft/contract
// @Summary Contract-wide NFT switch
// @Tags NFT
// @Produce json
// @Success 200 {object} map[string]interface{} "Contract"
// @Router /nft/contract [get]
func (h *TokenHandler) GetContract(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.service.NFTContract())
}

// SetContract handles PUT /api/v1/nft/contract
// @Summary Set the contract-wide NFT switch
// @Tags NFT
// @Accept json
// @Produce json
// @Param X-Principal header string true "Caller principal"
// @Param contract body NFTContractRequest true "Contract"
// @Success 200 {object} map[string]interface{} "Contract"
// @Failure 403 {object} domain.Error "Owner only"
// @Router /nft/contract [put]
func (h *TokenHandler) SetContract(w http.ResponseWriter, r *http.Request) {
	var req NFTContractRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	caller := middleware.CallerFrom(r.Context())
	if err := h.service.SetNFTContract(r.Context(), caller, req.Contract, req.Enabled); err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, h.service.NFTContract())
}
