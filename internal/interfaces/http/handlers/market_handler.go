package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"nick-exchange.backend/internal/domain/entities"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/internal/interfaces/http/middleware"
	"nick-exchange.backend/internal/interfaces/http/response"
	"nick-exchange.backend/internal/usecases"
)

// MarketHandler exposes minting, listing, buying and market queries
type MarketHandler struct {
	usecase *usecases.ExchangeUsecase
}

func NewMarketHandler(usecase *usecases.ExchangeUsecase) *MarketHandler {
	return &MarketHandler{usecase: usecase}
}

// MintAsset mints a nickname asset for the session wallet
// POST /api/v1/market/assets
func (h *MarketHandler) MintAsset(c *gin.Context) {
	wallet, ok := middleware.GetWallet(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var req entities.MintAssetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	asset, err := h.usecase.Mint(c.Request.Context(), wallet, req.Nickname)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, asset)
}

// CreateListing lists one of the wallet's nicknames for sale
// POST /api/v1/market/listings
func (h *MarketHandler) CreateListing(c *gin.Context) {
	wallet, ok := middleware.GetWallet(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var req entities.CreateListingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	listing, err := h.usecase.List(c.Request.Context(), wallet, req.Nickname, req.Price)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, listing)
}

// BuyListing purchases an active listing
// POST /api/v1/market/listings/:id/buy
func (h *MarketHandler) BuyListing(c *gin.Context) {
	wallet, ok := middleware.GetWallet(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid listing ID"))
		return
	}

	sale, err := h.usecase.Buy(c.Request.Context(), id, wallet)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, sale)
}

// CancelListing takes the seller's own listing off the market
// DELETE /api/v1/market/listings/:id
func (h *MarketHandler) CancelListing(c *gin.Context) {
	wallet, ok := middleware.GetWallet(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid listing ID"))
		return
	}

	if err := h.usecase.Cancel(c.Request.Context(), id, wallet); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

// ListListings returns all active listings
// GET /api/v1/market/listings
func (h *MarketHandler) ListListings(c *gin.Context) {
	listings, err := h.usecase.ActiveListings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"listings": listings,
		"count":    len(listings),
	})
}

// GetListing returns one listing by ID
// GET /api/v1/market/listings/:id
func (h *MarketHandler) GetListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid listing ID"))
		return
	}

	listing, err := h.usecase.GetListing(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, listing)
}

// GetAsset returns one asset with its sale history
// GET /api/v1/market/assets/:id
func (h *MarketHandler) GetAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid asset ID"))
		return
	}

	asset, err := h.usecase.GetAsset(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, asset)
}

// ListWalletAssets returns the session wallet's assets
// GET /api/v1/market/assets
func (h *MarketHandler) ListWalletAssets(c *gin.Context) {
	wallet, ok := middleware.GetWallet(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	assets, err := h.usecase.WalletAssets(c.Request.Context(), wallet)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"assets": assets,
		"count":  len(assets),
	})
}

// GetSalesHistory returns recent sales across the market
// GET /api/v1/market/sales
func (h *MarketHandler) GetSalesHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if limit < 0 {
		limit = 0
	}

	sales, err := h.usecase.SalesHistory(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"sales": sales,
		"count": len(sales),
	})
}

// GetMarketStats returns marketplace aggregates
// GET /api/v1/market/stats
func (h *MarketHandler) GetMarketStats(c *gin.Context) {
	stats, err := h.usecase.MarketStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
