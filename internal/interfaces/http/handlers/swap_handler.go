package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"nick-exchange.backend/internal/domain/entities"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/internal/interfaces/http/middleware"
	"nick-exchange.backend/internal/interfaces/http/response"
	"nick-exchange.backend/internal/usecases"
)

// SwapHandler exposes SUI/WAL pool pricing and swap execution
type SwapHandler struct {
	usecase *usecases.SwapUsecase
}

func NewSwapHandler(usecase *usecases.SwapUsecase) *SwapHandler {
	return &SwapHandler{usecase: usecase}
}

// GetQuote prices a proposed swap without executing it
// GET /api/v1/swap/quote?from=SUI&to=WAL&amount=100
func (h *SwapHandler) GetQuote(c *gin.Context) {
	from := entities.Token(c.Query("from"))
	to := entities.Token(c.Query("to"))

	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil || amount <= 0 {
		response.Error(c, domainerrors.BadRequest("amount must be a positive number"))
		return
	}

	quote, err := h.usecase.QuoteCurrent(c.Request.Context(), from, to, amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, quote)
}

// GetPool returns the current pool snapshot
// GET /api/v1/swap/pool
func (h *SwapHandler) GetPool(c *gin.Context) {
	info, err := h.usecase.PoolInfo(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, info)
}

// ExecuteSwap swaps tokens for the session wallet
// POST /api/v1/swap
func (h *SwapHandler) ExecuteSwap(c *gin.Context) {
	wallet, ok := middleware.GetWallet(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var req entities.ExecuteSwapInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	swap, err := h.usecase.Execute(c.Request.Context(), wallet, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, swap)
}

// GetBalances returns the session wallet's SUI and WAL balances
// GET /api/v1/swap/balances
func (h *SwapHandler) GetBalances(c *gin.Context) {
	wallet, ok := middleware.GetWallet(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	balances, err := h.usecase.Balances(c.Request.Context(), wallet)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, balances)
}

// GetSwapHistory returns the session wallet's swaps, newest first
// GET /api/v1/swap/history
func (h *SwapHandler) GetSwapHistory(c *gin.Context) {
	wallet, ok := middleware.GetWallet(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	swaps, err := h.usecase.SwapHistory(c.Request.Context(), wallet)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"swaps": swaps,
		"count": len(swaps),
	})
}
