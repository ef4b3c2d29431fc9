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

// StakingHandler exposes time-locked WAL staking
type StakingHandler struct {
	usecase *usecases.StakingUsecase
}

func NewStakingHandler(usecase *usecases.StakingUsecase) *StakingHandler {
	return &StakingHandler{usecase: usecase}
}

// OpenStake locks WAL into a new stake
// POST /api/v1/staking/stakes
func (h *StakingHandler) OpenStake(c *gin.Context) {
	wallet, ok := middleware.GetWallet(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var req entities.OpenStakeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	stake, err := h.usecase.Open(c.Request.Context(), wallet, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, stake)
}

// CloseStake unstakes after the lock period, settling principal plus reward
// POST /api/v1/staking/stakes/:id/close
func (h *StakingHandler) CloseStake(c *gin.Context) {
	wallet, ok := middleware.GetWallet(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid stake ID"))
		return
	}

	settlement, err := h.usecase.Close(c.Request.Context(), wallet, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, settlement)
}

// ClaimRewards settles accrued reward without closing the stake
// POST /api/v1/staking/stakes/:id/claim
func (h *StakingHandler) ClaimRewards(c *gin.Context) {
	wallet, ok := middleware.GetWallet(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid stake ID"))
		return
	}

	reward, err := h.usecase.Claim(c.Request.Context(), wallet, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"claimed": reward})
}

// ListStakes returns the session wallet's stakes with live accrual
// GET /api/v1/staking/stakes
func (h *StakingHandler) ListStakes(c *gin.Context) {
	wallet, ok := middleware.GetWallet(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	stakes, err := h.usecase.Stakes(c.Request.Context(), wallet)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"stakes": stakes,
		"count":  len(stakes),
	})
}

// GetStakingStats returns totals across all wallets
// GET /api/v1/staking/stats
func (h *StakingHandler) GetStakingStats(c *gin.Context) {
	stats, err := h.usecase.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// GetPotentialRewards projects reward for an amount over a holding period
// GET /api/v1/staking/rewards/estimate?amount=100&days=30
func (h *StakingHandler) GetPotentialRewards(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil || amount <= 0 {
		response.Error(c, domainerrors.BadRequest("amount must be a positive number"))
		return
	}

	days, err := strconv.ParseFloat(c.DefaultQuery("days", "30"), 64)
	if err != nil || days <= 0 {
		response.Error(c, domainerrors.BadRequest("days must be a positive number"))
		return
	}

	reward := h.usecase.PotentialRewards(amount, days)
	response.Success(c, http.StatusOK, gin.H{
		"amount":          amount,
		"days":            days,
		"estimatedReward": reward,
	})
}

// ListPools returns the available staking pools
// GET /api/v1/staking/pools
func (h *StakingHandler) ListPools(c *gin.Context) {
	pools, err := h.usecase.Pools(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"pools": pools})
}
