package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"nick-exchange.backend/internal/domain/entities"
	"nick-exchange.backend/internal/infrastructure/jobs"
	"nick-exchange.backend/internal/interfaces/http/response"
	"nick-exchange.backend/internal/usecases"
	"nick-exchange.backend/pkg/redis"
)

// AdminHandler exposes operator-facing aggregates
type AdminHandler struct {
	registryUsecase *usecases.RegistryUsecase
	exchangeUsecase *usecases.ExchangeUsecase
	stakingUsecase  *usecases.StakingUsecase
}

func NewAdminHandler(
	registryUsecase *usecases.RegistryUsecase,
	exchangeUsecase *usecases.ExchangeUsecase,
	stakingUsecase *usecases.StakingUsecase,
) *AdminHandler {
	return &AdminHandler{
		registryUsecase: registryUsecase,
		exchangeUsecase: exchangeUsecase,
		stakingUsecase:  stakingUsecase,
	}
}

// GetStats returns all platform aggregates. Market and staking stats are
// served from the refresher cache when present, so this endpoint stays
// cheap under operator dashboards polling it.
// GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	ownership, err := h.registryUsecase.Stats(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	market := &entities.MarketplaceStats{}
	if !readCached(ctx, jobs.MarketStatsCacheKey, market) {
		if market, err = h.exchangeUsecase.MarketStats(ctx); err != nil {
			response.Error(c, err)
			return
		}
	}

	staking := &entities.StakingStats{}
	if !readCached(ctx, jobs.StakingStatsCacheKey, staking) {
		if staking, err = h.stakingUsecase.Stats(ctx); err != nil {
			response.Error(c, err)
			return
		}
	}

	response.Success(c, http.StatusOK, gin.H{
		"ownership": ownership,
		"market":    market,
		"staking":   staking,
	})
}

func readCached(ctx context.Context, key string, out interface{}) bool {
	if redis.GetClient() == nil {
		return false
	}
	raw, err := redis.Get(ctx, key)
	if err != nil || raw == "" {
		return false
	}
	return json.Unmarshal([]byte(raw), out) == nil
}
