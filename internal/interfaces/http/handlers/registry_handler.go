package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"nick-exchange.backend/internal/domain/entities"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/internal/interfaces/http/middleware"
	"nick-exchange.backend/internal/interfaces/http/response"
	"nick-exchange.backend/internal/usecases"
)

// RegistryHandler exposes per-wallet nickname ownership operations
type RegistryHandler struct {
	usecase *usecases.RegistryUsecase
}

func NewRegistryHandler(usecase *usecases.RegistryUsecase) *RegistryHandler {
	return &RegistryHandler{usecase: usecase}
}

// GetOwnership returns the session wallet's nickname holdings
// GET /api/v1/nicknames
func (h *RegistryHandler) GetOwnership(c *gin.Context) {
	wallet, ok := middleware.GetWallet(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	ownership, err := h.usecase.Ownership(c.Request.Context(), wallet)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, ownership)
}

// SetActive switches the wallet's active nickname
// PUT /api/v1/nicknames/active
func (h *RegistryHandler) SetActive(c *gin.Context) {
	wallet, ok := middleware.GetWallet(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var req entities.SetActiveNicknameInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.usecase.SetActive(c.Request.Context(), wallet, req.Nickname); err != nil {
		response.Error(c, err)
		return
	}

	ownership, err := h.usecase.Ownership(c.Request.Context(), wallet)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, ownership)
}

// GetStats returns ownership distribution across all wallets
// GET /api/v1/admin/nicknames/stats
func (h *RegistryHandler) GetStats(c *gin.Context) {
	stats, err := h.usecase.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
