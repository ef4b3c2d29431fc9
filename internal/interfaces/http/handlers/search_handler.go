package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"nick-exchange.backend/internal/domain/entities"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/internal/interfaces/http/response"
	"nick-exchange.backend/internal/usecases"
)

// SearchHandler exposes nickname search
type SearchHandler struct {
	usecase *usecases.SearchUsecase
}

func NewSearchHandler(usecase *usecases.SearchUsecase) *SearchHandler {
	return &SearchHandler{usecase: usecase}
}

// Search finds wallets by nickname
// GET /api/v1/search?q=falcon&exact=false&includeInactive=true&limit=20
func (h *SearchHandler) Search(c *gin.Context) {
	var filters entities.SearchFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	results, err := h.usecase.Search(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"results": results,
		"count":   len(results),
	})
}
