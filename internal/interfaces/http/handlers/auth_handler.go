package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/internal/interfaces/http/middleware"
	"nick-exchange.backend/internal/interfaces/http/response"
	"nick-exchange.backend/internal/usecases"
	"nick-exchange.backend/pkg/jwt"
	"nick-exchange.backend/pkg/utils"
)

// AuthHandler issues wallet sessions. There is no password flow; a session
// is minted for any syntactically valid wallet address, and first contact
// bootstraps the wallet's nickname holdings.
type AuthHandler struct {
	registryUsecase *usecases.RegistryUsecase
	jwtService      *jwt.JWTService
}

func NewAuthHandler(registryUsecase *usecases.RegistryUsecase, jwtService *jwt.JWTService) *AuthHandler {
	return &AuthHandler{
		registryUsecase: registryUsecase,
		jwtService:      jwtService,
	}
}

type CreateSessionRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// CreateSession opens a wallet session
// POST /api/v1/auth/session
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if !utils.IsValidWalletAddress(req.WalletAddress) {
		response.Error(c, domainerrors.BadRequest("invalid wallet address"))
		return
	}

	ownership, err := h.registryUsecase.Bootstrap(c.Request.Context(), req.WalletAddress)
	if err != nil {
		response.Error(c, err)
		return
	}

	tokens, err := h.jwtService.GenerateTokenPair(req.WalletAddress)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"tokens":    tokens,
		"ownership": ownership,
	})
}

// RefreshSession exchanges a refresh token for a new token pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshSession(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	claims, err := h.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		response.Error(c, domainerrors.Unauthorized("invalid refresh token"))
		return
	}

	tokens, err := h.jwtService.GenerateTokenPair(claims.WalletAddress)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tokens": tokens})
}

// GetMe returns the session wallet and its nickname holdings
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	wallet, ok := middleware.GetWallet(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	ownership, err := h.registryUsecase.Ownership(c.Request.Context(), wallet)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, ownership)
}
