package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nick-exchange.backend/internal/interfaces/http/handlers"
	"nick-exchange.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler     *handlers.AuthHandler
	registryHandler *handlers.RegistryHandler
	marketHandler   *handlers.MarketHandler
	stakingHandler  *handlers.StakingHandler
	swapHandler     *handlers.SwapHandler
	searchHandler   *handlers.SearchHandler
	adminHandler    *handlers.AdminHandler
	authMiddleware  gin.HandlerFunc
	adminKey        gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public, session is wallet-based)
		auth := v1.Group("/auth")
		{
			auth.POST("/session", d.authHandler.CreateSession)
			auth.POST("/refresh", d.authHandler.RefreshSession)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
		}

		// Nickname ownership routes (protected)
		nicknames := v1.Group("/nicknames")
		nicknames.Use(d.authMiddleware)
		{
			nicknames.GET("", d.registryHandler.GetOwnership)
			nicknames.PUT("/active", d.registryHandler.SetActive)
		}

		// Marketplace routes (public reads, protected writes)
		market := v1.Group("/market")
		{
			market.POST("/assets", d.authMiddleware, d.marketHandler.MintAsset)
			market.GET("/assets", d.authMiddleware, d.marketHandler.ListWalletAssets)
			market.GET("/assets/:id", d.marketHandler.GetAsset)
			market.POST("/listings", d.authMiddleware, d.marketHandler.CreateListing)
			market.GET("/listings", d.marketHandler.ListListings)
			market.GET("/listings/:id", d.marketHandler.GetListing)
			market.POST("/listings/:id/buy", d.authMiddleware, d.marketHandler.BuyListing)
			market.DELETE("/listings/:id", d.authMiddleware, d.marketHandler.CancelListing)
			market.GET("/sales", d.marketHandler.GetSalesHistory)
			market.GET("/stats", d.marketHandler.GetMarketStats)
		}

		// Staking routes
		staking := v1.Group("/staking")
		{
			staking.POST("/stakes", d.authMiddleware, d.stakingHandler.OpenStake)
			staking.GET("/stakes", d.authMiddleware, d.stakingHandler.ListStakes)
			staking.POST("/stakes/:id/close", d.authMiddleware, d.stakingHandler.CloseStake)
			staking.POST("/stakes/:id/claim", d.authMiddleware, d.stakingHandler.ClaimRewards)
			staking.GET("/stats", d.stakingHandler.GetStakingStats)
			staking.GET("/rewards/estimate", d.stakingHandler.GetPotentialRewards)
			staking.GET("/pools", d.stakingHandler.ListPools)
		}

		// Swap routes
		swap := v1.Group("/swap")
		{
			swap.GET("/quote", d.swapHandler.GetQuote)
			swap.GET("/pool", d.swapHandler.GetPool)
			swap.POST("", d.authMiddleware, d.swapHandler.ExecuteSwap)
			swap.GET("/balances", d.authMiddleware, d.swapHandler.GetBalances)
			swap.GET("/history", d.authMiddleware, d.swapHandler.GetSwapHistory)
		}

		// Search routes (public)
		v1.GET("/search", d.searchHandler.Search)

		// Admin routes (key protected)
		admin := v1.Group("/admin")
		admin.Use(d.adminKey)
		{
			admin.GET("/stats", d.adminHandler.GetStats)
			admin.GET("/nicknames/stats", d.registryHandler.GetStats)
		}
	}

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(middleware.MetricsHandler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID, X-Admin-Key")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "nick-exchange-backend",
			"version": "0.1.0",
		})
	})
}
