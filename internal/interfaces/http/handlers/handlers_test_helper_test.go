package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"nick-exchange.backend/internal/domain/entities"
	"nick-exchange.backend/internal/infrastructure/gateways"
	"nick-exchange.backend/internal/infrastructure/repositories"
	"nick-exchange.backend/internal/interfaces/http/middleware"
	"nick-exchange.backend/internal/usecases"
	"nick-exchange.backend/pkg/jwt"
	"nick-exchange.backend/pkg/keylock"
	pkgredis "nick-exchange.backend/pkg/redis"
)

// testStack wires real usecases over sqlite and miniredis, so handler tests
// exercise the full path from route to row.
type testStack struct {
	router *gin.Engine
	jwt    *jwt.JWTService
	ledger *gateways.BalanceLedger
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	createAllTables(t, db)

	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable: %v", err)
	}
	t.Cleanup(srv.Close)
	redisClient := redislib.NewClient(&redislib.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })
	pkgredis.SetClient(redisClient)

	ownershipRepo := repositories.NewOwnershipRepository(db)
	assetRepo := repositories.NewAssetRepository(db)
	listingRepo := repositories.NewListingRepository(db)
	stakeRepo := repositories.NewStakeRepository(db)
	poolRepo := repositories.NewPoolRepository(db)
	uow := repositories.NewUnitOfWork(db)

	ledger := gateways.NewBalanceLedger(db)
	vault := gateways.NewCustodyVault(db)
	profiles := gateways.NewProfileStore(db)
	allocator := gateways.NewRedisAllocator(redisClient)
	locks := keylock.New()
	clock := usecases.SystemClock()

	registryUC := usecases.NewRegistryUsecase(ownershipRepo, profiles, allocator, locks)
	exchangeUC := usecases.NewExchangeUsecase(assetRepo, listingRepo, registryUC, vault, ledger, allocator, locks, uow, clock)
	stakingUC := usecases.NewStakingUsecase(stakeRepo, ledger, locks, clock)
	swapUC := usecases.NewSwapUsecase(poolRepo, ledger, clock)
	searchUC := usecases.NewSearchUsecase(ownershipRepo)

	require.NoError(t, poolRepo.Seed(context.Background(), &entities.LiquidityPool{
		ReserveSUI: 1_000_000,
		ReserveWAL: 500_000,
		FeeRate:    usecases.SwapFeeRate,
	}))

	jwtService := jwt.NewJWTService("handler-test-secret", time.Hour, 24*time.Hour)

	authHandler := NewAuthHandler(registryUC, jwtService)
	registryHandler := NewRegistryHandler(registryUC)
	marketHandler := NewMarketHandler(exchangeUC)
	stakingHandler := NewStakingHandler(stakingUC)
	swapHandler := NewSwapHandler(swapUC)
	searchHandler := NewSearchHandler(searchUC)
	adminHandler := NewAdminHandler(registryUC, exchangeUC, stakingUC)

	auth := middleware.AuthMiddleware(jwtService)

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.POST("/auth/session", authHandler.CreateSession)
	v1.POST("/auth/refresh", authHandler.RefreshSession)
	v1.GET("/auth/me", auth, authHandler.GetMe)

	v1.GET("/nicknames", auth, registryHandler.GetOwnership)
	v1.PUT("/nicknames/active", auth, registryHandler.SetActive)

	v1.POST("/market/assets", auth, marketHandler.MintAsset)
	v1.GET("/market/assets", auth, marketHandler.ListWalletAssets)
	v1.GET("/market/assets/:id", marketHandler.GetAsset)
	v1.POST("/market/listings", auth, marketHandler.CreateListing)
	v1.GET("/market/listings", marketHandler.ListListings)
	v1.GET("/market/listings/:id", marketHandler.GetListing)
	v1.POST("/market/listings/:id/buy", auth, marketHandler.BuyListing)
	v1.DELETE("/market/listings/:id", auth, marketHandler.CancelListing)
	v1.GET("/market/sales", marketHandler.GetSalesHistory)
	v1.GET("/market/stats", marketHandler.GetMarketStats)

	v1.POST("/staking/stakes", auth, stakingHandler.OpenStake)
	v1.GET("/staking/stakes", auth, stakingHandler.ListStakes)
	v1.POST("/staking/stakes/:id/close", auth, stakingHandler.CloseStake)
	v1.POST("/staking/stakes/:id/claim", auth, stakingHandler.ClaimRewards)
	v1.GET("/staking/stats", stakingHandler.GetStakingStats)
	v1.GET("/staking/rewards/estimate", stakingHandler.GetPotentialRewards)
	v1.GET("/staking/pools", stakingHandler.ListPools)

	v1.GET("/swap/quote", swapHandler.GetQuote)
	v1.GET("/swap/pool", swapHandler.GetPool)
	v1.POST("/swap", auth, swapHandler.ExecuteSwap)
	v1.GET("/swap/balances", auth, swapHandler.GetBalances)
	v1.GET("/swap/history", auth, swapHandler.GetSwapHistory)

	v1.GET("/search", searchHandler.Search)
	v1.GET("/admin/stats", adminHandler.GetStats)
	v1.GET("/admin/nicknames/stats", registryHandler.GetStats)

	return &testStack{
		router: r,
		jwt:    jwtService,
		ledger: ledger,
	}
}

func createAllTables(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, q := range []string{
		`CREATE TABLE owned_nicknames (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			wallet_address TEXT NOT NULL,
			nickname TEXT NOT NULL UNIQUE,
			created_at DATETIME
		);`,
		`CREATE TABLE active_nicknames (
			wallet_address TEXT PRIMARY KEY,
			nickname TEXT NOT NULL,
			updated_at DATETIME
		);`,
		`CREATE TABLE nickname_assets (
			id TEXT PRIMARY KEY,
			nickname TEXT NOT NULL UNIQUE,
			owner TEXT NOT NULL,
			for_sale BOOLEAN DEFAULT FALSE,
			price REAL,
			last_sale_price REAL,
			custody_id TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE sale_records (
			id TEXT PRIMARY KEY,
			asset_id TEXT NOT NULL,
			nickname TEXT NOT NULL,
			seller TEXT NOT NULL,
			buyer TEXT NOT NULL,
			price REAL NOT NULL,
			timestamp DATETIME NOT NULL
		);`,
		`CREATE TABLE listings (
			id TEXT PRIMARY KEY,
			asset_id TEXT NOT NULL,
			nickname TEXT NOT NULL,
			seller TEXT NOT NULL,
			price REAL NOT NULL,
			custody_id TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at DATETIME,
			closed_at DATETIME
		);`,
		`CREATE TABLE stakes (
			id TEXT PRIMARY KEY,
			wallet_address TEXT NOT NULL,
			principal REAL NOT NULL,
			start_time DATETIME NOT NULL,
			unlock_time DATETIME NOT NULL,
			is_active BOOLEAN DEFAULT TRUE,
			claimed_rewards REAL DEFAULT 0,
			closed_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE liquidity_pools (
			id TEXT PRIMARY KEY,
			reserve_sui REAL NOT NULL,
			reserve_wal REAL NOT NULL,
			fee_rate REAL NOT NULL,
			version INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME
		);`,
		`CREATE TABLE swap_records (
			id TEXT PRIMARY KEY,
			wallet_address TEXT NOT NULL,
			from_token TEXT NOT NULL,
			to_token TEXT NOT NULL,
			amount_in REAL NOT NULL,
			amount_out REAL NOT NULL,
			fee REAL NOT NULL,
			created_at DATETIME
		);`,
		`CREATE TABLE balances (
			wallet_address TEXT NOT NULL,
			token TEXT NOT NULL,
			amount REAL NOT NULL DEFAULT 0,
			updated_at DATETIME,
			PRIMARY KEY (wallet_address, token)
		);`,
		`CREATE TABLE custody_records (
			id TEXT PRIMARY KEY,
			asset_id TEXT NOT NULL,
			status TEXT NOT NULL,
			held_for TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE profiles (
			wallet_address TEXT PRIMARY KEY,
			display_nickname TEXT,
			updated_at DATETIME
		);`,
	} {
		require.NoError(t, db.Exec(q).Error)
	}
}

func (s *testStack) tokenFor(t *testing.T, wallet string) string {
	t.Helper()
	pair, err := s.jwt.GenerateTokenPair(wallet)
	require.NoError(t, err)
	return pair.AccessToken
}

func (s *testStack) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(payload))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.AuthorizationHeader, middleware.BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

func (s *testStack) fund(t *testing.T, wallet string, token entities.Token, amount float64) {
	t.Helper()
	require.NoError(t, s.ledger.Credit(context.Background(), wallet, token, amount))
}

func (s *testStack) mint(t *testing.T, wallet, nickname string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/market/assets", s.tokenFor(t, wallet), gin.H{"nickname": nickname})
	require.Equal(t, http.StatusCreated, w.Code, "mint %s: %s", nickname, w.Body.String())
}
