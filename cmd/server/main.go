package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"nick-exchange.backend/internal/config"
	"nick-exchange.backend/internal/domain/entities"
	"nick-exchange.backend/internal/infrastructure/gateways"
	"nick-exchange.backend/internal/infrastructure/jobs"
	"nick-exchange.backend/internal/infrastructure/repositories"
	"nick-exchange.backend/internal/interfaces/http/handlers"
	"nick-exchange.backend/internal/interfaces/http/middleware"
	"nick-exchange.backend/internal/usecases"
	"nick-exchange.backend/pkg/jwt"
	"nick-exchange.backend/pkg/logger"
	"nick-exchange.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	ownershipRepo := repositories.NewOwnershipRepository(db)
	assetRepo := repositories.NewAssetRepository(db)
	listingRepo := repositories.NewListingRepository(db)
	stakeRepo := repositories.NewStakeRepository(db)
	poolRepo := repositories.NewPoolRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize gateways
	ledger := gateways.NewBalanceLedger(db)
	vault := gateways.NewCustodyVault(db)
	profiles := gateways.NewProfileStore(db)
	allocator := gateways.NewRedisAllocator(redis.GetClient())
	locks := redis.NewLocker(redis.GetClient())
	clock := usecases.SystemClock()

	// Initialize usecases
	registryUsecase := usecases.NewRegistryUsecase(ownershipRepo, profiles, allocator, locks)
	exchangeUsecase := usecases.NewExchangeUsecase(assetRepo, listingRepo, registryUsecase, vault, ledger, allocator, locks, uow, clock)
	stakingUsecase := usecases.NewStakingUsecase(stakeRepo, ledger, locks, clock)
	swapUsecase := usecases.NewSwapUsecase(poolRepo, ledger, clock)
	searchUsecase := usecases.NewSearchUsecase(ownershipRepo)

	// Seed the liquidity pool on first boot. Best effort: if the database
	// is not reachable yet the server still starts.
	if err := poolRepo.Seed(context.Background(), &entities.LiquidityPool{
		ReserveSUI: usecases.SeedReserveSUI,
		ReserveWAL: usecases.SeedReserveWAL,
		FeeRate:    usecases.SwapFeeRate,
	}); err != nil {
		log.Printf("⚠️ Pool seed skipped: %v", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(registryUsecase, jwtService)
	registryHandler := handlers.NewRegistryHandler(registryUsecase)
	marketHandler := handlers.NewMarketHandler(exchangeUsecase)
	stakingHandler := handlers.NewStakingHandler(stakingUsecase)
	swapHandler := handlers.NewSwapHandler(swapUsecase)
	searchHandler := handlers.NewSearchHandler(searchUsecase)
	adminHandler := handlers.NewAdminHandler(registryUsecase, exchangeUsecase, stakingUsecase)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	statsJob := jobs.NewStatsRefresherJob(exchangeUsecase, stakingUsecase)
	go statsJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:     authHandler,
		registryHandler: registryHandler,
		marketHandler:   marketHandler,
		stakingHandler:  stakingHandler,
		swapHandler:     swapHandler,
		searchHandler:   searchHandler,
		adminHandler:    adminHandler,
		authMiddleware:  middleware.AuthMiddleware(jwtService),
		adminKey:        middleware.AdminKeyMiddleware(cfg.Admin.KeyHash),
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		statsJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Nick-Exchange Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
