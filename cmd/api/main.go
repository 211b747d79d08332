package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"freight-exchange/freight-exchange-backend/internal/ai"
	"freight-exchange/freight-exchange-backend/internal/auth"
	"freight-exchange/freight-exchange-backend/internal/config"
	"freight-exchange/freight-exchange-backend/internal/contracts"
	"freight-exchange/freight-exchange-backend/internal/fleet"
	"freight-exchange/freight-exchange-backend/internal/kpis"
	"freight-exchange/freight-exchange-backend/internal/loads"
	"freight-exchange/freight-exchange-backend/internal/matching"
	"freight-exchange/freight-exchange-backend/internal/negotiations"
	"freight-exchange/freight-exchange-backend/internal/recommendations"
	"freight-exchange/freight-exchange-backend/internal/trips"
	"freight-exchange/freight-exchange-backend/internal/trips/tracking"
	"freight-exchange/freight-exchange-backend/pkg/distance"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Load .env if present, then configuration
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Connect to database
	logger.Info("Connecting to database",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName))
	db, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Shared infrastructure
	distances := distance.NewTableEstimator()
	tracker := tracking.NewManager(logger)
	defer tracker.Close()

	// Repositories
	loadRepo := loads.NewRepository(db)
	truckRepo := fleet.NewRepository(db)
	recRepo := recommendations.NewRepository(db)
	negotiationRepo := negotiations.NewRepository(db)
	tripRepo := trips.NewRepository(db)
	contractRepo := contracts.NewRepository(db)
	kpiRepo := kpis.NewRepository(db)

	// Services
	authService := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger)
	loadService := loads.NewService(loadRepo, logger)
	fleetService := fleet.NewService(truckRepo)
	recService := recommendations.NewService(recRepo, loadRepo, logger)
	synthesizer := matching.NewSynthesizer(distances, matching.NewRuleChecker(), nil)
	aiService := ai.NewService(loadRepo, truckRepo, recRepo, synthesizer, distances, logger)
	negotiationService := negotiations.NewService(negotiationRepo, recRepo, loadRepo, logger)
	tripService := trips.NewService(tripRepo, loadRepo, tracker, logger)
	contractService := contracts.NewService(contractRepo, tripRepo, logger)
	kpiService := kpis.NewService(kpiRepo, tripRepo, loadRepo, truckRepo, recRepo, distances, logger)

	// KPI refresh schedule
	kpiScheduler := kpis.NewScheduler(kpiService, cfg.KPI.RefreshCron, logger)
	if err := kpiScheduler.Start(context.Background()); err != nil {
		logger.Fatal("Failed to start kpi scheduler", zap.Error(err))
	}
	defer kpiScheduler.Stop()

	// Setup Router
	gin.SetMode(gin.DebugMode)
	router := gin.Default()

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Register Routes
	api := router.Group("/api/v1")
	{
		auth.NewHandler(authService).RegisterRoutes(api)
		loads.NewHandler(loadService).RegisterRoutes(api)
		fleet.NewHandler(fleetService).RegisterRoutes(api)
		recommendations.NewHandler(recService).RegisterRoutes(api)
		ai.NewHandler(aiService).RegisterRoutes(api)
		negotiations.NewHandler(negotiationService).RegisterRoutes(api)
		trips.NewHandler(tripService, tracker).RegisterRoutes(api)
		contracts.NewHandler(contractService).RegisterRoutes(api)
		kpis.NewHandler(kpiService).RegisterRoutes(api,
			auth.Middleware(authService), auth.RequireRole(auth.RoleFleetManager))
	}

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Start Server
	srv := &http.Server{
		Addr:    cfg.Server.GetServerAddr(),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.Int("port", cfg.Server.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
