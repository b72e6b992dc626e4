package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apporder "github.com/shopline/backend/internal/application/order"
	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/infrastructure/config"
	"github.com/shopline/backend/internal/infrastructure/logger"
	"github.com/shopline/backend/internal/infrastructure/persistence"
	"github.com/shopline/backend/internal/interfaces/http/handler"
	"github.com/shopline/backend/internal/interfaces/http/middleware"
	"github.com/shopline/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting order backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Load the fulfillment transition table once at startup; the state
	// machine consults it for the lifetime of the process.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	transitionRepo := persistence.NewGormTransitionRepository(db.DB)
	transitions, err := transitionRepo.FindAll(ctx)
	cancel()
	if err != nil {
		log.Fatal("Failed to load status transitions", zap.Error(err))
	}
	if len(transitions) == 0 {
		log.Warn("No status transitions found in database, falling back to defaults")
		transitions = order.DefaultTransitions()
	}
	machine := order.NewStateMachine(order.NewTransitionTable(transitions))
	log.Info("Status transition table loaded", zap.Int("edges", len(transitions)))

	// Repositories and stores
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	itemRepo := persistence.NewGormOrderItemRepository(db.DB)
	historyRepo := persistence.NewGormStatusHistoryRepository(db.DB)
	deliveryRepo := persistence.NewGormDeliveryRepository(db.DB)
	shopperStore := persistence.NewGormShopperStore(db.DB)
	couponStore := persistence.NewGormCouponStore(db.DB)
	catalogReader := persistence.NewGormCatalogReader(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	validator := order.NewItemValidator(catalogReader, couponStore)
	assembler := apporder.NewAssemblerService(scope, validator, shopperStore)
	fulfillment := apporder.NewFulfillmentService(scope, machine)
	cancelSvc := apporder.NewCancelService(scope, machine, catalogReader)
	query := apporder.NewQueryService(orderRepo, itemRepo, historyRepo, deliveryRepo, shopperStore)

	// HTTP handlers
	orderHandler := handler.NewOrderHandler(assembler, fulfillment, cancelSvc, query)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		}),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	router.NewRouter(engine).
		Register(systemHandler).
		Register(orderHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
