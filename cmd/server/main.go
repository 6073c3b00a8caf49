package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"ridehail/internal/app"
	"ridehail/internal/config"
	"ridehail/internal/handler"
	internalRedis "ridehail/internal/redis"
	"ridehail/internal/repository/postgres"
	"ridehail/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize Redis stores.
	locationStore := internalRedis.NewLocationStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Initialize repositories.
	riderRepo := postgres.NewRiderRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	rideRepo := postgres.NewRideRepository(db)
	paymentRepo := postgres.NewPaymentIntentRepository(db)

	// Initialize services.
	notifier := service.NewNotificationService()
	fares := service.NewFareCalculator(cfg.Fare)
	splitter := service.NewFareSplitter()
	surge := service.NewSurgeEstimator(cfg.Surge, locationStore, cacheStore, rideRepo)
	matcher := service.NewDriverMatcher(cfg.Match, locationStore, driverRepo, surge, fares)
	subscriptions := service.NewMemorySubscriptions()
	gateway := service.NewLoggingGateway(paymentRepo)
	payments := service.NewPaymentTrigger(paymentRepo, gateway)
	receipts := service.NewReceiptService(rideRepo, splitter)
	drivers := service.NewDriverService(driverRepo, locationStore, cacheStore)
	riders := service.NewRiderService(riderRepo)

	lifecycle := service.NewRideLifecycle(service.LifecycleDeps{
		RideRepo:      rideRepo,
		DriverRepo:    driverRepo,
		Matcher:       matcher,
		Fares:         fares,
		Surge:         surge,
		LockStore:     lockStore,
		CacheStore:    cacheStore,
		Payments:      payments,
		Subscriptions: subscriptions,
		Notifier:      notifier,

		PoolCapacity:    cfg.Match.PoolCapacity,
		OTPDigits:       cfg.Match.OTPDigits,
		ClaimAttempts:   cfg.Match.ClaimAttempts,
		ConflictRetries: cfg.Match.ConflictRetries,
		AvgSpeedKmh:     cfg.Match.AvgSpeedKmh,
	})

	// Initialize handlers.
	rideHandler := handler.NewRideHandler(lifecycle, matcher, receipts, subscriptions)
	driverHandler := handler.NewDriverHandler(drivers, lifecycle)
	riderHandler := handler.NewRiderHandler(riders)
	fareHandler := handler.NewFareHandler(fares, surge, cfg.Match.AvgSpeedKmh)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		RideHandler:   rideHandler,
		DriverHandler: driverHandler,
		RiderHandler:  riderHandler,
		FareHandler:   fareHandler,
		RedisClient:   redisClient,
		NewRelicApp:   nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
