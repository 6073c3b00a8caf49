package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"ridehail/internal/handler"
	"ridehail/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	RideHandler   *handler.RideHandler
	DriverHandler *handler.DriverHandler
	RiderHandler  *handler.RiderHandler
	FareHandler   *handler.FareHandler
	RedisClient   *redis.Client
	NewRelicApp   *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Rider routes.
		riders := v1.Group("/riders")
		{
			riders.POST("/register", deps.RiderHandler.Register)
			riders.GET("/:id", deps.RiderHandler.GetRider)
		}

		// Ride routes.
		rides := v1.Group("/rides")
		{
			rides.POST("", deps.RideHandler.CreateRide)
			rides.POST("/match", deps.RideHandler.Match)
			rides.GET("/:id", deps.RideHandler.GetRide)
			rides.POST("/:id/status", deps.RideHandler.UpdateStatus)
			rides.POST("/:id/passengers", deps.RideHandler.AddPassenger)
			rides.DELETE("/:id/passengers/:riderId", deps.RideHandler.RemovePassenger)
			rides.POST("/:id/otp/verify", deps.RideHandler.VerifyOTP)
			rides.POST("/:id/rate", deps.RideHandler.Rate)
			rides.POST("/:id/sos", deps.RideHandler.FlagSOS)
			rides.GET("/:id/receipt", deps.RideHandler.GetReceipt)
		}

		// Driver routes.
		drivers := v1.Group("/drivers")
		{
			drivers.POST("/register", deps.DriverHandler.Register)
			drivers.GET("/:id", deps.DriverHandler.GetDriver)
			drivers.POST("/:id/location", deps.DriverHandler.UpdateLocation)
			drivers.POST("/:id/availability", deps.DriverHandler.SetAvailability)
			drivers.POST("/:id/accept", deps.DriverHandler.AcceptRide)
		}

		// Fare routes.
		fares := v1.Group("/fares")
		{
			fares.GET("/estimate", deps.FareHandler.Estimate)
		}
	}

	return router
}
