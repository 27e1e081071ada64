// Package routes handles the setup and configuration of API routes
package routes

import (
	_ "kumpisahko/docs" // Import swagger docs
	"kumpisahko/internal/api/handlers"
	"kumpisahko/internal/api/middleware"
	"kumpisahko/internal/auth"
	"kumpisahko/internal/config"
	"kumpisahko/internal/cost"
	"kumpisahko/internal/metrics"
	"kumpisahko/internal/repository"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// maxRequestBody accepts a year of 15-minute consumption as JSON
const maxRequestBody = 10 << 20

// Dependencies are the collaborators shared by the handlers
type Dependencies struct {
	SpotPrices repository.SpotPriceRepository
	Health     handlers.Pinger
	Metrics    *metrics.Metrics
	Logger     zerolog.Logger
	// Done stops background maintenance such as the rate limiter sweep
	Done <-chan struct{}
}

// SetupRoutes configures all API routes and their handlers
func SetupRoutes(cfg *config.Config, deps Dependencies) *gin.Engine {
	m := deps.Metrics
	if m == nil {
		m = metrics.New()
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(deps.Logger),
		middleware.Metrics(m),
		middleware.Compression(middleware.DefaultCompressionConfig()),
		middleware.BodyLimit(maxRequestBody),
	)

	// Routes without rate limiting
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(m.Handler()))

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, deps.Logger)
	if deps.Done != nil {
		go rateLimiter.Run(10*time.Minute, deps.Done)
	}

	// Initialize services
	authService := auth.NewService(cfg.Auth)
	costService := cost.NewService(deps.SpotPrices,
		cost.WithMetrics(m),
		cost.WithLogger(deps.Logger.With().Str("component", "cost").Logger()),
		cost.WithLookupTimeout(cfg.Pricing.LookupTimeout),
	)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.Health)
	authHandler := handlers.NewAuthHandler(authService, deps.Logger)
	costHandler := handlers.NewCostHandler(costService, cfg.API.MaxConsumptionEntries, deps.Logger)
	spotPriceHandler := handlers.NewSpotPriceHandler(deps.SpotPrices, m, deps.Logger)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(rateLimiter.Middleware())
	{
		v1.GET("/health", healthHandler.Health)
		v1.POST("/auth/token", authHandler.Token)
		v1.POST("/calculate-cost", costHandler.CalculateCost)

		spotPrices := v1.Group("/spot-prices")
		{
			spotPrices.GET("", spotPriceHandler.ListSpotPrices)
			spotPrices.GET("/latest", spotPriceHandler.LatestSpotPrice)
			spotPrices.GET("/:id", spotPriceHandler.GetSpotPrice)
			spotPrices.POST("", authMiddleware.AdminRequired(), spotPriceHandler.UpsertSpotPrices)
			spotPrices.DELETE("/:id", authMiddleware.AdminRequired(), spotPriceHandler.DeleteSpotPrice)
		}
	}

	return r
}
