package main

import (
	"time"

	"github.com/rizperdana/share-link-gan/internal/handlers"
	"github.com/rizperdana/share-link-gan/internal/ratelimit"
	"github.com/rizperdana/share-link-gan/internal/tracking"
	"github.com/rizperdana/share-link-gan/pkg/auth"
	"github.com/rizperdana/share-link-gan/pkg/config"
	"github.com/rizperdana/share-link-gan/pkg/database"
	"github.com/rizperdana/share-link-gan/pkg/geoip"
	"github.com/rizperdana/share-link-gan/pkg/logging"
	"github.com/rizperdana/share-link-gan/pkg/monitoring"
	"github.com/rizperdana/share-link-gan/pkg/server"
	"github.com/rizperdana/share-link-gan/pkg/version"
)

func main() {
	// Setup logger
	logger := logging.NewLoggerWithService("sharelink")

	// Load environment variables
	config.LoadEnv(logger)

	logger.Info("Starting Sharelink (Link-in-bio API)")

	// Connect to database
	dbConfig := database.DefaultConfig()
	dbConfig.URL = config.GetEnv("DATABASE_URL", "")
	db := database.MustConnect(dbConfig, logger)
	defer db.Close()

	jwtSecret := []byte(config.RequireEnv("JWT_SECRET"))

	// GeoIP is optional; without an MMDB the country falls back to the
	// edge-provided header alone
	geoReader, err := geoip.NewReader(config.GetEnv("GEOIP_MMDB_PATH", ""))
	if err != nil {
		logger.WithError(err).Warn("GeoIP database not loaded, country enrichment degraded")
	}
	if geoReader != nil {
		defer geoReader.Close()
	}

	// Setup monitoring
	healthChecker := monitoring.NewHealthChecker("sharelink", version.Version)
	metricsCollector := monitoring.NewMetricsCollector("sharelink", version.Version, version.GitCommit)

	// Add health checks
	healthChecker.AddCheck("database", monitoring.DatabaseHealthCheck(db))
	healthChecker.AddCheck("config", monitoring.ConfigurationHealthCheck(map[string]string{
		"DATABASE_URL": config.GetEnv("DATABASE_URL", ""),
		"JWT_SECRET":   config.GetEnv("JWT_SECRET", ""),
	}))
	healthChecker.AddCheck("geoip", monitoring.GeoIPHealthCheck(geoReader.IsLoaded()))

	// Tracking pipeline: per-source fixed-window limiter, validation and
	// enrichment, async writer into Postgres
	limiter := ratelimit.New(
		config.GetEnvInt("TRACK_RATE_LIMIT", 60),
		time.Duration(config.GetEnvInt("TRACK_RATE_WINDOW", 60))*time.Second,
		time.Minute,
	)
	defer limiter.Stop()

	validator := tracking.NewValidator(limiter, geoReader)

	eventsAccepted, eventsDropped, eventsRejected := metricsCollector.CreateTrackingMetrics()
	writer := tracking.NewWriter(
		tracking.NewPostgresEventStore(db),
		logger,
		config.GetEnvInt("TRACK_BUFFER_SIZE", 1024),
		eventsDropped,
	)
	defer writer.Close()

	// Initialize handlers
	handlers.Init(db, logger)
	handlers.InitTracking(validator, writer, eventsAccepted, eventsRejected)

	// Setup router with unified monitoring
	router := server.SetupServiceRouter(logger, "sharelink", healthChecker, metricsCollector)

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/profiles/:username", handlers.GetPublicProfile)
		public.POST("/profiles/:username/subscribe", handlers.Subscribe)
		public.POST("/items/:type/:id/unlock", handlers.UnlockItem)
		public.POST("/track", handlers.TrackEvent)
	}

	// Protected routes (require a valid session token)
	protected := router.Group("/api")
	protected.Use(auth.JWTAuthMiddleware(jwtSecret))
	{
		// Profile
		protected.PUT("/profile", handlers.UpdateProfile)

		// Links
		protected.GET("/links", handlers.GetLinks)
		protected.POST("/links", handlers.CreateLink)
		protected.PUT("/links/reorder", handlers.ReorderLinks)
		protected.PUT("/links/:id", handlers.UpdateLink)
		protected.DELETE("/links/:id", handlers.DeleteLink)

		// Posts
		protected.GET("/posts", handlers.GetPosts)
		protected.POST("/posts", handlers.CreatePost)
		protected.PUT("/posts/:id", handlers.UpdatePost)
		protected.PATCH("/posts/:id/publish", handlers.TogglePostPublished)
		protected.DELETE("/posts/:id", handlers.DeletePost)

		// Products
		protected.GET("/products", handlers.GetProducts)
		protected.POST("/products", handlers.CreateProduct)
		protected.PUT("/products/:id", handlers.UpdateProduct)
		protected.DELETE("/products/:id", handlers.DeleteProduct)

		// Audience
		protected.GET("/subscribers", handlers.GetSubscribers)
		protected.GET("/analytics/summary", handlers.GetAnalyticsSummary)
	}

	// Start server with graceful shutdown
	serverConfig := server.DefaultConfig("sharelink", "8080")
	if err := server.Start(serverConfig, router, logger); err != nil {
		logger.WithError(err).Fatal("Server startup failed")
	}
}
