package bootstrap

import (
	"strings"
	"time"

	"brand_server/adapter/in/http"
	"brand_server/config"
	"brand_server/infra/middleware"
	"brand_server/pkg/logger"
	"brand_server/pkg/ratelimit"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// InitLogger configures the process logger from cfg.
func InitLogger(cfg *config.Config) {
	logger.Init(logger.Config{
		Level:   logger.ParseLevel(cfg.LogLevel),
		Service: "brand-api",
		Pretty:  cfg.IsDevelopment(),
	})
}

func NewAPI(cfg *config.Config) (*fiber.App, func(), error) {
	InitLogger(cfg)

	deps, cleanup, err := NewDependencies(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize dependencies")
		return nil, nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "brand_server",
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: cfg.IsProduction(),

		ReadBufferSize:  16384,
		WriteBufferSize: 16384,

		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,

		BodyLimit: 4 * 1024 * 1024,

		// Logo rounds wait on the slowest provider.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.ProviderTimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,

		ServerHeader:       "",
		DisableDefaultDate: true,
	})

	// Global middleware stack (order matters)
	app.Use(middleware.Recover())              // 1. Panic recovery
	app.Use(middleware.RequestID())            // 2. Request ID
	app.Use(middleware.SecurityHeaders())      // 3. Security headers
	app.Use(middleware.PreventPathTraversal()) // 4. Path traversal protection
	app.Use(middleware.RequestLogger())        // 5. Request logging

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	allowOrigins := strings.Join(cfg.AllowedOrigins, ",")
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000,http://localhost:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,X-Request-ID,If-None-Match",
		ExposeHeaders: "X-Request-ID,X-Cache,ETag,Content-Disposition,X-RateLimit-Limit,X-RateLimit-Remaining,X-RateLimit-Reset,Retry-After",
		MaxAge:        86400,
	}))

	// Health
	healthHandler := http.NewHealthHandler(deps.Providers, deps.Stats, deps.Guards...)
	if deps.Redis != nil {
		healthHandler.WithDependency("redis", http.RedisChecker{Client: deps.Redis})
	}
	healthHandler.Register(app)

	// Generation endpoints share one per-IP budget, across instances when Redis is up
	var generate fiber.Handler
	switch {
	case cfg.GenerateRateLimit > 0 && deps.Redis != nil:
		generate = middleware.SharedRateLimit(
			ratelimit.NewSlidingWindowLimiter(deps.Redis, cfg.GenerateRateLimit, time.Minute),
		)
	case cfg.GenerateRateLimit > 0:
		limiter := middleware.NewRateLimiter(cfg.GenerateRateLimit, time.Minute)
		generate = limiter.Handler()
		inner := cleanup
		cleanup = func() {
			limiter.Stop()
			inner()
		}
	}

	brandHandler := http.NewBrandHandler(
		deps.SuggestionService,
		deps.LogoService,
		deps.ReconcileService,
		deps.PaletteService,
		deps.ExportService,
		cfg.SuggestProvider,
	)
	brandHandler.Register(app, generate)
	brandHandler.RegisterLegacy(app, generate)
	app.Use(middleware.NotFound())

	logger.Info("API server initialized successfully")

	return app, cleanup, nil
}
