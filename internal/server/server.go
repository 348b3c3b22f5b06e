package server

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/beetlebugorg/kmz2svg/internal/config"
	"github.com/beetlebugorg/kmz2svg/pkg/kmz"
)

// Dependencies holds everything the HTTP handlers need.
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger
	Parser kmz.Parser
}

// New builds the HTTP application with middleware and routes registered.
func New(deps *Dependencies) *fiber.App {
	cfg := deps.Config

	app := fiber.New(fiber.Config{
		ReadTimeout:           time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
		AppName:               "kmz2svg API",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(AccessLogMiddleware(deps.Logger))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	setupRoutes(app, deps)

	return app
}

// setupRoutes registers the health check and the conversion endpoints.
func setupRoutes(app *fiber.App, deps *Dependencies) {
	app.Get("/healthz", HealthHandler(deps))

	v1 := app.Group("/v1")
	v1.Post("/inspect", InspectHandler(deps))
	v1.Post("/preview", PreviewHandler(deps))
	v1.Post("/convert", ConvertHandler(deps))
}
