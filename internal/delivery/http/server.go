package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"go.uber.org/zap"

	"github.com/crashstats-service/internal/config"
	"github.com/crashstats-service/internal/delivery/http/handler"
	"github.com/crashstats-service/internal/delivery/http/middleware"
)

// Server is the fiber HTTP front for the crash-statistics API.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	summaryHandler *handler.SummaryHandler
	crashesHandler *handler.CrashesHandler
	metaHandler    *handler.MetaHandler
	geocodeHandler *handler.GeocodeHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	summaryHandler *handler.SummaryHandler,
	crashesHandler *handler.CrashesHandler,
	metaHandler *handler.MetaHandler,
	geocodeHandler *handler.GeocodeHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Crash Statistics Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		summaryHandler: summaryHandler,
		crashesHandler: crashesHandler,
		metaHandler:    metaHandler,
		geocodeHandler: geocodeHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Query endpoints share one fixed-window rate limit per client IP
	limited := api.Group("", middleware.RateLimit(&s.config.RateLimit))
	limited.Post("/summary", s.summaryHandler.GetSummary)
	limited.Post("/crashes", s.crashesHandler.GetCrashes)
	limited.Get("/geocode", s.geocodeHandler.ForwardGeocode)

	api.Get("/meta", s.metaHandler.GetMeta)
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
