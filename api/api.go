// Package api exposes the faultline diagnosis service over HTTP.
package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/faultlinehq/faultline/pkg/diagnose"
)

// Config holds API server settings.
type Config struct {
	ListenAddr string
}

// Server is the HTTP server for the diagnosis API.
type Server struct {
	config Config
	svc    *diagnose.Service
	logger *zap.Logger
	app    *fiber.App
}

// NewServer creates a new API server. The diagnosis service is injected so
// the same rule sets can be shared with other frontends (e.g. the one-shot
// CLI).
func NewServer(config Config, svc *diagnose.Service, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// The browser client is served from anywhere during development, so the
	// API answers cross-origin requests unconditionally.
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "*",
	}))

	s := &Server{
		config: config,
		svc:    svc,
		logger: logger,
		app:    app,
	}

	app.Get("/", s.handleRoot)
	app.Get("/api/hello", s.handleHello)
	app.Get("/test", s.handleTest)
	app.Get("/rules", s.handleRules)
	app.Post("/diagnose/forward", s.handleDiagnoseForward)
	app.Post("/diagnose/backward", s.handleDiagnoseBackward)

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
