// Package server exposes the assistant over HTTP.
package server

import (
	"context"
	"errors"
	"time"

	"nexus/internal/assistant"
	"nexus/internal/config"
	"nexus/internal/logging"
	"nexus/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const shutdownTimeout = 10 * time.Second

// Assistant answers one turn.
type Assistant interface {
	Respond(ctx context.Context, turn assistant.Turn) response.Response
}

// Server is the HTTP API.
type Server struct {
	app       *fiber.App
	addr      string
	assistant Assistant
}

// New builds the routes. gatherer backs /metrics and may be nil.
func New(a Assistant, gatherer prometheus.Gatherer, cfg config.ServerConfig) *Server {
	bodyLimit := cfg.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = config.DefaultBodyLimit
	}

	app := fiber.New(fiber.Config{
		AppName:               "nexus",
		DisableStartupMessage: true,
		BodyLimit:             bodyLimit,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	if cfg.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept",
			AllowMethods: "GET, POST, OPTIONS",
		}))
	}

	s := &Server{app: app, addr: cfg.Addr, assistant: a}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	if gatherer != nil {
		metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
		app.Get("/metrics", func(c *fiber.Ctx) error {
			metricsHandler(c.Context())
			return nil
		})
	}

	v1 := app.Group("/v1")
	v1.Post("/assist", s.handleAssist)

	return s
}

// App returns the fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until ctx is done, then shuts down gracefully.
func (s *Server) Listen(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Info("http api listening", "addr", s.addr)
		errCh <- s.app.Listen(s.addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logging.Info("shutting down http api")
		return s.app.ShutdownWithTimeout(shutdownTimeout)
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code == fiber.StatusInternalServerError {
		logging.Error("internal server error", "error", err, "path", c.Path())
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
