package server

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/gofiber/storage/redis/v3"

	"complaintfinder/internal/config"
	"complaintfinder/internal/handlers"
	"complaintfinder/internal/middleware"
	"complaintfinder/internal/models"
	assets "complaintfinder/static"
	"complaintfinder/views"
)

// API path prefixes. Responses under these are JSON and carry the fixed
// permissive CORS headers instead of the configured ones.
var apiPrefixes = []string{"/api/", "/.netlify/functions/"}

// Server wraps the Fiber app and configuration.
type Server struct {
	App *fiber.App
	Cfg *config.Config

	limiterStorage fiber.Storage
}

// New creates a new server with middleware configured.
func New(cfg *config.Config) *Server {
	app := fiber.New(fiber.Config{
		Views:        views.NewEngine(),
		ViewsLayout:  "layouts/main",
		ErrorHandler: errorHandler(cfg),
	})

	s := &Server{
		App: app,
		Cfg: cfg,
	}

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())

	// CORS middleware for the page and probes; API routes set their own headers
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowMethods: []string{fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions},
		AllowHeaders: []string{fiber.HeaderContentType},
		Next: func(c fiber.Ctx) bool {
			return isAPIPath(c.Path())
		},
	}))

	// Rate limiting middleware, per IP
	if cfg.RateLimitMax > 0 {
		limiterCfg := limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			Next: func(c fiber.Ctx) bool {
				// Probes and scrapes are never limited
				p := c.Path()
				return p == "/healthz" || p == "/readyz" || p == "/metrics"
			},
			LimitReached: func(c fiber.Ctx) error {
				if isAPIPath(c.Path()) {
					middleware.SetAPIHeaders(c)
				}
				return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
					Error: "요청이 너무 많습니다. 잠시 후 다시 시도해주세요.",
				})
			},
		}
		if cfg.RedisURL != "" {
			s.limiterStorage = redis.New(redis.Config{URL: cfg.RedisURL})
			limiterCfg.Storage = s.limiterStorage
			log.Println("Rate limiter using Redis storage")
		}
		app.Use(limiter.New(limiterCfg))
	}

	// Static files
	app.Get("/static*", static.New("", static.Config{FS: assets.FS}))

	return s
}

// errorHandler renders errors as JSON on API paths and as the error page
// elsewhere. Unexpected errors never expose their message.
func errorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		} else {
			log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		}

		if isAPIPath(c.Path()) {
			if code == fiber.StatusInternalServerError {
				message = models.MessageServerError
			}
			middleware.SetAPIHeaders(c)
			return c.Status(code).JSON(models.ErrorResponse{Error: message})
		}

		return c.Status(code).Render("error", handlers.MergeBranding(fiber.Map{
			"Title":   "Error",
			"Message": message,
		}, cfg))
	}
}

func isAPIPath(path string) bool {
	for _, prefix := range apiPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Start starts the server with the configured address and TLS settings.
func (s *Server) Start() error {
	if s.Cfg.TLSEnabled {
		log.Printf("Starting server with TLS on %s", s.Cfg.ServerAddr)
		return s.App.Listen(s.Cfg.ServerAddr, fiber.ListenConfig{
			CertFile:    s.Cfg.TLSCertFile,
			CertKeyFile: s.Cfg.TLSKeyFile,
			TLSConfigFunc: func(tc *tls.Config) {
				tc.MinVersion = tls.VersionTLS12
			},
		})
	}
	return s.App.Listen(s.Cfg.ServerAddr)
}

// Shutdown gracefully shuts down the server and releases the limiter storage.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.App.ShutdownWithContext(ctx)
	if s.limiterStorage != nil {
		if cerr := s.limiterStorage.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
