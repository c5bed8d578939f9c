package server

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"complaintfinder/internal/handlers"
	"complaintfinder/internal/middleware"
	"complaintfinder/internal/resolver"
	"complaintfinder/internal/store"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(gw store.Gateway, res *resolver.Resolver) {
	// Initialize handlers
	searchHandler := handlers.NewSearchHandler(res)
	mappingsHandler := handlers.NewMappingsHandler(res.Table())
	probeHandler := handlers.NewProbeHandler(gw)
	homeHandler := handlers.NewHomeHandler(res, s.Cfg)

	// Kubernetes probes
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)

	// Prometheus metrics
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// JSON API
	api := s.App.Group("/api", middleware.APIHeaders)
	registerSearch(api, searchHandler)
	api.Get("/mappings", mappingsHandler.List)
	api.Options("/mappings", handlers.Preflight)

	// Legacy serverless function path
	functions := s.App.Group("/.netlify/functions", middleware.APIHeaders)
	registerSearch(functions, searchHandler)

	// Search page
	s.App.Get("/", homeHandler.Index)
}

// registerSearch mounts the search endpoint with its method gate on r.
func registerSearch(r fiber.Router, h *handlers.SearchHandler) {
	r.Add([]string{fiber.MethodGet, fiber.MethodHead}, "/search", h.Search)
	r.Options("/search", handlers.Preflight)
	r.All("/search", handlers.MethodNotAllowed)
}
