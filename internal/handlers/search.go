package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"complaintfinder/internal/metrics"
	"complaintfinder/internal/models"
	"complaintfinder/internal/resolver"
	"complaintfinder/internal/store"
	"complaintfinder/internal/validation"
)

// SearchHandler serves the keyword search API.
type SearchHandler struct {
	resolver *resolver.Resolver
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(r *resolver.Resolver) *SearchHandler {
	return &SearchHandler{resolver: r}
}

// Search resolves the keyword query parameter to a recommended category.
func (h *SearchHandler) Search(c fiber.Ctx) error {
	q := validation.SearchQuery{Keyword: c.Query("keyword")}
	if err := validation.ValidateSearchQuery(&q); err != nil {
		if errors.Is(err, validation.ErrKeywordTooLong) {
			return jsonError(c, fiber.StatusBadRequest, models.MessageKeywordTooLong)
		}
		return jsonError(c, fiber.StatusBadRequest, models.MessageKeywordRequired)
	}

	start := time.Now()
	out, err := h.resolver.Resolve(c.Context(), q.Keyword)
	if err != nil {
		metrics.ObserveError()
		metrics.ObserveDuration(models.OutcomeError, time.Since(start))
		return searchError(c, q.Keyword, err)
	}
	metrics.ObserveDuration(out.Kind(), time.Since(start))

	return c.JSON(SearchResponseBody(out))
}

// searchError maps a resolution failure to a response. Details stay in the
// log.
func searchError(c fiber.Ctx, keyword string, err error) error {
	if errors.Is(err, store.ErrNotConfigured) {
		slog.Error("search failed: record store not configured", "keyword", keyword, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, models.MessageStoreMisconfigured)
	}
	slog.Error("search failed", "keyword", keyword, "error", err)
	return jsonError(c, fiber.StatusInternalServerError, models.MessageSearchFailed)
}

// SearchResponseBody converts a resolution outcome to its JSON body.
func SearchResponseBody(out resolver.Outcome) any {
	switch o := out.(type) {
	case resolver.MappingHit:
		return models.SearchResponse{
			Keyword:          o.Keyword,
			TotalResults:     o.TotalResults(),
			RecommendedField: o.Category,
			RecommendedCount: o.Count,
			AllFields:        o.Distribution(),
			MappingUsed:      true,
		}
	case resolver.FallbackResult:
		top := o.Recommended()
		return models.SearchResponse{
			Keyword:          o.Keyword,
			TotalResults:     o.TotalResults(),
			RecommendedField: top.Category,
			RecommendedCount: top.Count,
			AllFields:        o.Distribution,
			MappingUsed:      false,
		}
	case resolver.NoResult:
		return models.NoResultResponse{
			Keyword:      o.Keyword,
			TotalResults: 0,
			Message:      models.MessageNoResults,
		}
	default:
		panic("handlers: unknown search outcome")
	}
}
