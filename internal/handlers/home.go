package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"complaintfinder/internal/config"
	"complaintfinder/internal/models"
	"complaintfinder/internal/resolver"
	"complaintfinder/internal/store"
	"complaintfinder/internal/validation"
)

// HomeHandler renders the search page. A keyword in the query string is
// resolved server side so the page works without JavaScript.
type HomeHandler struct {
	resolver *resolver.Resolver
	cfg      *config.Config
}

// NewHomeHandler creates a new home handler.
func NewHomeHandler(r *resolver.Resolver, cfg *config.Config) *HomeHandler {
	return &HomeHandler{resolver: r, cfg: cfg}
}

// searchView is the server-rendered search result.
type searchView struct {
	Keyword          string
	TotalResults     int
	RecommendedField string
	RecommendedCount int
	Fields           resolver.Distribution
	MappingUsed      bool
	Message          string
}

// Index renders the home page with search box.
func (h *HomeHandler) Index(c fiber.Ctx) error {
	data := MergeBranding(fiber.Map{
		"Groups": h.resolver.Table().Groups(),
	}, h.cfg)

	raw := c.Query("keyword")
	if raw == "" {
		return c.Render("index", data)
	}

	q := validation.SearchQuery{Keyword: raw}
	data["Keyword"] = validation.NormalizeKeyword(raw)

	if err := validation.ValidateSearchQuery(&q); err != nil {
		message := models.MessageKeywordRequired
		if errors.Is(err, validation.ErrKeywordTooLong) {
			message = models.MessageKeywordTooLong
		}
		data["Error"] = message
		return c.Status(fiber.StatusBadRequest).Render("index", data)
	}

	out, err := h.resolver.Resolve(c.Context(), q.Keyword)
	if err != nil {
		message := models.MessageSearchFailed
		if errors.Is(err, store.ErrNotConfigured) {
			message = models.MessageStoreMisconfigured
		}
		slog.Error("page search failed", "keyword", q.Keyword, "error", err)
		data["Error"] = message
		return c.Status(fiber.StatusInternalServerError).Render("index", data)
	}

	data["Result"] = newSearchView(out)
	return c.Render("index", data)
}

func newSearchView(out resolver.Outcome) searchView {
	switch o := out.(type) {
	case resolver.MappingHit:
		return searchView{
			Keyword:          o.Keyword,
			TotalResults:     o.TotalResults(),
			RecommendedField: o.Category,
			RecommendedCount: o.Count,
			Fields:           o.Distribution(),
			MappingUsed:      true,
		}
	case resolver.FallbackResult:
		top := o.Recommended()
		return searchView{
			Keyword:          o.Keyword,
			TotalResults:     o.TotalResults(),
			RecommendedField: top.Category,
			RecommendedCount: top.Count,
			Fields:           o.Distribution,
		}
	case resolver.NoResult:
		return searchView{Keyword: o.Keyword, Message: models.MessageNoResults}
	}
	return searchView{}
}
