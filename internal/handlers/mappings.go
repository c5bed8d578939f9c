package handlers

import (
	"github.com/gofiber/fiber/v3"

	"complaintfinder/internal/mapping"
)

// MappingsHandler lists the active keyword mapping table.
type MappingsHandler struct {
	table *mapping.Table
}

// NewMappingsHandler creates a new mappings handler.
func NewMappingsHandler(table *mapping.Table) *MappingsHandler {
	return &MappingsHandler{table: table}
}

// MappingsResponse is the body of GET /api/mappings.
type MappingsResponse struct {
	Categories   []mapping.Group `json:"categories"`
	KeywordCount int             `json:"keywordCount"`
}

// List returns the mapping table grouped by category.
func (h *MappingsHandler) List(c fiber.Ctx) error {
	groups := h.table.Groups()
	if groups == nil {
		groups = []mapping.Group{}
	}
	return c.JSON(MappingsResponse{
		Categories:   groups,
		KeywordCount: h.table.Len(),
	})
}
