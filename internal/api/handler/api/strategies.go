// internal/api/handler/api/strategies.go
package api

import (
	"net/http"

	"github.com/newthinker/quanthub/internal/api/response"
	"github.com/newthinker/quanthub/internal/catalog"
	"github.com/newthinker/quanthub/internal/core"
	"github.com/newthinker/quanthub/internal/route"
)

// Strategy is the JSON form of a catalog strategy.
type Strategy struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Return string   `json:"return"`
	Icon   string   `json:"icon"`
	Tags   []string `json:"tags,omitempty"`
	Links  Links    `json:"links"`
}

// Links are the page routes for a strategy.
type Links struct {
	Detail string `json:"detail"`
	Editor string `json:"editor"`
	Result string `json:"result"`
}

// StrategiesHandler serves a read-only view of the catalog.
type StrategiesHandler struct {
	catalog catalog.Provider
}

// NewStrategiesHandler creates a new strategies handler.
func NewStrategiesHandler(provider catalog.Provider) *StrategiesHandler {
	return &StrategiesHandler{catalog: provider}
}

// List handles GET /api/v1/strategies
func (h *StrategiesHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries := h.catalog.Strategies()
	out := make([]Strategy, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, toStrategy(s))
	}
	response.List(w, out)
}

// Get handles GET /api/v1/strategies/{id}
func (h *StrategiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := route.Parse(r.PathValue("id"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	s, ok := h.catalog.Strategy(id)
	if !ok {
		response.FromError(w, core.ErrStrategyNotFound)
		return
	}
	response.JSON(w, http.StatusOK, toStrategy(s))
}

func toStrategy(s catalog.StrategySummary) Strategy {
	return Strategy{
		ID:     s.ID.String(),
		Name:   s.Name,
		Return: s.ReturnLabel(),
		Icon:   s.Icon,
		Tags:   s.Tags,
		Links: Links{
			Detail: route.StrategyPath(s.ID),
			Editor: route.EditorPath(s.ID),
			Result: route.ResultPath(s.ID),
		},
	}
}
