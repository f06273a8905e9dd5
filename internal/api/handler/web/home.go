// internal/api/handler/web/home.go
package web

import (
	"net/http"

	"github.com/newthinker/quanthub/internal/route"
)

// StrategyCard is one strategy on the listing page.
type StrategyCard struct {
	Name   string
	Return string
	Icon   string
	Href   string
}

// HomeData holds data for the listing template
type HomeData struct {
	Layout
	Strategies []StrategyCard
}

// Home renders the strategy listing
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	summaries := h.catalog.Strategies()
	cards := make([]StrategyCard, 0, len(summaries))
	for _, s := range summaries {
		cards = append(cards, StrategyCard{
			Name:   s.Name,
			Return: s.ReturnLabel(),
			Icon:   s.Icon,
			Href:   route.StrategyPath(s.ID),
		})
	}

	h.recorder.RecordPageView("home")
	h.render(w, http.StatusOK, "home.html", HomeData{
		Layout:     h.layout(r, "Algo Trading for Everyone"),
		Strategies: cards,
	})
}
