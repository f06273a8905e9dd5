// internal/api/handler/web/strategy.go
package web

import (
	"html/template"
	"net/http"

	"github.com/newthinker/quanthub/internal/route"
	"go.uber.org/zap"
)

// ForkView represents a community fork for display
type ForkView struct {
	Contributor string
	Strategy    string
	Return      string
}

// StrategyData holds data for the strategy detail template
type StrategyData struct {
	Layout
	ID          string
	Label       string
	Tags        []string
	Description template.HTML
	Source      template.HTML
	Forks       []ForkView
	ForkAction  string
}

// StrategyDetail renders the detail page for the identifier in the path.
// Identifiers not in the catalog still render; only the label and source
// depend on them.
func (h *Handler) StrategyDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identifier(w, r)
	if !ok {
		return
	}

	source, err := h.catalog.DetailSource(id)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	highlighted, err := h.highlighter.Highlight(source, "python")
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	data := StrategyData{
		Layout:     h.layout(r, route.Label(id)),
		ID:         id.String(),
		Label:      route.Label(id),
		Source:     highlighted,
		ForkAction: route.StrategyPath(id) + "/fork",
	}

	if summary, found := h.catalog.Strategy(id); found {
		data.Tags = summary.Tags
		if data.Description, err = h.markdown.Render(summary.Description); err != nil {
			h.serverError(w, r, err)
			return
		}
	}

	for _, f := range h.catalog.Forks() {
		data.Forks = append(data.Forks, ForkView{
			Contributor: f.Contributor,
			Strategy:    f.Strategy,
			Return:      f.ReturnLabel(),
		})
	}

	h.recorder.RecordPageView("strategy")
	h.render(w, http.StatusOK, "strategy.html", data)
}

// Fork starts an edit session for the strategy: it navigates to the editor
// under a new "<id>-fork-<unix millis>" identifier.
func (h *Handler) Fork(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identifier(w, r)
	if !ok {
		return
	}

	forkID, collided, err := h.forks.Fork(id)
	if err != nil {
		h.notFound(w, r, err)
		return
	}
	if collided {
		h.logger.Warn("fork identifier issued twice",
			zap.String("strategy", id.String()),
			zap.String("fork", forkID.String()),
		)
		h.recorder.RecordForkCollision()
	}

	h.recorder.RecordNavigation("fork")
	http.Redirect(w, r, route.EditorPath(forkID), http.StatusSeeOther)
}
