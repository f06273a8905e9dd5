// internal/api/handler/web/result.go
package web

import (
	"html/template"
	"net/http"

	"github.com/newthinker/quanthub/internal/catalog"
	"github.com/newthinker/quanthub/internal/chart"
	"github.com/newthinker/quanthub/internal/route"
)

// LiveTradingNotice is shown when live trading is requested.
const LiveTradingNotice = "Live trading connection module is under development."

// MetricView represents a metric tile for display
type MetricView struct {
	Label string
	Value string
	Tone  catalog.Tone
}

// ResultData holds data for the result template
type ResultData struct {
	Layout
	ID             string
	Metrics        []MetricView
	ChartOption    template.JS
	ChartScriptURL string
	LiveAction     string
	Notice         string
}

// Result renders the performance report. Nothing on it depends on the
// identifier beyond the form target.
func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identifier(w, r)
	if !ok {
		return
	}
	h.recorder.RecordPageView("result")
	h.renderResult(w, r, id, http.StatusOK, "")
}

// SimulateLiveTrading re-renders the report with a blocking notice that the
// feature does not exist.
func (h *Handler) SimulateLiveTrading(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identifier(w, r)
	if !ok {
		return
	}
	h.recorder.RecordLiveTradingRequest()
	h.renderResult(w, r, id, http.StatusNotImplemented, LiveTradingNotice)
}

func (h *Handler) renderResult(w http.ResponseWriter, r *http.Request, id route.Identifier, status int, notice string) {
	opt, err := chart.Build(h.catalog.Chart())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	optJSON, err := opt.JSON()
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	tiles := h.catalog.Metrics()
	metrics := make([]MetricView, 0, len(tiles))
	for _, m := range tiles {
		metrics = append(metrics, MetricView{Label: m.Label, Value: m.Display(), Tone: m.Tone})
	}

	h.render(w, status, "result.html", ResultData{
		Layout:  h.layout(r, "Performance Report"),
		ID:      id.String(),
		Metrics: metrics,
		// encoding/json escapes <, > and &, so the document is safe inside <script>
		ChartOption:    template.JS(optJSON),
		ChartScriptURL: h.opts.ChartScriptURL,
		LiveAction:     route.ResultPath(id) + "/live",
		Notice:         notice,
	})
}
