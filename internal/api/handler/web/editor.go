// internal/api/handler/web/editor.go
package web

import (
	"net/http"

	"github.com/newthinker/quanthub/internal/route"
	"go.uber.org/zap"
)

// maxBufferBytes bounds the editor form body read on a run.
const maxBufferBytes = 1 << 20

// EditorData holds data for the editor template
type EditorData struct {
	Layout
	ID        string
	Buffer    string
	RunAction string
	LoaderURL string
}

// Editor renders the workspace seeded with the identifier's template.
func (h *Handler) Editor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identifier(w, r)
	if !ok {
		return
	}

	buffer, err := h.catalog.EditorBuffer(id)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.recorder.RecordPageView("editor")
	h.render(w, http.StatusOK, "editor.html", EditorData{
		Layout:    h.layout(r, "Workspace / "+id.String()),
		ID:        id.String(),
		Buffer:    buffer,
		RunAction: route.EditorPath(id) + "/run",
		LoaderURL: h.opts.EditorLoaderURL,
	})
}

// RunBacktest navigates to the result page for the same identifier. The
// submitted buffer is measured and dropped; no backtest is started.
func (h *Handler) RunBacktest(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identifier(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBufferBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("reading editor buffer", zap.String("id", id.String()), zap.Error(err))
	}
	size := len(r.PostForm.Get("code"))

	h.logger.Debug("backtest requested",
		zap.String("id", id.String()),
		zap.Int("buffer_bytes", size),
	)
	h.recorder.ObserveEditorBuffer(size)
	h.recorder.RecordNavigation("run_backtest")

	http.Redirect(w, r, route.ResultPath(id), http.StatusSeeOther)
}
