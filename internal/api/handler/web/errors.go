// internal/api/handler/web/errors.go
package web

import (
	"errors"
	"net/http"

	"github.com/newthinker/quanthub/internal/core"
	"github.com/newthinker/quanthub/internal/route"
	"go.uber.org/zap"
)

// ErrorData holds data for the error template
type ErrorData struct {
	Layout
	Status  int
	Code    string
	Message string
}

// identifier validates the {id} path value, rendering the not-found page
// when it is unusable.
func (h *Handler) identifier(w http.ResponseWriter, r *http.Request) (route.Identifier, bool) {
	id, err := route.Parse(r.PathValue("id"))
	if err != nil {
		h.notFound(w, r, err)
		return "", false
	}
	return id, true
}

// NotFound renders the page for paths outside the route table.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r, core.ErrNotFound)
}

// ServerError renders the generic failure page.
func (h *Handler) ServerError(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusInternalServerError, core.ErrRenderFailed)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Debug("not found", zap.String("path", r.URL.Path), zap.Error(err))
	h.recorder.RecordPageView("not_found")
	h.renderError(w, r, http.StatusNotFound, err)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("page failed", zap.String("path", r.URL.Path), zap.Error(err))
	h.renderError(w, r, http.StatusInternalServerError, err)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, err error) {
	data := ErrorData{
		Layout:  h.layout(r, http.StatusText(status)),
		Status:  status,
		Code:    "INTERNAL_ERROR",
		Message: "Something went wrong while rendering this page.",
	}
	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		data.Code = coreErr.Code
		data.Message = coreErr.Message
	}
	if status == http.StatusNotFound {
		data.Message = "There is no page at this address."
	}
	h.render(w, status, "error.html", data)
}
