// internal/api/handler/web/handler.go
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/newthinker/quanthub/internal/catalog"
	"github.com/newthinker/quanthub/internal/content"
	"github.com/newthinker/quanthub/internal/route"
	"go.uber.org/zap"
)

//go:embed templates/*
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// pages lists the page templates; each is parsed together with layout.html.
var pages = []string{"home.html", "strategy.html", "editor.html", "result.html", "error.html"}

// Recorder receives page and navigation events.
type Recorder interface {
	RecordPageView(page string)
	RecordNavigation(action string)
	RecordForkCollision()
	RecordLiveTradingRequest()
	ObserveEditorBuffer(size int)
}

type nopRecorder struct{}

func (nopRecorder) RecordPageView(string)     {}
func (nopRecorder) RecordNavigation(string)   {}
func (nopRecorder) RecordForkCollision()      {}
func (nopRecorder) RecordLiveTradingRequest() {}
func (nopRecorder) ObserveEditorBuffer(int)   {}

// Options configures page chrome and the browser-side widgets.
type Options struct {
	// TemplatesDir overrides the embedded templates when set.
	TemplatesDir    string
	Brand           string
	EditorLoaderURL string
	ChartScriptURL  string
	// Now is the clock used for fork identifiers; nil means time.Now.
	Now func() time.Time
}

// Handler provides web UI handlers with template rendering
type Handler struct {
	// pageTemplates holds separate template instances for each page
	// Each instance contains layout.html + the specific page template
	pageTemplates map[string]*template.Template
	opts          Options

	catalog     catalog.Provider
	forks       *route.ForkTracker
	markdown    *content.Markdown
	highlighter *content.Highlighter
	recorder    Recorder
	logger      *zap.Logger
}

// NewHandler creates a web handler over the given catalog. Templates are loaded
// from opts.TemplatesDir, or from the embedded set when it is empty.
func NewHandler(opts Options, provider catalog.Provider, logger *zap.Logger) (*Handler, error) {
	var fsys fs.FS
	if opts.TemplatesDir != "" {
		fsys = os.DirFS(opts.TemplatesDir)
	} else {
		fsys = TemplateFS()
	}
	return NewHandlerWithFS(fsys, opts, provider, logger)
}

// NewHandlerWithFS creates a new web handler using a custom template filesystem.
// This is useful for testing or custom template sources.
func NewHandlerWithFS(fsys fs.FS, opts Options, provider catalog.Provider, logger *zap.Logger) (*Handler, error) {
	if provider == nil {
		return nil, fmt.Errorf("catalog provider required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Brand == "" {
		opts.Brand = "QuantHub"
	}

	pageTemplates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		// Parse layout first, then the page template
		tmpl, err := template.New(page).Funcs(templateFuncs()).ParseFS(fsys, "layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		pageTemplates[page] = tmpl
	}

	return &Handler{
		pageTemplates: pageTemplates,
		opts:          opts,
		catalog:       provider,
		forks:         route.NewForkTracker(opts.Now),
		markdown:      content.NewMarkdown(),
		highlighter:   content.NewHighlighter(content.DefaultStyle),
		recorder:      nopRecorder{},
		logger:        logger,
	}, nil
}

// SetRecorder sets the metrics sink for page and navigation events.
func (h *Handler) SetRecorder(rec Recorder) {
	if rec == nil {
		rec = nopRecorder{}
	}
	h.recorder = rec
}

// Layout holds the fields every page passes to layout.html.
type Layout struct {
	Title       string
	Brand       string
	CurrentPath string
}

func (h *Handler) layout(r *http.Request, title string) Layout {
	return Layout{Title: title, Brand: h.opts.Brand, CurrentPath: r.URL.Path}
}

// render executes the specified page template with the given data. The page is
// buffered so a template error still produces a clean 500.
func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := h.pageTemplates[page]
	if !ok {
		http.Error(w, "template not found: "+page, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		h.logger.Error("rendering page", zap.String("page", page), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// TemplateFS returns the embedded template filesystem for external use.
func TemplateFS() fs.FS {
	subFS, err := fs.Sub(templateFS, "templates")
	if err != nil {
		// This should never happen with valid embed directive
		return templateFS
	}
	return subFS
}

// StaticFS returns the embedded static assets.
func StaticFS() fs.FS {
	subFS, err := fs.Sub(staticFS, "static")
	if err != nil {
		return staticFS
	}
	return subFS
}

// HighlightCSS serves the stylesheet for highlighted source blocks.
func (h *Handler) HighlightCSS() (http.Handler, error) {
	css, err := h.highlighter.CSS()
	if err != nil {
		return nil, err
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		fmt.Fprint(w, css)
	}), nil
}
