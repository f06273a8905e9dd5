// internal/api/server.go
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	apihandler "github.com/newthinker/quanthub/internal/api/handler/api"
	"github.com/newthinker/quanthub/internal/api/handler/web"
	"github.com/newthinker/quanthub/internal/api/middleware"
	"github.com/newthinker/quanthub/internal/catalog"
	"github.com/newthinker/quanthub/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the HTTP server for QuantHub
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	TemplatesDir string

	MetricsEnabled bool
	MetricsPath    string

	Brand           string
	EditorLoaderURL string
	ChartScriptURL  string

	// Now overrides the clock used for fork identifiers.
	Now func() time.Time
}

// Dependencies holds the collaborators the handlers read from.
type Dependencies struct {
	Catalog catalog.Provider
	// Metrics may be nil, which disables both recording and the scrape endpoint.
	Metrics *metrics.Registry
}

// Route is one entry of the route table.
type Route struct {
	Method  string
	Pattern string
	Name    string
}

// Routes lists the page and API routes in registration order.
func Routes() []Route {
	return []Route{
		{http.MethodGet, "/{$}", "home"},
		{http.MethodGet, "/strategy/{id}", "strategy detail"},
		{http.MethodPost, "/strategy/{id}/fork", "fork and edit"},
		{http.MethodGet, "/editor/{id}", "editor"},
		{http.MethodPost, "/editor/{id}/run", "run backtest"},
		{http.MethodGet, "/result/{id}", "result"},
		{http.MethodPost, "/result/{id}/live", "simulate live trading"},
		{http.MethodGet, "/static/", "static assets"},
		{http.MethodGet, "/api/health", "health"},
		{http.MethodGet, "/api/v1/strategies", "list strategies"},
		{http.MethodGet, "/api/v1/strategies/{id}", "get strategy"},
	}
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if deps.Catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	s := &Server{
		logger: logger,
		mux:    mux,
	}

	webHandler, err := web.NewHandler(web.Options{
		TemplatesDir:    cfg.TemplatesDir,
		Brand:           cfg.Brand,
		EditorLoaderURL: cfg.EditorLoaderURL,
		ChartScriptURL:  cfg.ChartScriptURL,
		Now:             cfg.Now,
	}, deps.Catalog, logger)
	if err != nil {
		return nil, fmt.Errorf("creating web handler: %w", err)
	}
	if deps.Metrics != nil {
		webHandler.SetRecorder(deps.Metrics)
	}

	if err := s.setupRoutes(cfg, deps, webHandler); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	mws := []func(http.Handler) http.Handler{
		middleware.Recover(logger, http.HandlerFunc(webHandler.ServerError)),
		metrics.LoggingMiddleware(logger),
	}
	if deps.Metrics != nil {
		mws = append(mws, metrics.HTTPMiddleware(deps.Metrics))
	}

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      middleware.Chain(mux, mws...),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config, deps Dependencies, webHandler *web.Handler) error {
	strategies := apihandler.NewStrategiesHandler(deps.Catalog)

	handlers := map[string]http.HandlerFunc{
		"GET /{$}":                    webHandler.Home,
		"GET /strategy/{id}":          webHandler.StrategyDetail,
		"POST /strategy/{id}/fork":    webHandler.Fork,
		"GET /editor/{id}":            webHandler.Editor,
		"POST /editor/{id}/run":       webHandler.RunBacktest,
		"GET /result/{id}":            webHandler.Result,
		"POST /result/{id}/live":      webHandler.SimulateLiveTrading,
		"GET /static/":                http.StripPrefix("/static/", http.FileServerFS(web.StaticFS())).ServeHTTP,
		"GET /api/health":             s.handleHealth,
		"GET /api/v1/strategies":      strategies.List,
		"GET /api/v1/strategies/{id}": strategies.Get,
	}
	for _, rt := range Routes() {
		pattern := rt.Method + " " + rt.Pattern
		h, ok := handlers[pattern]
		if !ok {
			return fmt.Errorf("no handler for route %q", pattern)
		}
		s.mux.HandleFunc(pattern, h)
	}

	highlight, err := webHandler.HighlightCSS()
	if err != nil {
		return fmt.Errorf("building highlight stylesheet: %w", err)
	}
	s.mux.Handle("GET /static/highlight.css", highlight)

	if cfg.MetricsEnabled && deps.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle("GET "+path, promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{}))
	}

	s.mux.HandleFunc("/", webHandler.NotFound)
	return nil
}

// Handler returns the server's root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start starts the HTTP server
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("starting HTTP server", zap.String("addr", ln.Addr().String()))
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
