package app

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/newthinker/quanthub/internal/api"
	"github.com/newthinker/quanthub/internal/catalog"
	"github.com/newthinker/quanthub/internal/config"
	"github.com/newthinker/quanthub/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// defaultShutdownTimeout applies when the config leaves it at zero.
const defaultShutdownTimeout = 30 * time.Second

// App wires configuration, the catalog, metrics and the HTTP server together.
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	catalog *catalog.Catalog
	metrics *metrics.Registry
	server  *api.Server

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// New builds the application from a validated config. The catalog comes from
// cfg.Catalog.Path when set, otherwise the built-in sample data is used.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		loaded, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("loading catalog: %w", err)
		}
		cat = loaded
	}

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
		reg.SetCatalogSize(len(cat.Strategies()))
	}

	server, err := api.NewServer(api.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		TemplatesDir:    cfg.Server.TemplatesDir,
		MetricsEnabled:  cfg.Metrics.Enabled,
		MetricsPath:     cfg.Metrics.Path,
		Brand:           cfg.UI.Brand,
		EditorLoaderURL: cfg.UI.EditorLoaderURL,
		ChartScriptURL:  cfg.UI.ChartScriptURL,
	}, api.Dependencies{
		Catalog: cat,
		Metrics: reg,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}

	return &App{
		cfg:     cfg,
		logger:  logger,
		catalog: cat,
		metrics: reg,
		server:  server,
	}, nil
}

// Catalog returns the loaded catalog.
func (a *App) Catalog() *catalog.Catalog { return a.catalog }

// Metrics returns the metrics registry, or nil when metrics are disabled.
func (a *App) Metrics() *metrics.Registry { return a.metrics }

// Server returns the HTTP server.
func (a *App) Server() *api.Server { return a.server }

// Start listens on the configured address and serves until ctx is done.
func (a *App) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.server.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.server.Addr(), err)
	}
	return a.Serve(ctx, ln)
}

// Serve runs the server on ln until ctx is cancelled or Stop is called, then
// shuts it down within the configured timeout.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		ln.Close()
		return fmt.Errorf("app already running")
	}
	a.running = true
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.mu.Unlock()

	defer func() {
		cancel()
		a.mu.Lock()
		a.running = false
		a.mu.Unlock()
	}()

	a.logger.Info("QuantHub starting",
		zap.String("addr", ln.Addr().String()),
		zap.Int("strategies", len(a.catalog.Strategies())),
		zap.Bool("metrics", a.metrics != nil),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.server.Serve(ln)
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := a.cfg.Server.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		return nil
	})

	err := g.Wait()
	a.logger.Info("QuantHub stopped")
	return err
}

// Stop cancels a running Serve.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
	}
}

// Stats reports what the running app serves.
func (a *App) Stats() map[string]any {
	return map[string]any{
		"strategies":      len(a.catalog.Strategies()),
		"forks":           len(a.catalog.Forks()),
		"metrics_enabled": a.metrics != nil,
		"addr":            a.server.Addr(),
	}
}
