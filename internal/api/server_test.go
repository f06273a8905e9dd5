// internal/api/server_test.go
package api

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/newthinker/quanthub/internal/catalog"
	"github.com/newthinker/quanthub/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, cfg Config) (*Server, *metrics.Registry) {
	t.Helper()
	reg := metrics.NewRegistry()
	srv, err := NewServer(cfg, Dependencies{
		Catalog: catalog.Default(),
		Metrics: reg,
	}, zap.NewNop())
	require.NoError(t, err)
	return srv, reg
}

func serve(srv *Server, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestNewServer_RequiresCatalog(t *testing.T) {
	_, err := NewServer(Config{}, Dependencies{}, zap.NewNop())
	assert.Error(t, err)
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t, Config{Host: "localhost", Port: 0})

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestServer_Addr(t *testing.T) {
	srv, _ := newTestServer(t, Config{Host: "127.0.0.1", Port: 8080})
	assert.Equal(t, "127.0.0.1:8080", srv.Addr())
}

// TestServer_Journey walks listing -> detail -> fork -> editor -> run -> result.
func TestServer_Journey(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := serve(srv, "GET", "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	href := regexp.MustCompile(`href="(/strategy/[^"]+)">[\s\S]*?Dual MA Strategy`).FindStringSubmatch(w.Body.String())
	require.Len(t, href, 2)
	assert.Equal(t, "/strategy/dual-ma", href[1])

	w = serve(srv, "GET", href[1], nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dual Ma")

	w = serve(srv, "POST", "/strategy/dual-ma/fork", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	editor := w.Header().Get("Location")
	assert.Regexp(t, `^/editor/dual-ma-fork-\d+$`, editor)

	w = serve(srv, "GET", editor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	forkID := strings.TrimPrefix(editor, "/editor/")
	assert.Contains(t, w.Body.String(), forkID)

	form := url.Values{"code": {"# my-secret-edit"}}.Encode()
	w = serve(srv, "POST", editor+"/run", strings.NewReader(form))
	require.Equal(t, http.StatusSeeOther, w.Code)
	result := w.Header().Get("Location")
	assert.Equal(t, "/result/"+forkID, result)

	w = serve(srv, "GET", result, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	for _, want := range []string{"+45.2%", "1.85", "-12.4%", "68%"} {
		assert.Contains(t, body, want)
	}
	assert.NotContains(t, body, "my-secret-edit")

	w = serve(srv, "POST", result+"/live", nil)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Contains(t, w.Body.String(), "Live trading connection module is under development")
}

func TestServer_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	tests := []struct {
		method string
		path   string
	}{
		{"GET", "/nowhere"},
		{"GET", "/strategy/"},
		{"GET", "/strategy/a/b"},
		{"GET", "/strategy/bad.id"},
		{"GET", "/editor/" + strings.Repeat("x", 129)},
		{"GET", "/result/%3Cscript%3E"},
		{"POST", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := serve(srv, tt.method, tt.path, nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Contains(t, w.Body.String(), "There is no page at this address.")
			assert.NotContains(t, w.Body.String(), "<script>")
		})
	}
}

func TestServer_StrategiesAPI(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := serve(srv, "GET", "/api/v1/strategies", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"count":4`)

	w = serve(srv, "GET", "/api/v1/strategies/breakout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Breakout Strategy")

	w = serve(srv, "GET", "/api/v1/strategies/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "STRATEGY_NOT_FOUND")
}

func TestServer_Static(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := serve(srv, "GET", "/static/app.css", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/css")

	w = serve(srv, "GET", "/static/highlight.css", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".chroma")
}

func TestServer_Metrics(t *testing.T) {
	srv, _ := newTestServer(t, Config{MetricsEnabled: true, MetricsPath: "/metrics"})

	serve(srv, "GET", "/", nil)
	serve(srv, "POST", "/strategy/pairs/fork", nil)

	w := serve(srv, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `quanthub_page_views_total{page="home"} 1`)
	assert.Contains(t, body, `quanthub_navigations_total{action="fork"} 1`)
	assert.Contains(t, body, `path="GET /{$}"`)
}

func TestServer_MetricsDisabled(t *testing.T) {
	srv, _ := newTestServer(t, Config{MetricsEnabled: false})

	w := serve(srv, "GET", "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_RequestID(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := serve(srv, "GET", "/api/health", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRoutes_AllRegistered(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	for _, rt := range Routes() {
		path := strings.ReplaceAll(rt.Pattern, "{id}", "dual-ma")
		path = strings.TrimSuffix(path, "{$}")
		if strings.HasSuffix(path, "/static/") {
			path += "app.css"
		}
		req := httptest.NewRequest(rt.Method, path, nil)
		_, pattern := srv.mux.Handler(req)
		assert.Equal(t, rt.Method+" "+rt.Pattern, pattern, path)
	}
}

func TestServer_Lifecycle(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv, _ := newTestServer(t, Config{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	transport := &http.Transport{}
	client := &http.Client{Transport: transport, Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/api/health")
	require.NoError(t, err)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	transport.CloseIdleConnections()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	require.NoError(t, <-done)
}
