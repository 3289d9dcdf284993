package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/testdino/testdino-mcp/internal/app"
	"github.com/testdino/testdino-mcp/internal/common"
	"github.com/testdino/testdino-mcp/internal/config"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()

	cfg := config.NewDefaultConfig()
	cfg.Server.Transport = config.TransportHTTP
	cfg.API.Key = "tok"

	application, err := app.New(cfg, common.NewSilentLogger())
	if err != nil {
		t.Fatalf("failed to create test app: %v", err)
	}

	t.Cleanup(func() {
		application.Close()
	})

	return application
}

func TestRoutes_HealthEndpoint(t *testing.T) {
	srv := New(newTestApp(t))

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body["status"])
	}
}

func TestRoutes_VersionEndpoint(t *testing.T) {
	srv := New(newTestApp(t))

	req := httptest.NewRequest("GET", "/api/version", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body["version"] != config.GetVersion() {
		t.Errorf("expected version %s, got %s", config.GetVersion(), body["version"])
	}
}

func TestRoutes_NotFound(t *testing.T) {
	srv := New(newTestApp(t))

	req := httptest.NewRequest("GET", "/api/nonexistent", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestRoutes_MCPToolsList(t *testing.T) {
	srv := New(newTestApp(t))

	body := `{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`
	req := httptest.NewRequest("POST", "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "get_run_details") {
		t.Errorf("expected tool listing, got %s", w.Body.String())
	}
}

func TestRoutes_MiddlewareApplied(t *testing.T) {
	srv := New(newTestApp(t))

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Header().Get("X-Correlation-ID") == "" {
		t.Error("expected X-Correlation-ID header from middleware")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers from middleware")
	}
}

func TestServer_Addr(t *testing.T) {
	a := newTestApp(t)
	a.Config.Server.Port = 4999
	srv := New(a)

	if srv.server.Addr != "localhost:4999" {
		t.Errorf("unexpected addr %s", srv.server.Addr)
	}
}
