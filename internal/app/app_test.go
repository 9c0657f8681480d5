package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riskibarqy/quiniela/internal/config"
	"github.com/riskibarqy/quiniela/internal/platform/logging"
)

func loadConfig(t *testing.T, driver string) config.Config {
	t.Helper()
	t.Setenv("APP_ENV", config.EnvDev)
	t.Setenv("GATEWAY_DRIVER", driver)
	t.Setenv("METRICS_ENABLED", "true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func submit(t *testing.T, handler http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/quinielas", strings.NewReader(`{"nombre": "Ana", "jornada": "7"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestNewHTTPServer_MemoryDriver(t *testing.T) {
	cfg := loadConfig(t, config.GatewayMemory)

	srv, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	if srv.Addr != cfg.HTTPAddr {
		t.Fatalf("unexpected addr %q", srv.Addr)
	}

	if rec := submit(t, srv.Handler); rec.Code != http.StatusOK {
		t.Fatalf("expected submission to succeed, got %d: %s", rec.Code, rec.Body.String())
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `quiniela_submissions_total{outcome="success"} 1`) {
		t.Fatalf("expected submission counter in metrics output:\n%s", rec.Body.String())
	}
}

func TestNewHTTPServer_XLSXDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiniela.xlsx")
	t.Setenv("XLSX_PATH", path)
	cfg := loadConfig(t, config.GatewayXLSX)

	srv, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}

	// The workbook starts without source sheets.
	if rec := submit(t, srv.Handler); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a missing source sheet, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, err := os.Stat(path); err == nil {
		t.Fatalf("failed submission must not create the workbook")
	}
}

func TestNewHTTPServer_SheetsDriverWithoutCredentials(t *testing.T) {
	t.Setenv("GOOGLE_SHEET_ID", "")
	cfg := loadConfig(t, config.GatewaySheets)

	srv, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("missing credentials must not fail startup: %v", err)
	}
	if rec := submit(t, srv.Handler); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewHTTPServer_EmptyAddr(t *testing.T) {
	cfg := loadConfig(t, config.GatewayMemory)
	cfg.HTTPAddr = ""

	if _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
