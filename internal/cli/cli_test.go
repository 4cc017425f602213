package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"studyfortress/internal/config"
	"studyfortress/internal/platform/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("", filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

func TestRouter_ServesStaticAndHealth(t *testing.T) {
	static := fstest.MapFS{"app.css": {Data: []byte("body{}")}}
	h, err := newRouter(testConfig(t), logger.Nop(), static)
	if err != nil {
		t.Fatalf("newRouter: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "body{}" {
		t.Errorf("static %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lab/biology", nil))
	if rec.Code != http.StatusSeeOther {
		t.Errorf("lab without session %d, want 303", rec.Code)
	}
}

func TestRouter_BadCatalogPath(t *testing.T) {
	cfg := testConfig(t)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := newRouter(cfg, logger.Nop(), fstest.MapFS{}); err == nil {
		t.Error("expected an error for a missing catalog file")
	}
}

func TestCatalogCmd_PrintsYAML(t *testing.T) {
	root := NewRootCmd(fstest.MapFS{})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"catalog", "--env-file", filepath.Join(t.TempDir(), "missing.env")})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "Biology 101") {
		t.Errorf("catalog output missing folders:\n%s", out.String())
	}
}
