package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr %q, want :8080", cfg.Addr)
	}
	if cfg.LoginDelay != 1500*time.Millisecond {
		t.Errorf("LoginDelay %v, want 1.5s", cfg.LoginDelay)
	}
	if cfg.OrganizeDelay != 2*time.Second || cfg.TranscribeDelay != 2*time.Second {
		t.Errorf("delays %v/%v, want 2s", cfg.OrganizeDelay, cfg.TranscribeDelay)
	}
	if cfg.Prod() {
		t.Error("default mode should not be prod")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STUDYFORTRESS_ADDR", ":9999")
	t.Setenv("STUDYFORTRESS_ORGANIZEDELAY", "250ms")
	cfg, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("Addr %q, want :9999", cfg.Addr)
	}
	if cfg.OrganizeDelay != 250*time.Millisecond {
		t.Errorf("OrganizeDelay %v, want 250ms", cfg.OrganizeDelay)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "studyfortress.yaml")
	content := "addr: \":7000\"\nloginDelay: 0s\ncatalogPath: ./catalog.yaml\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7000" || cfg.LoginDelay != 0 || cfg.CatalogPath != "./catalog.yaml" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("STUDYFORTRESS_BASEURL=https://study.example\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("STUDYFORTRESS_BASEURL") })
	cfg, err := Load("", envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://study.example" {
		t.Errorf("BaseURL %q", cfg.BaseURL)
	}
}

func TestLoad_ProdNeedsSecret(t *testing.T) {
	t.Setenv("STUDYFORTRESS_MODE", "prod")
	if _, err := Load("", filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("prod mode with the default secret should fail")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing config file should fail")
	}
}
