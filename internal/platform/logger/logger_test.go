package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_RedactsAndHashes(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core))

	l.Info("login", "email", "alex@example.com", "password", "hunter2", "folder", "biology")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["password"] != "[REDACTED]" {
		t.Errorf("password = %v, want redacted", fields["password"])
	}
	email, _ := fields["email"].(string)
	if !strings.HasPrefix(email, "hash:") || strings.Contains(email, "alex") {
		t.Errorf("email = %q, want hashed", email)
	}
	if fields["folder"] != "biology" {
		t.Errorf("folder = %v, want biology", fields["folder"])
	}
}

func TestLogger_WithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core)).With("workspace", "w1")
	l.Debug("tick")
	if got := logs.All()[0].ContextMap()["workspace"]; got != "w1" {
		t.Errorf("workspace = %v, want w1", got)
	}
}

func TestScrub_OddLength(t *testing.T) {
	out := scrub([]any{"a", 1, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Errorf("scrub = %v", out)
	}
}
