package workspace

import (
	"testing"
	"time"

	"studyfortress/internal/catalog"
)

func newTestStore(t *testing.T, timing Timing) *Store {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	return NewStore(cat, Options{Timing: timing}, nil)
}

func TestStore_OpenSeedsOncePerUserAndFolder(t *testing.T) {
	s := newTestStore(t, Timing{})
	w := s.Open("u1", "biology")
	if w == nil {
		t.Fatal("Open returned nil")
	}
	if w.FolderName != "Biology 101" {
		t.Errorf("FolderName %q, want Biology 101", w.FolderName)
	}
	if again := s.Open("u1", "biology"); again != w {
		t.Error("Open returned a different workspace for the same key")
	}
	if other := s.Open("u2", "biology"); other == w {
		t.Error("two users share a workspace")
	}
	if s.Len() != 2 {
		t.Errorf("Len %d, want 2", s.Len())
	}

	got, ok := s.Get("u1", "biology")
	if !ok || got != w {
		t.Error("Get did not return the opened workspace")
	}
	if _, ok := s.Get("u1", "physics"); ok {
		t.Error("Get should return false for a folder never opened")
	}
}

func TestStore_UnknownFolder(t *testing.T) {
	s := newTestStore(t, Timing{})
	w := s.Open("u1", "astrology")
	if w.FolderName != catalog.UnknownFolderName {
		t.Errorf("FolderName %q, want %q", w.FolderName, catalog.UnknownFolderName)
	}
	if w.FolderID != UnknownFolderID {
		t.Errorf("FolderID %q, want %q", w.FolderID, UnknownFolderID)
	}
}

func TestStore_UnknownFoldersShareOneWorkspace(t *testing.T) {
	s := newTestStore(t, Timing{})
	first := s.Open("u1", "astrology")
	for _, id := range []string{"alchemy", "numerology", "astrology"} {
		if got := s.Open("u1", id); got != first {
			t.Errorf("Open(%q) returned a new workspace", id)
		}
	}
	if s.Len() != 1 {
		t.Errorf("Len %d, want 1", s.Len())
	}
	if s.Broadcaster("u1", UnknownFolderID) == nil {
		t.Error("shared workspace is not reachable by its resolved id")
	}
}

func TestStore_Publish(t *testing.T) {
	s := newTestStore(t, Timing{})
	s.Open("u1", "biology")
	hub := s.Broadcaster("u1", "biology")
	if hub == nil {
		t.Fatal("Broadcaster returned nil for an open workspace")
	}
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	s.Publish("u1", "biology", EventCanvas)
	if got := <-ch; got != EventCanvas {
		t.Errorf("got event %q, want %q", got, EventCanvas)
	}
	if s.Broadcaster("u1", "nowhere") != nil {
		t.Error("Broadcaster should be nil for a workspace never opened")
	}
}

func TestStore_Close(t *testing.T) {
	s := newTestStore(t, Timing{})
	s.Open("u1", "biology")
	hub := s.Broadcaster("u1", "biology")
	ch := hub.Subscribe()
	s.Close("u1", "biology")
	if _, ok := <-ch; ok {
		t.Error("subscriber channel should be closed")
	}
	if s.Len() != 0 {
		t.Errorf("Len %d, want 0", s.Len())
	}
}

func TestStore_LoopFinishesOrganize(t *testing.T) {
	s := newTestStore(t, Timing{OrganizeDelay: 20 * time.Millisecond})
	w := s.Open("u1", "biology")
	ch := s.Broadcaster("u1", "biology").Subscribe()

	if err := w.Organize(time.Now().UTC()); err != nil {
		t.Fatalf("Organize: %v", err)
	}
	s.EnsureLoop("u1", "biology")
	s.EnsureLoop("u1", "biology")

	select {
	case ev := <-ch:
		if ev != EventCanvas {
			t.Errorf("event %q, want %q", ev, EventCanvas)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the organize event")
	}

	snap := w.Snapshot(time.Now().UTC())
	if snap.Organizing {
		t.Error("organize should have finished")
	}
	if snap.Items[0].Pos.X != 100 || snap.Items[0].Pos.Y != 100 {
		t.Errorf("first item at %v, want {100 100}", snap.Items[0].Pos)
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.LoopRunning("u1", "biology") {
		if time.Now().After(deadline) {
			t.Fatal("loop did not stop once idle")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStore_EnsureLoopIdleStopsImmediately(t *testing.T) {
	s := newTestStore(t, Timing{})
	s.Open("u1", "biology")
	s.EnsureLoop("u1", "biology")
	deadline := time.Now().Add(time.Second)
	for s.LoopRunning("u1", "biology") {
		if time.Now().After(deadline) {
			t.Fatal("idle loop kept running")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
