package realtime

import (
	"testing"
	"time"
)

func TestRoomStore_Create_Get(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("room1", "state1")
	room, ok := s.Get("room1")
	if !ok {
		t.Fatal("Get returned false for existing room")
	}
	if room.ID != "room1" || room.State != "state1" {
		t.Errorf("room %+v, want room1/state1", room)
	}
	if _, ok := s.Get("nonexistent"); ok {
		t.Error("Get should return false for missing ID")
	}
}

func TestRoomStore_GetOrCreate(t *testing.T) {
	s := NewRoomStore[int]()
	calls := 0
	create := func() int { calls++; return 7 }
	r1, created := s.GetOrCreate("a", create)
	if !created || r1.State != 7 {
		t.Fatalf("first GetOrCreate created=%v state=%d", created, r1.State)
	}
	r2, created := s.GetOrCreate("a", create)
	if created || r2 != r1 {
		t.Error("second GetOrCreate should return the existing room")
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
	if s.Len() != 1 {
		t.Errorf("Len %d, want 1", s.Len())
	}
}

func TestRoomStore_Publish(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("r1", "x")
	hub := s.Broadcaster("r1")
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	s.Publish("r1", "canvas")
	if got := <-ch; got != "canvas" {
		t.Errorf("got %q, want canvas", got)
	}
	// unknown rooms are ignored rather than created
	s.Publish("missing", "canvas")
	if s.Broadcaster("missing") != nil {
		t.Error("Broadcaster should be nil for unknown room")
	}
}

func TestRoomStore_DeleteClosesSubscribers(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("r1", "x")
	ch := s.Broadcaster("r1").Subscribe()
	s.Delete("r1")
	if _, open := <-ch; open {
		t.Error("Delete should close subscriber channels")
	}
	if _, ok := s.Get("r1"); ok {
		t.Error("room should be gone after Delete")
	}
}

func TestRoomStore_RunLoopPublishesAndStops(t *testing.T) {
	s := NewRoomStore[int]()
	s.Create("r1", 0)
	ch := s.Broadcaster("r1").Subscribe()

	ticks := 0
	s.RunLoop("r1", func() int { return 0 }, func(_ int, now time.Time) (time.Time, []string, bool) {
		ticks++
		if ticks >= 3 {
			return time.Time{}, []string{"done"}, true
		}
		return now.Add(5 * time.Millisecond), []string{"tick"}, false
	})

	want := []string{"tick", "tick", "done"}
	for _, w := range want {
		select {
		case got := <-ch:
			if got != w {
				t.Errorf("got %q, want %q", got, w)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", w)
		}
	}
	deadline := time.Now().Add(2 * time.Second)
	for s.Running("r1") {
		if time.Now().After(deadline) {
			t.Fatal("loop did not exit")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestRoomStore_RunLoopOncePerRoom(t *testing.T) {
	s := NewRoomStore[int]()
	s.Create("r1", 0)
	s.RunLoop("r1", func() int { return 0 }, func(_ int, now time.Time) (time.Time, []string, bool) {
		return now.Add(time.Hour), nil, false
	})
	started := make(chan struct{}, 1)
	s.RunLoop("r1", func() int { return 0 }, func(_ int, now time.Time) (time.Time, []string, bool) {
		started <- struct{}{}
		return time.Time{}, nil, true
	})
	select {
	case <-started:
		t.Error("second RunLoop should not start while one is running")
	case <-time.After(50 * time.Millisecond):
	}
	s.Stop("r1")
	if s.Running("r1") {
		t.Error("Stop should remove the loop")
	}
}

func TestRoomStore_WakeTicksImmediately(t *testing.T) {
	s := NewRoomStore[int]()
	s.Create("r1", 0)
	ticked := make(chan struct{}, 4)
	s.RunLoop("r1", func() int { return 0 }, func(_ int, now time.Time) (time.Time, []string, bool) {
		ticked <- struct{}{}
		return now.Add(time.Hour), nil, false
	})
	defer s.Stop("r1")
	<-ticked
	s.Wake("r1")
	select {
	case <-ticked:
	case <-time.After(2 * time.Second):
		t.Fatal("Wake did not trigger a tick")
	}
}

func TestRoomStore_Wake_NoPanicWhenNoLoop(t *testing.T) {
	s := NewRoomStore[string]()
	if s.Wake("nonexistent") {
		t.Error("Wake reported a loop for an unknown room")
	}
	s.Stop("nonexistent")
}

// Work scheduled while the loop is deciding to stop must still be ticked.
func TestRoomStore_RunLoopDuringStoppingTickIsNotLost(t *testing.T) {
	s := NewRoomStore[int]()
	s.Create("r1", 0)
	ch := s.Broadcaster("r1").Subscribe()

	calls := 0
	pending := false
	var tick TickFunc[int]
	tick = func(_ int, now time.Time) (time.Time, []string, bool) {
		calls++
		if calls == 1 {
			pending = true
			s.RunLoop("r1", func() int { return 0 }, tick)
			return time.Time{}, nil, true
		}
		if pending {
			pending = false
			return time.Time{}, []string{"handled"}, true
		}
		return time.Time{}, nil, true
	}
	s.RunLoop("r1", func() int { return 0 }, tick)

	select {
	case got := <-ch:
		if got != "handled" {
			t.Errorf("got %q, want handled", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("work scheduled during the stopping tick was never ticked")
	}
	deadline := time.Now().Add(2 * time.Second)
	for s.Running("r1") {
		if time.Now().After(deadline) {
			t.Fatal("loop did not exit")
		}
		time.Sleep(time.Millisecond)
	}
}
