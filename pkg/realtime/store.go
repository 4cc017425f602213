package realtime

import (
	"context"
	"sync"
	"time"
)

// Room holds state and a broadcaster for one room.
type Room[T any] struct {
	ID    string
	State T
	hub   *Broadcaster
}

type loop struct {
	cancel context.CancelFunc
	wake   chan struct{}
}

// RoomStore keeps rooms in memory, each with its own broadcaster and at most
// one timing loop.
type RoomStore[T any] struct {
	mu    sync.RWMutex
	rooms map[string]*Room[T]
	loops map[string]*loop
}

// NewRoomStore creates an empty room store.
func NewRoomStore[T any]() *RoomStore[T] {
	return &RoomStore[T]{
		rooms: make(map[string]*Room[T]),
		loops: make(map[string]*loop),
	}
}

// Create adds a room, replacing any room with the same id.
func (s *RoomStore[T]) Create(id string, state T) *Room[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.rooms[id]; ok && old.hub != nil {
		old.hub.Close()
	}
	r := &Room[T]{ID: id, State: state, hub: NewBroadcaster()}
	s.rooms[id] = r
	return r
}

// GetOrCreate returns the room for id, building its state with create when
// the room does not exist yet. created reports whether create ran.
func (s *RoomStore[T]) GetOrCreate(id string, create func() T) (room *Room[T], created bool) {
	s.mu.RLock()
	r, ok := s.rooms[id]
	s.mu.RUnlock()
	if ok {
		return r, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[id]; ok {
		return r, false
	}
	r = &Room[T]{ID: id, State: create(), hub: NewBroadcaster()}
	s.rooms[id] = r
	return r, true
}

// Get returns the room by ID if it exists.
func (s *RoomStore[T]) Get(id string) (*Room[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// Delete removes a room, stops its loop and closes its subscribers.
func (s *RoomStore[T]) Delete(id string) {
	s.mu.Lock()
	r, ok := s.rooms[id]
	delete(s.rooms, id)
	l := s.loops[id]
	delete(s.loops, id)
	s.mu.Unlock()
	if l != nil {
		l.cancel()
	}
	if ok && r.hub != nil {
		r.hub.Close()
	}
}

// Len reports the number of rooms.
func (s *RoomStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// Publish notifies the room's subscribers. Unknown rooms are ignored.
func (s *RoomStore[T]) Publish(id string, events ...string) {
	s.mu.RLock()
	r, ok := s.rooms[id]
	s.mu.RUnlock()
	if !ok || r.hub == nil {
		return
	}
	r.hub.Publish(events...)
}

// Broadcaster returns the room's broadcaster, or nil for an unknown room.
func (s *RoomStore[T]) Broadcaster(id string) *Broadcaster {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		return nil
	}
	if r.hub == nil {
		r.hub = NewBroadcaster()
	}
	return r.hub
}

// TickFunc is called by RunLoop to advance state. It returns when to run
// next, which events to publish now, and whether the loop should exit.
type TickFunc[T any] func(state T, now time.Time) (next time.Time, events []string, stop bool)

// RunLoop starts the timing loop for a room, or wakes it if one is already
// running. The loop exits when tick reports stop with no wake pending, the
// room is deleted, or Stop is called.
func (s *RoomStore[T]) RunLoop(id string, getState func() T, tick TickFunc[T]) {
	s.mu.Lock()
	if l, ok := s.loops[id]; ok {
		l.signal()
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	l := &loop{cancel: cancel, wake: make(chan struct{}, 1)}
	s.loops[id] = l
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			if s.loops[id] == l {
				delete(s.loops, id)
			}
			s.mu.Unlock()
			cancel()
		}()

		for {
			next, events, stop := tick(getState(), time.Now().UTC())
			if len(events) > 0 {
				s.Publish(id, events...)
			}
			if stop {
				if s.retire(ctx, id, l) {
					return
				}
				continue
			}
			wait := time.Until(next)
			if wait < 0 {
				wait = 0
			}
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			case <-l.wake:
				timer.Stop()
			}
		}
	}()
}

// retire deregisters a loop that wants to stop. A wake that arrived since the
// last tick keeps it running; wakes are sent under s.mu, so none can slip in
// between the check and the delete.
func (s *RoomStore[T]) retire(ctx context.Context, id string, l *loop) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() == nil {
		select {
		case <-l.wake:
			return false
		default:
		}
	}
	if s.loops[id] == l {
		delete(s.loops, id)
	}
	return true
}

func (l *loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Running reports whether a loop is active for the room.
func (s *RoomStore[T]) Running(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.loops[id]
	return ok
}

// Wake makes the room's loop tick immediately. It reports false when no loop
// is registered.
func (s *RoomStore[T]) Wake(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.loops[id]
	if !ok {
		return false
	}
	l.signal()
	return true
}

// Stop cancels the room's loop, if any.
func (s *RoomStore[T]) Stop(id string) {
	s.mu.Lock()
	l, ok := s.loops[id]
	delete(s.loops, id)
	s.mu.Unlock()
	if ok {
		l.cancel()
	}
}
