package workspace

import (
	"time"

	"studyfortress/internal/catalog"
	"studyfortress/internal/platform/logger"
	"studyfortress/pkg/realtime"
)

// SSE event names, one per UI fragment.
const (
	EventCanvas     = "canvas"
	EventPanels     = "panels"
	EventTags       = "tags"
	EventSidebar    = "sidebar"
	EventRecordings = "recordings"
	EventRecording  = "recording"
	EventMindMap    = "mindmap"
	EventStudy      = "study"
)

// Store holds workspaces and delegates to realtime.RoomStore for lookup and
// broadcast.
type Store struct {
	r    *realtime.RoomStore[*Workspace]
	cat  *catalog.Catalog
	opts Options
	log  *logger.Logger
}

func NewStore(cat *catalog.Catalog, opts Options, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		r:    realtime.NewRoomStore[*Workspace](),
		cat:  cat,
		opts: opts,
		log:  log,
	}
}

// Key identifies the workspace of one user in one folder.
func Key(userID, folderID string) string {
	return userID + "/" + folderID
}

// UnknownFolderID is the folder id shared by every id missing from the
// catalog, so arbitrary ids cannot grow the store.
const UnknownFolderID = "unknown"

// Resolve maps a requested folder id to the id its workspace is kept under.
func (s *Store) Resolve(folderID string) string {
	if _, ok := s.cat.Folder(folderID); ok {
		return folderID
	}
	return UnknownFolderID
}

// Open returns the user's workspace for a folder, seeding it from the catalog
// on first use. Workspace.FolderID carries the resolved id, which is the one
// to pass to Publish, EnsureLoop and Broadcaster.
func (s *Store) Open(userID, folderID string) *Workspace {
	folderID = s.Resolve(folderID)
	key := Key(userID, folderID)
	room, created := s.r.GetOrCreate(key, func() *Workspace {
		return New(folderID, s.cat.FolderName(folderID), s.cat.SeedFor(folderID), s.opts, time.Now().UTC())
	})
	if created {
		s.log.Info("workspace opened", "user_id", userID, "folder", folderID, "workspace", room.State.ID)
	}
	return room.State
}

// Get returns an already open workspace.
func (s *Store) Get(userID, folderID string) (*Workspace, bool) {
	room, ok := s.r.Get(Key(userID, folderID))
	if !ok {
		return nil, false
	}
	return room.State, true
}

// Close drops a workspace and disconnects its subscribers.
func (s *Store) Close(userID, folderID string) {
	s.r.Delete(Key(userID, folderID))
}

func (s *Store) Len() int {
	return s.r.Len()
}

// Broadcaster returns the SSE broadcaster for a workspace.
func (s *Store) Broadcaster(userID, folderID string) *realtime.Broadcaster {
	return s.r.Broadcaster(Key(userID, folderID))
}

// Publish notifies subscribers which fragments changed.
func (s *Store) Publish(userID, folderID string, events ...string) {
	s.r.Publish(Key(userID, folderID), events...)
}

// EnsureLoop starts the timing loop for a workspace if it is not running,
// and otherwise wakes it so it picks up newly scheduled work. RunLoop does
// both under one lock, so a loop that is about to exit still sees the wake.
func (s *Store) EnsureLoop(userID, folderID string) {
	key := Key(userID, folderID)
	getState := func() *Workspace {
		room, ok := s.r.Get(key)
		if !ok {
			return nil
		}
		return room.State
	}
	tick := func(w *Workspace, now time.Time) (time.Time, []string, bool) {
		if w == nil {
			return time.Time{}, nil, true
		}
		events := w.Advance(now)
		next, ok := w.NextWake(now)
		if !ok {
			return time.Time{}, events, true
		}
		return next, events, false
	}
	s.r.RunLoop(key, getState, tick)
}

// LoopRunning reports whether the workspace's timing loop is active.
func (s *Store) LoopRunning(userID, folderID string) bool {
	return s.r.Running(Key(userID, folderID))
}
