// Package workspace holds the in-memory state of a notes lab: the infinite
// canvas, tab panels, tags, voice recordings, the mind map and the study
// session. One Workspace exists per user and folder.
package workspace

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"studyfortress/internal/catalog"
	"studyfortress/pkg/realtime"
	"studyfortress/pkg/study"
	"studyfortress/pkg/viewport"
)

type ViewMode string

const (
	ViewCanvas ViewMode = "canvas"
	ViewTabs   ViewMode = "tabs"
)

type SidebarView string

const (
	SidebarTopics  SidebarView = "topics"
	SidebarRawData SidebarView = "raw-data"
	SidebarTags    SidebarView = "tags"
)

// Timing holds the durations of the simulated background work.
type Timing struct {
	OrganizeDelay    time.Duration
	TranscribeDelay  time.Duration
	PlaybackDuration time.Duration
}

// DefaultTiming matches the delays users see in the lab.
func DefaultTiming() Timing {
	return Timing{
		OrganizeDelay:    2 * time.Second,
		TranscribeDelay:  2 * time.Second,
		PlaybackDuration: 2 * time.Second,
	}
}

type Options struct {
	Timing      Timing
	Organizer   Organizer
	Transcriber Transcriber
	// Rand places new canvas items. Nil seeds from the clock.
	Rand *rand.Rand
}

type CanvasItem struct {
	ID      string
	Kind    Kind
	Title   string
	Content string
	Pos     viewport.Point
	Width   float64
	Height  float64
	Color   string
	Tags    []string
}

type dragState struct {
	itemID string
	grab   viewport.Point
}

// Workspace is safe for concurrent use.
type Workspace struct {
	mu         sync.Mutex
	ID         string
	FolderID   string
	FolderName string
	CreatedAt  time.Time

	view             viewport.State
	items            []CanvasItem
	drag             dragState
	viewMode         ViewMode
	sidebar          SidebarView
	sidebarCollapsed bool
	organizing       realtime.Deadline

	panels []Panel
	tags   []Tag

	recordings   []Recording
	recorder     realtime.Stopwatch
	recordingID  string
	transcribing realtime.Deadline
	pendingSecs  int
	playing      realtime.Deadline
	playingID    string

	nodes []Node
	conns []Connection

	decks      map[string]catalog.Deck
	studyItems []catalog.StudyItem
	selected   []string
	method     StudyMethod
	session    study.Sequencer
	studyOpen  bool

	topics  []catalog.Topic
	rawData []catalog.ItemRef

	timing      Timing
	organizer   Organizer
	transcriber Transcriber
	rng         *rand.Rand
}

// New builds a workspace for a folder from seed content.
func New(folderID, folderName string, seed catalog.Seed, opts Options, now time.Time) *Workspace {
	if opts.Organizer == nil {
		opts.Organizer = DefaultOrganizer()
	}
	if opts.Transcriber == nil {
		opts.Transcriber = CannedTranscriber{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(now.UnixNano()))
	}
	w := &Workspace{
		ID:          uuid.NewString(),
		FolderID:    folderID,
		FolderName:  folderName,
		CreatedAt:   now,
		view:        viewport.Initial(),
		viewMode:    ViewCanvas,
		sidebar:     SidebarTopics,
		method:      MethodFlashcards,
		decks:       make(map[string]catalog.Deck, len(seed.Decks)),
		timing:      opts.Timing,
		organizer:   opts.Organizer,
		transcriber: opts.Transcriber,
		rng:         opts.Rand,
	}

	for _, it := range seed.CanvasItems {
		w.items = append(w.items, CanvasItem{
			ID:      it.ID,
			Kind:    Kind(it.Kind),
			Title:   it.Title,
			Content: it.Content,
			Pos:     it.Pos,
			Width:   orDefault(it.Width, 280),
			Height:  orDefault(it.Height, 200),
			Color:   it.Color,
			Tags:    cloneStrings(it.Tags),
		})
	}

	for i, p := range seed.Panels {
		panel := Panel{
			ID:        p.ID,
			Title:     p.Title,
			ActiveTab: p.ActiveTab,
			Width:     100 / float64(len(seed.Panels)),
			Height:    100,
			X:         100 / float64(len(seed.Panels)) * float64(i),
		}
		for _, t := range p.Tabs {
			panel.Tabs = append(panel.Tabs, Tab{
				ID:       t.ID,
				Kind:     Kind(t.Kind),
				Title:    t.Title,
				Color:    t.Color,
				ParentID: t.ParentID,
				Children: cloneStrings(t.Children),
				Position: PositionTop,
				Tags:     cloneStrings(t.Tags),
			})
		}
		panel.ShowIcons = len(panel.Tabs) > 4
		if panel.ActiveTab == "" && len(panel.Tabs) > 0 {
			panel.ActiveTab = panel.Tabs[0].ID
		}
		w.panels = append(w.panels, panel)
	}

	for _, t := range seed.Tags {
		w.tags = append(w.tags, Tag{ID: t.ID, Name: t.Name, Color: t.Color, Count: t.Count})
	}

	for _, r := range seed.Recordings {
		w.recordings = append(w.recordings, Recording{
			ID:           r.ID,
			Title:        r.Title,
			Seconds:      r.Seconds,
			Transcript:   r.Transcript,
			LinkedNoteID: r.LinkedNoteID,
			CreatedAt:    now.Add(-time.Duration(r.AgeMinutes) * time.Minute),
		})
	}

	for _, n := range seed.MindMap.Nodes {
		w.nodes = append(w.nodes, Node{ID: n.ID, Label: n.Label, Pos: n.Pos, Color: n.Color})
	}
	for _, c := range seed.MindMap.Connections {
		w.conns = append(w.conns, Connection{ID: c.ID, From: c.From, To: c.To, Label: c.Label, Color: c.Color})
	}

	for _, d := range seed.Decks {
		w.decks[d.ID] = d
	}
	w.studyItems = append(w.studyItems, seed.StudyItems...)
	w.topics = append(w.topics, seed.Topics...)
	w.rawData = append(w.rawData, seed.RawData...)
	return w
}

// Snapshot captures the state needed for rendering UI fragments.
type Snapshot struct {
	ID               string
	FolderID         string
	FolderName       string
	Viewport         viewport.State
	Items            []CanvasItem
	Dragging         string
	ViewMode         ViewMode
	Sidebar          SidebarView
	SidebarCollapsed bool
	Organizing       bool

	Panels []Panel
	Tags   []Tag

	Recordings       []Recording
	Recording        bool
	RecordingSeconds int
	Transcribing     bool
	PlayingID        string

	Nodes       []Node
	Connections []Connection

	Study StudySnapshot

	Topics  []TopicEntries
	RawData []Entry
}

// Snapshot returns a consistent view of the workspace. Due background work is
// left to Advance, which reports the events it causes.
func (w *Workspace) Snapshot(now time.Time) Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	items := make([]CanvasItem, len(w.items))
	for i, it := range w.items {
		items[i] = it
		items[i].Tags = cloneStrings(it.Tags)
	}
	panels := make([]Panel, len(w.panels))
	for i, p := range w.panels {
		panels[i] = p.clone()
	}
	topics := make([]TopicEntries, 0, len(w.topics))
	for _, t := range w.topics {
		topics = append(topics, TopicEntries{Name: t.Name, Entries: w.entriesLocked(t.Items)})
	}

	return Snapshot{
		ID:               w.ID,
		FolderID:         w.FolderID,
		FolderName:       w.FolderName,
		Viewport:         w.view,
		Items:            items,
		Dragging:         w.drag.itemID,
		ViewMode:         w.viewMode,
		Sidebar:          w.sidebar,
		SidebarCollapsed: w.sidebarCollapsed,
		Organizing:       w.organizing.Pending(),
		Panels:           panels,
		Tags:             append([]Tag(nil), w.tags...),
		Recordings:       append([]Recording(nil), w.recordings...),
		Recording:        w.recorder.Running(),
		RecordingSeconds: w.recorder.Seconds(now),
		Transcribing:     w.transcribing.Pending(),
		PlayingID:        w.playingID,
		Nodes:            append([]Node(nil), w.nodes...),
		Connections:      append([]Connection(nil), w.conns...),
		Study:            w.studySnapshotLocked(),
		Topics:           topics,
		RawData:          w.entriesLocked(w.rawData),
	}
}

// Advance applies background work that is due at now and reports which UI
// fragments changed.
func (w *Workspace) Advance(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var events []string
	if w.organizing.Due(now) {
		w.organizing.Clear()
		w.applyOrganizerLocked()
		events = append(events, EventCanvas)
	}
	if w.transcribing.Due(now) {
		w.transcribing.Clear()
		w.finishTranscriptionLocked(now)
		events = append(events, EventRecordings, EventRecording)
	}
	if w.playing.Due(now) {
		w.playing.Clear()
		w.playingID = ""
		events = append(events, EventRecordings)
	}
	if w.recorder.Running() {
		events = append(events, EventRecording)
	}
	return events
}

// NextWake returns when background work next needs attention, and false when
// nothing is pending.
func (w *Workspace) NextWake(now time.Time) (time.Time, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	tick, _ := w.recorder.NextTick(now)
	return realtime.Earliest(w.organizing.At, w.transcribing.At, w.playing.At, tick)
}

// Busy reports whether any background work is pending.
func (w *Workspace) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.organizing.Pending() || w.transcribing.Pending() || w.playing.Pending() || w.recorder.Running()
}

func newID(prefix string) string {
	return prefix + "-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return append([]string(nil), in...)
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
