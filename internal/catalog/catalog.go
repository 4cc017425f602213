// Package catalog holds the read-only content the app starts from: the
// dashboard's folders and activity, the demo profile, and the seed contents
// of a notes-lab workspace.
package catalog

import (
	_ "embed"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"studyfortress/pkg/study"
	"studyfortress/pkg/viewport"
)

//go:embed catalog.yaml
var embedded []byte

// UnknownFolderName is shown for folder ids that are not in the catalog.
const UnknownFolderName = "Unknown Folder"

type Catalog struct {
	Profile        Profile     `yaml:"profile"`
	Folders        []Folder    `yaml:"folders"`
	Recents        []Shortcut  `yaml:"recents"`
	Favorites      []Shortcut  `yaml:"favorites"`
	WeeklyActivity []DayMinute `yaml:"weeklyActivity"`
	Workspace      Seed        `yaml:"workspace"`
}

type Profile struct {
	Name              string `yaml:"name"`
	Email             string `yaml:"email"`
	Avatar            string `yaml:"avatar"`
	TotalStudyMinutes int    `yaml:"totalStudyMinutes"`
	WeeklyGoalMinutes int    `yaml:"weeklyGoalMinutes"`
	CurrentStreak     int    `yaml:"currentStreak"`
	TotalSessions     int    `yaml:"totalSessions"`
}

// Folder is a subject folder on the dashboard. A folder may carry its own
// workspace seed; otherwise the catalog-wide seed is used.
type Folder struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Cards       int    `yaml:"cards"`
	Color       string `yaml:"color"`
	Workspace   *Seed  `yaml:"workspace,omitempty"`
}

type Shortcut struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

type DayMinute struct {
	Day     string `yaml:"day"`
	Minutes int    `yaml:"minutes"`
}

// Seed is the initial content of a notes-lab workspace.
type Seed struct {
	CanvasItems []CanvasItem `yaml:"canvasItems"`
	Panels      []Panel      `yaml:"panels"`
	Tags        []Tag        `yaml:"tags"`
	Recordings  []Recording  `yaml:"recordings"`
	MindMap     MindMap      `yaml:"mindMap"`
	Decks       []Deck       `yaml:"decks"`
	StudyItems  []StudyItem  `yaml:"studyItems"`
	Topics      []Topic      `yaml:"topics"`
	RawData     []ItemRef    `yaml:"rawData"`
}

type CanvasItem struct {
	ID      string         `yaml:"id"`
	Kind    string         `yaml:"kind"`
	Title   string         `yaml:"title"`
	Content string         `yaml:"content"`
	Pos     viewport.Point `yaml:"pos"`
	Width   float64        `yaml:"width"`
	Height  float64        `yaml:"height"`
	Color   string         `yaml:"color"`
	Tags    []string       `yaml:"tags"`
}

type Panel struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	ActiveTab string `yaml:"activeTab"`
	Tabs      []Tab  `yaml:"tabs"`
}

type Tab struct {
	ID       string   `yaml:"id"`
	Kind     string   `yaml:"kind"`
	Title    string   `yaml:"title"`
	Color    string   `yaml:"color"`
	ParentID string   `yaml:"parentId"`
	Children []string `yaml:"children"`
	Tags     []string `yaml:"tags"`
}

type Tag struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
	Count int    `yaml:"count"`
}

type Recording struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	Seconds      int    `yaml:"seconds"`
	Transcript   string `yaml:"transcript"`
	LinkedNoteID string `yaml:"linkedNoteId"`
	AgeMinutes   int    `yaml:"ageMinutes"`
}

type MindMap struct {
	Nodes       []MindMapNode       `yaml:"nodes"`
	Connections []MindMapConnection `yaml:"connections"`
}

type MindMapNode struct {
	ID    string         `yaml:"id"`
	Label string         `yaml:"label"`
	Pos   viewport.Point `yaml:"pos"`
	Color string         `yaml:"color"`
}

type MindMapConnection struct {
	ID    string `yaml:"id"`
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Label string `yaml:"label"`
	Color string `yaml:"color"`
}

type Deck struct {
	ID    string       `yaml:"id"`
	Title string       `yaml:"title"`
	Cards []study.Card `yaml:"cards"`
}

// StudyItem is something the study-mode picker offers. Flashcard items point
// at a deck, voice items at a recording; the rest carry their own content.
type StudyItem struct {
	ID          string `yaml:"id"`
	Kind        string `yaml:"kind"`
	Title       string `yaml:"title"`
	Content     string `yaml:"content"`
	DeckID      string `yaml:"deckId"`
	RecordingID string `yaml:"recordingId"`
}

type Topic struct {
	Name  string    `yaml:"name"`
	Items []ItemRef `yaml:"items"`
}

// ItemRef is a sidebar entry.
type ItemRef struct {
	ID    string   `yaml:"id"`
	Kind  string   `yaml:"kind"`
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// Load reads a catalog file. An empty path yields the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: open")
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a catalog from r.
func Decode(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: read")
	}
	return Parse(data)
}

// Parse decodes YAML catalog data and checks it for dangling references.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "catalog: decode")
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Encode writes the catalog as YAML.
func (c *Catalog) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "catalog: encode")
	}
	return enc.Close()
}

// Folder returns the folder with id.
func (c *Catalog) Folder(id string) (Folder, bool) {
	for _, f := range c.Folders {
		if f.ID == id {
			return f, true
		}
	}
	return Folder{}, false
}

// FolderName resolves a folder id to its display name.
func (c *Catalog) FolderName(id string) string {
	if f, ok := c.Folder(id); ok {
		return f.Name
	}
	return UnknownFolderName
}

// SeedFor returns the workspace seed for a folder.
func (c *Catalog) SeedFor(folderID string) Seed {
	if f, ok := c.Folder(folderID); ok && f.Workspace != nil {
		return *f.Workspace
	}
	return c.Workspace
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool, len(c.Folders))
	for _, f := range c.Folders {
		if f.ID == "" {
			return errors.New("catalog: folder without id")
		}
		if seen[f.ID] {
			return errors.Errorf("catalog: duplicate folder %q", f.ID)
		}
		seen[f.ID] = true
		if f.Workspace != nil {
			if err := f.Workspace.validate(); err != nil {
				return errors.Wrapf(err, "folder %s", f.ID)
			}
		}
	}
	return c.Workspace.validate()
}

func (s *Seed) validate() error {
	decks := make(map[string]bool, len(s.Decks))
	for _, d := range s.Decks {
		decks[d.ID] = true
	}
	recordings := make(map[string]bool, len(s.Recordings))
	for _, r := range s.Recordings {
		recordings[r.ID] = true
	}
	for _, item := range s.StudyItems {
		if item.DeckID != "" && !decks[item.DeckID] {
			return errors.Errorf("catalog: study item %q references unknown deck %q", item.ID, item.DeckID)
		}
		if item.RecordingID != "" && !recordings[item.RecordingID] {
			return errors.Errorf("catalog: study item %q references unknown recording %q", item.ID, item.RecordingID)
		}
	}
	nodes := make(map[string]bool, len(s.MindMap.Nodes))
	for _, n := range s.MindMap.Nodes {
		nodes[n.ID] = true
	}
	for _, conn := range s.MindMap.Connections {
		if !nodes[conn.From] || !nodes[conn.To] {
			return errors.Errorf("catalog: connection %q has a dangling end", conn.ID)
		}
	}
	return nil
}
