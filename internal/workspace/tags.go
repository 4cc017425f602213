package workspace

import (
	"strings"

	"studyfortress/internal/catalog"
)

type Tag struct {
	ID    string
	Name  string
	Color string
	Count int
}

// Entry is a sidebar row: a tab, note or resource that can be filtered.
type Entry struct {
	ID    string
	Kind  Kind
	Title string
	Tags  []string
}

// TopicEntries groups sidebar entries under a topic heading.
type TopicEntries struct {
	Name    string
	Entries []Entry
}

// HasTag reports whether the entry carries any of names.
func (e Entry) HasTag(names ...string) bool {
	for _, want := range names {
		for _, have := range e.Tags {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

// Filter keeps entries whose title contains query (case-insensitive) and,
// when selected is non-empty, that carry at least one selected tag.
func Filter(entries []Entry, query string, selected []string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if query != "" && !strings.Contains(strings.ToLower(e.Title), query) {
			continue
		}
		if len(selected) > 0 && !e.HasTag(selected...) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// AddTag labels a tab or canvas item. An existing tag with the same name,
// compared case-insensitively, is reused and its count goes up; otherwise a
// new tag is created.
func (w *Workspace) AddTag(itemID, name string) (Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Tag{}, ErrEmptyName
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	tabs := w.tabsByIDLocked(itemID)
	item := w.itemIndexLocked(itemID)
	if len(tabs) == 0 && item < 0 {
		return Tag{}, ErrItemNotFound
	}

	ti := w.tagIndexLocked(name)
	if ti < 0 {
		w.tags = append(w.tags, Tag{
			ID:    newID("tag"),
			Name:  name,
			Color: Palette[w.rng.Intn(len(Palette))],
		})
		ti = len(w.tags) - 1
	}
	tag := &w.tags[ti]

	added := false
	for _, t := range tabs {
		if !containsFold(t.Tags, tag.Name) {
			t.Tags = append(t.Tags, tag.Name)
			added = true
		}
	}
	if item >= 0 && !containsFold(w.items[item].Tags, tag.Name) {
		w.items[item].Tags = append(w.items[item].Tags, tag.Name)
		added = true
	}
	if added {
		tag.Count++
	}
	return *tag, nil
}

// RemoveTag takes a tag off a tab or canvas item. The tag's count never goes
// below zero.
func (w *Workspace) RemoveTag(itemID, name string) error {
	name = strings.TrimSpace(name)
	w.mu.Lock()
	defer w.mu.Unlock()

	tabs := w.tabsByIDLocked(itemID)
	item := w.itemIndexLocked(itemID)
	if len(tabs) == 0 && item < 0 {
		return ErrItemNotFound
	}

	removed := false
	for _, t := range tabs {
		var ok bool
		t.Tags, ok = removeFold(t.Tags, name)
		removed = removed || ok
	}
	if item >= 0 {
		var ok bool
		w.items[item].Tags, ok = removeFold(w.items[item].Tags, name)
		removed = removed || ok
	}
	if removed {
		if ti := w.tagIndexLocked(name); ti >= 0 && w.tags[ti].Count > 0 {
			w.tags[ti].Count--
		}
	}
	return nil
}

func (w *Workspace) tagIndexLocked(name string) int {
	for i := range w.tags {
		if strings.EqualFold(w.tags[i].Name, name) {
			return i
		}
	}
	return -1
}

// tabsByIDLocked returns every tab with id across all panels.
func (w *Workspace) tabsByIDLocked(id string) []*Tab {
	var out []*Tab
	for pi := range w.panels {
		p := &w.panels[pi]
		if i := p.tabIndex(id); i >= 0 {
			out = append(out, &p.Tabs[i])
		}
	}
	return out
}

// entriesLocked resolves sidebar refs to entries carrying live tags: a tab or
// canvas item with the same id overrides the seeded tags.
func (w *Workspace) entriesLocked(refs []catalog.ItemRef) []Entry {
	out := make([]Entry, 0, len(refs))
	for _, r := range refs {
		tags := r.Tags
		if tabs := w.tabsByIDLocked(r.ID); len(tabs) > 0 {
			tags = tabs[0].Tags
		} else if i := w.itemIndexLocked(r.ID); i >= 0 {
			tags = w.items[i].Tags
		}
		out = append(out, Entry{ID: r.ID, Kind: Kind(r.Kind), Title: r.Title, Tags: cloneStrings(tags)})
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func removeFold(list []string, s string) ([]string, bool) {
	out := list[:0]
	removed := false
	for _, v := range list {
		if strings.EqualFold(v, s) {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out, removed
}
