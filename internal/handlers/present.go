package handlers

import (
	"fmt"
	"math"
	"strings"
	"time"

	"studyfortress/internal/viewmodel"
	"studyfortress/internal/workspace"
	"studyfortress/pkg/study"
)

const (
	defaultTagColor = "bg-gray-400"
	nodeHalfWidth   = 40
	nodeHalfHeight  = 20
)

// presenter turns one workspace snapshot into view models.
type presenter struct {
	snap      workspace.Snapshot
	base      string
	now       time.Time
	tagColors map[string]string
}

func newPresenter(snap workspace.Snapshot, base string, now time.Time) presenter {
	colors := make(map[string]string, len(snap.Tags))
	for _, t := range snap.Tags {
		colors[strings.ToLower(t.Name)] = t.Color
	}
	return presenter{snap: snap, base: base, now: now, tagColors: colors}
}

func (p presenter) chips(names []string) []viewmodel.TagChip {
	chips := make([]viewmodel.TagChip, 0, len(names))
	for _, n := range names {
		color, ok := p.tagColors[strings.ToLower(n)]
		if !ok {
			color = defaultTagColor
		}
		chips = append(chips, viewmodel.TagChip{Name: n, Color: color})
	}
	return chips
}

func (p presenter) lab(title, email string) viewmodel.LabPage {
	return viewmodel.LabPage{
		Title:      title,
		UserEmail:  email,
		FolderID:   p.snap.FolderID,
		FolderName: p.snap.FolderName,
		Base:       p.base,
		ViewMode:   string(p.snap.ViewMode),
		Canvas:     p.canvas(),
		Panels:     p.panels(),
		Sidebar:    p.sidebar("", nil),
		Recorder:   p.recorder(),
		Recordings: p.recordings(),
		MindMap:    p.mindMap(),
		Study:      p.study(),
	}
}

func (p presenter) canvas() viewmodel.CanvasFragment {
	v := p.snap.Viewport
	data := viewmodel.CanvasFragment{
		Base:         p.base,
		ViewMode:     string(p.snap.ViewMode),
		OffsetX:      v.Offset.X,
		OffsetY:      v.Offset.Y,
		Scale:        v.Scale,
		ScalePercent: int(math.Round(v.Scale * 100)),
		Organizing:   p.snap.Organizing,
	}
	for _, it := range p.snap.Items {
		data.Items = append(data.Items, viewmodel.CanvasCard{
			ID:       it.ID,
			Kind:     string(it.Kind),
			Title:    it.Title,
			Content:  it.Content,
			Color:    it.Color,
			X:        it.Pos.X,
			Y:        it.Pos.Y,
			Width:    it.Width,
			Height:   it.Height,
			Tags:     p.chips(it.Tags),
			Dragging: it.ID == p.snap.Dragging,
		})
	}
	return data
}

func (p presenter) panels() viewmodel.PanelsFragment {
	data := viewmodel.PanelsFragment{Base: p.base, Palette: workspace.Palette}
	for _, k := range workspace.Kinds() {
		data.Kinds = append(data.Kinds, viewmodel.KindOption{Kind: string(k.Kind), Label: k.Label, Color: k.Color})
	}
	for _, panel := range p.snap.Panels {
		parents := make(map[string]string, len(panel.Tabs))
		for _, t := range panel.Tabs {
			parents[t.ID] = t.ParentID
		}
		view := viewmodel.PanelView{
			ID:        panel.ID,
			Title:     panel.Title,
			Width:     panel.Width,
			ShowIcons: panel.ShowIcons,
			ActiveID:  panel.ActiveTab,
		}
		for _, t := range panel.Tabs {
			tv := viewmodel.TabView{
				ID:        t.ID,
				Kind:      string(t.Kind),
				Title:     t.Title,
				Color:     t.Color,
				ParentID:  t.ParentID,
				Depth:     tabDepth(parents, t.ID),
				Children:  len(t.Children),
				IsActive:  t.ID == panel.ActiveTab,
				Minimized: t.Minimized,
				Tags:      p.chips(t.Tags),
			}
			if tv.IsActive {
				view.Active = tv
				view.HasActive = true
			}
			view.Tabs = append(view.Tabs, tv)
		}
		data.Panels = append(data.Panels, view)
	}
	return data
}

// tabDepth counts ancestors. A broken parent chain stops the walk.
func tabDepth(parents map[string]string, id string) int {
	depth := 0
	for cur := parents[id]; cur != "" && depth < len(parents); cur = parents[cur] {
		depth++
	}
	return depth
}

func (p presenter) sidebar(query string, selected []string) viewmodel.SidebarFragment {
	data := viewmodel.SidebarFragment{
		Base:         p.base,
		View:         string(p.snap.Sidebar),
		Collapsed:    p.snap.SidebarCollapsed,
		Query:        query,
		SelectedTags: selected,
	}
	for _, topic := range p.snap.Topics {
		entries := workspace.Filter(topic.Entries, query, selected)
		if len(entries) == 0 && (query != "" || len(selected) > 0) {
			continue
		}
		data.Topics = append(data.Topics, viewmodel.TopicView{Name: topic.Name, Entries: p.entries(entries)})
	}
	data.RawData = p.entries(workspace.Filter(p.snap.RawData, query, selected))
	for _, t := range p.snap.Tags {
		sel := false
		for _, s := range selected {
			if strings.EqualFold(s, t.Name) {
				sel = true
				break
			}
		}
		data.Tags = append(data.Tags, viewmodel.TagView{ID: t.ID, Name: t.Name, Color: t.Color, Count: t.Count, Selected: sel})
	}
	return data
}

func (p presenter) entries(in []workspace.Entry) []viewmodel.EntryView {
	out := make([]viewmodel.EntryView, 0, len(in))
	for _, e := range in {
		out = append(out, viewmodel.EntryView{ID: e.ID, Kind: string(e.Kind), Title: e.Title, Tags: p.chips(e.Tags)})
	}
	return out
}

func (p presenter) recorder() viewmodel.RecorderFragment {
	return viewmodel.RecorderFragment{
		Base:         p.base,
		Recording:    p.snap.Recording,
		Transcribing: p.snap.Transcribing,
		Clock:        workspace.FormatClock(p.snap.RecordingSeconds),
	}
}

func (p presenter) recordings() viewmodel.RecordingsFragment {
	titles := make(map[string]string)
	for _, panel := range p.snap.Panels {
		for _, t := range panel.Tabs {
			titles[t.ID] = t.Title
		}
	}
	data := viewmodel.RecordingsFragment{Base: p.base}
	for _, r := range p.snap.Recordings {
		linked := titles[r.LinkedNoteID]
		if linked == "" {
			linked = r.LinkedNoteID
		}
		data.Recordings = append(data.Recordings, viewmodel.RecordingView{
			ID:         r.ID,
			Title:      r.Title,
			Duration:   workspace.FormatClock(r.Seconds),
			Transcript: r.Transcript,
			LinkedNote: linked,
			Age:        formatAge(p.now.Sub(r.CreatedAt)),
			Playing:    r.ID == p.snap.PlayingID,
		})
	}
	return data
}

func (p presenter) mindMap() viewmodel.MindMapFragment {
	data := viewmodel.MindMapFragment{Base: p.base}
	pos := make(map[string]workspace.Node, len(p.snap.Nodes))
	for _, n := range p.snap.Nodes {
		pos[n.ID] = n
		data.Nodes = append(data.Nodes, viewmodel.NodeView{ID: n.ID, Label: n.Label, Color: n.Color, X: n.Pos.X, Y: n.Pos.Y})
	}
	for _, c := range p.snap.Connections {
		from, ok1 := pos[c.From]
		to, ok2 := pos[c.To]
		if !ok1 || !ok2 {
			continue
		}
		data.Connections = append(data.Connections, viewmodel.ConnectionView{
			ID:    c.ID,
			Label: c.Label,
			Color: c.Color,
			X1:    from.Pos.X + nodeHalfWidth,
			Y1:    from.Pos.Y + nodeHalfHeight,
			X2:    to.Pos.X + nodeHalfWidth,
			Y2:    to.Pos.Y + nodeHalfHeight,
		})
	}
	return data
}

func (p presenter) study() viewmodel.StudyFragment {
	s := p.snap.Study
	data := viewmodel.StudyFragment{
		Base:     p.base,
		Open:     s.Open,
		Step:     s.State.String(),
		CanStart: len(s.Selected) > 0,
		Revealed: s.Revealed,
		Total:    s.Total,
		Progress: int(s.Progress),
	}
	for _, o := range s.Options {
		data.Options = append(data.Options, viewmodel.StudyOption{
			ID:        o.ID,
			Kind:      o.Kind,
			Title:     o.Title,
			Questions: o.Questions,
			Selected:  o.Selected,
		})
	}
	for _, m := range workspace.StudyMethods {
		data.Methods = append(data.Methods, viewmodel.MethodOption{
			Method:   string(m.Method),
			Label:    m.Label,
			Selected: m.Method == s.Method,
		})
	}
	if s.State == study.StateActive && s.HasCard {
		data.Question = s.Card.Question
		data.Answer = s.Card.Answer
		data.Number = s.Position + 1
	}
	return data
}

func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}

func formatStudyTime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
