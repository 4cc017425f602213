package workspace

import (
	"fmt"
	"strings"

	"studyfortress/internal/pdfdoc"
	"studyfortress/pkg/viewport"
)

type TabPosition string

const (
	PositionTop    TabPosition = "top"
	PositionBottom TabPosition = "bottom"
	PositionLeft   TabPosition = "left"
	PositionRight  TabPosition = "right"
)

// ParsePosition maps form input to a TabPosition, defaulting to top.
func ParsePosition(s string) TabPosition {
	switch TabPosition(strings.ToLower(s)) {
	case PositionBottom:
		return PositionBottom
	case PositionLeft:
		return PositionLeft
	case PositionRight:
		return PositionRight
	default:
		return PositionTop
	}
}

type Tab struct {
	ID        string
	Kind      Kind
	Title     string
	Color     string
	ParentID  string
	Children  []string
	Position  TabPosition
	Minimized bool
	Tags      []string
}

// Panel is a column of tabs. Width and X are percentages of the lab width.
type Panel struct {
	ID        string
	Title     string
	Tabs      []Tab
	ActiveTab string
	Width     float64
	Height    float64
	X         float64
	Y         float64
	ShowIcons bool
}

func (p Panel) clone() Panel {
	out := p
	out.Tabs = make([]Tab, len(p.Tabs))
	for i, t := range p.Tabs {
		out.Tabs[i] = t
		out.Tabs[i].Children = cloneStrings(t.Children)
		out.Tabs[i].Tags = cloneStrings(t.Tags)
	}
	return out
}

// Active returns the panel's active tab.
func (p Panel) Active() (Tab, bool) {
	for _, t := range p.Tabs {
		if t.ID == p.ActiveTab {
			return t, true
		}
	}
	return Tab{}, false
}

// AddTab appends a tab of kind to a panel and makes it active. A matching
// item is placed on the canvas at a random spot.
func (w *Workspace) AddTab(panelID string, kind Kind, pos TabPosition) (Tab, error) {
	info, ok := LookupKind(kind)
	if !ok {
		return Tab{}, ErrUnknownKind
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	p := w.panelLocked(panelID)
	if p == nil {
		return Tab{}, ErrPanelNotFound
	}
	tab := w.addTabLocked(p, info, info.Label, pos)
	w.items = append(w.items, CanvasItem{
		ID:      "canvas-" + tab.ID,
		Kind:    kind,
		Title:   info.Label,
		Content: "Content for " + info.Label,
		Pos:     viewport.Point{X: w.rng.Float64()*200 + 100, Y: w.rng.Float64()*200 + 100},
		Width:   280,
		Height:  200,
		Color:   info.Color,
	})
	return tab, nil
}

func (w *Workspace) addTabLocked(p *Panel, info KindInfo, title string, pos TabPosition) Tab {
	tab := Tab{
		ID:       newID(string(info.Kind)),
		Kind:     info.Kind,
		Title:    title,
		Color:    info.Color,
		Position: pos,
	}
	p.ShowIcons = len(p.Tabs) >= 4
	p.Tabs = append(p.Tabs, tab)
	p.ActiveTab = tab.ID
	return tab
}

// AttachPDF opens an uploaded document as a new pdf tab.
func (w *Workspace) AttachPDF(panelID string, doc pdfdoc.Info) (Tab, error) {
	info, _ := LookupKind(KindPDF)
	w.mu.Lock()
	defer w.mu.Unlock()
	p := w.panelLocked(panelID)
	if p == nil {
		return Tab{}, ErrPanelNotFound
	}
	tab := w.addTabLocked(p, info, doc.Title(), PositionTop)
	w.items = append(w.items, CanvasItem{
		ID:      "canvas-" + tab.ID,
		Kind:    KindPDF,
		Title:   tab.Title,
		Content: fmt.Sprintf("%d pages, %.0f x %.0f pt", doc.Pages, doc.Width, doc.Height),
		Pos:     viewport.Point{X: w.rng.Float64()*200 + 100, Y: w.rng.Float64()*200 + 100},
		Width:   280,
		Height:  200,
		Color:   info.Color,
	})
	return tab, nil
}

// AddPanel adds an empty panel on the right. Every panel, old and new, is
// set to half width.
func (w *Workspace) AddPanel() Panel {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.panels {
		w.panels[i].Width = 50
	}
	p := Panel{
		ID:     newID("panel"),
		Title:  fmt.Sprintf("Panel %d", len(w.panels)+1),
		Width:  50,
		Height: 100,
		X:      50,
	}
	w.panels = append(w.panels, p)
	return p.clone()
}

// RemoveTab closes a tab. When the active tab is closed the first remaining
// tab becomes active.
func (w *Workspace) RemoveTab(panelID, tabID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	p := w.panelLocked(panelID)
	if p == nil {
		return ErrPanelNotFound
	}
	i := p.tabIndex(tabID)
	if i < 0 {
		return ErrTabNotFound
	}
	p.Tabs = append(p.Tabs[:i], p.Tabs[i+1:]...)
	switch {
	case len(p.Tabs) == 0:
		p.ActiveTab = ""
	case p.ActiveTab == tabID:
		p.ActiveTab = p.Tabs[0].ID
	}
	p.ShowIcons = len(p.Tabs) >= 4
	return nil
}

func (w *Workspace) RenameTab(panelID, tabID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyName
	}
	return w.updateTab(panelID, tabID, func(t *Tab) { t.Title = title })
}

func (w *Workspace) RecolorTab(panelID, tabID, color string) error {
	color = strings.TrimSpace(color)
	if color == "" {
		return ErrInvalidOption
	}
	return w.updateTab(panelID, tabID, func(t *Tab) { t.Color = color })
}

// ToggleMinimized folds or unfolds a tab.
func (w *Workspace) ToggleMinimized(panelID, tabID string) error {
	return w.updateTab(panelID, tabID, func(t *Tab) { t.Minimized = !t.Minimized })
}

func (w *Workspace) updateTab(panelID, tabID string, fn func(*Tab)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	p := w.panelLocked(panelID)
	if p == nil {
		return ErrPanelNotFound
	}
	i := p.tabIndex(tabID)
	if i < 0 {
		return ErrTabNotFound
	}
	fn(&p.Tabs[i])
	return nil
}

// DuplicateTab appends a copy of a tab titled "<title> (Copy)". The active
// tab does not change.
func (w *Workspace) DuplicateTab(panelID, tabID string) (Tab, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p := w.panelLocked(panelID)
	if p == nil {
		return Tab{}, ErrPanelNotFound
	}
	i := p.tabIndex(tabID)
	if i < 0 {
		return Tab{}, ErrTabNotFound
	}
	src := p.Tabs[i]
	dup := src
	dup.ID = newID(src.ID + "-copy")
	dup.Title = src.Title + " (Copy)"
	dup.Children = cloneStrings(src.Children)
	dup.Tags = cloneStrings(src.Tags)
	p.Tabs = append(p.Tabs, dup)
	return dup, nil
}

// AddNestedTab adds a child tab under parentID.
func (w *Workspace) AddNestedTab(panelID, parentID string, kind Kind) (Tab, error) {
	info, ok := LookupKind(kind)
	if !ok {
		return Tab{}, ErrUnknownKind
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	p := w.panelLocked(panelID)
	if p == nil {
		return Tab{}, ErrPanelNotFound
	}
	i := p.tabIndex(parentID)
	if i < 0 {
		return Tab{}, ErrTabNotFound
	}
	child := Tab{
		ID:       newID(parentID + "-" + string(kind)),
		Kind:     kind,
		Title:    info.Label,
		Color:    info.Color,
		ParentID: parentID,
		Position: PositionTop,
	}
	p.Tabs[i].Children = append(p.Tabs[i].Children, child.ID)
	p.Tabs = append(p.Tabs, child)
	return child, nil
}

func (w *Workspace) SelectTab(panelID, tabID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	p := w.panelLocked(panelID)
	if p == nil {
		return ErrPanelNotFound
	}
	if p.tabIndex(tabID) < 0 {
		return ErrTabNotFound
	}
	p.ActiveTab = tabID
	return nil
}

func (w *Workspace) panelLocked(id string) *Panel {
	for i := range w.panels {
		if w.panels[i].ID == id {
			return &w.panels[i]
		}
	}
	return nil
}

func (p *Panel) tabIndex(id string) int {
	for i := range p.Tabs {
		if p.Tabs[i].ID == id {
			return i
		}
	}
	return -1
}
