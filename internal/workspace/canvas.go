package workspace

import (
	"time"

	"studyfortress/pkg/viewport"
)

// Viewport returns the canvas pan and zoom.
func (w *Workspace) Viewport() viewport.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.view
}

// Pan moves the canvas by a screen-space delta.
func (w *Workspace) Pan(delta viewport.Point) viewport.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.view = viewport.ApplyPan(delta, w.view)
	return w.view
}

// Zoom scales the canvas one wheel step.
func (w *Workspace) Zoom(dir viewport.Direction) viewport.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.view = viewport.ApplyZoom(dir, w.view)
	return w.view
}

// BeginDrag starts dragging an item. grab is the cursor position inside the
// item, in screen pixels.
func (w *Workspace) BeginDrag(itemID string, grab viewport.Point) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.itemIndexLocked(itemID) < 0 {
		return ErrItemNotFound
	}
	w.drag = dragState{itemID: itemID, grab: grab}
	return nil
}

// DragTo moves the dragged item under the cursor. It reports false when no
// drag is in progress.
func (w *Workspace) DragTo(screen viewport.Point) (CanvasItem, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.drag.itemID == "" {
		return CanvasItem{}, false
	}
	i := w.itemIndexLocked(w.drag.itemID)
	if i < 0 {
		w.drag = dragState{}
		return CanvasItem{}, false
	}
	w.items[i].Pos = viewport.PlaceItem(screen, w.drag.grab, w.view)
	return w.items[i], true
}

// EndDrag drops the dragged item where it is.
func (w *Workspace) EndDrag() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.drag = dragState{}
}

// Organize schedules a re-layout of the canvas. The organizer runs once the
// organize delay has passed.
func (w *Workspace) Organize(now time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.organizing.Pending() {
		return ErrBusy
	}
	w.organizing.Arm(now, w.timing.OrganizeDelay)
	return nil
}

func (w *Workspace) applyOrganizerLocked() {
	positions := w.organizer.Arrange(append([]CanvasItem(nil), w.items...))
	for i := range w.items {
		if i < len(positions) {
			w.items[i].Pos = positions[i]
		}
	}
}

func (w *Workspace) SetViewMode(m ViewMode) error {
	if m != ViewCanvas && m != ViewTabs {
		return ErrInvalidOption
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.viewMode = m
	return nil
}

func (w *Workspace) SetSidebarView(v SidebarView) error {
	switch v {
	case SidebarTopics, SidebarRawData, SidebarTags:
	default:
		return ErrInvalidOption
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sidebar = v
	return nil
}

// ToggleSidebar collapses or expands the sidebar and returns the new state.
func (w *Workspace) ToggleSidebar() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sidebarCollapsed = !w.sidebarCollapsed
	return w.sidebarCollapsed
}

func (w *Workspace) itemIndexLocked(id string) int {
	for i := range w.items {
		if w.items[i].ID == id {
			return i
		}
	}
	return -1
}
