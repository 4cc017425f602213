package handlers

import (
	"net/http"

	"studyfortress/internal/workspace"
	"studyfortress/pkg/viewport"
	"studyfortress/views/components"
)

func (h *LabHandler) pan(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	l.ws.Pan(viewport.Point{X: parseFloat(r.FormValue("dx"), 0), Y: parseFloat(r.FormValue("dy"), 0)})
	h.done(w, r, l, nil, workspace.EventCanvas)
}

// zoom takes an explicit dir, or a raw wheel deltaY as dy.
func (h *LabHandler) zoom(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	dir := viewport.Direction(parseInt(r.FormValue("dir"), 0))
	if r.FormValue("dir") == "" {
		dir = viewport.WheelDirection(parseFloat(r.FormValue("dy"), 0))
	}
	l.ws.Zoom(dir)
	h.done(w, r, l, nil, workspace.EventCanvas)
}

func (h *LabHandler) grab(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	grab := viewport.Point{X: parseFloat(r.FormValue("gx"), 0), Y: parseFloat(r.FormValue("gy"), 0)}
	err := l.ws.BeginDrag(r.FormValue("item"), grab)
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// drag moves the grabbed item. The browser moves the element itself, so the
// answer is the placed position and no event is published until drop.
func (h *LabHandler) drag(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	item, ok := l.ws.DragTo(viewport.Point{X: parseFloat(r.FormValue("x"), 0), Y: parseFloat(r.FormValue("y"), 0)})
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, map[string]any{"id": item.ID, "x": item.Pos.X, "y": item.Pos.Y})
}

func (h *LabHandler) drop(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	l.ws.EndDrag()
	h.done(w, r, l, nil, workspace.EventCanvas)
}

func (h *LabHandler) organize(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	if err := l.ws.Organize(h.now()); err != nil {
		fail(w, r, h.log, err)
		return
	}
	h.store.EnsureLoop(l.user.ID, l.folder)
	h.done(w, r, l, nil, workspace.EventCanvas)
}

func (h *LabHandler) sidebarFragment(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid query", http.StatusBadRequest)
		return
	}
	data := h.present(l).sidebar(r.Form.Get("q"), r.Form["tag"])
	render(w, r, components.SidebarFragment(data))
}

func (h *LabHandler) setSidebarView(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	err := l.ws.SetSidebarView(workspace.SidebarView(r.FormValue("view")))
	h.done(w, r, l, err, workspace.EventSidebar)
}

func (h *LabHandler) toggleSidebar(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	l.ws.ToggleSidebar()
	h.done(w, r, l, nil, workspace.EventSidebar)
}
