package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"studyfortress/internal/workspace"
	"studyfortress/pkg/viewport"
)

func (h *LabHandler) addNode(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	l.ws.AddNode(viewport.Point{X: parseFloat(r.FormValue("x"), 0), Y: parseFloat(r.FormValue("y"), 0)})
	h.done(w, r, l, nil, workspace.EventMindMap)
}

// updateNode applies whichever of label, color, x and y were posted.
func (h *LabHandler) updateNode(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	var u workspace.NodeUpdate
	if r.Form.Has("label") {
		label := strings.TrimSpace(r.Form.Get("label"))
		u.Label = &label
	}
	if r.Form.Has("color") {
		color := r.Form.Get("color")
		u.Color = &color
	}
	if r.Form.Has("x") && r.Form.Has("y") {
		pos := viewport.Point{X: parseFloat(r.Form.Get("x"), 0), Y: parseFloat(r.Form.Get("y"), 0)}
		u.Pos = &pos
	}
	_, err := l.ws.UpdateNode(chi.URLParam(r, "node"), u)
	h.done(w, r, l, err, workspace.EventMindMap)
}

func (h *LabHandler) deleteNode(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	err := l.ws.DeleteNode(chi.URLParam(r, "node"))
	h.done(w, r, l, err, workspace.EventMindMap)
}

func (h *LabHandler) connect(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	_, err := l.ws.Connect(r.FormValue("from"), r.FormValue("to"))
	h.done(w, r, l, err, workspace.EventMindMap)
}
