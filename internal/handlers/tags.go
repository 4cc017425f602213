package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"studyfortress/internal/workspace"
)

var tagEvents = []string{workspace.EventTags, workspace.EventPanels, workspace.EventCanvas}

func (h *LabHandler) addTag(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	_, err := l.ws.AddTag(chi.URLParam(r, "item"), r.FormValue("name"))
	h.done(w, r, l, err, tagEvents...)
}

func (h *LabHandler) removeTag(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	err := l.ws.RemoveTag(chi.URLParam(r, "item"), r.FormValue("name"))
	h.done(w, r, l, err, tagEvents...)
}
