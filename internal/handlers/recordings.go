package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"studyfortress/internal/workspace"
)

func (h *LabHandler) startRecording(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	if err := l.ws.StartRecording(h.now()); err != nil {
		fail(w, r, h.log, err)
		return
	}
	h.store.EnsureLoop(l.user.ID, l.folder)
	h.done(w, r, l, nil, workspace.EventRecording)
}

func (h *LabHandler) stopRecording(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	secs, err := l.ws.StopRecording(h.now())
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	h.log.Debug("recording stopped", "folder", l.folder, "seconds", secs)
	h.store.EnsureLoop(l.user.ID, l.folder)
	h.done(w, r, l, nil, workspace.EventRecording)
}

func (h *LabHandler) playRecording(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	if err := l.ws.PlayRecording(chi.URLParam(r, "rec"), h.now()); err != nil {
		fail(w, r, h.log, err)
		return
	}
	h.store.EnsureLoop(l.user.ID, l.folder)
	h.done(w, r, l, nil, workspace.EventRecordings)
}
