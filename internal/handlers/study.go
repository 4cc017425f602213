package handlers

import (
	"net/http"

	"studyfortress/internal/workspace"
)

func (h *LabHandler) openStudy(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	l.ws.OpenStudy()
	h.done(w, r, l, nil, workspace.EventStudy)
}

func (h *LabHandler) selectStudyItem(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	err := l.ws.ToggleStudyItem(r.FormValue("item"))
	h.done(w, r, l, err, workspace.EventStudy)
}

func (h *LabHandler) setStudyMethod(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	err := l.ws.SetStudyMethod(workspace.StudyMethod(r.FormValue("method")))
	h.done(w, r, l, err, workspace.EventStudy)
}

func (h *LabHandler) startStudy(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	err := l.ws.StartStudy()
	h.done(w, r, l, err, workspace.EventStudy)
}

func (h *LabHandler) revealAnswer(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	l.ws.RevealAnswer()
	h.done(w, r, l, nil, workspace.EventStudy)
}

func (h *LabHandler) answer(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	correct := parseBool(r.FormValue("correct"))
	state := l.ws.AnswerStudy(correct)
	h.log.Debug("study answer", "folder", l.folder, "correct", correct, "state", state.String())
	h.done(w, r, l, nil, workspace.EventStudy)
}

func (h *LabHandler) exitStudy(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	l.ws.ExitStudy()
	h.done(w, r, l, nil, workspace.EventStudy)
}
