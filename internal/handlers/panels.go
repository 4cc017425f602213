package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"studyfortress/internal/pdfdoc"
	"studyfortress/internal/workspace"
)

// Tab changes show up on both the panels view and the canvas.
var tabEvents = []string{workspace.EventPanels, workspace.EventCanvas, workspace.EventSidebar}

func tabParams(r *http.Request) (panelID, tabID string) {
	return chi.URLParam(r, "panel"), chi.URLParam(r, "tab")
}

func (h *LabHandler) addPanel(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	l.ws.AddPanel()
	h.done(w, r, l, nil, workspace.EventPanels)
}

func (h *LabHandler) addTab(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	panelID, _ := tabParams(r)
	_, err := l.ws.AddTab(panelID, workspace.Kind(r.FormValue("kind")), workspace.ParsePosition(r.FormValue("position")))
	h.done(w, r, l, err, tabEvents...)
}

func (h *LabHandler) selectTab(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	err := l.ws.SelectTab(tabParams(r))
	h.done(w, r, l, err, workspace.EventPanels)
}

func (h *LabHandler) removeTab(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	err := l.ws.RemoveTab(tabParams(r))
	h.done(w, r, l, err, tabEvents...)
}

func (h *LabHandler) renameTab(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	panelID, tabID := tabParams(r)
	err := l.ws.RenameTab(panelID, tabID, r.FormValue("title"))
	h.done(w, r, l, err, tabEvents...)
}

func (h *LabHandler) recolorTab(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	panelID, tabID := tabParams(r)
	err := l.ws.RecolorTab(panelID, tabID, r.FormValue("color"))
	h.done(w, r, l, err, workspace.EventPanels)
}

func (h *LabHandler) duplicateTab(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	_, err := l.ws.DuplicateTab(tabParams(r))
	h.done(w, r, l, err, tabEvents...)
}

func (h *LabHandler) minimizeTab(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	err := l.ws.ToggleMinimized(tabParams(r))
	h.done(w, r, l, err, workspace.EventPanels)
}

func (h *LabHandler) nestTab(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	panelID, tabID := tabParams(r)
	_, err := l.ws.AddNestedTab(panelID, tabID, workspace.Kind(r.FormValue("kind")))
	h.done(w, r, l, err, tabEvents...)
}

// uploadPDF inspects an uploaded document and opens it as a tab. Without a
// panel field it goes to the first panel.
func (h *LabHandler) uploadPDF(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUpload)
	if err := r.ParseMultipartForm(h.opts.MaxUpload); err != nil {
		http.Error(w, "upload too large or malformed", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	info, err := pdfdoc.Inspect(header.Filename, file)
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	panelID := r.FormValue("panel")
	if panelID == "" {
		if panels := l.ws.Snapshot(h.now()).Panels; len(panels) > 0 {
			panelID = panels[0].ID
		}
	}
	_, err = l.ws.AttachPDF(panelID, info)
	if err == nil {
		h.log.Info("pdf attached", "folder", l.folder, "file", header.Filename, "pages", info.Pages)
	}
	h.done(w, r, l, err, tabEvents...)
}
