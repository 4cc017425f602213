package handlers

import (
	"net/http"
	"time"

	"github.com/a-h/templ"

	"studyfortress/internal/workspace"
	"studyfortress/views/components"
)

// fragments lists the stream slots each workspace event refreshes.
var fragments = map[string][]string{
	workspace.EventCanvas:     {"canvas"},
	workspace.EventPanels:     {"panels"},
	workspace.EventTags:       {"sidebar", "panels", "canvas"},
	workspace.EventSidebar:    {"sidebar"},
	workspace.EventRecordings: {"recordings"},
	workspace.EventRecording:  {"recording"},
	workspace.EventMindMap:    {"mindmap"},
	workspace.EventStudy:      {"study"},
}

var allSlots = []string{"canvas", "panels", "sidebar", "recording", "recordings", "mindmap", "study"}

func slotComponent(p presenter, slot string) templ.Component {
	switch slot {
	case "canvas":
		return components.CanvasFragment(p.canvas())
	case "panels":
		return components.PanelsFragment(p.panels())
	case "sidebar":
		return components.SidebarFragment(p.sidebar("", nil))
	case "recording":
		return components.RecorderFragment(p.recorder())
	case "recordings":
		return components.RecordingsFragment(p.recordings())
	case "mindmap":
		return components.MindMapFragment(p.mindMap())
	case "study":
		return components.StudyFragment(p.study())
	}
	return nil
}

func (h *LabHandler) stream(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	hub := h.store.Broadcaster(l.user.ID, l.folder)
	if hub == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	send := func(slots []string) {
		p := h.present(l)
		for _, s := range slots {
			if c := slotComponent(p, s); c != nil {
				writeSSE(w, s, renderToString(r, c))
			}
		}
		flusher.Flush()
	}

	send(allSlots)
	// Work scheduled before this connection may still need the loop.
	if l.ws.Busy() {
		h.store.EnsureLoop(l.user.ID, l.folder)
	}

	keepAlive := time.NewTicker(h.opts.KeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-sub:
			if !ok {
				return
			}
			slots := merge(fragments[event], drain(sub)...)
			if len(slots) > 0 {
				send(slots)
			}
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

// drain collects the slots of events already queued so a burst renders once.
func drain(sub chan string) []string {
	var slots []string
	for {
		select {
		case event, ok := <-sub:
			if !ok {
				return slots
			}
			slots = append(slots, fragments[event]...)
		default:
			return slots
		}
	}
}

func merge(first []string, more ...string) []string {
	seen := make(map[string]bool, len(first)+len(more))
	var out []string
	for _, s := range append(append([]string(nil), first...), more...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
