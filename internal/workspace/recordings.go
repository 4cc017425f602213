package workspace

import (
	"fmt"
	"time"
)

type Recording struct {
	ID           string
	Title        string
	Seconds      int
	Transcript   string
	LinkedNoteID string
	CreatedAt    time.Time
}

// StartRecording starts the recording clock.
func (w *Workspace) StartRecording(now time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.recorder.Running() {
		return ErrAlreadyRecording
	}
	if w.transcribing.Pending() {
		return ErrBusy
	}
	w.recordingID = newID("rec")
	w.recorder.Start(now)
	return nil
}

// StopRecording freezes the recording length and hands it to the
// transcriber. The recording shows up once transcription finishes.
func (w *Workspace) StopRecording(now time.Time) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.recorder.Running() {
		return 0, ErrNotRecording
	}
	w.recorder.Stop(now)
	w.pendingSecs = w.recorder.Seconds(now)
	w.transcribing.Arm(now, w.timing.TranscribeDelay)
	return w.pendingSecs, nil
}

func (w *Workspace) finishTranscriptionLocked(now time.Time) {
	title := fmt.Sprintf("Recording %d", len(w.recordings)+1)
	id := w.recordingID
	if id == "" {
		id = newID("rec")
	}
	linked := ""
	if len(w.panels) > 0 {
		linked = w.panels[0].ActiveTab
	}
	w.recordings = append(w.recordings, Recording{
		ID:           id,
		Title:        title,
		Seconds:      w.pendingSecs,
		Transcript:   w.transcriber.Transcribe(title, w.pendingSecs),
		LinkedNoteID: linked,
		CreatedAt:    now,
	})
	w.recorder.Reset()
	w.recordingID = ""
	w.pendingSecs = 0
}

// PlayRecording marks a recording as playing for the playback duration.
func (w *Workspace) PlayRecording(id string, now time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	found := false
	for _, r := range w.recordings {
		if r.ID == id {
			found = true
			break
		}
	}
	if !found {
		return ErrRecordingNotFound
	}
	w.playingID = id
	w.playing.Arm(now, w.timing.PlaybackDuration)
	return nil
}

// Recording returns a recording by id.
func (w *Workspace) Recording(id string) (Recording, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, r := range w.recordings {
		if r.ID == id {
			return r, true
		}
	}
	return Recording{}, false
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
