package workspace

import "studyfortress/pkg/study"

type StudyMethod string

const (
	MethodFlashcards StudyMethod = "flashcards"
	MethodWritten    StudyMethod = "written"
	MethodMultiple   StudyMethod = "multiple"
	MethodMatching   StudyMethod = "matching"
)

// StudyMethods lists the methods offered in the study setup, with labels.
var StudyMethods = []struct {
	Method StudyMethod
	Label  string
}{
	{MethodFlashcards, "Flashcards"},
	{MethodWritten, "Written Quiz"},
	{MethodMultiple, "Multiple Choice"},
	{MethodMatching, "Matching Game"},
}

// StudyOption is a study item as offered in the setup list.
type StudyOption struct {
	ID        string
	Kind      string
	Title     string
	Questions int
	Selected  bool
}

type StudySnapshot struct {
	Open     bool
	Options  []StudyOption
	Selected []string
	Method   StudyMethod
	State    study.State
	Card     study.Card
	HasCard  bool
	Revealed bool
	Position int
	Total    int
	Progress float64
}

// OpenStudy shows the study setup.
func (w *Workspace) OpenStudy() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.studyOpen = true
}

// ToggleStudyItem adds an item to the selection, or removes it if already
// selected. Selection order is study order.
func (w *Workspace) ToggleStudyItem(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.studyItemLocked(id); !ok {
		return ErrItemNotFound
	}
	for i, sel := range w.selected {
		if sel == id {
			w.selected = append(w.selected[:i], w.selected[i+1:]...)
			return nil
		}
	}
	w.selected = append(w.selected, id)
	return nil
}

func (w *Workspace) SetStudyMethod(m StudyMethod) error {
	for _, sm := range StudyMethods {
		if sm.Method == m {
			w.mu.Lock()
			w.method = m
			w.mu.Unlock()
			return nil
		}
	}
	return ErrUnknownMethod
}

// StartStudy begins a session over the selected items in selection order.
func (w *Workspace) StartStudy() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	sources := make([]study.Source, 0, len(w.selected))
	for _, id := range w.selected {
		if src, ok := w.sourceLocked(id); ok {
			sources = append(sources, src)
		}
	}
	if !w.session.Start(sources) {
		return ErrEmptySelection
	}
	w.studyOpen = true
	return nil
}

func (w *Workspace) RevealAnswer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.session.Reveal()
}

// AnswerStudy records an answer and moves to the next question.
func (w *Workspace) AnswerStudy(correct bool) study.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session.SubmitAnswer(correct)
}

// ExitStudy closes study mode. The selection is kept for next time.
func (w *Workspace) ExitStudy() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.session.Reset()
	w.studyOpen = false
}

func (w *Workspace) studyItemLocked(id string) (itemIndex int, ok bool) {
	for i, it := range w.studyItems {
		if it.ID == id {
			return i, true
		}
	}
	return -1, false
}

// sourceLocked turns a study item into a question source. Decks contribute
// their cards; everything else is studied as a single prompt.
func (w *Workspace) sourceLocked(id string) (study.Source, bool) {
	i, ok := w.studyItemLocked(id)
	if !ok {
		return nil, false
	}
	it := w.studyItems[i]
	if deck, ok := w.decks[it.DeckID]; ok && it.DeckID != "" {
		return study.Flashcards{Title: it.Title, Cards: append([]study.Card(nil), deck.Cards...)}, true
	}
	body := it.Content
	if it.RecordingID != "" {
		for _, r := range w.recordings {
			if r.ID == it.RecordingID && r.Transcript != "" {
				body = r.Transcript
				break
			}
		}
	}
	if body == "" {
		body = "Content for " + it.Title
	}
	return study.SingleItem{Title: "Study: " + it.Title, Body: body}, true
}

func (w *Workspace) studySnapshotLocked() StudySnapshot {
	selected := make(map[string]bool, len(w.selected))
	for _, id := range w.selected {
		selected[id] = true
	}
	opts := make([]StudyOption, 0, len(w.studyItems))
	for _, it := range w.studyItems {
		n := 0
		if src, ok := w.sourceLocked(it.ID); ok {
			n = src.QuestionCount()
		}
		opts = append(opts, StudyOption{
			ID:        it.ID,
			Kind:      it.Kind,
			Title:     it.Title,
			Questions: n,
			Selected:  selected[it.ID],
		})
	}
	card, has := w.session.CurrentQuestion()
	return StudySnapshot{
		Open:     w.studyOpen,
		Options:  opts,
		Selected: cloneStrings(w.selected),
		Method:   w.method,
		State:    w.session.State(),
		Card:     card,
		HasCard:  has,
		Revealed: w.session.Revealed(),
		Position: w.session.Position(),
		Total:    w.session.Total(),
		Progress: w.session.ProgressPercent(),
	}
}
