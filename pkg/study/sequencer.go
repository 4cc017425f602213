// Package study walks a selection of study sources as one ordered question
// sequence and reports progress through it.
package study

// Card is one question/answer pair.
type Card struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Source is a selectable unit that contributes questions to a session. It is
// implemented by Flashcards and SingleItem only.
type Source interface {
	// QuestionCount reports how many questions the source contributes.
	QuestionCount() int
	question(i int) Card
}

// Flashcards contributes one question per card, in card order.
type Flashcards struct {
	Title string
	Cards []Card
}

func (f Flashcards) QuestionCount() int { return len(f.Cards) }

func (f Flashcards) question(i int) Card { return f.Cards[i] }

// SingleItem is any non-deck source (note, mind map, voice item). It
// contributes exactly one question built from its title and body.
type SingleItem struct {
	Title string
	Body  string
}

func (s SingleItem) QuestionCount() int { return 1 }

func (s SingleItem) question(int) Card { return Card{Question: s.Title, Answer: s.Body} }

// State is the lifecycle phase of a Sequencer.
type State int

const (
	StateSetup State = iota
	StateActive
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateComplete:
		return "complete"
	default:
		return "setup"
	}
}

// TotalQuestions sums the question counts of sources.
func TotalQuestions(sources []Source) int {
	total := 0
	for _, src := range sources {
		if src == nil {
			continue
		}
		total += src.QuestionCount()
	}
	return total
}

// Sequencer is a caller-owned study session. The zero value is in StateSetup.
type Sequencer struct {
	sources  []Source
	total    int
	position int
	revealed bool
	state    State
}

// Start begins a session over sources. It refuses, leaving the sequencer
// untouched, when the sources contribute no questions at all. Start is also
// how a completed sequencer begins a new session.
func (q *Sequencer) Start(sources []Source) bool {
	total := TotalQuestions(sources)
	if total < 1 {
		return false
	}
	q.sources = append([]Source(nil), sources...)
	q.total = total
	q.position = 0
	q.revealed = false
	q.state = StateActive
	return true
}

// Reset discards the session and returns to StateSetup.
func (q *Sequencer) Reset() {
	*q = Sequencer{}
}

// Reveal shows the answer to the current question. Calling it again is a no-op.
func (q *Sequencer) Reveal() {
	if q.state != StateActive {
		return
	}
	q.revealed = true
}

// SubmitAnswer advances to the next question. Whether the answer was correct
// does not influence ordering. Answering the last question completes the
// session.
func (q *Sequencer) SubmitAnswer(bool) State {
	if q.state != StateActive {
		return q.state
	}
	q.position++
	q.revealed = false
	if q.position >= q.total {
		q.position = q.total
		q.state = StateComplete
	}
	return q.state
}

// CurrentQuestion resolves the current position against the sources in the
// order they were passed to Start.
func (q *Sequencer) CurrentQuestion() (Card, bool) {
	if q.state != StateActive {
		return Card{}, false
	}
	idx := q.position
	for _, src := range q.sources {
		if src == nil {
			continue
		}
		n := src.QuestionCount()
		if idx < n {
			return src.question(idx), true
		}
		idx -= n
	}
	return Card{}, false
}

// ProgressPercent is the share of questions already answered: 0 in setup and
// at the first question, 100 once complete.
func (q *Sequencer) ProgressPercent() float64 {
	switch q.state {
	case StateActive:
		return 100 * float64(q.position) / float64(q.total)
	case StateComplete:
		return 100
	default:
		return 0
	}
}

func (q *Sequencer) State() State   { return q.state }
func (q *Sequencer) Position() int  { return q.position }
func (q *Sequencer) Total() int     { return q.total }
func (q *Sequencer) Revealed() bool { return q.revealed }
