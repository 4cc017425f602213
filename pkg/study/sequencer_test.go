package study

import "testing"

func deck(cards ...string) Flashcards {
	f := Flashcards{Title: "deck"}
	for i := 0; i+1 < len(cards); i += 2 {
		f.Cards = append(f.Cards, Card{Question: cards[i], Answer: cards[i+1]})
	}
	return f
}

func TestSequencer_ZeroValueIsSetup(t *testing.T) {
	var q Sequencer
	if q.State() != StateSetup {
		t.Errorf("State %v, want setup", q.State())
	}
	if _, ok := q.CurrentQuestion(); ok {
		t.Error("CurrentQuestion should be none in setup")
	}
	if got := q.ProgressPercent(); got != 0 {
		t.Errorf("ProgressPercent %v, want 0", got)
	}
}

func TestSequencer_StartEmpty(t *testing.T) {
	var q Sequencer
	if q.Start(nil) {
		t.Error("Start(nil) should be refused")
	}
	if q.Start([]Source{}) {
		t.Error("Start([]) should be refused")
	}
	if q.State() != StateSetup {
		t.Errorf("State %v, want setup", q.State())
	}
	if _, ok := q.CurrentQuestion(); ok {
		t.Error("CurrentQuestion should be none after refused start")
	}
}

func TestSequencer_StartZeroCardDeck(t *testing.T) {
	var q Sequencer
	if q.Start([]Source{Flashcards{Title: "empty"}}) {
		t.Error("a deck with no cards should not start a session")
	}
	if q.State() != StateSetup {
		t.Errorf("State %v, want setup", q.State())
	}
}

func TestSequencer_RefusedStartKeepsSession(t *testing.T) {
	var q Sequencer
	q.Start([]Source{deck("Q1", "A1", "Q2", "A2")})
	q.SubmitAnswer(true)
	if q.Start(nil) {
		t.Fatal("Start(nil) should be refused")
	}
	if q.State() != StateActive || q.Position() != 1 {
		t.Errorf("refused start changed session: state=%v position=%d", q.State(), q.Position())
	}
}

func TestSequencer_TwoCardScenario(t *testing.T) {
	var q Sequencer
	if !q.Start([]Source{deck("Q1", "A1", "Q2", "A2")}) {
		t.Fatal("Start refused")
	}
	card, ok := q.CurrentQuestion()
	if !ok || card != (Card{Question: "Q1", Answer: "A1"}) {
		t.Fatalf("CurrentQuestion %v %v, want Q1/A1", card, ok)
	}

	q.SubmitAnswer(true)
	card, ok = q.CurrentQuestion()
	if !ok || card != (Card{Question: "Q2", Answer: "A2"}) {
		t.Fatalf("CurrentQuestion %v %v, want Q2/A2", card, ok)
	}
	if got := q.ProgressPercent(); got != 50 {
		t.Errorf("ProgressPercent %v, want 50", got)
	}

	if st := q.SubmitAnswer(false); st != StateComplete {
		t.Errorf("SubmitAnswer returned %v, want complete", st)
	}
	if q.State() != StateComplete {
		t.Errorf("State %v, want complete", q.State())
	}
	if got := q.ProgressPercent(); got != 100 {
		t.Errorf("ProgressPercent %v, want 100", got)
	}
	if _, ok := q.CurrentQuestion(); ok {
		t.Error("no question should be served once complete")
	}
}

func TestSequencer_MixedSourcesProgress(t *testing.T) {
	var q Sequencer
	sources := []Source{
		deck("Q1", "A1", "Q2", "A2", "Q3", "A3"),
		SingleItem{Title: "Study: Cell Structure", Body: "notes"},
	}
	if got := TotalQuestions(sources); got != 4 {
		t.Fatalf("TotalQuestions %d, want 4", got)
	}
	if !q.Start(sources) {
		t.Fatal("Start refused")
	}
	if q.Total() != 4 {
		t.Errorf("Total %d, want 4", q.Total())
	}

	want := []float64{25, 50, 75, 100}
	for i, w := range want {
		q.SubmitAnswer(i%2 == 0)
		if got := q.ProgressPercent(); got != w {
			t.Errorf("after answer %d ProgressPercent %v, want %v", i+1, got, w)
		}
	}
	if q.State() != StateComplete {
		t.Errorf("State %v, want complete", q.State())
	}
}

func TestSequencer_OrderIsSourceThenCard(t *testing.T) {
	var q Sequencer
	q.Start([]Source{
		SingleItem{Title: "note", Body: "n"},
		deck("a", "1", "b", "2"),
		Flashcards{},
		SingleItem{Title: "voice", Body: "v"},
	})
	var got []string
	for q.State() == StateActive {
		card, ok := q.CurrentQuestion()
		if !ok {
			t.Fatal("active sequencer returned no question")
		}
		got = append(got, card.Question)
		q.SubmitAnswer(true)
	}
	want := []string{"note", "a", "b", "voice"}
	if len(got) != len(want) {
		t.Fatalf("walked %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("question %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSequencer_SingleQuestionCompletesImmediately(t *testing.T) {
	var q Sequencer
	q.Start([]Source{SingleItem{Title: "only", Body: "one"}})
	if q.ProgressPercent() != 0 {
		t.Errorf("ProgressPercent %v, want 0 before answering", q.ProgressPercent())
	}
	if st := q.SubmitAnswer(true); st != StateComplete {
		t.Errorf("state %v, want complete", st)
	}
}

func TestSequencer_RevealIdempotent(t *testing.T) {
	var q Sequencer
	q.Start([]Source{deck("Q1", "A1", "Q2", "A2")})
	q.Reveal()
	q.Reveal()
	if !q.Revealed() {
		t.Error("Revealed should be true")
	}
	if q.Position() != 0 || q.State() != StateActive {
		t.Error("Reveal changed position or state")
	}
	q.SubmitAnswer(true)
	if q.Revealed() {
		t.Error("SubmitAnswer should reset revealed")
	}
}

func TestSequencer_RevealOutsideActive(t *testing.T) {
	var q Sequencer
	q.Reveal()
	if q.Revealed() {
		t.Error("Reveal in setup should be ignored")
	}
}

func TestSequencer_SubmitOutsideActive(t *testing.T) {
	var q Sequencer
	if st := q.SubmitAnswer(true); st != StateSetup {
		t.Errorf("state %v, want setup", st)
	}
	q.Start([]Source{SingleItem{Title: "x"}})
	q.SubmitAnswer(true)
	q.SubmitAnswer(true)
	if q.Position() != 1 {
		t.Errorf("position %d, want 1 after extra submit", q.Position())
	}
}

func TestSequencer_StartCopiesSources(t *testing.T) {
	var q Sequencer
	sources := []Source{SingleItem{Title: "first"}, SingleItem{Title: "second"}}
	q.Start(sources)
	sources[0] = SingleItem{Title: "changed"}
	card, _ := q.CurrentQuestion()
	if card.Question != "first" {
		t.Errorf("question %q, want first", card.Question)
	}
}

func TestSequencer_RestartAfterComplete(t *testing.T) {
	var q Sequencer
	q.Start([]Source{SingleItem{Title: "x"}})
	q.SubmitAnswer(true)
	if !q.Start([]Source{deck("Q", "A")}) {
		t.Fatal("Start after complete refused")
	}
	if q.State() != StateActive || q.Position() != 0 {
		t.Errorf("state=%v position=%d, want active/0", q.State(), q.Position())
	}
	q.Reset()
	if q.State() != StateSetup || q.Total() != 0 {
		t.Errorf("Reset left state=%v total=%d", q.State(), q.Total())
	}
}
