package workspace

import "studyfortress/pkg/viewport"

// Organizer lays out canvas items. It receives the items in canvas order and
// returns one position per item.
type Organizer interface {
	Arrange(items []CanvasItem) []viewport.Point
}

// Transcriber turns a finished recording into text.
type Transcriber interface {
	Transcribe(title string, seconds int) string
}

// GridOrganizer places items on a fixed grid, row by row.
type GridOrganizer struct {
	Columns   int
	Origin    viewport.Point
	ColWidth  float64
	RowHeight float64
}

// DefaultOrganizer is a three-column grid starting at (100, 100).
func DefaultOrganizer() GridOrganizer {
	return GridOrganizer{
		Columns:   3,
		Origin:    viewport.Point{X: 100, Y: 100},
		ColWidth:  350,
		RowHeight: 300,
	}
}

func (g GridOrganizer) Arrange(items []CanvasItem) []viewport.Point {
	cols := g.Columns
	if cols < 1 {
		cols = 1
	}
	out := make([]viewport.Point, len(items))
	for i := range items {
		out[i] = viewport.Point{
			X: g.Origin.X + float64(i%cols)*g.ColWidth,
			Y: g.Origin.Y + float64(i/cols)*g.RowHeight,
		}
	}
	return out
}

// CannedTranscriber returns the same text for every recording.
type CannedTranscriber struct {
	Text string
}

const defaultTranscript = "This is a sample transcription of your voice note..."

func (c CannedTranscriber) Transcribe(string, int) string {
	if c.Text == "" {
		return defaultTranscript
	}
	return c.Text
}
