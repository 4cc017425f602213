package components

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"studyfortress/internal/viewmodel"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := c.Render(context.Background(), &b); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return b.String()
}

func TestCanvasFragment(t *testing.T) {
	html := renderString(t, CanvasFragment(viewmodel.CanvasFragment{
		Base:         "/lab/biology",
		Scale:        1,
		ScalePercent: 100,
		Items: []viewmodel.CanvasCard{{
			ID: "canvas-note-1", Kind: "note", Title: "Cells <intro>", X: 10, Y: 20, Width: 200, Height: 100,
			Tags: []viewmodel.TagChip{{Name: "exam", Color: "red"}}, Dragging: true,
		}},
	}))

	for _, want := range []string{
		`id="canvas"`,
		`data-item="canvas-note-1"`,
		`class="canvas-item dragging"`,
		`Cells &lt;intro&gt;`,
		`hx-post="/lab/biology/canvas/zoom"`,
		`hx-vals="{&#34;dir&#34;:&#34;-1&#34;}"`,
		`left: 10.0px; top: 20.0px;`,
		`<li class="chip red">exam</li>`,
		`AI Organize`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestTagChips_EmptyRendersNothing(t *testing.T) {
	if html := renderString(t, TagChips(nil)); html != "" {
		t.Errorf("got %q, want empty", html)
	}
}

func TestStudyFragment_Setup(t *testing.T) {
	html := renderString(t, StudyFragment(viewmodel.StudyFragment{
		Base: "/lab/biology",
		Open: true,
		Step: "setup",
		Options: []viewmodel.StudyOption{
			{ID: "canvas-note-1", Title: "Cell Structure", Kind: "note", Questions: 2, Selected: true},
		},
		Methods: []viewmodel.MethodOption{{Method: "flashcards", Label: "Flashcards", Selected: true}},
	}))

	for _, want := range []string{
		`hx-vals="{&#34;item&#34;:&#34;canvas-note-1&#34;}" hx-swap="none" checked>`,
		`class="tab-btn active"`,
		`hx-swap="none" disabled>Start Studying`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestStudyFragment_RevealedShowsAnswerButtons(t *testing.T) {
	html := renderString(t, StudyFragment(viewmodel.StudyFragment{
		Base: "/lab/biology", Open: true, Step: "active",
		Question: "What is a cell?", Answer: "The basic unit of life.", Revealed: true,
		Number: 1, Total: 2, Progress: 0,
	}))
	if !strings.Contains(html, "Question 1 of 2") || !strings.Contains(html, "The basic unit of life.") {
		t.Error("question card not rendered")
	}
	if !strings.Contains(html, `{&#34;correct&#34;:&#34;true&#34;}`) {
		t.Error("answer buttons not rendered")
	}
	if strings.Contains(html, "Show Answer") {
		t.Error("reveal button shown after reveal")
	}
}

func TestSidebarFragment_TagLinksToggleSelection(t *testing.T) {
	html := renderString(t, SidebarFragment(viewmodel.SidebarFragment{
		Base:         "/lab/biology",
		View:         "tags",
		SelectedTags: []string{"exam"},
		Tags: []viewmodel.TagView{
			{Name: "exam", Color: "red", Count: 2, Selected: true},
			{Name: "lab", Color: "blue", Count: 1},
		},
	}))
	if !strings.Contains(html, `hx-get="/lab/biology/sidebar?"`) {
		t.Error("selected tag should link to the unfiltered sidebar")
	}
	if !strings.Contains(html, `hx-get="/lab/biology/sidebar?tag=exam&amp;tag=lab"`) {
		t.Error("unselected tag should be added to the filter")
	}
	if !strings.Contains(html, `class="chip red selected"`) {
		t.Error("selected tag not marked")
	}
}
