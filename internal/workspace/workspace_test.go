package workspace_test

import (
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"studyfortress/internal/catalog"
	"studyfortress/internal/pdfdoc"
	"studyfortress/internal/workspace"
	"studyfortress/pkg/study"
	"studyfortress/pkg/viewport"
)

var _ = Describe("Workspace", func() {
	var (
		w    *workspace.Workspace
		now  time.Time
		seed catalog.Seed
	)

	BeforeEach(func() {
		cat, err := catalog.Default()
		Expect(err).NotTo(HaveOccurred())
		seed = cat.SeedFor("biology")
		now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		w = workspace.New("biology", "Biology 101", seed, workspace.Options{
			Timing: workspace.DefaultTiming(),
			Rand:   rand.New(rand.NewSource(1)),
		}, now)
	})

	Context("when freshly seeded", func() {
		It("mirrors the seed", func() {
			snap := w.Snapshot(now)
			Expect(snap.FolderName).To(Equal("Biology 101"))
			Expect(snap.Items).To(HaveLen(len(seed.CanvasItems)))
			Expect(snap.Panels).To(HaveLen(1))
			Expect(snap.Panels[0].ActiveTab).To(Equal("note-1"))
			Expect(snap.Viewport).To(Equal(viewport.Initial()))
			Expect(snap.ViewMode).To(Equal(workspace.ViewCanvas))
			Expect(snap.Recordings).To(HaveLen(2))
			Expect(snap.Nodes).To(HaveLen(6))
			Expect(snap.Study.State).To(Equal(study.StateSetup))
		})
	})

	Context("on the canvas", func() {
		It("pans and zooms within bounds", func() {
			w.Pan(viewport.Point{X: 10, Y: -5})
			for i := 0; i < 50; i++ {
				w.Zoom(viewport.ZoomIn)
			}
			v := w.Viewport()
			Expect(v.Offset).To(Equal(viewport.Point{X: 10, Y: -5}))
			Expect(v.Scale).To(Equal(viewport.MaxScale))
		})

		It("drags an item under the cursor", func() {
			w.Pan(viewport.Point{X: 100, Y: 50})
			Expect(w.BeginDrag("canvas-note-1", viewport.Point{X: 30, Y: 20})).To(Succeed())
			item, ok := w.DragTo(viewport.Point{X: 330, Y: 270})
			Expect(ok).To(BeTrue())
			Expect(item.Pos).To(Equal(viewport.Point{X: 200, Y: 200}))
			Expect(w.Snapshot(now).Dragging).To(Equal("canvas-note-1"))

			w.EndDrag()
			_, ok = w.DragTo(viewport.Point{X: 0, Y: 0})
			Expect(ok).To(BeFalse())
		})

		It("refuses to drag an unknown item", func() {
			Expect(w.BeginDrag("nope", viewport.Point{})).To(MatchError(workspace.ErrItemNotFound))
		})

		It("organizes into a grid after the delay", func() {
			Expect(w.Organize(now)).To(Succeed())
			Expect(w.Organize(now)).To(MatchError(workspace.ErrBusy))

			early := w.Snapshot(now.Add(time.Second))
			Expect(early.Organizing).To(BeTrue())
			Expect(early.Items[1].Pos).To(Equal(viewport.Point{X: 400, Y: 300}))

			Expect(w.Advance(now.Add(2 * time.Second))).To(ContainElement(workspace.EventCanvas))
			snap := w.Snapshot(now.Add(2 * time.Second))
			Expect(snap.Organizing).To(BeFalse())
			Expect(snap.Items[0].Pos).To(Equal(viewport.Point{X: 100, Y: 100}))
			Expect(snap.Items[1].Pos).To(Equal(viewport.Point{X: 450, Y: 100}))
			Expect(snap.Items[2].Pos).To(Equal(viewport.Point{X: 800, Y: 100}))
		})

		It("leaves due work to Advance so its events are reported", func() {
			Expect(w.Organize(now)).To(Succeed())
			Expect(w.Snapshot(now.Add(3 * time.Second)).Organizing).To(BeTrue())
			Expect(w.Advance(now.Add(3 * time.Second))).To(ContainElement(workspace.EventCanvas))
			Expect(w.Snapshot(now.Add(3 * time.Second)).Organizing).To(BeFalse())
		})

		It("switches views and the sidebar", func() {
			Expect(w.SetViewMode(workspace.ViewTabs)).To(Succeed())
			Expect(w.SetViewMode("grid")).To(MatchError(workspace.ErrInvalidOption))
			Expect(w.SetSidebarView(workspace.SidebarTags)).To(Succeed())
			Expect(w.ToggleSidebar()).To(BeTrue())
			snap := w.Snapshot(now)
			Expect(snap.ViewMode).To(Equal(workspace.ViewTabs))
			Expect(snap.Sidebar).To(Equal(workspace.SidebarTags))
			Expect(snap.SidebarCollapsed).To(BeTrue())
		})
	})

	Context("with tab panels", func() {
		It("adds a tab, activates it and puts a card on the canvas", func() {
			tab, err := w.AddTab("panel-1", workspace.KindCalculator, workspace.PositionTop)
			Expect(err).NotTo(HaveOccurred())
			Expect(tab.Title).To(Equal("Calculator"))
			Expect(tab.ID).To(HavePrefix("calculator-"))

			snap := w.Snapshot(now)
			p := snap.Panels[0]
			Expect(p.ActiveTab).To(Equal(tab.ID))
			Expect(p.Tabs).To(HaveLen(6))
			Expect(p.ShowIcons).To(BeTrue())

			last := snap.Items[len(snap.Items)-1]
			Expect(last.ID).To(Equal("canvas-" + tab.ID))
			Expect(last.Content).To(Equal("Content for Calculator"))
			Expect(last.Pos.X).To(BeNumerically(">=", 100))
			Expect(last.Pos.X).To(BeNumerically("<", 300))
		})

		It("rejects unknown kinds and panels", func() {
			_, err := w.AddTab("panel-1", "spreadsheet", workspace.PositionTop)
			Expect(err).To(MatchError(workspace.ErrUnknownKind))
			_, err = w.AddTab("panel-9", workspace.KindNote, workspace.PositionTop)
			Expect(err).To(MatchError(workspace.ErrPanelNotFound))
		})

		It("shows icons only once a panel already had four tabs", func() {
			p := w.AddPanel()
			for i := 0; i < 4; i++ {
				_, err := w.AddTab(p.ID, workspace.KindNote, workspace.PositionTop)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(w.Snapshot(now).Panels[1].ShowIcons).To(BeFalse())
			_, err := w.AddTab(p.ID, workspace.KindNote, workspace.PositionTop)
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Snapshot(now).Panels[1].ShowIcons).To(BeTrue())
		})

		It("halves every panel when one is added", func() {
			p := w.AddPanel()
			Expect(p.Title).To(Equal("Panel 2"))
			snap := w.Snapshot(now)
			Expect(snap.Panels).To(HaveLen(2))
			for _, panel := range snap.Panels {
				Expect(panel.Width).To(Equal(50.0))
			}
			Expect(snap.Panels[1].Tabs).To(BeEmpty())
			Expect(snap.Panels[1].ActiveTab).To(BeEmpty())
		})

		It("falls back to the first tab when the active tab is removed", func() {
			Expect(w.SelectTab("panel-1", "voice-1")).To(Succeed())
			Expect(w.RemoveTab("panel-1", "voice-1")).To(Succeed())
			p := w.Snapshot(now).Panels[0]
			Expect(p.ActiveTab).To(Equal("note-1"))
			Expect(p.Tabs).To(HaveLen(4))
			Expect(p.ShowIcons).To(BeTrue())
		})

		It("keeps the active tab when another is removed and empties at the end", func() {
			Expect(w.RemoveTab("panel-1", "flashcards-1")).To(Succeed())
			Expect(w.Snapshot(now).Panels[0].ActiveTab).To(Equal("note-1"))
			for _, id := range []string{"note-1", "note-1-1", "note-1-2", "voice-1"} {
				Expect(w.RemoveTab("panel-1", id)).To(Succeed())
			}
			p := w.Snapshot(now).Panels[0]
			Expect(p.Tabs).To(BeEmpty())
			Expect(p.ActiveTab).To(BeEmpty())
			Expect(w.RemoveTab("panel-1", "note-1")).To(MatchError(workspace.ErrTabNotFound))
		})

		It("renames, recolors, minimizes and duplicates", func() {
			Expect(w.RenameTab("panel-1", "note-1", "  Cells  ")).To(Succeed())
			Expect(w.RenameTab("panel-1", "note-1", " ")).To(MatchError(workspace.ErrEmptyName))
			Expect(w.RecolorTab("panel-1", "note-1", "bg-green-500")).To(Succeed())
			Expect(w.ToggleMinimized("panel-1", "note-1")).To(Succeed())

			dup, err := w.DuplicateTab("panel-1", "note-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(dup.Title).To(Equal("Cells (Copy)"))
			Expect(dup.ID).NotTo(Equal("note-1"))

			p := w.Snapshot(now).Panels[0]
			Expect(p.ActiveTab).To(Equal("note-1"))
			first, _ := p.Active()
			Expect(first.Title).To(Equal("Cells"))
			Expect(first.Color).To(Equal("bg-green-500"))
			Expect(first.Minimized).To(BeTrue())
			Expect(p.Tabs[len(p.Tabs)-1].ID).To(Equal(dup.ID))
		})

		It("nests a child tab under its parent", func() {
			child, err := w.AddNestedTab("panel-1", "note-1", workspace.KindMindMap)
			Expect(err).NotTo(HaveOccurred())
			Expect(child.ParentID).To(Equal("note-1"))
			Expect(child.Title).To(Equal("Mind Map"))

			p := w.Snapshot(now).Panels[0]
			parent, _ := p.Active()
			Expect(parent.Children).To(ContainElement(child.ID))
			_, err = w.AddNestedTab("panel-1", "missing", workspace.KindNote)
			Expect(err).To(MatchError(workspace.ErrTabNotFound))
		})

		It("opens an uploaded PDF as a tab", func() {
			tab, err := w.AttachPDF("panel-1", pdfdoc.Info{Name: "chapter3.pdf", Pages: 12, Width: 612, Height: 792})
			Expect(err).NotTo(HaveOccurred())
			Expect(tab.Kind).To(Equal(workspace.KindPDF))
			Expect(tab.Title).To(Equal("chapter3 (12 pages)"))
			snap := w.Snapshot(now)
			Expect(snap.Panels[0].ActiveTab).To(Equal(tab.ID))
			Expect(snap.Items[len(snap.Items)-1].Content).To(Equal("12 pages, 612 x 792 pt"))
		})
	})

	Context("with tags", func() {
		It("reuses an existing tag regardless of case", func() {
			tag, err := w.AddTag("note-1-1", "important")
			Expect(err).NotTo(HaveOccurred())
			Expect(tag.Name).To(Equal("Important"))
			Expect(tag.Count).To(Equal(4))

			snap := w.Snapshot(now)
			Expect(snap.Tags).To(HaveLen(4))
			child := snap.Panels[0].Tabs[1]
			Expect(child.Tags).To(ConsistOf("Biology", "Important"))
		})

		It("creates a new tag and tags canvas items too", func() {
			tag, err := w.AddTag("canvas-note-2", "Exam")
			Expect(err).NotTo(HaveOccurred())
			Expect(tag.Count).To(Equal(1))
			Expect(workspace.Palette).To(ContainElement(tag.Color))
			snap := w.Snapshot(now)
			Expect(snap.Tags).To(HaveLen(5))
			Expect(snap.Items[1].Tags).To(ContainElement("Exam"))
		})

		It("does not count the same tag twice on one item", func() {
			_, err := w.AddTag("note-1", "Biology")
			Expect(err).NotTo(HaveOccurred())
			tag, _ := w.AddTag("note-1", "biology")
			Expect(tag.Count).To(Equal(4))
		})

		It("removes a tag and floors the count at zero", func() {
			Expect(w.RemoveTag("note-1", "Important")).To(Succeed())
			Expect(w.Snapshot(now).Panels[0].Tabs[0].Tags).To(Equal([]string{"Biology"}))

			tag, err := w.AddTag("note-1-1", "Solo")
			Expect(err).NotTo(HaveOccurred())
			Expect(tag.Count).To(Equal(1))
			Expect(w.RemoveTag("note-1-1", "Solo")).To(Succeed())
			Expect(w.RemoveTag("note-1-1", "Solo")).To(Succeed())
			for _, t := range w.Snapshot(now).Tags {
				if t.Name == "Solo" {
					Expect(t.Count).To(Equal(0))
				}
			}
		})

		It("rejects unknown items and blank names", func() {
			_, err := w.AddTag("nothing", "x")
			Expect(err).To(MatchError(workspace.ErrItemNotFound))
			_, err = w.AddTag("note-1", "  ")
			Expect(err).To(MatchError(workspace.ErrEmptyName))
			Expect(w.RemoveTag("nothing", "x")).To(MatchError(workspace.ErrItemNotFound))
		})

		It("feeds live tags into the sidebar", func() {
			_, err := w.AddTag("note-1", "Exam")
			Expect(err).NotTo(HaveOccurred())
			hits := workspace.Filter(w.Snapshot(now).RawData, "", []string{"exam"})
			Expect(hits).To(HaveLen(1))
			Expect(hits[0].ID).To(Equal("note-1"))
		})
	})

	Context("recording voice notes", func() {
		It("records, transcribes and appends a numbered recording", func() {
			Expect(w.StartRecording(now)).To(Succeed())
			Expect(w.StartRecording(now)).To(MatchError(workspace.ErrAlreadyRecording))

			mid := w.Snapshot(now.Add(3500 * time.Millisecond))
			Expect(mid.Recording).To(BeTrue())
			Expect(mid.RecordingSeconds).To(Equal(3))

			secs, err := w.StopRecording(now.Add(5 * time.Second))
			Expect(err).NotTo(HaveOccurred())
			Expect(secs).To(Equal(5))
			Expect(w.StartRecording(now.Add(5 * time.Second))).To(MatchError(workspace.ErrBusy))

			pending := w.Snapshot(now.Add(6 * time.Second))
			Expect(pending.Transcribing).To(BeTrue())
			Expect(pending.Recordings).To(HaveLen(2))

			events := w.Advance(now.Add(7 * time.Second))
			Expect(events).To(ContainElement(workspace.EventRecordings))
			snap := w.Snapshot(now.Add(7 * time.Second))
			Expect(snap.Transcribing).To(BeFalse())
			Expect(snap.Recording).To(BeFalse())
			Expect(snap.Recordings).To(HaveLen(3))
			rec := snap.Recordings[2]
			Expect(rec.Title).To(Equal("Recording 3"))
			Expect(rec.Seconds).To(Equal(5))
			Expect(rec.Transcript).To(Equal("This is a sample transcription of your voice note..."))
			Expect(rec.LinkedNoteID).To(Equal("note-1"))
		})

		It("refuses to stop when idle", func() {
			_, err := w.StopRecording(now)
			Expect(err).To(MatchError(workspace.ErrNotRecording))
		})

		It("plays a recording for the playback duration", func() {
			Expect(w.PlayRecording("rec-1", now)).To(Succeed())
			Expect(w.Snapshot(now.Add(time.Second)).PlayingID).To(Equal("rec-1"))
			Expect(w.Advance(now.Add(2 * time.Second))).To(ContainElement(workspace.EventRecordings))
			Expect(w.Snapshot(now.Add(2 * time.Second)).PlayingID).To(BeEmpty())
			Expect(w.PlayRecording("rec-9", now)).To(MatchError(workspace.ErrRecordingNotFound))
		})

		It("ticks once a second while recording", func() {
			Expect(w.StartRecording(now)).To(Succeed())
			next, ok := w.NextWake(now.Add(1200 * time.Millisecond))
			Expect(ok).To(BeTrue())
			Expect(next).To(Equal(now.Add(2 * time.Second)))
			Expect(w.Busy()).To(BeTrue())
		})
	})

	Context("editing the mind map", func() {
		It("adds, updates and connects nodes", func() {
			n := w.AddNode(viewport.Point{X: 300, Y: 40})
			Expect(n.Label).To(Equal("New Node"))

			label := "Calvin Cycle"
			updated, err := w.UpdateNode(n.ID, workspace.NodeUpdate{Label: &label})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Label).To(Equal(label))
			Expect(updated.Pos).To(Equal(viewport.Point{X: 300, Y: 40}))

			c, err := w.Connect("glucose", n.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.From).To(Equal("glucose"))
			Expect(w.Snapshot(now).Connections).To(HaveLen(6))
		})

		It("rejects self-loops and dangling ends", func() {
			_, err := w.Connect("light", "light")
			Expect(err).To(MatchError(workspace.ErrBadConnection))
			_, err = w.Connect("light", "ghost")
			Expect(err).To(MatchError(workspace.ErrNodeNotFound))
		})

		It("drops connections with a deleted node", func() {
			Expect(w.DeleteNode("chloroplast")).To(Succeed())
			snap := w.Snapshot(now)
			Expect(snap.Nodes).To(HaveLen(5))
			Expect(snap.Connections).To(BeEmpty())
			Expect(w.DeleteNode("chloroplast")).To(MatchError(workspace.ErrNodeNotFound))
		})
	})

	Context("in study mode", func() {
		It("refuses to start with nothing selected", func() {
			Expect(w.StartStudy()).To(MatchError(workspace.ErrEmptySelection))
			Expect(w.Snapshot(now).Study.State).To(Equal(study.StateSetup))
		})

		It("walks a deck then a note in selection order", func() {
			Expect(w.ToggleStudyItem("deck-1")).To(Succeed())
			Expect(w.ToggleStudyItem("note-1")).To(Succeed())
			Expect(w.SetStudyMethod(workspace.MethodWritten)).To(Succeed())
			Expect(w.StartStudy()).To(Succeed())

			s := w.Snapshot(now).Study
			Expect(s.Open).To(BeTrue())
			Expect(s.Method).To(Equal(workspace.MethodWritten))
			Expect(s.Total).To(Equal(4))
			Expect(s.Card.Question).To(Equal("What is the powerhouse of the cell?"))

			w.RevealAnswer()
			Expect(w.Snapshot(now).Study.Revealed).To(BeTrue())

			for i := 0; i < 3; i++ {
				w.AnswerStudy(true)
			}
			s = w.Snapshot(now).Study
			Expect(s.Progress).To(Equal(75.0))
			Expect(s.Card).To(Equal(study.Card{Question: "Study: Cell Structure Notes", Answer: "Cell structure content..."}))

			Expect(w.AnswerStudy(false)).To(Equal(study.StateComplete))
			Expect(w.Snapshot(now).Study.Progress).To(Equal(100.0))

			w.ExitStudy()
			s = w.Snapshot(now).Study
			Expect(s.Open).To(BeFalse())
			Expect(s.State).To(Equal(study.StateSetup))
			Expect(s.Selected).To(Equal([]string{"deck-1", "note-1"}))
		})

		It("studies a voice item from its transcript", func() {
			Expect(w.ToggleStudyItem("voice-1")).To(Succeed())
			Expect(w.StartStudy()).To(Succeed())
			s := w.Snapshot(now).Study
			Expect(s.Card.Question).To(Equal("Study: Lecture Recording"))
			Expect(s.Card.Answer).To(Equal("The cell is the basic unit of life..."))
		})

		It("toggles selection off again", func() {
			Expect(w.ToggleStudyItem("mindmap-1")).To(Succeed())
			Expect(w.ToggleStudyItem("mindmap-1")).To(Succeed())
			Expect(w.Snapshot(now).Study.Selected).To(BeEmpty())
			Expect(w.ToggleStudyItem("nope")).To(MatchError(workspace.ErrItemNotFound))
			Expect(w.SetStudyMethod("speedrun")).To(MatchError(workspace.ErrUnknownMethod))
		})

		It("counts deck cards in the setup list", func() {
			opts := w.Snapshot(now).Study.Options
			Expect(opts).To(HaveLen(4))
			Expect(opts[0].Questions).To(Equal(3))
			Expect(opts[1].Questions).To(Equal(1))
		})
	})
})

var _ = Describe("Filter", func() {
	entries := []workspace.Entry{
		{ID: "a", Title: "Cell Structure", Tags: []string{"Biology", "Important"}},
		{ID: "b", Title: "Photosynthesis Process", Tags: []string{"Biology"}},
		{ID: "c", Title: "Textbook Chapter 3"},
	}

	It("returns everything for an empty query and no tags", func() {
		Expect(workspace.Filter(entries, "", nil)).To(HaveLen(3))
	})

	It("matches titles case-insensitively", func() {
		hits := workspace.Filter(entries, "CELL", nil)
		Expect(hits).To(HaveLen(1))
		Expect(hits[0].ID).To(Equal("a"))
	})

	It("requires any of the selected tags", func() {
		hits := workspace.Filter(entries, "", []string{"Important", "Review"})
		Expect(hits).To(HaveLen(1))
		Expect(hits[0].ID).To(Equal("a"))
	})

	It("combines the query and the tags", func() {
		Expect(workspace.Filter(entries, "process", []string{"Important"})).To(BeEmpty())
		Expect(workspace.Filter(entries, "process", []string{"Biology"})).To(HaveLen(1))
	})
})
