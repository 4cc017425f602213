package catalog_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"studyfortress/internal/catalog"
)

var _ = Describe("Catalog", func() {
	var c *catalog.Catalog

	BeforeEach(func() {
		var err error
		c, err = catalog.Default()
		Expect(err).NotTo(HaveOccurred())
	})

	Context("the embedded catalog", func() {
		It("lists the six subject folders", func() {
			Expect(c.Folders).To(HaveLen(6))
			Expect(c.FolderName("biology")).To(Equal("Biology 101"))
		})

		It("resolves unknown folders to a placeholder name", func() {
			Expect(c.FolderName("astrology")).To(Equal(catalog.UnknownFolderName))
			_, ok := c.Folder("astrology")
			Expect(ok).To(BeFalse())
		})

		It("carries a workspace seed with decks and study items", func() {
			seed := c.SeedFor("biology")
			Expect(seed.Decks).NotTo(BeEmpty())
			Expect(seed.Decks[0].Cards).To(HaveLen(3))
			Expect(seed.StudyItems).To(HaveLen(4))
			Expect(seed.Panels).To(HaveLen(1))
			Expect(seed.Panels[0].Tabs).To(HaveLen(5))
		})

		It("decodes canvas positions", func() {
			item := c.Workspace.CanvasItems[1]
			Expect(item.Pos.X).To(Equal(400.0))
			Expect(item.Pos.Y).To(Equal(300.0))
		})

		It("falls back to the shared seed for unknown folders", func() {
			Expect(c.SeedFor("nowhere").CanvasItems).To(HaveLen(len(c.Workspace.CanvasItems)))
		})
	})

	Context("round-tripping through YAML", func() {
		It("re-parses its own encoding", func() {
			var buf bytes.Buffer
			Expect(c.Encode(&buf)).To(Succeed())
			again, err := catalog.Decode(&buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Profile).To(Equal(c.Profile))
			Expect(again.Workspace.MindMap.Connections).To(HaveLen(len(c.Workspace.MindMap.Connections)))
		})
	})

	Context("loading from disk", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "catalog-test-*")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			os.RemoveAll(dir)
		})

		It("uses the embedded catalog for an empty path", func() {
			loaded, err := catalog.Load("")
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Folders).To(HaveLen(len(c.Folders)))
		})

		It("gives a folder its own seed when one is declared", func() {
			path := filepath.Join(dir, "catalog.yaml")
			Expect(os.WriteFile(path, []byte(`
folders:
  - id: math
    name: Mathematics
    workspace:
      canvasItems:
        - {id: c1, kind: note, title: Limits, pos: {x: 1, y: 2}}
`), 0o644)).To(Succeed())

			loaded, err := catalog.Load(path)
			Expect(err).NotTo(HaveOccurred())
			seed := loaded.SeedFor("math")
			Expect(seed.CanvasItems).To(HaveLen(1))
			Expect(seed.CanvasItems[0].Title).To(Equal("Limits"))
		})

		It("rejects duplicate folder ids", func() {
			path := filepath.Join(dir, "dup.yaml")
			Expect(os.WriteFile(path, []byte("folders:\n  - {id: a, name: A}\n  - {id: a, name: B}\n"), 0o644)).To(Succeed())
			_, err := catalog.Load(path)
			Expect(err).To(MatchError(ContainSubstring("duplicate folder")))
		})

		It("rejects study items that point at missing decks", func() {
			path := filepath.Join(dir, "dangling.yaml")
			Expect(os.WriteFile(path, []byte(`
workspace:
  studyItems:
    - {id: s1, kind: flashcard, title: Gone, deckId: nope}
`), 0o644)).To(Succeed())
			_, err := catalog.Load(path)
			Expect(err).To(MatchError(ContainSubstring("unknown deck")))
		})

		It("reports a missing file", func() {
			_, err := catalog.Load(filepath.Join(dir, "missing.yaml"))
			Expect(err).To(HaveOccurred())
		})
	})
})
