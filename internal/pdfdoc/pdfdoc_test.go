package pdfdoc

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestInspect_RejectsGarbage(t *testing.T) {
	_, err := Inspect("notes.pdf", strings.NewReader("dummy pdf content"))
	if err == nil {
		t.Fatal("expected an error for non-PDF input")
	}
	if errors.Cause(err) != ErrNotPDF {
		t.Errorf("cause %v, want ErrNotPDF", errors.Cause(err))
	}
}

func TestInfo_Title(t *testing.T) {
	cases := []struct {
		info Info
		want string
	}{
		{Info{Name: "chapter3.pdf", Pages: 12}, "chapter3 (12 pages)"},
		{Info{Name: "slide.pdf", Pages: 1}, "slide (1 page)"},
		{Info{Name: ".pdf", Pages: 2}, "Document (2 pages)"},
	}
	for _, c := range cases {
		if got := c.info.Title(); got != c.want {
			t.Errorf("Title(%+v) = %q, want %q", c.info, got, c.want)
		}
	}
}
