// Package pdfdoc reads the metadata the notes lab shows for an attached PDF.
package pdfdoc

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pkg/errors"
)

// ErrNotPDF is returned when the upload cannot be parsed as a PDF.
var ErrNotPDF = errors.New("pdfdoc: not a readable PDF")

// Info describes an uploaded document. Width and Height are the first page's
// size in PDF points.
type Info struct {
	Name   string
	Pages  int
	Width  float64
	Height float64
}

// Title is the tab title used for the attached document.
func (i Info) Title() string {
	name := strings.TrimSuffix(i.Name, filepath.Ext(i.Name))
	if name == "" {
		name = "Document"
	}
	if i.Pages == 1 {
		return fmt.Sprintf("%s (1 page)", name)
	}
	return fmt.Sprintf("%s (%d pages)", name, i.Pages)
}

// Inspect reads the page count and first-page dimensions of rs.
func Inspect(name string, rs io.ReadSeeker) (Info, error) {
	info := Info{Name: filepath.Base(name)}

	pages, err := api.PageCount(rs, nil)
	if err != nil {
		return info, errors.Wrap(ErrNotPDF, err.Error())
	}
	if pages < 1 {
		return info, errors.Wrap(ErrNotPDF, "no pages")
	}
	info.Pages = pages

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return info, errors.Wrap(err, "pdfdoc: rewind")
	}
	dims, err := api.PageDims(rs, nil)
	if err != nil {
		return info, errors.Wrap(ErrNotPDF, err.Error())
	}
	if len(dims) > 0 {
		info.Width = dims[0].Width
		info.Height = dims[0].Height
	}
	return info, nil
}
