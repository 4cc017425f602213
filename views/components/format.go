package components

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"studyfortress/internal/viewmodel"
)

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// vals encodes a single hx-vals pair.
func vals(key, value string) (string, error) {
	return templ.JSONString(map[string]string{key: value})
}

func layerStyle(d viewmodel.CanvasFragment) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("transform: translate(%spx, %spx) scale(%s);", num(d.OffsetX), num(d.OffsetY), num(d.Scale)))
}

func boxStyle(it viewmodel.CanvasCard) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("left: %spx; top: %spx; width: %spx; height: %spx;",
		num(it.X), num(it.Y), num(it.Width), num(it.Height)))
}

func posStyle(x, y float64) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("left: %spx; top: %spx;", num(x), num(y)))
}

func widthStyle(percent float64) templ.SafeCSS {
	return templ.SafeCSS("width: " + num(percent) + "%;")
}

func indentStyle(depth int) templ.SafeCSS {
	return templ.SafeCSS("margin-left: " + strconv.Itoa(depth*12) + "px;")
}

func initials(title string) string {
	var b strings.Builder
	for _, f := range strings.Fields(title) {
		for _, r := range f {
			b.WriteRune(r)
			break
		}
		if b.Len() >= 2 {
			break
		}
	}
	return strings.ToUpper(b.String())
}

// toggleTagQuery builds the sidebar query with name added to or removed from
// the selected tags.
func toggleTagQuery(data viewmodel.SidebarFragment, name string) string {
	q := url.Values{}
	if data.Query != "" {
		q.Set("q", data.Query)
	}
	found := false
	for _, t := range data.SelectedTags {
		if t == name {
			found = true
			continue
		}
		q.Add("tag", t)
	}
	if !found {
		q.Add("tag", name)
	}
	return q.Encode()
}
