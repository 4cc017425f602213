package pages

import (
	"strconv"

	"github.com/a-h/templ"

	"studyfortress/internal/viewmodel"
)

func barWidth(percent int) templ.SafeCSS {
	return templ.SafeCSS("width: " + strconv.Itoa(min(percent, 100)) + "%;")
}

func barHeight(percent int) templ.SafeCSS {
	return templ.SafeCSS("height: " + strconv.Itoa(percent) + "%;")
}

func shortcutClass(s viewmodel.Shortcut) string {
	if s.IsFolder {
		return "folder"
	}
	return "file"
}
