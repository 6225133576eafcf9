package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const defaultWidth = 80

// Terminal renders src for a terminal of the given width. On failure
// the raw text is returned unchanged.
func Terminal(src string, width int) (out string) {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}

	defer func() {
		if rec := recover(); rec != nil {
			out = src
		}
	}()

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
		glamour.WithEmoji(),
	)
	if err != nil {
		return src
	}

	rendered, err := r.Render(src)
	if err != nil {
		return src
	}

	return rendered
}
