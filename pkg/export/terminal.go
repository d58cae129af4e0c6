package export

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderTerminal renders markdown for display in a terminal, wrapped to
// width columns.
func RenderTerminal(markdown string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", err
	}
	// Strip trailing whitespace/newlines that glamour adds
	return strings.TrimRight(out, " \n") + "\n", nil
}
