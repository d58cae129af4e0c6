package export

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/vanderheijden86/sunburst/pkg/model"
)

// MindmapConfig configures the Mermaid mindmap generation.
type MindmapConfig struct {
	// RootLabel is shown in the centre node.
	RootLabel string
	// MaxDepth limits how many levels below the root are drawn. Zero draws
	// projects, phases and tasks; conditions need MaxDepth 4.
	MaxDepth int
	// Palette maps node colours back to statuses for the status markers.
	Palette model.Palette
}

// GenerateMindmap renders the status tree as a Mermaid mindmap. Node IDs are
// derived from the name path and stay stable across runs.
func GenerateMindmap(root *model.Node, config MindmapConfig) string {
	var sb strings.Builder
	sb.WriteString("mindmap\n")
	if root == nil {
		return sb.String()
	}
	maxDepth := config.MaxDepth
	if maxDepth <= 0 {
		maxDepth = int(model.LevelTask)
	}
	label := config.RootLabel
	if label == "" {
		label = "Portfolio"
	}
	palette := config.Palette.WithDefaults()
	used := make(map[string]bool)

	fmt.Fprintf(&sb, "  root((%s))\n", sanitizeMermaidText(label))

	var walk func(n *model.Node, path string, depth int)
	walk = func(n *model.Node, path string, depth int) {
		if depth > maxDepth {
			return
		}
		for i, c := range n.Children {
			childPath := fmt.Sprintf("%s/%d:%s", path, i, c.Name)
			id := mindmapID(c.Name, childPath, used)
			indent := strings.Repeat("  ", depth+1)
			fmt.Fprintf(&sb, "%s%s[\"%s %s\"]\n", indent, id, statusMarker(c.Color, palette), sanitizeMermaidText(c.Name))
			walk(c, childPath, depth+1)
		}
	}
	walk(root, "", 1)
	return sb.String()
}

// mindmapID returns a unique Mermaid ID for name, falling back to a hash of
// the full path on collision.
func mindmapID(name, path string, used map[string]bool) string {
	base := sanitizeMermaidID(name)
	id := base
	if used[id] {
		h := fnv.New32a()
		_, _ = h.Write([]byte(path))
		id = fmt.Sprintf("%s_%x", base, h.Sum32())
	}
	used[id] = true
	return id
}

// statusMarker maps a node colour back to a status glyph.
func statusMarker(color string, p model.Palette) string {
	switch strings.ToLower(color) {
	case strings.ToLower(p.Behind):
		return "🔴"
	case strings.ToLower(p.Ahead):
		return "🟢"
	case strings.ToLower(p.Complete):
		return "✅"
	case strings.ToLower(p.Incomplete):
		return "⬜"
	default:
		return "•"
	}
}
