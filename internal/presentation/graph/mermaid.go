package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/techseo/pkg/blocks"
	"github.com/aretw0/techseo/pkg/domain"
)

// Overlay marks the blocks that feed structured data.
type Overlay struct {
	Code  bool
	Steps bool
}

// GenerateMermaid produces a Mermaid flowchart of a post's block tree.
// It applies semantic styling:
// - Post root: ((Circle))
// - Code: [[Subroutine]]
// - Steps container and step: [/Parallelogram/]
// - Default: [Rectangle]
// Node IDs follow pre-order, so b0 is the first block Flatten returns.
func GenerateMermaid(title string, tree []domain.Block, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString(fmt.Sprintf("    post((\"%s\"))\n", escapeLabel(title)))

	var (
		code  []string
		steps []string
		next  int
	)

	var visit func(parent string, list []domain.Block, depth int)
	visit = func(parent string, list []domain.Block, depth int) {
		if depth >= blocks.MaxDepth {
			return
		}
		for _, b := range list {
			id := fmt.Sprintf("b%d", next)
			next++

			opener, closer := "[", "]"
			switch {
			case b.Is(domain.BlockCode):
				opener, closer = "[[", "]]"
				code = append(code, id)
			case b.Is(domain.BlockSteps, domain.BlockStep):
				opener, closer = "[/", "/]"
				steps = append(steps, id)
			}

			sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escapeLabel(label(b)), closer))
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", parent, id))
			visit(id, b.InnerBlocks, depth+1)
		}
	}
	visit("post", tree, 0)

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds.
		sb.WriteString("    classDef code fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef step fill:#ffeb3b,stroke:#fbc02d,stroke-width:2px,color:#000;\n")
		if overlay.Code && len(code) > 0 {
			sb.WriteString(fmt.Sprintf("    class %s code;\n", strings.Join(code, ",")))
		}
		if overlay.Steps && len(steps) > 0 {
			sb.WriteString(fmt.Sprintf("    class %s step;\n", strings.Join(steps, ",")))
		}
	}

	return sb.String()
}

func label(b domain.Block) string {
	if b.Name == "" {
		return "(freeform)"
	}
	name := strings.TrimPrefix(b.Name, "core/")
	if b.Is(domain.BlockCode) {
		if lang := blocks.CodeLanguage(b, ""); lang != "" {
			return name + " (" + lang + ")"
		}
	}
	return name
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
