package mcpserver

import (
	"fmt"
	"strings"

	"github.com/starford/scholarmap/internal/taxonomy"
)

// RenderTaxonomy renders the browse tree as a Markdown outline:
// tracks as headings, subtracks as bullets, areas as nested bullets.
func RenderTaxonomy(tree []taxonomy.TrackNode) string {
	var b strings.Builder
	b.WriteString("# Research Taxonomy\n")
	for _, tr := range tree {
		fmt.Fprintf(&b, "\n## %s (%d)\n\n", tr.Name, tr.Count)
		if len(tr.Subtracks) == 0 {
			b.WriteString("_no subtracks_\n")
			continue
		}
		for _, st := range tr.Subtracks {
			fmt.Fprintf(&b, "- **%s** (%d)\n", st.Name, st.Count)
			for _, a := range st.Areas {
				fmt.Fprintf(&b, "  - %s (%d)\n", a.Name, a.Count)
			}
		}
	}
	return b.String()
}
