package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/trace-view/internal"
)

// MarkdownExporter exports the document as a nested Markdown outline
type MarkdownExporter struct{}

// Export exports a document to Markdown format
func (e *MarkdownExporter) Export(doc *internal.Document, w io.Writer) error {
	if doc.Title != "" {
		_, _ = fmt.Fprintf(w, "# %s\n\n", doc.Title)
	} else {
		_, _ = fmt.Fprintf(w, "# Capture\n\n")
	}
	_, _ = fmt.Fprintf(w, "**Records:** %d  \n", len(doc.Nodes))
	if len(doc.Categories) > 0 {
		_, _ = fmt.Fprintf(w, "**Categories:** %s  \n", strings.Join(doc.Categories, ", "))
	}
	if doc.Failures > 0 {
		_, _ = fmt.Fprintf(w, "**Unparseable records:** %d  \n", doc.Failures)
	}
	_, _ = fmt.Fprintf(w, "\n---\n\n")

	for _, vn := range doc.Nodes {
		writeMarkdownNode(w, flatten(vn), 0)
	}
	return nil
}

func writeMarkdownNode(w io.Writer, t *treeNode, depth int) {
	indent := strings.Repeat("  ", depth)
	line := oneLine(t.Title)
	if t.Inline != "" {
		line += ": " + oneLine(t.Inline)
	}
	if depth == 0 && t.Category != "" {
		line = fmt.Sprintf("`%s` %s", t.Category, line)
	}
	_, _ = fmt.Fprintf(w, "%s- %s\n", indent, line)
	for _, c := range t.Children {
		writeMarkdownNode(w, c, depth+1)
	}
}

// oneLine collapses newlines so a node never breaks the list layout.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
