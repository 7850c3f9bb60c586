package export

import (
	"fmt"
	"io"

	"github.com/iksnae/trace-view/internal"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(doc *internal.Document, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "html":
		return &HTMLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "jsonl":
		return &JSONLExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: html, md, json, yaml, jsonl)", format)
	}
}

// treeNode is the fully materialized form shared by the structured
// exporters. Exporting walks every node, so the whole tree is built;
// lazy materialization only pays off in the interactive views.
type treeNode struct {
	Title    string      `json:"title" yaml:"title"`
	Inline   string      `json:"inline,omitempty" yaml:"inline,omitempty"`
	Category string      `json:"category,omitempty" yaml:"category,omitempty"`
	Children []*treeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

func flatten(vn *internal.VisualNode) *treeNode {
	t := &treeNode{
		Title:    internal.Display(vn.Node.Title),
		Inline:   internal.Display(vn.Node.Inline),
		Category: vn.Category,
	}
	for _, c := range vn.Children() {
		t.Children = append(t.Children, flatten(c))
	}
	return t
}
