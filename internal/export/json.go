package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/trace-view/internal"
)

// JSONExporter exports the document as one indented JSON object
type JSONExporter struct{}

type jsonDocument struct {
	Title      string      `json:"title,omitempty"`
	Categories []string    `json:"categories,omitempty"`
	Failures   int         `json:"failures,omitempty"`
	Records    []*treeNode `json:"records"`
}

// Export exports a document to JSON format
func (e *JSONExporter) Export(doc *internal.Document, w io.Writer) error {
	out := jsonDocument{
		Title:      doc.Title,
		Categories: doc.Categories,
		Failures:   doc.Failures,
		Records:    make([]*treeNode, 0, len(doc.Nodes)),
	}
	for _, vn := range doc.Nodes {
		out.Records = append(out.Records, flatten(vn))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
