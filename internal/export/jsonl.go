package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/trace-view/internal"
)

// JSONLExporter exports one JSON object per record, one per line
type JSONLExporter struct{}

// Export exports a document to JSONL format
func (e *JSONLExporter) Export(doc *internal.Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, vn := range doc.Nodes {
		if err := enc.Encode(flatten(vn)); err != nil {
			return err
		}
	}
	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
