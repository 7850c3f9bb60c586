package export

import (
	"io"

	"github.com/iksnae/trace-view/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports the document as a YAML outline
type YAMLExporter struct{}

type yamlDocument struct {
	Title      string      `yaml:"title,omitempty"`
	Categories []string    `yaml:"categories,omitempty"`
	Failures   int         `yaml:"failures,omitempty"`
	Records    []*treeNode `yaml:"records"`
}

// Export exports a document to YAML format
func (e *YAMLExporter) Export(doc *internal.Document, w io.Writer) error {
	out := yamlDocument{
		Title:      doc.Title,
		Categories: doc.Categories,
		Failures:   doc.Failures,
		Records:    make([]*treeNode, 0, len(doc.Nodes)),
	}
	for _, vn := range doc.Nodes {
		out.Records = append(out.Records, flatten(vn))
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
