package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/trace-view/internal"
	"github.com/iksnae/trace-view/internal/export"
	"github.com/spf13/cobra"
)

var (
	renderFormat string
	renderOutput string
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render <capture-file>",
	Short: "Render a capture into a standalone document",
	Long: `Render a capture file into a single output document.

The default format is a static, self-contained HTML file: every record
becomes an expandable tree, and a checkbox per seen category toggles
that channel's visibility. Checkbox seed state follows your persisted
category preferences.

Other formats: md (outline), json, yaml, jsonl.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStoreOrFallback()
		defer store.Close()

		doc, err := loadDocument(args[0], store)
		if err != nil {
			return err
		}

		exporter, err := export.NewExporter(renderFormat)
		if err != nil {
			return err
		}

		out := renderOutput
		if out == "" {
			base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
			out = base + ".view." + exporter.Extension()
		}
		if out == "-" {
			return exporter.Export(doc, os.Stdout)
		}

		f, err := os.Create(out)
		if err != nil {
			return &internal.ExportError{Format: renderFormat, Path: out, Err: err}
		}
		defer f.Close()

		if err := exporter.Export(doc, f); err != nil {
			return &internal.ExportError{Format: renderFormat, Path: out, Err: err}
		}

		fmt.Printf("Rendered %d record(s) to %s\n", len(doc.Nodes), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "html", "Output format (html, md, json, yaml, jsonl)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (default: <capture>.view.<ext>, '-' for stdout)")
}
