package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/trace-view/internal"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	prefsPath string
	version   string = "dev"
	commit    string = "unknown"
	date      string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "trace-view",
	Short: "Render captured agent traffic into browsable documents",
	Long: `A CLI tool to render captured agent traffic into browsable documents.

trace-view consumes capture files produced by a tracing shim (an HTML
host document with a trailing block of entity-escaped JSON records, or
a plain JSONL stream) and classifies every record into a specialized,
lazily expanded view: raw stdio lines, tool declarations, full model
conversation exchanges, and a generic tree for everything else.

Features:
  • Render a capture into a single static, self-contained HTML file
  • Browse a capture as a styled tree in the terminal
  • Per-category visibility filters that persist across runs
  • Export as Markdown, JSON, YAML, or JSONL
  • Malformed records are isolated, never abort the load

Quick Start:
  trace-view render capture.html            # Standalone HTML document
  trace-view show capture.html --depth 3    # Terminal tree view
  trace-view categories list capture.html   # Which channels were seen
  trace-view categories enable STDIO        # Persist a filter toggle

For detailed usage, see: https://github.com/iksnae/trace-view`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&prefsPath, "prefs", "", "Custom preference store location (sqlite file)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// openStore opens the preference store, honoring --prefs.
func openStore() (internal.Store, error) {
	path := prefsPath
	if path == "" {
		var err error
		path, err = internal.DefaultStorePath()
		if err != nil {
			return nil, fmt.Errorf("failed to locate preference store: %w", err)
		}
	}
	return internal.OpenStore(path)
}

// openStoreOrFallback degrades to an in-memory store so read-only
// commands still work when the preference database is unavailable.
func openStoreOrFallback() internal.Store {
	store, err := openStore()
	if err != nil {
		internal.LogWarn("preference store unavailable, using defaults: %v", err)
		return internal.NewMemoryStore()
	}
	return store
}

// loadDocument loads a capture file with visibility wired to store.
func loadDocument(path string, store internal.Store) (*internal.Document, error) {
	doc, err := internal.LoadFile(path, store)
	if err != nil {
		return nil, fmt.Errorf("failed to load capture: %w", err)
	}
	if doc.Failures > 0 {
		internal.LogWarn("%d record(s) failed to parse and were kept as error leaves", doc.Failures)
	}
	return doc, nil
}
