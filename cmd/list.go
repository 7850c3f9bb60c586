package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/trace-view/internal"
	"github.com/spf13/cobra"
)

var listAll bool

var (
	// Styles
	listHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	listSummaryStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list <capture-file>",
	Short: "List the records of a capture",
	Long:  `List one summary row per record in arrival order.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStoreOrFallback()
		defer store.Close()

		doc, err := loadDocument(args[0], store)
		if err != nil {
			return err
		}

		title := "Records"
		if doc.Title != "" {
			title = doc.Title
		}
		fmt.Println(listHeaderStyle.Render(fmt.Sprintf("📋 %s", title)))
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tCATEGORY\tTITLE\tPREVIEW")
		shown := 0
		for i, vn := range doc.Nodes {
			if !listAll && !doc.Visible(vn.Category) {
				continue
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				i,
				vn.Category,
				truncateLine(oneLineText(internal.Display(vn.Node.Title)), 48),
				truncateLine(oneLineText(internal.Display(vn.Node.Inline)), 64),
			)
			shown++
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(listSummaryStyle.Render(fmt.Sprintf(
			"%d of %d record(s) shown, %d unparseable", shown, len(doc.Nodes), doc.Failures)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listAll, "all", false, "Include records hidden by category preferences")
}
