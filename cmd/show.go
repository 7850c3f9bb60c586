package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/trace-view/internal"
	"github.com/spf13/cobra"
)

var (
	showDepth int
	showAll   bool
)

var (
	// Styles for show command
	docTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1).
			MarginBottom(1)

	exchangeTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("135"))

	recordTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	childTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	inlinePreviewStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))

	categoryBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)

	collapsedMarkStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <capture-file>",
	Short: "Browse a capture as a tree in the terminal",
	Long: `Display the classified record tree of a capture file.

Only nodes within --depth are materialized; everything deeper stays
unbuilt, so large payloads cost nothing until you look at them.
Categories hidden by your persisted preferences are skipped unless
--all is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStoreOrFallback()
		defer store.Close()

		doc, err := loadDocument(args[0], store)
		if err != nil {
			return err
		}

		if doc.Title != "" {
			fmt.Println(docTitleStyle.Render(doc.Title))
		}

		shown := 0
		for _, vn := range doc.Nodes {
			if !showAll && !doc.Visible(vn.Category) {
				continue
			}
			printNode(vn, "", showDepth, true)
			shown++
		}
		if shown == 0 {
			fmt.Println(collapsedMarkStyle.Render("(no visible records; try --all or 'trace-view categories')"))
		}
		return nil
	},
}

func printNode(vn *internal.VisualNode, indent string, depth int, topLevel bool) {
	title := oneLineText(internal.Display(vn.Node.Title))
	inline := oneLineText(internal.Display(vn.Node.Inline))

	line := indent + styleFor(vn, topLevel).Render(title)
	if topLevel && vn.Category != "" {
		line = indent + categoryBadgeStyle.Render("["+vn.Category+"]") + " " + styleFor(vn, topLevel).Render(title)
	}
	if inline != "" {
		line += " " + inlinePreviewStyle.Render(truncateLine(inline, 100))
	}
	fmt.Println(line)

	if !vn.Expandable() {
		return
	}
	if depth <= 0 {
		fmt.Println(indent + "  " + collapsedMarkStyle.Render("..."))
		return
	}
	for _, c := range vn.Children() {
		printNode(c, indent+"  ", depth-1, false)
	}
}

func styleFor(vn *internal.VisualNode, topLevel bool) lipgloss.Style {
	switch {
	case vn.Node.Kind == internal.KindExchange:
		return exchangeTitleStyle
	case topLevel:
		return recordTitleStyle
	default:
		return childTitleStyle
	}
}

func oneLineText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateLine(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width]) + "..."
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&showDepth, "depth", "d", 2, "How many levels to materialize")
	showCmd.Flags().BoolVar(&showAll, "all", false, "Ignore category visibility preferences")
}
