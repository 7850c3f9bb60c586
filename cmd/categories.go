package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/trace-view/internal"
	"github.com/spf13/cobra"
)

var (
	visibleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	hiddenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// categoriesCmd represents the categories command group
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage category visibility",
	Long: `Inspect and change which record categories are visible.

Preferences persist across runs. A category with no stored preference
follows the default policy: model exchanges (LLM) are visible when
they are the only category in the capture; everything else starts
hidden.`,
}

var categoriesListCmd = &cobra.Command{
	Use:   "list <capture-file>",
	Short: "List the categories present in a capture",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStoreOrFallback()
		defer store.Close()

		doc, err := loadDocument(args[0], store)
		if err != nil {
			return err
		}
		if len(doc.Categories) == 0 {
			fmt.Println("No labeled records in this capture.")
			return nil
		}

		stored, err := store.All()
		if err != nil {
			internal.LogWarn("failed to read stored preferences: %v", err)
			stored = map[string]bool{}
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tVISIBLE\tSOURCE")
		for _, cat := range doc.Categories {
			source := "default"
			if _, ok := stored[cat]; ok {
				source = "preference"
			}
			state := hiddenStyle.Render("hidden")
			if doc.Visible(cat) {
				state = visibleStyle.Render("visible")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", cat, state, source)
		}
		return w.Flush()
	},
}

var categoriesEnableCmd = &cobra.Command{
	Use:   "enable <category>",
	Short: "Make a category visible",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCategory(args[0], true)
	},
}

var categoriesDisableCmd = &cobra.Command{
	Use:   "disable <category>",
	Short: "Hide a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCategory(args[0], false)
	},
}

func setCategory(category string, visible bool) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Set(category, visible); err != nil {
		return err
	}
	state := "hidden"
	if visible {
		state = "visible"
	}
	fmt.Printf("Category %s is now %s\n", category, state)
	return nil
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesEnableCmd)
	categoriesCmd.AddCommand(categoriesDisableCmd)
}
