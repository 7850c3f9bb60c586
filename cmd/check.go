package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/trace-view/internal"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <capture-file>",
	Short: "Check whether a capture file can be loaded",
	Long: `Check the health of a capture file by verifying:
  • File accessibility
  • Record extraction (host HTML trailer or plain JSONL)
  • Per-record JSON parsing
  • Categories present
  • Preference store accessibility

Useful for debugging a capture that renders empty or incomplete.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("🔍 Capture Health Check"))
		fmt.Println()

		// Step 1: file accessibility
		fmt.Println(infoStyle.Render("Step 1: Opening capture file..."))
		info, err := os.Stat(args[0])
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Cannot access capture file:"), err)
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✅ File accessible"), fmt.Sprintf("(%d bytes)", info.Size()))
		fmt.Println()

		// Step 2: load records
		fmt.Println(infoStyle.Render("Step 2: Extracting and parsing records..."))
		doc, err := internal.LoadFile(args[0], internal.NewMemoryStore())
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Failed to read capture:"), err)
			os.Exit(1)
		}
		if len(doc.Nodes) == 0 {
			fmt.Println(warningStyle.Render("⚠️  No records found"))
			fmt.Println("   Expected a trailing '<!--' record block or plain JSONL.")
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✅ Records parsed"), fmt.Sprintf("(%d total)", len(doc.Nodes)))
		if doc.Failures > 0 {
			fmt.Println(warningStyle.Render(fmt.Sprintf("⚠️  %d record(s) are malformed and render as error leaves", doc.Failures)))
		}
		fmt.Println()

		// Step 3: categories
		fmt.Println(infoStyle.Render("Step 3: Categories present..."))
		if len(doc.Categories) == 0 {
			fmt.Println(warningStyle.Render("⚠️  No labeled records"))
		} else {
			fmt.Println(successStyle.Render("✅ Categories:"), strings.Join(doc.Categories, ", "))
		}
		if doc.Title != "" {
			fmt.Println(successStyle.Render("✅ Derived title:"), doc.Title)
		}
		fmt.Println()

		// Step 4: preference store
		fmt.Println(infoStyle.Render("Step 4: Checking preference store..."))
		store, err := openStore()
		if err != nil {
			fmt.Println(warningStyle.Render("⚠️  Preference store unavailable:"), err)
			fmt.Println("   Visibility toggles will not persist.")
			return nil
		}
		defer store.Close()
		if _, err := store.All(); err != nil {
			fmt.Println(warningStyle.Render("⚠️  Preference store unreadable:"), err)
			return nil
		}
		fmt.Println(successStyle.Render("✅ Preference store OK"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
