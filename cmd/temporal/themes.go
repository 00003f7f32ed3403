package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/temporal-precision/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List color themes",
	Long: `Shows the color themes. The theme advances after every stopped run;
--theme or display.theme picks the one a session starts with.`,
	Args: cobra.NoArgs,
	Run:  runThemes,
}

func runThemes(_ *cobra.Command, _ []string) {
	themes := theme.List()

	fmt.Println("Available themes:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, t := range themes {
		if len(t.Name) > maxNameLen {
			maxNameLen = len(t.Name)
		}
	}

	fmt.Printf("  %-2s  %-*s  %-9s  %s\n", "ID", maxNameLen, "Name", "Primary", "Secondary")
	fmt.Printf("  %-2s  %-*s  %-9s  %s\n", "--", maxNameLen, "----", "-------", "---------")

	for _, t := range themes {
		primary := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Render(fmt.Sprintf("%-9s", t.Primary))
		secondary := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary)).Render(t.Secondary)
		fmt.Printf("  %-2s  %-*s  %s  %s\n", t.ID, maxNameLen, t.Name, primary, secondary)
	}

	fmt.Println()
	fmt.Println("Run 'temporal play --theme <id>' to start with a theme.")
}
