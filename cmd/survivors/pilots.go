package main

import (
	"fmt"

	"github.com/spf13/cobra"

	// Import pilots to register them
	_ "github.com/vovakirdan/tui-survivors/internal/autopilot"
	"github.com/vovakirdan/tui-survivors/internal/registry"
)

var pilotsCmd = &cobra.Command{
	Use:   "pilots",
	Short: "List available autopilots",
	Long:  `Shows the autopilots that 'survivors sim' can use.`,
	Args:  cobra.NoArgs,
	Run:   runPilots,
}

func runPilots(_ *cobra.Command, _ []string) {
	pilots := registry.List()

	if len(pilots) == 0 {
		fmt.Println("No pilots available.")
		return
	}

	fmt.Println("Available pilots:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range pilots {
		maxIDLen = max(maxIDLen, len(p.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, p := range pilots {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'survivors sim --pilot <id>' to use one.")
}
