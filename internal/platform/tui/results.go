package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-survivors/internal/autopilot"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors"
)

// ResultsTable renders simulated sessions as a static table.
func ResultsTable(pilot string, results []autopilot.Result) string {
	columns := []table.Column{
		{Title: "Run", Width: 4},
		{Title: "Pilot", Width: 8},
		{Title: "Outcome", Width: 10},
		{Title: "Time", Width: 6},
		{Title: "Level", Width: 5},
		{Title: "Kills", Width: 6},
		{Title: "Score", Width: 8},
	}

	rows := make([]table.Row, 0, len(results))
	for i, r := range results {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			pilot,
			r.Phase.String(),
			formatClock(r.Elapsed),
			strconv.Itoa(r.Level),
			strconv.Itoa(r.Kills),
			strconv.Itoa(r.Score),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Cell
	t.SetStyles(s)

	return t.View() + "\n" + summaryLine(results)
}

func summaryLine(results []autopilot.Result) string {
	if len(results) == 0 {
		return "no runs"
	}
	var wins, score int
	for _, r := range results {
		if r.Phase == survivors.PhaseVictory {
			wins++
		}
		score += r.Score
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	return style.Render(fmt.Sprintf("%d/%d survived, mean score %.1f",
		wins, len(results), float64(score)/float64(len(results))))
}
