package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/backmassage/loudcheck/internal/config"
	"github.com/backmassage/loudcheck/internal/pipeline"
	"github.com/backmassage/loudcheck/internal/term"
)

// Color palette
var (
	readyColor  = lipgloss.Color("#2E7D32") // Green
	adjustColor = lipgloss.Color("#F9A825") // Amber
	errorColor  = lipgloss.Color("#C62828") // Red
	mutedColor  = lipgloss.Color("#888888") // Gray
)

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	readyStyle  = lipgloss.NewStyle().Bold(true).Foreground(readyColor)
	adjustStyle = lipgloss.NewStyle().Bold(true).Foreground(adjustColor)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
)

// PrintSummary prints the post-run summary: thresholds, verdict counts,
// batch averages, and report locations.
func PrintSummary(cfg *config.Config, stats pipeline.RunStats) {
	if !term.Enabled() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	fmt.Fprintln(os.Stdout, headerStyle.Render("=== Loudness Summary ==="))

	row("Files analyzed", fmt.Sprintf("%d", stats.Total))
	row("Target", fmt.Sprintf("%g LUFS ±%g LU, true peak ≤ %g dBTP",
		cfg.TargetLUFS, cfg.ToleranceLU, cfg.TruePeakMax))

	fmt.Fprintf(os.Stdout, "%s %s   %s %s   %s %s\n",
		keyStyle.Render("READY:"), readyStyle.Render(fmt.Sprintf("%d", stats.Ready)),
		keyStyle.Render("ADJUST:"), adjustStyle.Render(fmt.Sprintf("%d", stats.Adjust)),
		keyStyle.Render("ERROR:"), errorStyle.Render(fmt.Sprintf("%d", stats.Errors)))

	if avg, ok := stats.AvgLUFS(); ok {
		row("Average loudness", fmt.Sprintf("%.2f LUFS", avg))
	}
	if avg, ok := stats.AvgLRA(); ok {
		row("Average LRA", fmt.Sprintf("%.2f LU", avg))
	}

	if !cfg.CheckOnly {
		if cfg.CSVPath != "" {
			row("CSV report", cfg.CSVPath)
		}
		if cfg.HTMLPath != "" {
			row("HTML report", cfg.HTMLPath)
		}
	}
}

func row(key, value string) {
	fmt.Fprintf(os.Stdout, "%s %s\n", keyStyle.Render(key+":"), value)
}
