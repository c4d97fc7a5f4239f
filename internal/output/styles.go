package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals outside this block.
var (
	// ColorCyan is used for identifiable nouns: project names, paths, archetypes.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for the "done" stage status.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "skipped" stage status.
	ColorYellow = lipgloss.Color("220")

	// colorRed is used for the "rolled back" stage status.
	colorRed = lipgloss.Color("196")

	// colorBoldRed is used for the "failed" stage status (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// colorGreenCheck is used for the completion checkmark.
	colorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (project names, paths, archetypes).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Stage status constants.
const (
	StatusDone       = "done"
	StatusSkipped    = "skipped"
	StatusRolledBack = "rolled back"
	StatusFailed     = "failed"
)

// Tree renderer styles.
var (
	styleTreeRoot = lipgloss.NewStyle().Bold(true)
	styleTreeNote = lipgloss.NewStyle().Foreground(ColorDimGray)
)

// statusStyle returns the lipgloss style for a stage status.
// Unknown statuses return an unstyled default.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusDone:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusSkipped:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusRolledBack:
		return lipgloss.NewStyle().Foreground(colorRed)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minStageColumnWidth keeps status words aligned across stage lines.
const minStageColumnWidth = 24

// FormatStageLine renders a pipeline stage name with a color-coded status suffix.
//
// Format: s:<stage>  <status>
func FormatStageLine(stage, status string) string {
	padding := minStageColumnWidth - len(stage)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("s:") + StyleNoun.Render(stage) +
		strings.Repeat(" ", padding) + statusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	return check + " " + msg
}
