package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette: named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: targets, action identities, paths.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for the "registered" action status.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "reused" action status and modified diffs.
	ColorYellow = lipgloss.Color("220")

	// colorRed is used for removed entries in diffs.
	colorRed = lipgloss.Color("196")

	// colorBoldRed is used for the "failed" status (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles: map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (targets, action identities, paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (enhancing, validating, comparing).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (rule types, separators, timestamps).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)

	styleAdded    = lipgloss.NewStyle().Foreground(colorGreen)
	styleRemoved  = lipgloss.NewStyle().Foreground(colorRed)
	styleModified = lipgloss.NewStyle().Foreground(ColorYellow)
)

// Action status constants.
const (
	StatusRegistered = "registered"
	StatusReused     = "reused"
	StatusValid      = "valid"
	statusFailed     = "failed"
)

// statusStyle returns the lipgloss style for a given status string.
// Unknown statuses return an unstyled default.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusRegistered, StatusValid:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusReused:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case statusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minActionColumnWidth is the minimum width for the identity column before
// the status suffix. This keeps status words aligned.
const minActionColumnWidth = 56

// FormatActionLine renders an action identity with its rule type and a
// right-aligned, color-coded status suffix.
//
// Format: <rule type> <identity>  <status>
//
// The rule type is dim, the identity is cyan, and the status uses statusStyle.
func FormatActionLine(ruleType, id, status string) string {
	padding := minActionColumnWidth - len(ruleType) - 1 - len(id)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render(ruleType) + " " +
		StyleNoun.Render(id) +
		strings.Repeat(" ", padding) +
		statusStyle(status).Render(status)
}

// FormatFailedLine renders a failed target line.
func FormatFailedLine(id string) string {
	return FormatActionLine("", id, statusFailed)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatOutputLine renders a named output and the path it resolves to:
//
//	▸ <name> ← <path>
func FormatOutputLine(name, path string) string {
	bullet := StyleDim.Render("▸")
	arrow := StyleDim.Render("←")
	if path == "" {
		return bullet + " " + name + " " + StyleDim.Render("(empty)")
	}
	return bullet + " " + name + " " + arrow + " " + StyleNoun.Render(path)
}
