package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - titles, selected options
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - field labels
	colorDim    = lipgloss.Color("240") // Dim gray - option names, muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// styleTitle for board names and axis titles.
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// styleSelected marks the selected option of an axis.
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// styleDim for secondary text such as option display names.
	styleDim = lipgloss.NewStyle().Foreground(colorDim)

	// styleValue for data values.
	styleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// styleWarning for warning messages.
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// styleLabel pads the short field labels of "boards show". Width wraps longer
	// text, so it is only used for fixed labels, never for board keys.
	styleLabel = lipgloss.NewStyle().Foreground(colorGray).Width(14)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess  = "✓"
	iconError    = "✗"
	iconWarning  = "!"
	iconSelected = "●"
	iconOption   = "○"
)

// =============================================================================
// Output Helpers
// =============================================================================

// printSuccess prints a green check followed by the formatted message.
func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

// printError prints a red cross followed by the formatted message.
func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

// printWarning prints an amber "!" followed by the message in warning color.
func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+styleWarning.Render(fmt.Sprintf(format, args...)))
}

// printTitle prints a bold heading.
func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, styleTitle.Render(title))
}

// printLabelValue prints a short fixed-width label followed by its value.
func printLabelValue(w io.Writer, label, value string) {
	fmt.Fprintln(w, styleLabel.Render(label)+" "+styleValue.Render(value))
}

// printKeyValues prints one "key value" line per entry in keys, padding every
// key to the longest one so values line up. Keys are never wrapped.
func printKeyValues(w io.Writer, keys []string, values map[string]string) {
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}
	for _, k := range keys {
		fmt.Fprintf(w, "%-*s %s\n", width, k, styleValue.Render(values[k]))
	}
}

// printOption prints one option line of a configuration axis. The selected
// option is highlighted.
func printOption(w io.Writer, id, name string, selected bool) {
	if selected {
		fmt.Fprintln(w, "    "+styleSelected.Render(iconSelected+" "+id)+" "+styleDim.Render(name))
		return
	}
	fmt.Fprintln(w, "    "+styleDim.Render(iconOption)+" "+id+" "+styleDim.Render(name))
}
