// Package console renders the exercises' terminal output: bordered panels,
// tables, rules and status lines, in the rich-console style the curriculum
// uses throughout.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#2196F3")
	colorSuccess = lipgloss.Color("#8BC34A")
	colorWarning = lipgloss.Color("#FFC107")
	colorError   = lipgloss.Color("#e53935")
	colorMuted   = lipgloss.Color("#808080")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	keyStyle    = lipgloss.NewStyle().Bold(true)

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	infoStyle    = lipgloss.NewStyle().Foreground(colorPrimary)
)

// Out is where all console output goes; tests swap it for a buffer
var Out io.Writer = os.Stdout

// Panel prints body inside a bordered box with a title line
func Panel(title, body string) {
	content := body
	if title != "" {
		content = titleStyle.Render(title) + "\n\n" + body
	}
	fmt.Fprintln(Out, panelStyle.Render(content))
}

// Rule prints a horizontal rule with an optional centered title
func Rule(title string) {
	const width = 72
	if title == "" {
		fmt.Fprintln(Out, mutedStyle.Render(strings.Repeat("─", width)))
		return
	}
	label := " " + title + " "
	side := (width - lipgloss.Width(label)) / 2
	if side < 4 {
		side = 4
	}
	line := strings.Repeat("─", side) + label + strings.Repeat("─", side)
	fmt.Fprintln(Out, titleStyle.Render(line))
}

// Table prints headers and rows with column widths computed from content
func Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	for i, h := range headers {
		sb.WriteString(headerStyle.Width(widths[i]).Render(h))
		if i < len(headers)-1 {
			sb.WriteString(mutedStyle.Render("│"))
		}
	}
	sb.WriteString("\n")

	total := 0
	for _, w := range widths {
		total += w
	}
	sb.WriteString(mutedStyle.Render(strings.Repeat("─", total+len(headers)-1)))
	sb.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			sb.WriteString(cellStyle.Width(widths[i]).Render(cell))
			if i < len(row)-1 && i < len(headers)-1 {
				sb.WriteString(mutedStyle.Render("│"))
			}
		}
		sb.WriteString("\n")
	}
	fmt.Fprint(Out, sb.String())
}

// KeyValue prints aligned key/value pairs, in the order given
func KeyValue(pairs [][2]string) {
	width := 0
	for _, pair := range pairs {
		if lipgloss.Width(pair[0]) > width {
			width = lipgloss.Width(pair[0])
		}
	}
	for _, pair := range pairs {
		key := keyStyle.Width(width + 1).Render(pair[0] + ":")
		fmt.Fprintf(Out, "  %s %s\n", key, pair[1])
	}
}

// Successf prints a success status line
func Successf(format string, args ...interface{}) {
	fmt.Fprintln(Out, successStyle.Render("✅ "+fmt.Sprintf(format, args...)))
}

// Warnf prints a warning status line
func Warnf(format string, args ...interface{}) {
	fmt.Fprintln(Out, warningStyle.Render("⚠️  "+fmt.Sprintf(format, args...)))
}

// Errorf prints an error status line
func Errorf(format string, args ...interface{}) {
	fmt.Fprintln(Out, errorStyle.Render("❌ "+fmt.Sprintf(format, args...)))
}

// Infof prints an informational status line
func Infof(format string, args ...interface{}) {
	fmt.Fprintln(Out, infoStyle.Render("ℹ️  "+fmt.Sprintf(format, args...)))
}

// Printf prints plain text to the console writer
func Printf(format string, args ...interface{}) {
	fmt.Fprintf(Out, format, args...)
}
