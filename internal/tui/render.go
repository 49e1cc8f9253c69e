package tui

import (
	"strings"

	"nathanbeddoewebdev/tspec/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Field is one label/value row of a detail view. An empty Value renders as
// a muted placeholder.
type Field struct {
	Label string
	Value string
}

// RenderFields renders a titled block of aligned label/value rows.
func RenderFields(title string, fields []Field) string {
	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f.Label)+1)
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(styles.Title.Render(title))
		b.WriteString("\n")
	}
	for _, f := range fields {
		label := styles.Label.Width(width).Render(f.Label + ":")
		value := styles.Value.Render(f.Value)
		if f.Value == "" {
			value = styles.MutedText.Render("-")
		}
		b.WriteString("  " + label + "  " + value + "\n")
	}
	return b.String()
}

// Success renders a one-line confirmation.
func Success(msg string) string {
	return styles.SuccessText.Render("✓") + " " + msg
}

// Warning renders a one-line warning.
func Warning(msg string) string {
	return styles.WarningText.Render("!") + " " + msg
}

// Spec renders a spec string for display, highlighting it as copyable.
func Spec(spec string) string {
	if spec == "" {
		return styles.MutedText.Render("(empty)")
	}
	return styles.AccentText.Render(spec)
}
