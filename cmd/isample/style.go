package isample

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

// field is a single labelled line of a report.
type field struct {
	label string
	value string
}

// render writes a titled report of fields to w with aligned labels.
func render(w io.Writer, title string, fields []field) {
	width := 0
	for _, f := range fields {
		if len(f.label) > width {
			width = len(f.label)
		}
	}

	fmt.Fprintln(w, titleStyle.Render(title))
	for _, f := range fields {
		label := labelStyle.Render(fmt.Sprintf("  %-*s", width, f.label))
		fmt.Fprintf(w, "%s  %s\n", label, valueStyle.Render(f.value))
	}
}
