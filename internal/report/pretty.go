package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1A237E"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Width(32)
	valueStyle   = lipgloss.NewStyle().Bold(true)
)

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, r Report) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(Title))
	b.WriteString("\n")

	for i, p := range r.Projections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "--- Results for scenario %s ---\n", p.Scenario)
		b.WriteString(sectionStyle.Render("Your Inputs"))
		b.WriteString("\n")
		writeLines(&b, InputLines(p.Metrics))
		b.WriteString(sectionStyle.Render("Projected Results"))
		b.WriteString("\n")
		writeLines(&b, ResultLines(p.Result))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeLines(b *strings.Builder, lines []Line) {
	for _, line := range lines {
		b.WriteString(labelStyle.Render(line.Label))
		b.WriteString(valueStyle.Render(line.Value))
		b.WriteString("\n")
	}
}
