package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.Table))

// Markdown renders the report as a Markdown document with one table per section.
func Markdown(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", Title)
	fmt.Fprintf(&b, "Report `%s`, generated %s.\n", r.ID, r.GeneratedAt.Format("January 2, 2006"))

	for _, p := range r.Projections {
		fmt.Fprintf(&b, "\n## %s scenario\n\n", titleCase(string(p.Scenario)))
		b.WriteString("### Your Inputs\n\n")
		writeTable(&b, InputLines(p.Metrics))
		b.WriteString("\n### Projected Results\n\n")
		writeTable(&b, ResultLines(p.Result))
	}
	return b.String()
}

// MarkdownFormat writes the Markdown report to w.
func MarkdownFormat(w io.Writer, r Report) error {
	_, err := io.WriteString(w, Markdown(r))
	return err
}

// HTML renders the Markdown report to an HTML fragment.
func HTML(r Report) (string, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(Markdown(r)), &buf); err != nil {
		return "", fmt.Errorf("failed to render report html: %w", err)
	}
	return buf.String(), nil
}

func writeTable(b *strings.Builder, lines []Line) {
	b.WriteString("| Metric | Value |\n")
	b.WriteString("| --- | ---: |\n")
	for _, line := range lines {
		fmt.Fprintf(b, "| %s | %s |\n", escapeCell(line.Label), escapeCell(line.Value))
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
