package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/JaroVoltix/TestLint/format"
	"github.com/JaroVoltix/TestLint/lint"
)

var (
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Bold(true)
	summaryStyle = lipgloss.NewStyle().Faint(true)
)

// TextReporter renders Xcode-style lines followed by a summary.
type TextReporter struct{}

func (r *TextReporter) Lint(rep lint.Report, opts Options) (string, error) {
	var sb strings.Builder

	for _, v := range rep.Violations {
		v.File = displayPath(v.File, opts)
		location := v.File
		if v.Line > 0 {
			location = fmt.Sprintf("%s:%d", location, v.Line)
			if v.Column > 0 {
				location = fmt.Sprintf("%s:%d", location, v.Column)
			}
		}

		sb.WriteString(styled(pathStyle, location, opts))
		sb.WriteString(": ")
		sb.WriteString(severityLabel(v.Severity, opts))
		sb.WriteString(": ")
		sb.WriteString(v.Message)
		if v.Rule != "" {
			sb.WriteString(" (" + v.Rule + ")")
		}
		sb.WriteString("\n")
	}

	total := len(rep.Violations)
	summary := fmt.Sprintf("Done linting! Found %d %s, %d serious in %d %s.",
		total, plural(total, "violation", "violations"),
		rep.SeriousCount(),
		rep.Files, plural(rep.Files, "file", "files"))
	sb.WriteString(styled(summaryStyle, summary, opts))
	sb.WriteString("\n")

	return sb.String(), nil
}

func (r *TextReporter) Format(res format.Result, opts Options) (string, error) {
	var sb strings.Builder

	for _, c := range res.Changes {
		location := displayPath(c.File, opts)
		if c.Line > 0 {
			location = fmt.Sprintf("%s:%d", location, c.Line)
		}
		sb.WriteString(styled(pathStyle, location, opts))
		sb.WriteString(":")
		if c.Message != "" {
			sb.WriteString(" " + c.Message)
		}
		if c.Rule != "" {
			sb.WriteString(" (" + c.Rule + ")")
		}
		if c.Insertions > 0 || c.Deletions > 0 {
			sb.WriteString(fmt.Sprintf(" [+%d -%d]", c.Insertions, c.Deletions))
		}
		sb.WriteString("\n")
	}

	summary := res.Summary
	if summary == "" {
		verb := "formatted"
		if res.Lint {
			verb = "require formatting"
		}
		summary = fmt.Sprintf("%d %s %s", len(res.Changes), plural(len(res.Changes), "change", "changes"), verb)
	}
	sb.WriteString(styled(summaryStyle, summary, opts))
	sb.WriteString("\n")

	return sb.String(), nil
}

func severityLabel(severity lint.Severity, opts Options) string {
	switch severity {
	case lint.SeverityError:
		return styled(errorStyle, string(severity), opts)
	default:
		return styled(warningStyle, string(severity), opts)
	}
}

func styled(style lipgloss.Style, text string, opts Options) string {
	if !opts.Color {
		return text
	}
	return style.Render(text)
}
