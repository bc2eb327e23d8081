package report

import (
	"encoding/json"

	"github.com/JaroVoltix/TestLint/format"
	"github.com/JaroVoltix/TestLint/lint"
)

// JSONReporter renders results as indented JSON.
type JSONReporter struct{}

type jsonLintReport struct {
	Files      int              `json:"files"`
	Warnings   int              `json:"warnings"`
	Serious    int              `json:"serious"`
	Violations []lint.Violation `json:"violations"`
}

type jsonFormatReport struct {
	Files   int             `json:"files"`
	Lint    bool            `json:"lint"`
	Summary string          `json:"summary,omitempty"`
	Changes []format.Change `json:"changes"`
}

// Lint ignores opts.Color.
func (r *JSONReporter) Lint(rep lint.Report, opts Options) (string, error) {
	violations := make([]lint.Violation, 0, len(rep.Violations))
	for _, v := range rep.Violations {
		v.File = displayPath(v.File, opts)
		violations = append(violations, v)
	}

	return marshal(jsonLintReport{
		Files:      rep.Files,
		Warnings:   rep.WarningCount(),
		Serious:    rep.SeriousCount(),
		Violations: violations,
	})
}

func (r *JSONReporter) Format(res format.Result, opts Options) (string, error) {
	changes := make([]format.Change, 0, len(res.Changes))
	for _, c := range res.Changes {
		c.File = displayPath(c.File, opts)
		changes = append(changes, c)
	}

	return marshal(jsonFormatReport{
		Files:   res.Files,
		Lint:    res.Lint,
		Summary: res.Summary,
		Changes: changes,
	})
}

func marshal(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
