package report

import "strings"

// OutputFormat represents a report output format.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

func (f OutputFormat) String() string {
	return string(f)
}

var outputFormats = []OutputFormat{OutputFormatText, OutputFormatJSON}

// ParseOutputFormat parses a user-supplied format name.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	for _, f := range outputFormats {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// SupportedFormats lists the format names for help and error messages.
func SupportedFormats() string {
	names := make([]string, 0, len(outputFormats))
	for _, f := range outputFormats {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}
