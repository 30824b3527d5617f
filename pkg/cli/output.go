package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is aligned key/value text (default).
	FormatText OutputFormat = "text"
	// FormatJSON is indented JSON output.
	FormatJSON OutputFormat = "json"
)

// Field is one labelled value in command output.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Formatter formats command output.
type Formatter interface {
	FormatTo(w io.Writer, fields []Field) error
}

// TextFormatter prints one "key  value" line per field.
type TextFormatter struct{}

// FormatTo writes fields to w as aligned columns.
func (f *TextFormatter) FormatTo(w io.Writer, fields []Field) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, field := range fields {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", field.Key, field.Value); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// JSONFormatter prints fields as a JSON object keyed by field name.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes fields to w as one JSON object.
func (f *JSONFormatter) FormatTo(w io.Writer, fields []Field) error {
	obj := make(map[string]string, len(fields))
	for _, field := range fields {
		obj[field.Key] = field.Value
	}
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(obj)
}

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// NewFormatter creates a new formatter for the specified format.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	default:
		return &TextFormatter{}
	}
}
