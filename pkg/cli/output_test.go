package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

var testFields = []Field{
	{Key: "upstream.url", Value: "https://ai.api.parsonlabs.com/v1/chat/completions"},
	{Key: "upstream.model", Value: "deepseek-r1:1.5b"},
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextFormatter{}).FormatTo(&buf, testFields); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "upstream.url") || !strings.HasSuffix(lines[0], testFields[0].Value) {
		t.Errorf("unexpected first line %q", lines[0])
	}
	// Values are aligned into one column.
	if strings.Index(lines[0], "https") != strings.Index(lines[1], "deepseek") {
		t.Errorf("values not aligned:\n%s", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(FormatJSON).FormatTo(&buf, testFields); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["upstream.model"] != "deepseek-r1:1.5b" {
		t.Errorf("upstream.model = %q", got["upstream.model"])
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
