package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Report formats accepted by WriteReport.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateFormat returns an error for an unknown report format.
func ValidateFormat(format string) error {
	switch format {
	case "", FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want %s, %s or %s)", format, FormatText, FormatJSON, FormatYAML)
	}
}

// WriteReport writes v to w in the given format. Text output is delegated to
// text, which may be nil when there is nothing to print.
func WriteReport(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "", FormatText:
		if text == nil {
			return nil
		}
		return text(w)
	default:
		return ValidateFormat(format)
	}
}
