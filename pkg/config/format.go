package config

import (
	"fmt"
	"strings"
)

// ParseOutputFormat validates a check or fix output format name.
func ParseOutputFormat(name string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(name)))
	switch format {
	case FormatText, FormatJSON, FormatSARIF, FormatDiff, FormatSummary:
		return format, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown output format %q", ErrInvalidConfiguration, name)
	}
}

// ParseInferFormat validates an infer output format name.
func ParseInferFormat(name string) (InferFormat, error) {
	format := InferFormat(strings.ToLower(strings.TrimSpace(name)))
	switch format {
	case InferJSON, InferYAML, InferINI:
		return format, nil
	case "":
		return InferJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown infer format %q", ErrInvalidConfiguration, name)
	}
}

// CheckInferOptions rejects infer option combinations that have no output form.
func CheckInferOptions(format InferFormat, scored bool) error {
	if scored && format == InferINI {
		return fmt.Errorf("%w: --score cannot be written as ini", ErrInvalidConfiguration)
	}
	return nil
}
