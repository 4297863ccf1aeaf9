package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/goeclint/internal/ui/pretty"
)

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR_FORCE", "")

	var buf bytes.Buffer
	tests := []struct {
		mode string
		want bool
	}{
		{"always", true},
		{"never", false},
		{"auto", false},
		{"", false},
		{"sometimes", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, &buf), "mode %q", tt.mode)
	}
}

func TestIsColorEnabled_NoColorWins(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout), "always ignores NO_COLOR")
}

func TestIsColorEnabled_ForcedOnPipe(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR_FORCE", "1")

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("auto", &buf))
	assert.False(t, pretty.IsColorEnabled("never", &buf))
}

func TestNewStyles_PlainRendersUnchanged(t *testing.T) {
	styles := pretty.NewStyles(false)

	for name, style := range map[string]lipgloss.Style{
		"error":     styles.Error,
		"warning":   styles.Warning,
		"location":  styles.Location,
		"rule":      styles.Rule,
		"caret":     styles.Caret,
		"marker":    styles.Marker,
		"diff add":  styles.DiffAdd,
		"diff hunk": styles.DiffHunk,
		"title":     styles.SummaryTitle,
		"table":     styles.TableErrorRow,
		"bold":      styles.Bold,
	} {
		assert.Equal(t, "end_of_line", style.Render("end_of_line"), name)
	}
}

func TestNewStyles_ColorKeepsText(t *testing.T) {
	styles := pretty.NewStyles(true)

	assert.Contains(t, styles.Error.Render("error"), "error")
	assert.Contains(t, styles.DiffRemove.Render("-a\r"), "-a")
}

func TestTerminalWidth_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, pretty.DefaultTerminalWidth, pretty.TerminalWidth(&buf))
}
