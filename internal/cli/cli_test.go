package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/goeclint/internal/cli"
	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/lint"
	"github.com/yaklabco/goeclint/pkg/runner"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test", Commit: "test", Date: "test"}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "goeclint", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"debug", "config", "color", "set", "ignore", "jobs", "editorconfig-name"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "persistent flag %q", name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"check", "fix", "infer", "rules", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	tests := map[string][]string{
		"check": {"format", "strict", "no-context", "compact", "summary-order"},
		"fix":   {"format", "strict", "dry-run", "no-backups"},
		"infer": {"format", "root", "score", "compact"},
		"rules": {"format"},
		"init":  {"force", "full", "user", "format", "output"},
	}

	for name, flags := range tests {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		for _, flag := range flags {
			assert.NotNil(t, subCmd.Flags().Lookup(flag), "%s --%s", name, flag)
		}
	}

	check, _, err := cmd.Find([]string{"check"})
	require.NoError(t, err)
	format := check.Flags().Lookup("format")
	assert.Equal(t, "text", format.DefValue)
	assert.Contains(t, format.Usage, "summary")

	infer, _, err := cmd.Find([]string{"infer"})
	require.NoError(t, err)
	assert.Equal(t, "json", infer.Flags().Lookup("format").DefValue)
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	result := func(errs, warnings int) *runner.Result {
		return &runner.Result{Stats: runner.Stats{
			ViolationsBySeverity: map[config.Severity]int{
				config.SeverityError:   errs,
				config.SeverityWarning: warnings,
			},
		}}
	}

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil, true))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(result(0, 0), true))
	assert.Equal(t, cli.ExitViolations, cli.ExitCodeFromResult(result(1, 3), true))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(result(0, 3), false))
	assert.Equal(t, cli.ExitWarnings, cli.ExitCodeFromResult(result(0, 3), true))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"invalid configuration", fmt.Errorf("load: %w", config.ErrInvalidConfiguration), cli.ExitConfigError},
		{"files failed", cli.ErrFilesFailed, cli.ExitIOError},
		{"permission", fmt.Errorf("read: %w", lint.ErrPermissionDenied), cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitViolations},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cli.ExitCode(tt.err), tt.name)
	}

	assert.True(t, cli.IsSilent(cli.ErrFilesFailed))
	assert.False(t, cli.IsSilent(errors.New("boom")))
}
