package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotals_Predicates(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		totals     Totals
		wantIssues bool
		wantErrors bool
	}{
		"clean":             {Totals{Files: 3}, false, false},
		"warnings only":     {Totals{Issues: 2, Warnings: 2}, true, false},
		"errors":            {Totals{Issues: 1, Errors: 1}, true, true},
		"errored file only": {Totals{FilesErrored: 1}, false, false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantIssues, tt.totals.HasIssues())
			assert.Equal(t, tt.wantErrors, tt.totals.HasErrors())
		})
	}
}

func TestOptions_Defaults(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	assert.Equal(t, Options{
		IncludeViolations: true,
		IncludeByFile:     true,
		IncludeByRule:     true,
		SortBy:            SortByCount,
		SortDesc:          true,
	}, opts)

	for _, field := range []SortField{SortByCount, SortByAlpha, SortBySeverity} {
		assert.True(t, field.IsValid(), field)
	}
	assert.False(t, SortField("line").IsValid())
}
