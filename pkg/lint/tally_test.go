package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/goeclint/pkg/config"
)

func TestTally_Majority(t *testing.T) {
	t.Parallel()

	tally := NewTally()
	for _, v := range []string{"lf", "crlf", "crlf", "lf", "cr"} {
		tally.Add("end_of_line", TallyMajority, v)
	}
	tally.Add("insert_final_newline", TallyMajority, true)

	assert.Equal(t, config.Settings{"end_of_line": "lf", "insert_final_newline": true}, tally.Resolve())
	assert.Equal(t, []string{"end_of_line", "insert_final_newline"}, tally.Names())
	assert.Equal(t, []Score{
		{Value: "lf", Count: 2},
		{Value: "crlf", Count: 2},
		{Value: "cr", Count: 1},
	}, tally.Scores()["end_of_line"])
}

func TestTally_MaxRounded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		values []int
		want   any
	}{
		{[]int{12, 79, 3}, 80},
		{[]int{80}, 80},
		{[]int{81}, 90},
		{[]int{1}, 10},
		{[]int{0}, nil},
	}

	for _, tt := range tests {
		tally := NewTally()
		for _, v := range tt.values {
			tally.Add("max_line_length", TallyMaxRounded, v)
		}
		got, ok := tally.Resolve()["max_line_length"]
		if tt.want == nil {
			assert.False(t, ok)
			continue
		}
		assert.Equal(t, tt.want, got)
	}
}

func TestTally_ScoresAreCopies(t *testing.T) {
	t.Parallel()

	tally := NewTally()
	tally.Add("k", TallyMajority, "v")
	scores := tally.Scores()
	scores["k"][0].Count = 100

	assert.Equal(t, 1, tally.Scores()["k"][0].Count)
}
