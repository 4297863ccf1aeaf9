package lint

import (
	"github.com/yaklabco/goeclint/pkg/config"
)

// Score is how often a value was inferred for a setting.
type Score struct {
	Value any `json:"value" yaml:"value"`
	Count int `json:"count" yaml:"count"`
}

// Tally accumulates inferred values across documents.
//
// A Tally is not safe for concurrent use. Feed it from one goroutine in a
// stable order so ties resolve deterministically.
type Tally struct {
	names  []string
	modes  map[string]TallyMode
	scores map[string][]Score
	maxima map[string]int
	files  int
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{
		modes:  make(map[string]TallyMode),
		scores: make(map[string][]Score),
		maxima: make(map[string]int),
	}
}

// Add records one inferred value for the named setting.
func (t *Tally) Add(name string, mode TallyMode, value any) {
	if _, seen := t.modes[name]; !seen {
		t.names = append(t.names, name)
		t.modes[name] = mode
	}

	if mode == TallyMaxRounded {
		if n, ok := value.(int); ok && n > t.maxima[name] {
			t.maxima[name] = n
		}
	}

	scores := t.scores[name]
	for idx := range scores {
		if scores[idx].Value == value {
			scores[idx].Count++
			return
		}
	}
	t.scores[name] = append(scores, Score{Value: value, Count: 1})
}

// AddFile counts one document toward the number of inferred files.
func (t *Tally) AddFile() {
	t.files++
}

// Files returns the number of documents counted with AddFile.
func (t *Tally) Files() int {
	return t.files
}

// Resolve picks one value per setting: the most frequent value, ties going
// to the value seen first, or for TallyMaxRounded settings the largest value
// rounded up to a multiple of 10.
func (t *Tally) Resolve() config.Settings {
	settings := make(config.Settings, len(t.names))

	for _, name := range t.names {
		if t.modes[name] == TallyMaxRounded {
			if limit := roundUpToTen(t.maxima[name]); limit > 0 {
				settings[name] = limit
			}
			continue
		}

		var best *Score
		for idx, score := range t.scores[name] {
			if best == nil || score.Count > best.Count {
				best = &t.scores[name][idx]
			}
		}
		if best != nil {
			settings[name] = best.Value
		}
	}

	return settings
}

// Scores returns the raw frequency table in first-seen order.
func (t *Tally) Scores() map[string][]Score {
	out := make(map[string][]Score, len(t.scores))
	for name, scores := range t.scores {
		out[name] = append([]Score(nil), scores...)
	}
	return out
}

// Names returns the tallied setting names in first-seen order.
func (t *Tally) Names() []string {
	return append([]string(nil), t.names...)
}

func roundUpToTen(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + 9) / 10 * 10
}
