package ranker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debate/internal/domain"
	"debate/internal/embedding/termfreq"
)

func corpus(b *termfreq.Builder, lines ...string) []domain.TermVector {
	out := make([]domain.TermVector, len(lines))
	for i, l := range lines {
		out[i] = b.FromText(l)
	}
	return out
}

func TestTopKJobsScenario(t *testing.T) {
	b := termfreq.Default()
	docs := corpus(b, "I care about jobs and wages.", "Climate change is real.")
	topic := domain.TermVector{"jobs": 1, "wages": 1}

	res := TopK(topic, docs, 1)
	require.Len(t, res, 1)
	assert.Equal(t, 0, res[0].Index)

	all := TopK(topic, docs, 2)
	require.Len(t, all, 2)
	assert.Greater(t, all[0].Score, all[1].Score)
	assert.Equal(t, 1, all[1].Index)
}

func TestTopKClampsToCorpusSize(t *testing.T) {
	docs := corpus(termfreq.Default(), "jobs", "wages", "jobs wages")
	res := TopK(domain.TermVector{"jobs": 1}, docs, 10)
	assert.Len(t, res, 3)
}

func TestTopKNonPositiveKUsesDefault(t *testing.T) {
	lines := make([]string, 8)
	for i := range lines {
		lines[i] = "jobs"
	}
	docs := corpus(termfreq.Default(), lines...)
	for _, k := range []int{0, -3} {
		assert.Len(t, TopK(domain.TermVector{"jobs": 1}, docs, k), DefaultK)
	}
	few := corpus(termfreq.Default(), "jobs", "wages")
	assert.Len(t, TopK(domain.TermVector{"jobs": 1}, few, 0), 2)
}

func TestTopKSortedAndTieBrokenByIndex(t *testing.T) {
	docs := corpus(termfreq.Default(),
		"climate",
		"jobs",
		"jobs wages",
		"jobs",
		"taxes",
	)
	res := TopK(domain.TermVector{"jobs": 1}, docs, 5)
	require.Len(t, res, 5)
	for i := 1; i < len(res); i++ {
		assert.GreaterOrEqual(t, res[i-1].Score, res[i].Score)
	}
	assert.Equal(t, []int{1, 3, 2, 0, 4}, indexes(res))
}

func TestTopKEmptyCorpus(t *testing.T) {
	assert.Empty(t, TopK(domain.TermVector{"jobs": 1}, nil, 5))
}

func TestTopKSelfTextScoresHighest(t *testing.T) {
	b := termfreq.Default()
	lines := []string{
		"We will cut taxes for the middle class.",
		"Our schools need more teachers, and our teachers need better pay.",
		"Health care costs are crushing families.",
	}
	docs := corpus(b, lines...)
	for i, l := range lines {
		res := TopK(b.FromKeywords(l), docs, 1)
		require.Len(t, res, 1)
		assert.Equal(t, i, res[0].Index)
		assert.InDelta(t, 1.0, res[0].Score, 1e-9)
	}
}

func TestParseK(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		invalid bool
	}{
		{"3", 3, false},
		{" 12 ", 12, false},
		{"0", DefaultK, true},
		{"-3", DefaultK, true},
		{"ten", DefaultK, true},
		{"", DefaultK, true},
	}
	for _, tt := range tests {
		k, err := ParseK(tt.in)
		assert.Equal(t, tt.want, k, tt.in)
		assert.Equal(t, tt.invalid, errors.Is(err, domain.ErrInvalidRequest), tt.in)
	}
}

func indexes(rs []domain.RankedResult) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.Index
	}
	return out
}
