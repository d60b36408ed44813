package summarizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"debate/internal/domain"
	"debate/internal/embedding/termfreq"
)

func docs(lines ...string) []domain.Document {
	b := termfreq.Default()
	out := make([]domain.Document, len(lines))
	for i, l := range lines {
		out[i] = domain.Document{Index: i, Text: l, Vector: b.FromText(l)}
	}
	return out
}

func TestKeyTermsSkipsStopwordsAndRanks(t *testing.T) {
	s := NewFrequencySummarizer()
	got := s.KeyTerms(docs(
		"We need jobs and we need wages.",
		"Jobs, jobs, jobs!",
		"The wages of the middle class.",
	), 3)
	assert.Equal(t, []string{"jobs", "need", "wages"}, got)
}

func TestKeyTermsClampsAndDefaults(t *testing.T) {
	s := NewFrequencySummarizer()
	assert.Equal(t, []string{"jobs"}, s.KeyTerms(docs("jobs"), 10))
	assert.Empty(t, s.KeyTerms(nil, 3))
	assert.Len(t, s.KeyTerms(docs("a b c d e f g h"), 0), 5)
}
