package summarizer

import (
	"sort"

	"debate/internal/domain"
)

// FrequencySummarizer profiles a speaker by the terms they use most.
type FrequencySummarizer struct {
	stopwords map[string]struct{}
}

// NewFrequencySummarizer creates a summarizer that ignores common English stopwords.
func NewFrequencySummarizer() *FrequencySummarizer {
	return &FrequencySummarizer{stopwords: defaultStopwords()}
}

// KeyTerms returns up to n terms with the highest total count across docs.
// Ties are broken alphabetically.
func (s *FrequencySummarizer) KeyTerms(docs []domain.Document, n int) []string {
	if n <= 0 {
		n = 5
	}
	freq := map[string]float64{}
	for _, d := range docs {
		for term, w := range d.Vector {
			if _, ok := s.stopwords[term]; ok {
				continue
			}
			freq[term] += w
		}
	}
	type pair struct {
		term  string
		count float64
	}
	pairs := make([]pair, 0, len(freq))
	for term, c := range freq {
		pairs = append(pairs, pair{term, c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].term < pairs[j].term
	})
	if n > len(pairs) {
		n = len(pairs)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = pairs[i].term
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
		"i", "we", "you", "he", "she", "they", "my", "our", "your", "his", "her", "their", "me", "us", "them", "not", "have", "has", "had", "do", "does", "did", "what", "who", "there", "here", "all", "going", "i'm", "it's", "that's", "we're", "don't",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
