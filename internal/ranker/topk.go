// Package ranker scores documents against a topic and selects the best matches.
//
// Every query rescans the whole corpus; no inverted index is kept. Corpora are
// a few hundred utterances per speaker.
package ranker

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"debate/internal/domain"
	"debate/internal/similarity"
)

// DefaultK replaces any result count below 1.
const DefaultK = 5

// NormalizeK maps k < 1 to DefaultK.
func NormalizeK(k int) int {
	if k < 1 {
		return DefaultK
	}
	return k
}

// ParseK reads a user-supplied result count. Non-numeric or non-positive input
// yields DefaultK together with an ErrInvalidRequest the caller may report.
func ParseK(s string) (int, error) {
	s = strings.TrimSpace(s)
	k, err := strconv.Atoi(s)
	if err != nil {
		return DefaultK, fmt.Errorf("%w: result count %q is not a number, using %d", domain.ErrInvalidRequest, s, DefaultK)
	}
	if k < 1 {
		return DefaultK, fmt.Errorf("%w: result count %d is not positive, using %d", domain.ErrInvalidRequest, k, DefaultK)
	}
	return k, nil
}

// TopK returns the k documents most similar to topic, by descending score.
// Equal scores keep ascending document order. k < 1 means DefaultK; k larger
// than the corpus returns every document.
func TopK(topic domain.TermVector, docs []domain.TermVector, k int) []domain.RankedResult {
	k = NormalizeK(k)
	scored := Score(topic, docs)
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Index < scored[j].Index
	})
	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k:k]
}

// Score pairs every document with its similarity to topic, in document order.
func Score(topic domain.TermVector, docs []domain.TermVector) []domain.RankedResult {
	out := make([]domain.RankedResult, len(docs))
	for i, doc := range docs {
		out[i] = domain.RankedResult{Score: similarity.Cosine(topic, doc), Index: i}
	}
	return out
}
