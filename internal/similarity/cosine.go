// Package similarity compares sparse term vectors.
package similarity

import (
	"math"

	"debate/internal/domain"
)

// Cosine returns the cosine similarity of a and b.
// If either vector has zero norm the similarity is 0.
func Cosine(a, b domain.TermVector) float64 {
	sqA := sumSquares(a)
	sqB := sumSquares(b)
	if sqA == 0 || sqB == 0 {
		return 0
	}
	// One square root over the product keeps integer self-similarity at exactly 1.
	s := Dot(a, b) / math.Sqrt(sqA*sqB)
	return math.Max(-1, math.Min(1, s))
}

// Dot returns the dot product, driving the loop from the smaller vector.
func Dot(a, b domain.TermVector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	sum := 0.0
	for term, wa := range a {
		if wb, ok := b[term]; ok {
			sum += wa * wb
		}
	}
	return sum
}

// Norm returns the Euclidean length of v over all of its own weights.
func Norm(v domain.TermVector) float64 {
	return math.Sqrt(sumSquares(v))
}

func sumSquares(v domain.TermVector) float64 {
	sum := 0.0
	for _, w := range v {
		sum += w * w
	}
	return sum
}
