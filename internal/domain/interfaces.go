package domain

// TermVector is a sparse mapping from a normalized term to its weight.
// Weights are raw occurrence counts; absent terms weigh zero.
type TermVector map[string]float64

// Len returns the number of distinct terms.
func (v TermVector) Len() int { return len(v) }

// Document is one utterance of a speaker.
type Document struct {
	Speaker string
	Index   int
	Text    string
	Vector  TermVector
}

// Topic is a named term vector, either from the keyword file or built ad hoc.
type Topic struct {
	Name   string
	Vector TermVector
}

// RankedResult pairs a similarity score with a document index.
type RankedResult struct {
	Score float64
	Index int
}

// SearchResult is a ranked document with its original text, ready for display.
type SearchResult struct {
	Speaker string
	Index   int
	Score   float64
	Text    string
}

// VectorBuilder turns raw text into term vectors.
type VectorBuilder interface {
	FromText(text string) TermVector
	FromKeywords(line string) TermVector
	Term(phrase string) string
	Tokenize(text string) []string
}

// CorpusStore holds per-speaker documents, read-only once populated.
type CorpusStore interface {
	Speakers() []string
	Resolve(speaker string) (string, error)
	Documents(speaker string) ([]Document, error)
	Vectors(speaker string) ([]TermVector, error)
	Text(speaker string, index int) (string, error)
	Search(topic TermVector, speaker string, k int) ([]SearchResult, error)
}

// TopicCatalog holds named preset topics.
type TopicCatalog interface {
	Names() []string
	Topic(name string) (Topic, error)
	Topics() []Topic
}
