package memory

import (
	"fmt"
	"strings"
	"sync"

	"debate/internal/domain"
	"debate/internal/ranker"
)

// Vectorizer builds a document vector from an utterance.
type Vectorizer interface {
	FromText(text string) domain.TermVector
}

// Storage is the in-memory corpus: per speaker, documents in ingestion order.
// Speaker ids are upper-cased, so lookups ignore case.
type Storage struct {
	mu       sync.RWMutex
	vec      Vectorizer
	speakers []string
	docs     map[string][]domain.Document
}

// NewStorage creates an empty corpus whose documents are vectorized by vec.
func NewStorage(vec Vectorizer) *Storage {
	return &Storage{vec: vec, docs: make(map[string][]domain.Document)}
}

// Append adds one document per non-empty line to speaker's corpus and reports
// how many were added. Indexes continue from the speaker's existing documents.
func (s *Storage) Append(speaker string, lines []string) int {
	id := speakerID(speaker)
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.docs[id]
	if !ok {
		s.speakers = append(s.speakers, id)
	}
	added := 0
	for _, line := range lines {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		existing = append(existing, domain.Document{
			Speaker: id,
			Index:   len(existing),
			Text:    text,
			Vector:  s.vec.FromText(text),
		})
		added++
	}
	s.docs[id] = existing
	return added
}

// Speakers returns speaker ids in the order they were first added.
func (s *Storage) Speakers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.speakers...)
}

// Resolve returns the stored id for speaker.
func (s *Storage) Resolve(speaker string) (string, error) {
	id := speakerID(speaker)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.docs[id]; !ok {
		return "", domain.SpeakerNotFound(speaker)
	}
	return id, nil
}

// Documents returns the speaker's documents ordered by index.
func (s *Storage) Documents(speaker string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs, ok := s.docs[speakerID(speaker)]
	if !ok {
		return nil, domain.SpeakerNotFound(speaker)
	}
	return append([]domain.Document(nil), docs...), nil
}

// Vectors returns the speaker's document vectors ordered by index.
func (s *Storage) Vectors(speaker string) ([]domain.TermVector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs, ok := s.docs[speakerID(speaker)]
	if !ok {
		return nil, domain.SpeakerNotFound(speaker)
	}
	return vectorsOf(docs), nil
}

// Text returns the original utterance at index.
func (s *Storage) Text(speaker string, index int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs, ok := s.docs[speakerID(speaker)]
	if !ok {
		return "", domain.SpeakerNotFound(speaker)
	}
	if index < 0 || index >= len(docs) {
		return "", fmt.Errorf("%w: document %d of speaker %q", domain.ErrNotFound, index, speaker)
	}
	return docs[index].Text, nil
}

// Search ranks the speaker's documents against topic and attaches their text.
func (s *Storage) Search(topic domain.TermVector, speaker string, k int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id := speakerID(speaker)
	docs, ok := s.docs[id]
	if !ok {
		return nil, domain.SpeakerNotFound(speaker)
	}
	ranked := ranker.TopK(topic, vectorsOf(docs), k)
	results := make([]domain.SearchResult, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, domain.SearchResult{
			Speaker: id,
			Index:   r.Index,
			Score:   r.Score,
			Text:    docs[r.Index].Text,
		})
	}
	return results, nil
}

// Len returns the total number of documents across speakers.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, docs := range s.docs {
		n += len(docs)
	}
	return n
}

func vectorsOf(docs []domain.Document) []domain.TermVector {
	out := make([]domain.TermVector, len(docs))
	for i, d := range docs {
		out[i] = d.Vector
	}
	return out
}

func speakerID(speaker string) string {
	return strings.ToUpper(strings.TrimSpace(speaker))
}
