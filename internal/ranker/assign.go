package ranker

import (
	"debate/internal/domain"
	"debate/internal/similarity"
)

// Assignment maps each topic name to the documents it won.
type Assignment struct {
	ByTopic    map[string][]int
	Unassigned []int
}

// Assign gives every document to the topic it is most similar to. Ties go to
// the topic listed first; documents scoring 0 against all topics stay unassigned.
// Index lists are ascending.
func Assign(topics []domain.Topic, docs []domain.TermVector) Assignment {
	a := Assignment{ByTopic: make(map[string][]int, len(topics))}
	for _, t := range topics {
		a.ByTopic[t.Name] = nil
	}
	for i, doc := range docs {
		best := -1
		bestScore := 0.0
		for j, t := range topics {
			s := similarity.Cosine(t.Vector, doc)
			if s > bestScore {
				best = j
				bestScore = s
			}
		}
		if best < 0 {
			a.Unassigned = append(a.Unassigned, i)
			continue
		}
		name := topics[best].Name
		a.ByTopic[name] = append(a.ByTopic[name], i)
	}
	return a
}
