package topics

import (
	"io"
	"strings"

	"debate/internal/domain"
)

// Catalog holds preset topics. Lookups ignore case; names keep the case they
// were written with.
type Catalog struct {
	topics []domain.Topic
	byKey  map[string]int
}

// NewCatalog builds a catalog over topics. Later duplicates (ignoring case) replace earlier ones.
func NewCatalog(topics []domain.Topic) *Catalog {
	c := &Catalog{byKey: make(map[string]int, len(topics))}
	for _, t := range topics {
		key := strings.ToLower(t.Name)
		if i, ok := c.byKey[key]; ok {
			c.topics[i] = t
			continue
		}
		c.byKey[key] = len(c.topics)
		c.topics = append(c.topics, t)
	}
	return c
}

// Load parses a keyword file into a catalog.
func Load(r io.Reader, norm Normalizer) (*Catalog, error) {
	ts, err := Parse(r, norm)
	if err != nil {
		return nil, err
	}
	return NewCatalog(ts), nil
}

// Names returns topic names in file order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.topics))
	for i, t := range c.topics {
		names[i] = t.Name
	}
	return names
}

// Topic returns the named topic.
func (c *Catalog) Topic(name string) (domain.Topic, error) {
	i, ok := c.byKey[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return domain.Topic{}, domain.TopicNotFound(name)
	}
	return c.topics[i], nil
}

// Vector returns the term vector of the named topic.
func (c *Catalog) Vector(name string) (domain.TermVector, error) {
	t, err := c.Topic(name)
	if err != nil {
		return nil, err
	}
	return t.Vector, nil
}

// Topics returns all topics in file order.
func (c *Catalog) Topics() []domain.Topic {
	return append([]domain.Topic(nil), c.topics...)
}
