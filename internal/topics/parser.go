// Package topics parses keyword files and holds the preset topic catalog.
package topics

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"debate/internal/domain"
)

// HeaderPrefix opens a new topic section in a keyword file. The space is
// required: "T:cell" is a keyword, not a header.
const HeaderPrefix = "T: "

// bareHeader is a header line whose name trimmed away.
const bareHeader = "T:"

// Normalizer turns a keyword line into a term.
type Normalizer interface {
	Term(phrase string) string
}

// Parse reads a keyword file. A line "T: Name" opens a topic; each following
// non-empty line adds its whole trimmed text as one term with weight 1.
// Topics come back in the order their headers first appear; a repeated header
// starts that topic over.
func Parse(r io.Reader, norm Normalizer) ([]domain.Topic, error) {
	var (
		out     []domain.Topic
		current = -1
		lineNo  int
	)
	byKey := make(map[string]int)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == bareHeader || strings.HasPrefix(line, HeaderPrefix) {
			name := strings.TrimSpace(strings.TrimPrefix(line, bareHeader))
			if name == "" {
				return nil, &domain.FormatError{Line: lineNo, Text: line, Reason: "topic header without a name"}
			}
			key := strings.ToLower(name)
			if i, ok := byKey[key]; ok {
				out[i].Vector = make(domain.TermVector)
				current = i
				continue
			}
			out = append(out, domain.Topic{Name: name, Vector: make(domain.TermVector)})
			current = len(out) - 1
			byKey[key] = current
			continue
		}
		if current < 0 {
			return nil, &domain.FormatError{Line: lineNo, Text: line, Reason: "keyword appears before any topic header"}
		}
		if term := norm.Term(line); term != "" {
			out[current].Vector[term] = 1.0
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read topic file: %w", err)
	}
	return out, nil
}
