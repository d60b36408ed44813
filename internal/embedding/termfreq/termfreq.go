package termfreq

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"

	"debate/internal/domain"
)

// Options controls term normalization.
type Options struct {
	CaseFold bool
	Stem     bool
}

// Builder builds raw term-count vectors from utterances and keyword lines.
// Documents and topics must be built by the same Builder so their terms agree.
type Builder struct {
	caseFold bool
	stem     bool
}

// NewBuilder creates a builder with the given normalization options.
func NewBuilder(opts Options) *Builder {
	return &Builder{caseFold: opts.CaseFold, stem: opts.Stem}
}

// Default returns a case-folding, non-stemming builder.
func Default() *Builder { return NewBuilder(Options{CaseFold: true}) }

// FromText strips punctuation, splits on whitespace and counts each token.
// Empty or whitespace-only input yields an empty vector.
func (b *Builder) FromText(text string) domain.TermVector {
	vec := make(domain.TermVector)
	for _, tok := range b.Tokenize(text) {
		vec[tok]++
	}
	return vec
}

// FromKeywords builds an ad hoc topic vector; a keyword typed twice weighs 2.
func (b *Builder) FromKeywords(line string) domain.TermVector {
	return b.FromText(line)
}

// Term normalizes one keyword-file line into a single term.
// Internal whitespace collapses to one space; the line is not split further.
func (b *Builder) Term(phrase string) string {
	words := strings.Fields(phrase)
	for i, w := range words {
		words[i] = b.normalize(w)
	}
	return strings.Join(words, " ")
}

// Tokenize returns the normalized tokens of text in order.
func (b *Builder) Tokenize(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := stripPunctuation(f)
		if tok == "" {
			continue
		}
		out = append(out, b.normalize(tok))
	}
	return out
}

func (b *Builder) normalize(tok string) string {
	if b.caseFold {
		tok = strings.ToLower(tok)
	}
	if b.stem {
		tok = english.Stem(tok, false)
	}
	return tok
}

// stripPunctuation keeps letters and digits, plus apostrophes and hyphens
// that sit between two letters or digits. Everything else is deleted.
func stripPunctuation(field string) string {
	runes := []rune(field)
	var sb strings.Builder
	sb.Grow(len(field))
	for i, r := range runes {
		switch {
		case isWordRune(r):
			sb.WriteRune(r)
		case isJoiner(r):
			if i > 0 && i < len(runes)-1 && isWordRune(runes[i-1]) && isWordRune(runes[i+1]) {
				if r == '’' {
					r = '\''
				}
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

func isWordRune(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

func isJoiner(r rune) bool { return r == '\'' || r == '’' || r == '-' }
