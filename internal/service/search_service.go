package service

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"debate/internal/corpus"
	"debate/internal/domain"
	"debate/internal/embedding/termfreq"
	"debate/internal/ranker"
	"debate/internal/summarizer"
	"debate/internal/topics"
	"debate/internal/vectorstore/memory"
)

// Profiler reduces a speaker's documents to their key terms.
type Profiler interface {
	KeyTerms(docs []domain.Document, n int) []string
}

// Options configures Open.
type Options struct {
	CorpusDir  string
	Pattern    string
	TopicsFile string
	Tokenizer  termfreq.Options
	DefaultK   int
	KeyTerms   int
}

// Engine answers topic queries against a loaded corpus.
type Engine struct {
	builder  domain.VectorBuilder
	store    domain.CorpusStore
	catalog  domain.TopicCatalog
	profiler Profiler
	defaultK int
	keyTerms int
	log      *zap.Logger
}

// NewEngine wires an engine over already populated stores.
func NewEngine(builder domain.VectorBuilder, store domain.CorpusStore, catalog domain.TopicCatalog, profiler Profiler, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		builder:  builder,
		store:    store,
		catalog:  catalog,
		profiler: profiler,
		defaultK: ranker.DefaultK,
		keyTerms: 8,
		log:      log,
	}
}

// Open reads the corpus directory and topic file, then returns a ready engine.
// A missing topic file leaves the catalog empty; ad hoc topics still work.
func Open(opts Options, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	builder := termfreq.NewBuilder(opts.Tokenizer)
	store := memory.NewStorage(builder)
	loader := corpus.NewLoader(log.Named("corpus"))

	stats, err := loader.LoadDir(opts.CorpusDir, opts.Pattern, store)
	if err != nil {
		return nil, err
	}
	if store.Len() == 0 {
		return nil, fmt.Errorf("no transcript documents found in %s (pattern %q, %d files)", opts.CorpusDir, opts.Pattern, stats.Files)
	}

	catalog, err := loader.LoadTopics(opts.TopicsFile, builder)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn("topic file not found, only ad hoc topics available", zap.String("path", opts.TopicsFile))
		catalog = topics.NewCatalog(nil)
	} else if err != nil {
		return nil, err
	}

	e := NewEngine(builder, store, catalog, summarizer.NewFrequencySummarizer(), log.Named("engine"))
	if opts.DefaultK > 0 {
		e.defaultK = opts.DefaultK
	}
	if opts.KeyTerms > 0 {
		e.keyTerms = opts.KeyTerms
	}
	return e, nil
}

// DefaultK is the configured result count for callers that give no count.
func (e *Engine) DefaultK() int { return e.defaultK }

// Speakers lists the loaded speakers.
func (e *Engine) Speakers() []string { return e.store.Speakers() }

// SelectSpeaker validates a speaker id and returns its stored form.
func (e *Engine) SelectSpeaker(id string) (string, error) {
	return e.store.Resolve(id)
}

// TopicNames lists preset topics in file order.
func (e *Engine) TopicNames() []string { return e.catalog.Names() }

// PresetTopic returns a preset topic by name, ignoring case.
func (e *Engine) PresetTopic(name string) (domain.Topic, error) {
	return e.catalog.Topic(name)
}

// Tokenize splits text into terms the same way documents were vectorized.
func (e *Engine) Tokenize(text string) []string {
	return e.builder.Tokenize(text)
}

// AdHocTopic builds a topic from free-text keywords.
func (e *Engine) AdHocTopic(keywords string) domain.Topic {
	return domain.Topic{
		Name:   strings.Join(strings.Fields(keywords), " "),
		Vector: e.builder.FromKeywords(keywords),
	}
}

// Search ranks the speaker's utterances against topic. k < 1 means ranker.DefaultK.
func (e *Engine) Search(topic domain.TermVector, speaker string, k int) ([]domain.SearchResult, error) {
	k = ranker.NormalizeK(k)
	start := time.Now()
	res, err := e.store.Search(topic, speaker, k)
	if err != nil {
		return nil, err
	}
	e.log.Debug("search",
		zap.String("speaker", speaker),
		zap.Int("topic_terms", len(topic)),
		zap.Int("k", k),
		zap.Int("results", len(res)),
		zap.Duration("took", time.Since(start)),
	)
	return res, nil
}

// Query resolves a preset topic name, or builds an ad hoc topic from keywords
// when name is empty, and searches the speaker's corpus.
func (e *Engine) Query(speaker, name, keywords string, k int) (domain.Topic, []domain.SearchResult, error) {
	var topic domain.Topic
	if strings.TrimSpace(name) != "" {
		t, err := e.PresetTopic(name)
		if err != nil {
			return domain.Topic{}, nil, err
		}
		topic = t
	} else {
		if strings.TrimSpace(keywords) == "" {
			return domain.Topic{}, nil, fmt.Errorf("%w: need a topic name or keywords", domain.ErrInvalidRequest)
		}
		topic = e.AdHocTopic(keywords)
	}
	res, err := e.Search(topic.Vector, speaker, k)
	if err != nil {
		return domain.Topic{}, nil, err
	}
	return topic, res, nil
}

// Text returns the original utterance at index.
func (e *Engine) Text(speaker string, index int) (string, error) {
	return e.store.Text(speaker, index)
}

// Profile returns the speaker's most frequent terms and document count.
func (e *Engine) Profile(speaker string) ([]string, int, error) {
	docs, err := e.store.Documents(speaker)
	if err != nil {
		return nil, 0, err
	}
	return e.profiler.KeyTerms(docs, e.keyTerms), len(docs), nil
}

// Classify assigns each of the speaker's documents to its closest preset topic.
func (e *Engine) Classify(speaker string) (ranker.Assignment, error) {
	vecs, err := e.store.Vectors(speaker)
	if err != nil {
		return ranker.Assignment{}, err
	}
	return ranker.Assign(e.catalog.Topics(), vecs), nil
}

// Summary is a one-line description of what is loaded.
func (e *Engine) Summary() string {
	parts := make([]string, 0, len(e.store.Speakers()))
	for _, sp := range e.store.Speakers() {
		docs, err := e.store.Documents(sp)
		if err != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%d)", sp, len(docs)))
	}
	return fmt.Sprintf("Speakers: %s  Topics: %d", strings.Join(parts, ", "), len(e.catalog.Names()))
}
