package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debate/internal/domain"
	"debate/internal/embedding/termfreq"
	"debate/internal/summarizer"
	"debate/internal/topics"
	"debate/internal/vectorstore/memory"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	b := termfreq.Default()
	store := memory.NewStorage(b)
	store.Append("A", []string{"I care about jobs and wages.", "Climate change is real."})
	store.Append("B", []string{"Insurance premiums are too high.", "Jobs jobs jobs."})
	catalog, err := topics.Load(strings.NewReader("T: Economy\njobs\nwages\n\nT: Healthcare\ninsurance\n"), b)
	require.NoError(t, err)
	return NewEngine(b, store, catalog, summarizer.NewFrequencySummarizer(), nil)
}

func TestSearchPresetTopic(t *testing.T) {
	e := newEngine(t)
	topic, err := e.PresetTopic("economy")
	require.NoError(t, err)

	res, err := e.Search(topic.Vector, "a", 1)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, 0, res[0].Index)
	assert.Equal(t, "I care about jobs and wages.", res[0].Text)
}

func TestSearchNonPositiveKUsesDefault(t *testing.T) {
	e := newEngine(t)
	res, err := e.Search(domain.TermVector{"jobs": 1}, "A", -3)
	require.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, 5, e.DefaultK())
}

func TestAdHocTopic(t *testing.T) {
	e := newEngine(t)
	topic := e.AdHocTopic("  Jobs   jobs, wages ")
	assert.Equal(t, "Jobs jobs, wages", topic.Name)
	assert.Equal(t, domain.TermVector{"jobs": 2, "wages": 1}, topic.Vector)
}

func TestQuery(t *testing.T) {
	e := newEngine(t)

	topic, res, err := e.Query("B", "Healthcare", "", 5)
	require.NoError(t, err)
	assert.Equal(t, "Healthcare", topic.Name)
	require.Len(t, res, 2)
	assert.Equal(t, 0, res[0].Index)

	_, res, err = e.Query("B", "", "jobs", 1)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, 1, res[0].Index)
	assert.InDelta(t, 1.0, res[0].Score, 1e-9)

	_, _, err = e.Query("B", "Immigration", "", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, _, err = e.Query("C", "Economy", "", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, _, err = e.Query("B", "", "  ", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestSelectSpeakerAndListings(t *testing.T) {
	e := newEngine(t)
	id, err := e.SelectSpeaker("b")
	require.NoError(t, err)
	assert.Equal(t, "B", id)
	_, err = e.SelectSpeaker("Z")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, []string{"A", "B"}, e.Speakers())
	assert.Equal(t, []string{"Economy", "Healthcare"}, e.TopicNames())
	assert.Equal(t, "Speakers: A (2), B (2)  Topics: 2", e.Summary())

	text, err := e.Text("A", 1)
	require.NoError(t, err)
	assert.Equal(t, "Climate change is real.", text)
}

func TestProfileAndClassify(t *testing.T) {
	e := newEngine(t)
	terms, n, err := e.Profile("B")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NotEmpty(t, terms)
	assert.Equal(t, "jobs", terms[0])

	a, err := e.Classify("B")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, a.ByTopic["Economy"])
	assert.Equal(t, []int{0}, a.ByTopic["Healthcare"])
	assert.Empty(t, a.Unassigned)

	_, err = e.Classify("Z")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	corpusDir := filepath.Join(dir, "transcripts")
	require.NoError(t, os.MkdirAll(corpusDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(corpusDir, "A.debate1.txt"), []byte("I care about jobs and wages.\nClimate change is real.\n"), 0o644))
	topicsFile := filepath.Join(dir, "topics_terms.txt")
	require.NoError(t, os.WriteFile(topicsFile, []byte("T: Economy\njobs\nwages\n"), 0o644))

	e, err := Open(Options{
		CorpusDir:  corpusDir,
		Pattern:    "*.txt",
		TopicsFile: topicsFile,
		Tokenizer:  termfreq.Options{CaseFold: true},
		DefaultK:   3,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, e.DefaultK())
	_, res, err := e.Query("a", "economy", "", 0)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, 0, res[0].Index)
}

func TestOpenWithoutTopicFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.x.txt"), []byte("jobs\n"), 0o644))
	e, err := Open(Options{CorpusDir: dir, Pattern: "*.txt", TopicsFile: filepath.Join(dir, "missing.txt")}, nil)
	require.NoError(t, err)
	assert.Empty(t, e.TopicNames())
}

func TestOpenEmptyCorpus(t *testing.T) {
	_, err := Open(Options{CorpusDir: t.TempDir(), Pattern: "*.txt"}, nil)
	assert.Error(t, err)
}

func TestOpenMalformedTopicFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.x.txt"), []byte("jobs\n"), 0o644))
	topicsFile := filepath.Join(dir, "topics.md")
	require.NoError(t, os.WriteFile(topicsFile, []byte("jobs\n"), 0o644))
	_, err := Open(Options{CorpusDir: dir, Pattern: "*.txt", TopicsFile: topicsFile}, nil)
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestSearchNonPositiveKIgnoresConfiguredDefault(t *testing.T) {
	dir := t.TempDir()
	lines := strings.Repeat("jobs\n", 8)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.x.txt"), []byte(lines), 0o644))
	e, err := Open(Options{CorpusDir: dir, Pattern: "*.txt", DefaultK: 3}, nil)
	require.NoError(t, err)
	require.Equal(t, 3, e.DefaultK())

	for _, k := range []int{0, -3} {
		res, err := e.Search(domain.TermVector{"jobs": 1}, "A", k)
		require.NoError(t, err)
		assert.Len(t, res, 5, "k=%d", k)
	}
	res, err := e.Search(domain.TermVector{"jobs": 1}, "A", e.DefaultK())
	require.NoError(t, err)
	assert.Len(t, res, 3)
}
