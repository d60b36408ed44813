// Package corpus reads transcript files and keyword files from disk and
// populates the in-memory stores.
package corpus

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"debate/internal/topics"
)

// Appender receives one speaker's lines at a time.
type Appender interface {
	Append(speaker string, lines []string) int
}

// Stats reports what a directory load read.
type Stats struct {
	Files     int
	Documents map[string]int
}

// Loader walks a corpus directory and reads topic files.
type Loader struct {
	log *zap.Logger
}

// NewLoader creates a loader that logs through log (nil for none).
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log}
}

// LoadDir reads every file under dir whose base name matches pattern, in
// lexical path order. The speaker id is the base name up to the first dot,
// so "OBAMA.debate1.txt" belongs to OBAMA. Each non-empty line is a document.
func (l *Loader) LoadDir(dir, pattern string, dst Appender) (Stats, error) {
	start := time.Now()
	if pattern == "" {
		pattern = "*"
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return Stats{}, fmt.Errorf("corpus pattern %q: %w", pattern, err)
	}
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)

	stats := Stats{Documents: make(map[string]int)}
	for _, p := range paths {
		speaker := SpeakerFromPath(p)
		if speaker == "" {
			l.log.Warn("skipping file without speaker prefix", zap.String("path", p))
			continue
		}
		lines, err := readLines(p)
		if err != nil {
			return stats, err
		}
		n := dst.Append(speaker, lines)
		stats.Files++
		stats.Documents[strings.ToUpper(speaker)] += n
		l.log.Debug("loaded transcript file",
			zap.String("path", p),
			zap.String("speaker", speaker),
			zap.Int("documents", n),
		)
	}
	l.log.Info("corpus loaded",
		zap.String("dir", dir),
		zap.Int("files", stats.Files),
		zap.Any("documents", stats.Documents),
		zap.Duration("took", time.Since(start)),
	)
	return stats, nil
}

// LoadTopics parses the keyword file at path into a catalog.
func (l *Loader) LoadTopics(path string, norm topics.Normalizer) (*topics.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	c, err := topics.Load(f, norm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.log.Info("topics loaded", zap.String("path", path), zap.Strings("topics", c.Names()))
	return c, nil
}

// SpeakerFromPath returns the upper-cased base-name prefix before the first dot.
func SpeakerFromPath(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return strings.ToUpper(strings.TrimSpace(base))
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}
