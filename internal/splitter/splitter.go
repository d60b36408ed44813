// Package splitter pulls one speaker's turns out of a debate transcript.
package splitter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"debate/internal/domain"
)

// speakerTag matches the upper-case "NAME:" that opens a turn.
var speakerTag = regexp.MustCompile(`^([A-Z]+):`)

// Split returns the speaker's turns, one block per turn. Lines before the
// speaker's first turn are skipped. A turn runs until another speaker's tag;
// its lines are trimmed and joined with single spaces, and the tag is removed.
func Split(r io.Reader, speaker string) ([]string, error) {
	name := strings.ToUpper(strings.TrimSpace(speaker))
	if name == "" {
		return nil, fmt.Errorf("%w: empty speaker name", domain.ErrInvalidRequest)
	}
	var (
		blocks  []string
		current []string
		store   bool
		seen    bool
	)
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, " "))
		}
		current = nil
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if m := speakerTag.FindStringSubmatch(line); m != nil {
			flush()
			store = m[1] == name
			if store {
				seen = true
			}
			line = line[len(m[0]):]
		}
		if !store {
			continue
		}
		if text := strings.TrimSpace(line); text != "" {
			current = append(current, text)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	flush()
	if !seen {
		return nil, domain.SpeakerNotFound(name)
	}
	return blocks, nil
}

// OutputName is the file name for a speaker's blocks from transcript:
// "SPEAKER.<transcript base name>.txt".
func OutputName(transcript, speaker string) string {
	base := filepath.Base(transcript)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ToUpper(strings.TrimSpace(speaker)) + "." + base + ".txt"
}

// SplitFile splits transcript and writes the speaker's blocks, one per line,
// into outDir. It returns the written path and the number of blocks.
func SplitFile(transcript, speaker, outDir string) (string, int, error) {
	f, err := os.Open(transcript)
	if err != nil {
		return "", 0, fmt.Errorf("open %s: %w", transcript, err)
	}
	defer f.Close()
	blocks, err := Split(f, speaker)
	if err != nil {
		return "", 0, fmt.Errorf("split %s: %w", transcript, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", 0, err
	}
	out := filepath.Join(outDir, OutputName(transcript, speaker))
	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(b)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(out, []byte(sb.String()), 0o644); err != nil {
		return "", 0, fmt.Errorf("write %s: %w", out, err)
	}
	return out, len(blocks), nil
}
