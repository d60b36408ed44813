package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat signals a malformed topic file.
	ErrFormat = errors.New("malformed topic file")
	// ErrNotFound signals an unknown speaker or topic.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest signals an unusable result count.
	ErrInvalidRequest = errors.New("invalid request")
)

// FormatError wraps ErrFormat with the offending line.
type FormatError struct {
	Line   int
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: line %d: %s: %q", ErrFormat.Error(), e.Line, e.Reason, e.Text)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// SpeakerNotFound returns an ErrNotFound naming the speaker.
func SpeakerNotFound(speaker string) error {
	return fmt.Errorf("%w: speaker %q", ErrNotFound, speaker)
}

// TopicNotFound returns an ErrNotFound naming the topic.
func TopicNotFound(name string) error {
	return fmt.Errorf("%w: topic %q", ErrNotFound, name)
}
