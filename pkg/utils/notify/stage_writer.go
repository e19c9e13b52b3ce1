package notify

import (
	"fmt"
	"io"
	"sync"
	"unicode"
	"unicode/utf8"
)

// StageSeparatingWriter wraps an io.Writer and writes a blank line before every
// title line that follows earlier output. A title line starts with a pictographic
// emoji; the message symbols (►, ✔, ✗, ⚠, ℹ, ✚) do not count.
type StageSeparatingWriter struct {
	underlying io.Writer
	hasWritten bool
	mu         sync.Mutex
}

// NewStageSeparatingWriter creates a StageSeparatingWriter wrapping the given writer.
func NewStageSeparatingWriter(underlying io.Writer) *StageSeparatingWriter {
	return &StageSeparatingWriter{underlying: underlying}
}

// Write implements io.Writer.
func (w *StageSeparatingWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(data) == 0 {
		return 0, nil
	}

	if w.hasWritten && startsWithEmoji(data) {
		_, err := w.underlying.Write([]byte{'\n'})
		if err != nil {
			return 0, fmt.Errorf("failed to write stage separator: %w", err)
		}
	}

	written, err := w.underlying.Write(data)
	if written > 0 {
		w.hasWritten = true
	}

	if err != nil {
		return written, fmt.Errorf("failed to write data: %w", err)
	}

	return written, nil
}

func startsWithEmoji(data []byte) bool {
	firstRune, _ := utf8.DecodeRune(data)
	if firstRune == utf8.RuneError {
		return false
	}

	switch firstRune {
	case '►', '✔', '✗', '⚠', 'ℹ', '✚':
		return false
	}

	return unicode.Is(unicode.So, firstRune)
}
