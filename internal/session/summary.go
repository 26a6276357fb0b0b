package session

import (
	"strings"
	"time"
)

// Summary is the editable text produced by the summarizer. IsDirty and
// WordCount are derived on read so they can never drift from the text.
type Summary struct {
	CurrentText  string
	OriginalText string
	LastSavedAt  time.Time
}

// NewSummary wraps freshly generated text. Current and original start equal,
// so the summary is clean.
func NewSummary(text string) Summary {
	return Summary{
		CurrentText:  text,
		OriginalText: text,
	}
}

// IsDirty reports whether the text has diverged from the last snapshot.
func (s Summary) IsDirty() bool {
	return s.CurrentText != s.OriginalText
}

// WordCount counts whitespace-delimited tokens in the current text.
func (s Summary) WordCount() int {
	return len(strings.Fields(s.CurrentText))
}
