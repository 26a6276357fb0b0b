package summarizer

import (
	"errors"
	"fmt"
)

// ErrEmptyTranscript is returned when the transcript trims to nothing. No
// provider call is made in that case.
var ErrEmptyTranscript = errors.New("transcript is empty")

// UpstreamError wraps a failure from the summarization provider. Callers must
// not assume any partial output is usable.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("summarization provider %s: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
