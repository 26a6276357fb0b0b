package transcript

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidFileType is returned when the upload is not declared as plain text.
	ErrInvalidFileType = errors.New("only plain text transcripts are supported")
	// ErrUnreadable is returned when the upload cannot be decoded as text.
	ErrUnreadable = errors.New("transcript could not be read")
)

// Transcript is an ingested meeting transcript. Immutable once built; Length
// is the character count shown to the user and embedded in the email footer.
type Transcript struct {
	Text       string
	Length     int
	SourceName string
}

// New builds a Transcript from pasted text.
func New(text string) Transcript {
	return Transcript{
		Text:   text,
		Length: utf8.RuneCountInString(text),
	}
}

// Load reads an uploaded transcript. Only content declared as text/plain (or
// a .txt file when no type is declared) is accepted; the type check happens
// before any bytes are read.
func Load(r io.Reader, declaredType, sourceName string) (Transcript, error) {
	if !isPlainText(declaredType, sourceName) {
		return Transcript{}, fmt.Errorf("%w: got %q", ErrInvalidFileType, declaredType)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Transcript{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if !utf8.Valid(data) {
		return Transcript{}, fmt.Errorf("%w: invalid UTF-8", ErrUnreadable)
	}

	t := New(string(data))
	t.SourceName = sourceName
	return t, nil
}

func isPlainText(declaredType, sourceName string) bool {
	// Declared type may carry parameters, e.g. "text/plain; charset=utf-8".
	mediaType := strings.TrimSpace(strings.ToLower(declaredType))
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	if mediaType != "" {
		return mediaType == "text/plain"
	}
	return strings.ToLower(filepath.Ext(sourceName)) == ".txt"
}
