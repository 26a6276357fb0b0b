package summarizer

import (
	"context"

	"github.com/prakharsingh-74/meeting-summarizer/internal/session"
	"github.com/prakharsingh-74/meeting-summarizer/internal/transcript"
)

// Client sends a transcript to the summarization provider and returns the
// generated summary.
type Client interface {
	Generate(ctx context.Context, tr transcript.Transcript, customPrompt string) (session.Summary, error)
}
