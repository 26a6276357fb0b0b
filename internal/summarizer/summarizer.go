package summarizer

import (
	"context"
	"strings"

	"github.com/prakharsingh-74/meeting-summarizer/internal/session"
	"github.com/prakharsingh-74/meeting-summarizer/internal/transcript"
)

const systemPrompt = `You are an expert meeting summarizer. Your task is to analyze meeting transcripts and create clear, actionable summaries. Always structure your response in a professional format that's easy to read and understand.`

const defaultInstructions = "Summarize this meeting transcript in a clear, structured format with key points, decisions made, and action items."

// Generate sends the transcript to the provider and returns a clean Summary.
// Whitespace-only transcripts fail before any network call. The call is
// single-shot: no streaming, no retry.
func (c *implClient) Generate(ctx context.Context, tr transcript.Transcript, customPrompt string) (session.Summary, error) {
	if strings.TrimSpace(tr.Text) == "" {
		return session.Summary{}, ErrEmptyTranscript
	}

	instructions := strings.TrimSpace(customPrompt)
	if instructions == "" {
		instructions = defaultInstructions
	}

	user := buildUserPrompt(instructions, tr.Text)

	c.logger.Debug(ctx, "Requesting summary from %s (%d chars)", c.completer.name(), tr.Length)

	text, err := c.completer.complete(ctx, systemPrompt, user)
	if err != nil {
		return session.Summary{}, &UpstreamError{Provider: c.completer.name(), Err: err}
	}

	c.logger.Info(ctx, "Summary generated by %s (%d chars in, %d chars out)", c.completer.name(), tr.Length, len(text))

	return session.NewSummary(text), nil
}

func buildUserPrompt(instructions, transcriptText string) string {
	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\nMeeting Transcript:\n")
	sb.WriteString(transcriptText)
	sb.WriteString("\n\nPlease provide a comprehensive summary based on the instructions above.")
	return sb.String()
}
