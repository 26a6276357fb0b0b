package email

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/prakharsingh-74/meeting-summarizer/internal/session"
	"github.com/prakharsingh-74/meeting-summarizer/internal/transcript"
)

// addressPattern: no whitespace, exactly one @, at least one dot after it.
var addressPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const attribution = "This summary was generated using AI Meeting Summarizer."

// Draft is the caller-supplied side of an outgoing share.
type Draft struct {
	Recipients []string
	Subject    string
	Message    string
}

// Envelope is the fully assembled outbound message. Never mutated after
// Compose returns it.
type Envelope struct {
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

// Compose validates the draft and assembles the envelope. Invalid recipient
// addresses are silently dropped, preserving the order of the valid ones;
// the caller only hears about them when nothing valid remains.
func Compose(draft Draft, summary session.Summary, tr transcript.Transcript, customPrompt string) (Envelope, error) {
	if len(draft.Recipients) == 0 {
		return Envelope{}, ErrNoRecipients
	}
	if strings.TrimSpace(draft.Subject) == "" {
		return Envelope{}, ErrMissingSubject
	}
	if strings.TrimSpace(summary.CurrentText) == "" {
		return Envelope{}, ErrMissingSummary
	}

	valid := filterAddresses(draft.Recipients)
	if len(valid) == 0 {
		return Envelope{}, ErrInvalidAddresses
	}

	text := buildTextBody(draft.Message, summary.CurrentText, customPrompt, tr.Length)

	return Envelope{
		To:       valid,
		Subject:  draft.Subject,
		TextBody: text,
		HTMLBody: strings.ReplaceAll(text, "\n", "<br>"),
	}, nil
}

func filterAddresses(candidates []string) []string {
	var valid []string
	for _, addr := range candidates {
		if addressPattern.MatchString(addr) {
			valid = append(valid, addr)
		}
	}
	return valid
}

// buildTextBody assembles the body in a fixed order: user message, separator,
// summary heading with metadata, summary text, separator, attribution.
func buildTextBody(message, summaryText, customPrompt string, transcriptLength int) string {
	var sb strings.Builder
	sb.WriteString(message)
	sb.WriteString("\n\n---\n\nMEETING SUMMARY\n")
	if customPrompt != "" {
		sb.WriteString("\nSummary Instructions: ")
		sb.WriteString(customPrompt)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Generated from %d character transcript\n\n", transcriptLength)
	sb.WriteString(summaryText)
	sb.WriteString("\n\n---\n\n")
	sb.WriteString(attribution)
	return strings.TrimSpace(sb.String())
}
