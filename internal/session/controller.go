package session

import (
	"context"
	"sync"

	"github.com/prakharsingh-74/meeting-summarizer/internal/transcript"
)

// Phase is the top-level workflow phase.
type Phase int

const (
	Idle Phase = iota
	Loaded
	Summarized
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loaded:
		return "loaded"
	case Summarized:
		return "summarized"
	default:
		return "unknown"
	}
}

// Generator produces a summary for a transcript. Implemented by the
// summarizer package; declared here so the controller depends only on what
// it calls.
type Generator interface {
	Generate(ctx context.Context, tr transcript.Transcript, customPrompt string) (Summary, error)
}

// Controller owns one upload-summarize-edit workflow:
// Idle -> Loaded -> Summarized, with Reset back to Idle from anywhere.
type Controller struct {
	mu           sync.Mutex
	gen          Generator
	phase        Phase
	transcript   transcript.Transcript
	customPrompt string
	edit         *EditSession
}

// NewController creates a controller in Idle.
func NewController(gen Generator) *Controller {
	return &Controller{gen: gen}
}

// Phase returns the current workflow phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Transcript returns the loaded transcript.
func (c *Controller) Transcript() transcript.Transcript {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transcript
}

// CustomPrompt returns the instructions used for the last generation.
func (c *Controller) CustomPrompt() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.customPrompt
}

// LoadTranscript stores an ingested transcript and moves to Loaded. Loading
// a new transcript discards any previous summary.
func (c *Controller) LoadTranscript(tr transcript.Transcript) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transcript = tr
	c.edit = nil
	c.phase = Loaded
}

// Generate asks the summarizer for a summary of the loaded transcript and
// starts an edit session in Viewing. A failure leaves the phase unchanged.
func (c *Controller) Generate(ctx context.Context, customPrompt string) (Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == Idle {
		return Summary{}, ErrInvalidState
	}

	summary, err := c.gen.Generate(ctx, c.transcript, customPrompt)
	if err != nil {
		return Summary{}, err
	}

	c.customPrompt = customPrompt
	c.edit = NewEditSession(summary)
	c.phase = Summarized
	return summary, nil
}

// Edit exposes the edit session while Summarized.
func (c *Controller) Edit() (*EditSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != Summarized || c.edit == nil {
		return nil, ErrInvalidState
	}
	return c.edit, nil
}

// Reset discards the transcript and summary and returns to Idle. Valid in
// any phase.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transcript = transcript.Transcript{}
	c.customPrompt = ""
	c.edit = nil
	c.phase = Idle
}
