package email

import "context"

// Result reports what the deliverer did with an envelope.
type Result struct {
	Demo       bool
	Message    string
	Recipients []string
	// Preview is set in demo mode only; it carries the envelope that would
	// have been sent.
	Preview *Envelope
}

// Deliverer sends a composed envelope. Selected once at startup: a live SMTP
// client when relay settings are configured, otherwise a demo previewer.
type Deliverer interface {
	Send(ctx context.Context, env Envelope) (Result, error)
}
