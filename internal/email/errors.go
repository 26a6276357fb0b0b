package email

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRecipients is returned when the draft has no recipients at all.
	ErrNoRecipients = errors.New("recipients are required")
	// ErrInvalidAddresses is returned when no recipient passes validation.
	ErrInvalidAddresses = errors.New("no valid email addresses provided")
	// ErrMissingSubject is returned when the subject is empty.
	ErrMissingSubject = errors.New("subject is required")
	// ErrMissingSummary is returned when there is no summary text to share.
	ErrMissingSummary = errors.New("summary is required")
)

// DeliveryError wraps an SMTP transport failure: connect, auth, or relay
// rejection. No retry is attempted.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("email delivery: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
