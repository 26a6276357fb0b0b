package session

import (
	"errors"
	"time"
)

// ErrInvalidState is returned when an operation is called outside the state
// it is valid in.
var ErrInvalidState = errors.New("operation not valid in current state")

// State is the edit-session state.
type State int

const (
	Viewing State = iota
	Editing
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	default:
		return "unknown"
	}
}

// EditSession drives the view/edit lifecycle of one Summary. Cancel and Undo
// roll back to the snapshot taken when editing began, not to the first
// generated text.
type EditSession struct {
	state   State
	summary Summary
	now     func() time.Time
}

// NewEditSession starts a session in Viewing with the generated summary.
func NewEditSession(summary Summary) *EditSession {
	return newEditSession(summary, time.Now)
}

func newEditSession(summary Summary, now func() time.Time) *EditSession {
	return &EditSession{
		state:   Viewing,
		summary: summary,
		now:     now,
	}
}

// State returns the current state.
func (e *EditSession) State() State {
	return e.state
}

// Summary returns a copy of the current summary.
func (e *EditSession) Summary() Summary {
	return e.summary
}

// BeginEdit enters Editing and snapshots the current text as the rollback
// point for Undo and Cancel.
func (e *EditSession) BeginEdit() error {
	if e.state != Viewing {
		return ErrInvalidState
	}
	e.summary.OriginalText = e.summary.CurrentText
	e.state = Editing
	return nil
}

// UpdateText replaces the working text. Only valid while editing.
func (e *EditSession) UpdateText(text string) error {
	if e.state != Editing {
		return ErrInvalidState
	}
	e.summary.CurrentText = text
	return nil
}

// Undo discards edits made since BeginEdit but stays in Editing.
func (e *EditSession) Undo() error {
	if e.state != Editing {
		return ErrInvalidState
	}
	e.summary.CurrentText = e.summary.OriginalText
	return nil
}

// Save commits the working text, stamps the save time, and returns to Viewing.
func (e *EditSession) Save() error {
	if e.state != Editing {
		return ErrInvalidState
	}
	e.summary.OriginalText = e.summary.CurrentText
	e.summary.LastSavedAt = e.now()
	e.state = Viewing
	return nil
}

// Cancel leaves Editing. With unsaved changes the caller-supplied confirm
// decides: true reverts to the snapshot and returns to Viewing, false leaves
// the session untouched. A clean session returns to Viewing without asking.
// The return value reports whether the session left Editing.
func (e *EditSession) Cancel(confirm func() bool) (bool, error) {
	if e.state != Editing {
		return false, ErrInvalidState
	}
	if e.summary.IsDirty() {
		if confirm == nil || !confirm() {
			return false, nil
		}
		e.summary.CurrentText = e.summary.OriginalText
	}
	e.state = Viewing
	return true, nil
}
