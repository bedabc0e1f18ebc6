package core

import "time"

// StatusMessage is the transient toast shown for transient errors and
// informational notices (e.g. "Spotify rate limit hit. Retrying
// automatically."). It carries its own expiry so the reconciliation
// loop can clear it without a separate timer.
type StatusMessage struct {
	Text      string
	ExpiresAt time.Time
}

// NewStatusMessage returns a message that expires ttl from now.
func NewStatusMessage(now time.Time, text string, ttl time.Duration) StatusMessage {
	return StatusMessage{Text: text, ExpiresAt: now.Add(ttl)}
}

// Expired reports whether the message should be cleared as of now.
func (m StatusMessage) Expired(now time.Time) bool {
	return m.Text == "" || !now.Before(m.ExpiresAt)
}

// Dialog represents the state of a confirmation prompt (e.g. "really
// quit?"), the one non-trivial modal affordance carried over from
// original_source/src/app.rs. Non-nil while a dialog is showing.
type Dialog struct {
	Prompt string
	// OnConfirmExit is true when confirming should terminate the
	// process (the quit-confirmation use case); other dialog kinds may
	// be added without changing this shape.
	OnConfirmExit bool
}
