package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoActiveDevice   = errors.New("no active device")
	ErrDeviceNotFound   = errors.New("device not found")
	ErrTrackNotFound    = errors.New("track not found")
	ErrPremiumRequired  = errors.New("spotify premium required")
	ErrRateLimited      = errors.New("rate limited")
	ErrNetworkError     = errors.New("network error")
	ErrTimeout          = errors.New("request timeout")
	ErrConfigNotFound   = errors.New("config file not found")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// Kind classifies an error into one of the six buckets the dispatcher
// and TUI react to differently.
type Kind int

const (
	// Transient is a recoverable failure that should surface as a
	// short-lived status toast and be retried on the next poll.
	Transient Kind = iota
	// AuthExpired means the Spotify access token needs a refresh
	// before the command can be retried.
	AuthExpired
	// Protocol covers malformed or unexpected responses from either
	// the native player or the Spotify Web API.
	Protocol
	// NativePlayer covers failures originating in the embedded
	// player session itself (not the Web API).
	NativePlayer
	// UserActionable requires the user to do something (pick a
	// device, enable Premium, fix config) before retrying helps.
	UserActionable
	// FatalInit means startup cannot continue; main should exit
	// non-zero without ever showing the TUI.
	FatalInit
)

func (k Kind) String() string {
	switch k {
	case Transient:
		return "transient"
	case AuthExpired:
		return "auth_expired"
	case Protocol:
		return "protocol"
	case NativePlayer:
		return "native_player"
	case UserActionable:
		return "user_actionable"
	case FatalInit:
		return "fatal_init"
	default:
		return "unknown"
	}
}

// Classify maps an error into a Kind so callers can decide between a
// transient status toast and a blocking error route.
func Classify(err error) Kind {
	if err == nil {
		return Transient
	}

	if errors.Is(err, ErrNotAuthenticated) {
		return AuthExpired
	}
	if errors.Is(err, ErrNoActiveDevice) || errors.Is(err, ErrDeviceNotFound) ||
		errors.Is(err, ErrPremiumRequired) {
		return UserActionable
	}
	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) {
		return FatalInit
	}
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrNetworkError) || errors.Is(err, ErrTimeout) {
		return Transient
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "not authenticated"),
		strings.Contains(errStr, "invalid access token"),
		strings.Contains(errStr, "token expired"):
		return AuthExpired
	case strings.Contains(errStr, "no active device"),
		strings.Contains(errStr, "device not found"),
		strings.Contains(errStr, "premium required"),
		strings.Contains(errStr, "restricted device"):
		return UserActionable
	case strings.Contains(errStr, "native"), strings.Contains(errStr, "player session"),
		strings.Contains(errStr, "audio backend"), strings.Contains(errStr, "sonos"):
		return NativePlayer
	case strings.Contains(errStr, "decode"), strings.Contains(errStr, "unmarshal"),
		strings.Contains(errStr, "unexpected response"), strings.Contains(errStr, "malformed"):
		return Protocol
	case strings.Contains(errStr, "config"), strings.Contains(errStr, "client_id"):
		return FatalInit
	case strings.Contains(errStr, "network"), strings.Contains(errStr, "timeout"),
		strings.Contains(errStr, "connection refused"), strings.Contains(errStr, "rate limit"),
		strings.Contains(errStr, "429"), strings.Contains(errStr, "500"), strings.Contains(errStr, "server error"):
		return Transient
	}

	return Transient
}

// AppError wraps an error with a user-friendly suggestion.
type AppError struct {
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &AppError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Suggestion != "" {
		return appErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	switch Classify(err) {
	case AuthExpired:
		return "Run 'spotatui auth login' to authenticate with Spotify"
	case UserActionable:
		if errors.Is(err, ErrDeviceNotFound) || strings.Contains(errStr, "device not found") {
			return "Run 'spotatui devices' to see available devices"
		}
		if errors.Is(err, ErrPremiumRequired) || strings.Contains(errStr, "premium required") ||
			strings.Contains(errStr, "restricted device") {
			return "This feature requires Spotify Premium"
		}
		return "Open Spotify on a device and start playing, or use --device to specify one"
	case FatalInit:
		return "Run 'spotatui auth login' to set up your configuration"
	case NativePlayer:
		return "Check that the embedded player's audio backend is available"
	case Protocol:
		return "Spotify returned an unexpected response. Try again in a moment"
	case Transient:
		if strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "429") {
			return "Too many requests. Wait a moment and try again"
		}
		if strings.Contains(errStr, "500") || strings.Contains(errStr, "server error") {
			return "Spotify is having issues. Try again in a moment"
		}
		return "Check your internet connection and try again"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
