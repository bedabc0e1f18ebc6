// Package native abstracts the embedded (in-process) Spotify Connect
// player the command router and reconciliation loop treat as a black
// box per spec §2/§4.3/§4.4. No Go librespot binding exists in the
// reference corpus this module was built from, so Handle is concretely
// backed by Sonos UPnP/SOAP control (internal/sonos) — a real
// LAN-resident playback sink, not a cloud API — wrapped behind the same
// contract a true embedded-session implementation would expose. See
// DESIGN.md for the full justification.
package native

import (
	"context"
	"time"

	"github.com/spotatui/spotatui/internal/core"
)

// LoadRequest mirrors the remote API's "start/resume playback" body: a
// context uri, an ad-hoc uri list, or neither ("resume"), plus an
// optional offset. Built by the router exactly as specified in §4.1's
// StartPlayback contract.
type LoadRequest struct {
	ContextURI string
	URIs       []string
	Offset     *core.PlaybackOffset
}

// Handle is the embedded player's primitive surface. All methods are
// expected to be non-blocking enough for the sub-50ms scrubbing
// responsiveness §9 calls for, and internally thread-safe: the command
// router may call them without holding the Application State lock (§5).
type Handle interface {
	// Connected reports whether the embedded player session is usable at
	// all. When false, the router always chooses the remote path (§4.1
	// rule 1).
	Connected() bool

	// Name is the embedded player's declared Spotify Connect device name,
	// used for the case-insensitive device-name match in §4.1 rule 4 and
	// the device-list lookup in §4.3 step 4.
	Name() string

	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	Seek(ctx context.Context, positionMS uint64) error
	SetVolume(ctx context.Context, percent int) error
	SetShuffle(ctx context.Context, on bool) error
	SetRepeat(ctx context.Context, mode core.RepeatState) error
	Load(ctx context.Context, req LoadRequest) error

	// TransferToSelf and Activate implement the two device-activation
	// primitives of §4.3 step 2: "transfer to self" (no target device;
	// claim the Connect session) then "activate" (become the selected
	// player).
	TransferToSelf(ctx context.Context) error
	Activate(ctx context.Context) error

	// Events returns the channel of native events (§4.4). The channel is
	// not closed when the subscriber stops.
	Events() <-chan Event
}

// EventKind enumerates the native event stream per §4.4.
type EventKind int

const (
	EventTrackChanged EventKind = iota
	EventPositionChanged
	EventPlaybackStateChanged
	EventVolumeChanged
	EventEndOfTrack
)

// Event is one message from the embedded player's event stream.
type Event struct {
	Kind EventKind
	At   time.Time

	TrackInfo  *core.NativeTrackInfo // EventTrackChanged
	PositionMS uint64                // EventPositionChanged
	IsPlaying  bool                  // EventPlaybackStateChanged
	Volume     int                   // EventVolumeChanged
	PrevItemID string                // EventEndOfTrack
}
