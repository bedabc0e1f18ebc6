package native

import (
	"context"
	"time"

	"github.com/spotatui/spotatui/internal/core"
)

// Subscriber is the native event subscriber of §4.4, adapted from the
// teacher's internal/tail.Watcher: in the absence of a GENA/UPnP eventing
// subscription, it polls the underlying Sonos coordinator's transport
// state and diffs successive snapshots into the exact event set the
// router and reconciliation loop expect from a real embedded player.
type Subscriber struct {
	getState func(ctx context.Context) (*core.PlaybackState, error)
	dest     chan<- Event
	interval time.Duration
}

// NewSubscriber builds a subscriber that polls getState every interval
// and publishes diffs to dest (normally a Handle's own events channel).
func NewSubscriber(getState func(ctx context.Context) (*core.PlaybackState, error), dest chan<- Event, interval time.Duration) *Subscriber {
	if interval <= 0 {
		interval = time.Second
	}
	return &Subscriber{getState: getState, dest: dest, interval: interval}
}

// Run polls until ctx is cancelled. Intended to run as its own goroutine.
func (s *Subscriber) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var prev *core.PlaybackState

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			curr, err := s.getState(ctx)
			if err != nil || curr == nil {
				continue
			}
			for _, ev := range diff(prev, curr) {
				select {
				case s.dest <- ev:
				default:
					// drop rather than block the polling loop
				}
			}
			prev = curr
		}
	}
}

func diff(prev, curr *core.PlaybackState) []Event {
	now := time.Now()
	var events []Event

	if prev == nil {
		if curr.HasTrack() {
			events = append(events, Event{
				Kind: EventTrackChanged,
				At:   now,
				TrackInfo: &core.NativeTrackInfo{
					Name:     curr.Track.Title,
					Artist:   curr.Track.Artist,
					Duration: curr.Track.Duration,
				},
			})
		}
		return events
	}

	trackChanged := (prev.Track == nil) != (curr.Track == nil) ||
		(prev.Track != nil && curr.Track != nil && prev.Track.URI != curr.Track.URI)

	if trackChanged {
		if prev.Track != nil && naturallyCompleted(prev) {
			events = append(events, Event{Kind: EventEndOfTrack, At: now, PrevItemID: prev.Track.ID})
		}
		if curr.Track != nil {
			events = append(events, Event{
				Kind: EventTrackChanged,
				At:   now,
				TrackInfo: &core.NativeTrackInfo{
					Name:     curr.Track.Title,
					Artist:   curr.Track.Artist,
					Duration: curr.Track.Duration,
				},
			})
		}
	} else {
		events = append(events, Event{Kind: EventPositionChanged, At: now, PositionMS: uint64(curr.Progress.Milliseconds())})
	}

	if prev.IsPlaying != curr.IsPlaying {
		events = append(events, Event{Kind: EventPlaybackStateChanged, At: now, IsPlaying: curr.IsPlaying})
	}

	if prev.Volume != curr.Volume {
		events = append(events, Event{Kind: EventVolumeChanged, At: now, Volume: curr.Volume})
	}

	return events
}

// naturallyCompleted mirrors the teacher's wasCompleted heuristic: a
// track is considered to have ended on its own, rather than been
// skipped, once progress crosses 95% of its duration.
func naturallyCompleted(state *core.PlaybackState) bool {
	if state.Track == nil || state.Track.Duration == 0 {
		return false
	}
	threshold := float64(state.Track.Duration) * 0.95
	return float64(state.Progress) >= threshold
}
