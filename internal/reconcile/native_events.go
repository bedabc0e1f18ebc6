package reconcile

import (
	"context"
	"time"

	"github.com/spotatui/spotatui/internal/core"
	"github.com/spotatui/spotatui/internal/native"
)

// ConsumeNativeEvents drains nh's event stream (§4.4) until ctx is
// cancelled or the channel closes, folding each event into the
// NativeShadow and, for EventEndOfTrack, kicking off
// EnsurePlaybackContinues (§4.5). Intended to run as its own goroutine,
// started once alongside the embedded player's event subscriber.
func ConsumeNativeEvents(ctx context.Context, st *core.State, nh native.Handle, deps Deps) {
	events := nh.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			applyNativeEvent(ctx, st, deps, ev)
		}
	}
}

func applyNativeEvent(ctx context.Context, st *core.State, deps Deps, ev native.Event) {
	st.Lock()
	st.Native.LastEventAt = ev.At

	switch ev.Kind {
	case native.EventTrackChanged:
		st.Native.TrackInfo = ev.TrackInfo
		if st.HasContext {
			st.Context.ProgressMS = 0
		}
		// The embedded player only reports name/artist/duration, not a
		// remote track ID, so the real follow-up metadata fetch has to
		// go through the next poll rather than straight to
		// deps.OnTrackChanged: backdate LastPollAt so Tick's step 3
		// polls immediately instead of waiting out the streaming
		// interval, and mergePoll fires OnTrackChanged once it resolves
		// the new item.
		st.LastPollAt = time.Time{}
	case native.EventPositionChanged:
		if st.HasContext {
			st.Context.ProgressMS = ev.PositionMS
		}
	case native.EventPlaybackStateChanged:
		playing := ev.IsPlaying
		st.Native.IsPlaying = &playing
		if st.HasContext {
			st.Context.IsPlaying = playing
		}
	case native.EventVolumeChanged:
		if st.HasContext {
			st.Context.Volume = ev.Volume
		}
	}

	prevItemID := ev.PrevItemID
	isEndOfTrack := ev.Kind == native.EventEndOfTrack
	st.Unlock()

	if isEndOfTrack {
		go EnsurePlaybackContinues(ctx, st, deps, prevItemID)
	}
}
