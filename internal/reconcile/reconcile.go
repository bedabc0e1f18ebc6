// Package reconcile implements the reconciliation loop of spec §4.2: the
// five steps run on every UI tick that expire the status message, leave
// the liked-heart animation to the render layer, trigger polls, flush
// pending seeks, and advance displayed progress.
package reconcile

import (
	"context"
	"time"

	"github.com/spotatui/spotatui/internal/core"
	"github.com/spotatui/spotatui/internal/native"
)

// PollResult is what a completed playback poll yields, independent of
// which path (native or remote) answered it.
type PollResult struct {
	Context   core.PlaybackContext
	HasItem   bool
	DeviceIsNative bool
}

// Deps bundles the side-effecting collaborators Tick needs. All fields
// are optional; a nil field degrades that step to a no-op, which keeps
// Tick usable in tests that only want to exercise a subset of the steps.
type Deps struct {
	Native native.Handle

	// PollPlayback fetches current playback state from the remote API.
	// Returning an error is treated as a failed poll (no state mutation,
	// no InFlight reset race — Tick clears PollInFlight regardless).
	PollPlayback func(ctx context.Context) (*PollResult, error)

	// ApplyNativeSeek / ApplyAPISeek issue a single flushed seek once its
	// throttle window has elapsed.
	ApplyNativeSeek func(ctx context.Context, ms uint64) error
	ApplyAPISeek    func(ctx context.Context, ms uint64) error

	// OnTrackChanged fires follow-ups for a newly detected track: lyrics
	// fetch, liked-status check, telemetry increment. Best-effort; errors
	// are not surfaced to Tick's caller.
	OnTrackChanged func(ctx context.Context, trackID string)

	// EnqueueEnsurePlaybackContinues is not called by this package: on
	// EndOfTrack, ConsumeNativeEvents starts EnsurePlaybackContinues
	// directly, and Tick never triggers it.
	EnqueueEnsurePlaybackContinues func()
}

const (
	activeStreamingPollInterval   = 5 * time.Second
	inactiveStreamingPollInterval = time.Second
	resyncWindow                  = 300 * time.Millisecond
	nativeEventRecentWindow       = 2 * time.Second
)

// Loop holds per-instance reconciliation state that doesn't belong in
// core.State: the poll-in-flight flag and the tick period (loop-local
// bookkeeping, not Application State visible to the renderer).
type Loop struct {
	pollInFlight bool
	tickPeriod   time.Duration
}

// New returns a Loop that ticks every period; a non-positive period falls
// back to 16 ms. The TUI passes its `ui --refresh` interval (default
// 1000 ms); config.TUI.RefreshInterval is not read for it.
func New(period time.Duration) *Loop {
	if period <= 0 {
		period = 16 * time.Millisecond
	}
	return &Loop{tickPeriod: period}
}

// Tick runs the five reconciliation steps, in order, against st.
func (l *Loop) Tick(ctx context.Context, now time.Time, st *core.State, deps Deps) {
	st.Lock()
	defer st.Unlock()

	// Step 1: expire status message.
	if st.Status.Expired(now) {
		st.Status = core.StatusMessage{}
	}

	// Step 2: animation frame decrement is owned by the TUI render layer
	// (it has no Application-State-visible effect); nothing to do here.

	// Step 3: maybe poll current playback.
	interval := inactiveStreamingPollInterval
	if st.Native.StreamingActive {
		interval = activeStreamingPollInterval
	}
	st.PollInterval = interval

	shouldPoll := !l.pollInFlight && now.Sub(st.LastPollAt) >= interval
	if shouldPoll && deps.PollPlayback != nil {
		l.pollInFlight = true
		go l.runPoll(ctx, st, deps, now)
	}

	// Step 4: flush pending seeks.
	l.flushPendingSeeks(ctx, now, st, deps)

	// Step 5: advance progress.
	l.advanceProgress(now, st)
}

func (l *Loop) runPoll(ctx context.Context, st *core.State, deps Deps, triggeredAt time.Time) {
	result, err := deps.PollPlayback(ctx)

	st.Lock()
	l.pollInFlight = false
	if err != nil {
		st.Unlock()
		return
	}
	st.LastPollAt = time.Now()
	mergePoll(st, result, deps)
	st.Unlock()
}

// mergePoll implements §4.2's poll-merge rules. Caller must hold the lock.
func mergePoll(st *core.State, result *PollResult, deps Deps) {
	if result == nil {
		return
	}

	newTrackID := core.ItemID(result.Context.Item)
	trackChanged := newTrackID != "" && newTrackID != st.LastTrackID

	nativeActive := st.Native.StreamingActive
	priorContext := st.HasContext
	priorContextCopy := st.Context

	st.Context = result.Context
	st.HasContext = result.HasItem

	// Inside the seek-ignore window, polled progress never overwrites the
	// displayed value.
	if st.Pending.InSeekIgnoreWindow(time.Now(), seekIgnoreWindow) {
		st.Context.ProgressMS = priorContextCopy.ProgressMS
	}

	if nativeActive {
		st.Context.Volume = priorContextCopy.Volume
		st.Context.ShuffleState = priorContextCopy.ShuffleState
		st.Context.RepeatState = priorContextCopy.RepeatState
		if st.Native.IsPlaying != nil {
			st.Context.IsPlaying = *st.Native.IsPlaying
		}
	}

	if !priorContext && result.DeviceIsNative {
		// Apply persisted user shuffle preference on first native poll
		// and proactively write it to the embedded player.
		st.Context.ShuffleState = priorContextCopy.ShuffleState
		if deps.Native != nil {
			go func(on bool) { _ = deps.Native.SetShuffle(context.Background(), on) }(st.Context.ShuffleState)
		}
	}

	if st.Native.TrackInfo != nil {
		if tr, ok := st.Context.Item.(*core.Track); ok && tr.Title == st.Native.TrackInfo.Name {
			st.Native.TrackInfo = nil
		}
	}

	if st.Native.NativeActivationPending && result.DeviceIsNative {
		st.Native.NativeActivationPending = false
	}

	if trackChanged {
		st.LastTrackID = newTrackID
		if deps.OnTrackChanged != nil {
			go deps.OnTrackChanged(context.Background(), newTrackID)
		}
	}
}

func (l *Loop) flushPendingSeeks(ctx context.Context, now time.Time, st *core.State, deps Deps) {
	if ms := st.Pending.PendingNativeSeekMS; ms != nil && now.Sub(st.Pending.LastNativeSeekAt) >= nativeSeekThrottle {
		target := *ms
		st.Pending.PendingNativeSeekMS = nil
		st.Pending.LastNativeSeekAt = now
		if deps.ApplyNativeSeek != nil {
			go func() { _ = deps.ApplyNativeSeek(ctx, target) }()
		}
	}
	if ms := st.Pending.PendingAPISeekMS; ms != nil && now.Sub(st.Pending.LastAPISeekAt) >= apiSeekThrottle {
		target := *ms
		st.Pending.PendingAPISeekMS = nil
		if deps.ApplyAPISeek != nil {
			go func() { _ = deps.ApplyAPISeek(ctx, target) }()
		}
	}
	if st.Pending.InSeekIgnoreWindow(now, seekIgnoreWindow) {
		return
	}
	st.Pending.ClearSeekTarget()
}

func (l *Loop) advanceProgress(now time.Time, st *core.State) {
	if !st.HasContext || !st.Context.IsPlaying {
		return
	}

	switch {
	case st.Native.StreamingActive && st.Native.RecentEvent(now, nativeEventRecentWindow):
		// native events own progress
	case st.Pending.InSeekIgnoreWindow(now, seekIgnoreWindow):
		// drop polled progress during the ignore window
	case now.Sub(st.LastPollAt) <= resyncWindow:
		// resync handled by mergePoll already having set ProgressMS
	default:
		duration := st.Context.DurationMS()
		next := st.Context.ProgressMS + uint64(l.tickPeriod.Milliseconds())
		if duration > 0 && next > duration {
			next = duration
		}
		st.Context.ProgressMS = next
	}
}

// unexported copies of internal/router's tuning constants, kept in sync by hand.
const (
	nativeSeekThrottle = 50 * time.Millisecond
	apiSeekThrottle    = 200 * time.Millisecond
	seekIgnoreWindow   = 500 * time.Millisecond
)
