// Package router implements the command router of spec §4.1: given a
// typed core.Command and the current Application State, decide whether
// the embedded (native) player or the remote Web API should carry it
// out, apply the command's optimistic state mutation, and issue the
// fast-path call directly when the native player is the active sink.
package router

import (
	"context"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/spotatui/spotatui/internal/core"
	"github.com/spotatui/spotatui/internal/native"
)

// Action is the outcome of routing a command, mirroring spec §4.1's
// Action ∈ {NativeFast, NativeQueued, RemoteApi, NoOp}.
type Action int

const (
	// NoOp means the command was fully handled (optimistic mutation
	// applied, possibly queued in core.PendingIntent for a later
	// reconcile flush); the caller has nothing further to do.
	NoOp Action = iota
	// NativeFast means the router already issued the call against the
	// native.Handle; the caller has nothing further to do.
	NativeFast
	// NativeQueued means a native call was recorded in PendingIntent for
	// the reconciliation loop to flush once its throttle window elapses.
	NativeQueued
	// RemoteApi means the caller (the I/O dispatcher) must issue the
	// equivalent call against the remote Spotify client; the optimistic
	// state mutation has already been applied.
	RemoteApi
)

// Tuning constants named per spec §9's open questions; values chosen to
// satisfy scenarios S2/S3 and documented in DESIGN.md.
const (
	NativeSeekThrottle = 50 * time.Millisecond
	APISeekThrottle    = 200 * time.Millisecond
	SeekIgnoreWindow   = 500 * time.Millisecond
	SkipResumeDelay    = 300 * time.Millisecond

	// PreviousRestartBoundaryMS is the progress at or above which
	// Previous restarts the current track instead of skipping back.
	PreviousRestartBoundaryMS = 3000

	// RecentTransferWindow is the §4.3 "prior transfer occurred within"
	// guard against re-entrant activation attempts.
	RecentTransferWindow = 5 * time.Second

	// ActivationPollBackdate is how far §4.3 step 3 rewinds last_poll_at
	// so the very next reconciliation tick triggers a fresh poll.
	ActivationPollBackdate = 6 * time.Second
)

// Router holds the per-seek-class rate limiters that replace hand-rolled
// timestamp bookkeeping for throttling (golang.org/x/time/rate, burst 1:
// exactly one token is available, refilling at the throttle interval, so
// Allow() is true at most once per window — the token-bucket idiom for a
// "no more than one per N ms" throttle).
type Router struct {
	nativeSeekLimiter *rate.Limiter
	apiSeekLimiter    *rate.Limiter
}

// New returns a Router with fresh throttles.
func New() *Router {
	return &Router{
		nativeSeekLimiter: rate.NewLimiter(rate.Every(NativeSeekThrottle), 1),
		apiSeekLimiter:    rate.NewLimiter(rate.Every(APISeekThrottle), 1),
	}
}

// isNativeActive implements the exact 5-step decision rule of §4.1.
func isNativeActive(st *core.State, nh native.Handle) bool {
	if nh == nil || !nh.Connected() {
		return false
	}
	if st.Native.StreamingActive && !st.HasContext {
		return true
	}
	if st.HasContext && st.Context.Device != nil && st.Context.Device.ID == deref(st.Native.DeviceID) {
		return true
	}
	if st.HasContext && st.Context.Device != nil && strings.EqualFold(st.Context.Device.Name, nh.Name()) {
		return true
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Route applies cmd to st, calling nh directly on the native fast path.
// ctx bounds any direct native call the router makes.
func (r *Router) Route(ctx context.Context, cmd core.Command, st *core.State, nh native.Handle) Action {
	st.Lock()
	defer st.Unlock()

	switch cmd.Kind {
	case core.CmdTogglePlayback:
		return r.togglePlayback(ctx, st, nh)
	case core.CmdNext:
		return r.skip(ctx, st, nh, true)
	case core.CmdPrevious:
		return r.skip(ctx, st, nh, false)
	case core.CmdSeek:
		return r.seek(ctx, cmd, st, nh)
	case core.CmdVolume:
		return r.volume(ctx, cmd, st, nh)
	case core.CmdShuffle:
		return r.shuffle(ctx, st, nh)
	case core.CmdRepeat:
		return r.repeat(ctx, st, nh)
	case core.CmdStartPlayback:
		return r.startPlayback(ctx, cmd, st, nh)
	case core.CmdTransferDevice:
		return r.transferDevice(ctx, cmd, st, nh)
	case core.CmdAddToQueue:
		// Optimistic update for queue add is a no-op on context itself;
		// always goes through the remote path per spec §6's API surface
		// (native queue manipulation is not part of the activation
		// protocol's scope).
		return RemoteApi
	case core.CmdToggleLike:
		st.Selections.ToggleTrack(cmd.TargetID)
		return RemoteApi
	default:
		return NoOp
	}
}
