package reconcile

import (
	"context"
	"time"

	"github.com/spotatui/spotatui/internal/core"
)

// EnsureDelay is how long Ensure-Playback-Continues waits before its
// confirmation poll, per spec §4.5.
const EnsureDelay = 600 * time.Millisecond

// EnsurePlaybackContinues implements §4.5: after a track naturally ends
// (ConsumeNativeEvents starts it on native EventEndOfTrack), wait briefly
// and poll once more. If the item changed but playback didn't resume on
// its own, mark the state playing and issue a resume through the native
// handle. No resume is sent over the remote API; with no connected
// native handle only the displayed state changes. previousItemID is the
// id playing when the trigger fired.
func EnsurePlaybackContinues(ctx context.Context, st *core.State, deps Deps, previousItemID string) {
	select {
	case <-time.After(EnsureDelay):
	case <-ctx.Done():
		return
	}

	if deps.PollPlayback == nil {
		return
	}
	result, err := deps.PollPlayback(ctx)
	if err != nil || result == nil {
		return
	}

	newItemID := core.ItemID(result.Context.Item)
	stalled := newItemID != "" && newItemID != previousItemID && !result.Context.IsPlaying

	st.Lock()
	mergePoll(st, result, deps)
	if stalled {
		st.Context.IsPlaying = true
	}
	needResume := stalled
	nh := deps.Native
	st.Unlock()

	if !needResume {
		return
	}
	if nh != nil && nh.Connected() {
		_ = nh.Play(ctx)
	}
}
