package reconcile

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/spotatui/spotatui/internal/core"
)

func freshState(t *testing.T) *core.State {
	t.Helper()
	return core.NewState()
}

// TestMergePoll_S3StalePollDuringStreamingActive covers scenario S3: a
// poll completing with is_playing=true must not override a native pause
// that happened moments earlier, because streaming_active makes the
// native shadow authoritative for {is_playing, volume, shuffle, repeat}.
func TestMergePoll_S3StalePollDuringStreamingActive(t *testing.T) {
	st := freshState(t)
	st.Native.StreamingActive = true
	playing := false
	st.Native.IsPlaying = &playing // user paused via native path

	st.HasContext = true
	st.Context.Volume = 42
	st.Context.ShuffleState = true
	st.Context.RepeatState = core.RepeatTrack

	result := &PollResult{
		HasItem: true,
		Context: core.PlaybackContext{
			IsPlaying:    true, // stale: poll thinks it's playing
			Volume:       77,
			ShuffleState: false,
			RepeatState:  core.RepeatOff,
		},
	}

	mergePoll(st, result, Deps{})

	if st.Context.IsPlaying {
		t.Fatalf("context.IsPlaying = true, want false (native shadow should win)")
	}
	if st.Context.Volume != 42 {
		t.Fatalf("context.Volume = %d, want preserved 42", st.Context.Volume)
	}
	if !st.Context.ShuffleState {
		t.Fatalf("context.ShuffleState = false, want preserved true")
	}
	if st.Context.RepeatState != core.RepeatTrack {
		t.Fatalf("context.RepeatState = %v, want preserved RepeatTrack", st.Context.RepeatState)
	}
}

// TestTick_Invariant3_RecentNativeEventWinsOverPoll covers quantified
// invariant 3: for any state where streaming_active is true and the last
// native event is within 2s, a reconciliation tick does not change
// progress_ms from the native value.
func TestTick_Invariant3_RecentNativeEventWinsOverPoll(t *testing.T) {
	st := freshState(t)
	st.HasContext = true
	st.Context.IsPlaying = true
	st.Context.ProgressMS = 55000
	st.Native.StreamingActive = true
	st.Native.LastEventAt = time.Now()

	loop := New(16 * time.Millisecond)
	loop.Tick(context.Background(), time.Now(), st, Deps{})

	if st.Context.ProgressMS != 55000 {
		t.Fatalf("ProgressMS = %d, want unchanged 55000 (native event recent)", st.Context.ProgressMS)
	}
}

// TestTick_Invariant2_SeekIgnoreWindowBlocksPolledProgress covers
// quantified invariant 2: while the seek-ignore window is open, a poll's
// progress_ms does not overwrite the displayed progress.
func TestTick_Invariant2_SeekIgnoreWindowBlocksPolledProgress(t *testing.T) {
	st := freshState(t)
	st.HasContext = true
	st.Context.IsPlaying = true
	st.Context.ProgressMS = 20000
	now := time.Now()
	target := uint64(20000)
	st.Pending.SeekTargetMS = &target
	st.Pending.LastAPISeekAt = now

	// A poll landing inside the window carries stale progress.
	mergePoll(st, &PollResult{Context: core.PlaybackContext{IsPlaying: true, ProgressMS: 5000}, HasItem: true}, Deps{})

	loop := New(16 * time.Millisecond)
	loop.Tick(context.Background(), now.Add(100*time.Millisecond), st, Deps{})

	if st.Context.ProgressMS != 20000 {
		t.Fatalf("ProgressMS = %d, want unchanged 20000 during seek-ignore window", st.Context.ProgressMS)
	}
}

// TestFlushPendingSeeks_S2FlushesLatestTargetOnce covers the second half
// of scenario S2: once the native throttle window elapses, the single
// latest pending target is flushed exactly once.
func TestFlushPendingSeeks_S2FlushesLatestTargetOnce(t *testing.T) {
	st := freshState(t)
	target := uint64(110000)
	st.Pending.PendingNativeSeekMS = &target
	st.Pending.LastNativeSeekAt = time.Now().Add(-100 * time.Millisecond)

	var mu sync.Mutex
	var flushed []uint64
	done := make(chan struct{}, 1)

	deps := Deps{
		ApplyNativeSeek: func(ctx context.Context, ms uint64) error {
			mu.Lock()
			flushed = append(flushed, ms)
			mu.Unlock()
			done <- struct{}{}
			return nil
		},
	}

	loop := New(16 * time.Millisecond)
	loop.Tick(context.Background(), time.Now(), st, deps)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ApplyNativeSeek was never called")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(flushed) != 1 || flushed[0] != 110000 {
		t.Fatalf("flushed = %v, want exactly one call with 110000", flushed)
	}
	if st.Pending.PendingNativeSeekMS != nil {
		t.Fatalf("PendingNativeSeekMS = %v, want cleared after flush", st.Pending.PendingNativeSeekMS)
	}
}

func TestAdvanceProgress_StepsForwardWhenPlayingAndIdle(t *testing.T) {
	st := freshState(t)
	st.HasContext = true
	st.Context.IsPlaying = true
	st.Context.Item = &core.Track{ID: "t1", Duration: 10 * time.Second}
	st.Context.ProgressMS = 1000
	st.LastPollAt = time.Now().Add(-time.Hour)

	loop := New(100 * time.Millisecond)
	loop.advanceProgress(time.Now(), st)

	if st.Context.ProgressMS != 1100 {
		t.Fatalf("ProgressMS = %d, want 1100 (advanced by tick period)", st.Context.ProgressMS)
	}
}

func TestAdvanceProgress_ClampsAtDuration(t *testing.T) {
	st := freshState(t)
	st.HasContext = true
	st.Context.IsPlaying = true
	st.Context.Item = &core.Track{ID: "t1", Duration: 1500 * time.Millisecond}
	st.Context.ProgressMS = 1450
	st.LastPollAt = time.Now().Add(-time.Hour)

	loop := New(100 * time.Millisecond)
	loop.advanceProgress(time.Now(), st)

	if st.Context.ProgressMS != 1500 {
		t.Fatalf("ProgressMS = %d, want clamped to duration 1500", st.Context.ProgressMS)
	}
}
