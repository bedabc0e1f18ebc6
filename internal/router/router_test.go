package router

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/spotatui/spotatui/internal/core"
	"github.com/spotatui/spotatui/internal/native"
)

// fakeHandle is a minimal in-memory native.Handle recording every call so
// tests can assert on exactly what the router issued.
type fakeHandle struct {
	mu sync.Mutex

	connected bool
	name      string

	playCalls     int
	pauseCalls    int
	nextCalls     int
	prevCalls     int
	seekCalls     []uint64
	volumeCalls   []int
	shuffleCalls  []bool
	repeatCalls   []core.RepeatState
	loadCalls     []native.LoadRequest
	transferCalls int
	activateCalls int

	events chan native.Event
}

func newFakeHandle(connected bool, name string) *fakeHandle {
	return &fakeHandle{connected: connected, name: name, events: make(chan native.Event)}
}

func (f *fakeHandle) Connected() bool { return f.connected }
func (f *fakeHandle) Name() string    { return f.name }

func (f *fakeHandle) Play(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playCalls++
	return nil
}

func (f *fakeHandle) Pause(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauseCalls++
	return nil
}

func (f *fakeHandle) Next(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextCalls++
	return nil
}

func (f *fakeHandle) Previous(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prevCalls++
	return nil
}

func (f *fakeHandle) Seek(ctx context.Context, positionMS uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seekCalls = append(f.seekCalls, positionMS)
	return nil
}

func (f *fakeHandle) SetVolume(ctx context.Context, percent int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volumeCalls = append(f.volumeCalls, percent)
	return nil
}

func (f *fakeHandle) SetShuffle(ctx context.Context, on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shuffleCalls = append(f.shuffleCalls, on)
	return nil
}

func (f *fakeHandle) SetRepeat(ctx context.Context, mode core.RepeatState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.repeatCalls = append(f.repeatCalls, mode)
	return nil
}

func (f *fakeHandle) Load(ctx context.Context, req native.LoadRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadCalls = append(f.loadCalls, req)
	return nil
}

func (f *fakeHandle) TransferToSelf(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transferCalls++
	return nil
}

func (f *fakeHandle) Activate(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activateCalls++
	return nil
}

func (f *fakeHandle) Events() <-chan native.Event { return f.events }

func (f *fakeHandle) counts() (play, pause, next, prev int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.playCalls, f.pauseCalls, f.nextCalls, f.prevCalls
}

// nativeActiveState returns a State set up so isNativeActive(st, nh) is
// true: streaming is active and there's no remote context yet.
func nativeActiveState() *core.State {
	st := core.NewState()
	st.Native.StreamingActive = true
	st.HasContext = false
	return st
}

func TestTogglePlayback_NativeFastWhenStreamingActive(t *testing.T) {
	st := nativeActiveState()
	nh := newFakeHandle(true, "spotatui")
	r := New()

	action := r.Route(context.Background(), core.Command{Kind: core.CmdTogglePlayback}, st, nh)
	if action != NativeFast {
		t.Fatalf("action = %v, want NativeFast", action)
	}
	play, pause, _, _ := nh.counts()
	if play != 1 || pause != 0 {
		t.Fatalf("play=%d pause=%d, want play=1 pause=0", play, pause)
	}
	if st.Native.IsPlaying == nil || !*st.Native.IsPlaying {
		t.Fatalf("st.Native.IsPlaying = %v, want true", st.Native.IsPlaying)
	}
}

func TestTogglePlayback_RemoteApiWhenNoNativeHandle(t *testing.T) {
	st := core.NewState()
	r := New()

	action := r.Route(context.Background(), core.Command{Kind: core.CmdTogglePlayback}, st, nil)
	if action != RemoteApi {
		t.Fatalf("action = %v, want RemoteApi", action)
	}
}

func TestVolumeClampsAtBounds(t *testing.T) {
	st := core.NewState()
	st.HasContext = true
	st.Context.Volume = 95
	r := New()

	r.Route(context.Background(), core.Command{Kind: core.CmdVolume, VolumeMode: core.VolumeDelta, VolumeStep: 50}, st, nil)
	if st.Context.Volume != 100 {
		t.Fatalf("volume = %d, want clamped to 100", st.Context.Volume)
	}

	st.Context.Volume = 5
	r.Route(context.Background(), core.Command{Kind: core.CmdVolume, VolumeMode: core.VolumeDelta, VolumeStep: -50}, st, nil)
	if st.Context.Volume != 0 {
		t.Fatalf("volume = %d, want clamped to 0", st.Context.Volume)
	}
}

func TestShuffleToggles(t *testing.T) {
	st := core.NewState()
	st.HasContext = true
	r := New()

	r.Route(context.Background(), core.Command{Kind: core.CmdShuffle}, st, nil)
	if !st.Context.ShuffleState {
		t.Fatalf("shuffle state = false after first toggle, want true")
	}
	r.Route(context.Background(), core.Command{Kind: core.CmdShuffle}, st, nil)
	if st.Context.ShuffleState {
		t.Fatalf("shuffle state = true after second toggle, want false")
	}
}

// TestRepeatThreeCycleAppliesRoundTrip checks the Off -> Context -> Track
// -> Off cycle named by spec's round-trip property.
func TestRepeatThreeCycleAppliesRoundTrip(t *testing.T) {
	st := core.NewState()
	st.HasContext = true
	r := New()

	want := []core.RepeatState{core.RepeatContext, core.RepeatTrack, core.RepeatOff}
	for i, w := range want {
		r.Route(context.Background(), core.Command{Kind: core.CmdRepeat}, st, nil)
		if st.Context.RepeatState != w {
			t.Fatalf("cycle step %d: repeat = %v, want %v", i, st.Context.RepeatState, w)
		}
	}
}

// TestPreviousBoundary covers the named boundary behavior: Previous at
// progress_ms = 2999 skips track; at 3000 it restarts the current track.
func TestPreviousBoundary(t *testing.T) {
	t.Run("2999ms skips back", func(t *testing.T) {
		st := nativeActiveState()
		st.HasContext = true
		st.Context.Device = &core.Device{Name: "spotatui"}
		st.Context.ProgressMS = 2999
		nh := newFakeHandle(true, "spotatui")
		r := New()

		action := r.Route(context.Background(), core.Command{Kind: core.CmdPrevious}, st, nh)
		if action != NativeFast {
			t.Fatalf("action = %v, want NativeFast", action)
		}
		_, _, _, prev := nh.counts()
		if prev != 1 {
			t.Fatalf("prevCalls = %d, want 1 (should skip back)", prev)
		}
		if len(nh.seekCalls) != 0 {
			t.Fatalf("seekCalls = %v, want none (should not restart)", nh.seekCalls)
		}
	})

	t.Run("3000ms restarts current track", func(t *testing.T) {
		st := nativeActiveState()
		st.HasContext = true
		st.Context.Device = &core.Device{Name: "spotatui"}
		st.Context.ProgressMS = PreviousRestartBoundaryMS
		nh := newFakeHandle(true, "spotatui")
		r := New()

		action := r.Route(context.Background(), core.Command{Kind: core.CmdPrevious}, st, nh)
		if action != NativeFast {
			t.Fatalf("action = %v, want NativeFast", action)
		}
		_, _, _, prev := nh.counts()
		if prev != 0 {
			t.Fatalf("prevCalls = %d, want 0 (should restart, not skip)", prev)
		}
		if len(nh.seekCalls) != 1 || nh.seekCalls[0] != 0 {
			t.Fatalf("seekCalls = %v, want [0]", nh.seekCalls)
		}
		if st.Context.ProgressMS != 0 {
			t.Fatalf("ProgressMS = %d, want reset to 0", st.Context.ProgressMS)
		}
	})
}

// TestSeekPastDurationTranslatesToNext covers the named boundary behavior.
func TestSeekPastDurationTranslatesToNext(t *testing.T) {
	st := nativeActiveState()
	st.HasContext = true
	st.Context.Device = &core.Device{Name: "spotatui"}
	st.Context.Item = &core.Track{ID: "t1", Duration: 200 * time.Second}
	st.Context.ProgressMS = 190000
	nh := newFakeHandle(true, "spotatui")
	r := New()

	action := r.Route(context.Background(), core.Command{
		Kind: core.CmdSeek, SeekMode: core.SeekDelta, SeekMS: 20000,
	}, st, nh)

	if action != NativeFast {
		t.Fatalf("action = %v, want NativeFast (routed through skip)", action)
	}
	_, _, next, _ := nh.counts()
	if next != 1 {
		t.Fatalf("nextCalls = %d, want 1", next)
	}
}

// TestSeekBurst_S2 covers scenario S2: 20 rapid +5000ms seeks land the
// optimistic progress at 110000 immediately, while the native throttle
// (burst size 1) only lets the first one through directly; the rest are
// recorded as a single pending target for reconcile's flush step.
func TestSeekBurst_S2(t *testing.T) {
	st := nativeActiveState()
	st.HasContext = true
	st.Context.Device = &core.Device{Name: "spotatui"}
	st.Context.Item = &core.Track{ID: "t1", Duration: 200 * time.Second}
	st.Context.ProgressMS = 10000
	nh := newFakeHandle(true, "spotatui")
	r := New()

	var directNativeSeeks int
	for i := 0; i < 20; i++ {
		action := r.Route(context.Background(), core.Command{
			Kind: core.CmdSeek, SeekMode: core.SeekDelta, SeekMS: 5000,
		}, st, nh)
		if action == NativeFast {
			directNativeSeeks++
		}
	}

	if st.Context.ProgressMS != 110000 {
		t.Fatalf("ProgressMS = %d, want 110000 (optimistic)", st.Context.ProgressMS)
	}
	if directNativeSeeks != 1 {
		t.Fatalf("directNativeSeeks = %d, want 1 (throttle burst of 1)", directNativeSeeks)
	}
	if st.Pending.PendingNativeSeekMS == nil || *st.Pending.PendingNativeSeekMS != 110000 {
		t.Fatalf("PendingNativeSeekMS = %v, want pointer to 110000 (latest target wins)", st.Pending.PendingNativeSeekMS)
	}
}

func TestToggleLike_RoundTrip(t *testing.T) {
	st := core.NewState()
	r := New()

	action := r.Route(context.Background(), core.Command{Kind: core.CmdToggleLike, TargetID: "track1"}, st, nil)
	if action != RemoteApi {
		t.Fatalf("action = %v, want RemoteApi", action)
	}
	if !st.Selections.HasTrack("track1") {
		t.Fatalf("expected track1 to be liked after first toggle")
	}

	r.Route(context.Background(), core.Command{Kind: core.CmdToggleLike, TargetID: "track1"}, st, nil)
	if st.Selections.HasTrack("track1") {
		t.Fatalf("expected track1 to be unliked after second toggle (round-trip)")
	}
}
