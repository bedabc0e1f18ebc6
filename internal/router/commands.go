package router

import (
	"context"
	"time"

	"github.com/spotatui/spotatui/internal/core"
	"github.com/spotatui/spotatui/internal/native"
)

// togglePlayback implements §4.1's TogglePlayback contract.
func (r *Router) togglePlayback(ctx context.Context, st *core.State, nh native.Handle) Action {
	playing := st.EffectiveIsPlaying()
	newPlaying := !playing

	if st.HasContext {
		st.Context.IsPlaying = newPlaying
	}
	setBoolPtr(&st.Native.IsPlaying, newPlaying)

	if isNativeActive(st, nh) {
		if newPlaying {
			_ = nh.Play(ctx)
		} else {
			_ = nh.Pause(ctx)
		}
		return NativeFast
	}
	return RemoteApi
}

func setBoolPtr(dst **bool, v bool) {
	b := v
	*dst = &b
}

// skip implements Next, and Previous's "restart vs. skip" boundary.
func (r *Router) skip(ctx context.Context, st *core.State, nh native.Handle, isNext bool) Action {
	native_ := isNativeActive(st, nh)

	if !isNext && st.HasContext && st.Context.ProgressMS >= PreviousRestartBoundaryMS {
		// Treat as "seek to 0" on the chosen path.
		st.Context.ProgressMS = 0
		if native_ {
			_ = nh.Seek(ctx, 0)
			return NativeFast
		}
		return RemoteApi
	}

	if st.HasContext {
		st.Context.ProgressMS = 0
	}

	if native_ {
		if isNext {
			_ = nh.Next(ctx)
		} else {
			_ = nh.Previous(ctx)
		}
		scheduleEnsurePlaying(nh, SkipResumeDelay)
		return NativeFast
	}
	return RemoteApi
}

// scheduleEnsurePlaying defeats a known race where the embedded player
// may land paused after a skip: after a short delay, nudge it back to
// playing if it reports paused.
func scheduleEnsurePlaying(nh native.Handle, delay time.Duration) {
	go func() {
		time.Sleep(delay)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = nh.Play(ctx)
	}()
}

// seek implements §4.1's dual-throttle seek contract.
func (r *Router) seek(ctx context.Context, cmd core.Command, st *core.State, nh native.Handle) Action {
	if !st.HasContext {
		return NoOp
	}

	target := resolveSeekTarget(st.Context.ProgressMS, cmd)
	duration := st.Context.DurationMS()
	if duration > 0 && target >= duration {
		// Seek past duration translates to Next.
		return r.skip(ctx, st, nh, true)
	}

	now := time.Now()
	st.Context.ProgressMS = target
	st.Pending.LastAPISeekAt = now
	t := target
	st.Pending.SeekTargetMS = &t

	if isNativeActive(st, nh) {
		if r.nativeSeekLimiter.Allow() {
			_ = nh.Seek(ctx, target)
			st.Pending.PendingNativeSeekMS = nil
			st.Pending.LastNativeSeekAt = now
			return NativeFast
		}
		tgt := target
		st.Pending.PendingNativeSeekMS = &tgt
		return NativeQueued
	}

	if r.apiSeekLimiter.Allow() {
		st.Pending.PendingAPISeekMS = nil
		return RemoteApi
	}
	tgt := target
	st.Pending.PendingAPISeekMS = &tgt
	return NoOp
}

func resolveSeekTarget(current uint64, cmd core.Command) uint64 {
	if cmd.SeekMode == core.SeekAbsolute {
		if cmd.SeekMS < 0 {
			return 0
		}
		return uint64(cmd.SeekMS)
	}
	signed := int64(current) + cmd.SeekMS
	if signed < 0 {
		return 0
	}
	return uint64(signed)
}

// volume clamps the target level to 0..100. The level is not persisted to
// the user config.
func (r *Router) volume(ctx context.Context, cmd core.Command, st *core.State, nh native.Handle) Action {
	current := st.Context.Volume
	target := cmd.VolumeStep
	if cmd.VolumeMode == core.VolumeDelta {
		target = current + cmd.VolumeStep
	}
	if target < 0 {
		target = 0
	}
	if target > 100 {
		target = 100
	}
	st.Context.Volume = target

	if isNativeActive(st, nh) {
		_ = nh.SetVolume(ctx, target)
		return NativeFast
	}
	return RemoteApi
}

// shuffle implements the Shuffle toggle.
func (r *Router) shuffle(ctx context.Context, st *core.State, nh native.Handle) Action {
	on := true
	if st.HasContext {
		on = !st.Context.ShuffleState
		st.Context.ShuffleState = on
	}
	if isNativeActive(st, nh) {
		_ = nh.SetShuffle(ctx, on)
		return NativeFast
	}
	return RemoteApi
}

// repeat implements the Off -> Context -> Track -> Off cycle.
func (r *Router) repeat(ctx context.Context, st *core.State, nh native.Handle) Action {
	next := core.RepeatContext
	if st.HasContext {
		next = st.Context.RepeatState.Next()
		st.Context.RepeatState = next
	}
	if isNativeActive(st, nh) {
		_ = nh.SetRepeat(ctx, next)
		return NativeFast
	}
	return RemoteApi
}

// startPlayback implements §4.1's StartPlayback contract, including the
// device-activation trigger.
func (r *Router) startPlayback(ctx context.Context, cmd core.Command, st *core.State, nh native.Handle) Action {
	if nh != nil && nh.Connected() && !isNativeActive(st, nh) {
		go ActivateDeviceAsync(context.Background(), st, nh, nil)
	}

	if isNativeActive(st, nh) {
		req := native.LoadRequest{ContextURI: cmd.ContextURI, URIs: cmd.URIs, Offset: cmd.Offset}
		if req.ContextURI != "" && len(req.URIs) > 0 && req.Offset == nil {
			// Both given: the first uri is the playing track inside the context.
			req.Offset = &core.PlaybackOffset{URI: req.URIs[0]}
		}
		_ = nh.Load(ctx, req)
		st.Context.IsPlaying = true
		return NativeFast
	}
	st.HasContext = true
	st.Context.IsPlaying = true
	return RemoteApi
}

// transferDevice implements §4.1's TransferDevice contract.
func (r *Router) transferDevice(ctx context.Context, cmd core.Command, st *core.State, nh native.Handle) Action {
	if nh != nil && nh.Connected() && cmd.TargetID == deref(st.Native.DeviceID) {
		go ActivateDeviceAsync(context.Background(), st, nh, nil)
		return NativeFast
	}
	st.Native.StreamingActive = false
	return RemoteApi
}
