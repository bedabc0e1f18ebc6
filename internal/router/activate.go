package router

import (
	"context"
	"strings"
	"time"

	"github.com/spotatui/spotatui/internal/core"
	"github.com/spotatui/spotatui/internal/native"
)

// DeviceLister is the remote API surface the activation retry loop
// needs: the device list, keyed minimally by id/name. Defined locally so
// this package doesn't depend on internal/spotify/client directly.
type DeviceLister interface {
	ListDevices(ctx context.Context) ([]core.Device, error)
}

// ActivateDevice implements the 5-step device activation protocol of
// §4.3. It mutates st under its own lock acquisitions (never while
// calling out to nh or lister) and is safe to run as its own goroutine;
// callers that want persistence of the discovered native_device_id
// should pass a non-nil onDeviceID callback.
func ActivateDevice(ctx context.Context, st *core.State, nh native.Handle, lister DeviceLister, onDeviceID func(id string)) {
	st.Lock()
	pending := st.Native.NativeActivationPending
	recent := !st.Native.LastDeviceActivation.IsZero() &&
		time.Since(st.Native.LastDeviceActivation) < RecentTransferWindow
	st.Unlock()

	if pending || recent {
		return
	}

	if err := nh.TransferToSelf(ctx); err != nil {
		return
	}
	if err := nh.Activate(ctx); err != nil {
		return
	}

	now := time.Now()
	st.Lock()
	st.Native.StreamingActive = true
	st.Native.NativeActivationPending = true
	st.Native.LastDeviceActivation = now
	st.LastPollAt = now.Add(-ActivationPollBackdate)
	st.Unlock()

	if lister == nil {
		st.Lock()
		st.Native.NativeActivationPending = false
		st.Unlock()
		return
	}

	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			time.Sleep(200 * time.Millisecond)
		}
		devices, err := lister.ListDevices(ctx)
		if err != nil {
			continue
		}
		for _, d := range devices {
			if strings.EqualFold(d.Name, nh.Name()) {
				id := d.ID
				st.Lock()
				st.Native.DeviceID = &id
				st.Unlock()
				if onDeviceID != nil {
					onDeviceID(id)
				}
				break
			}
		}
	}

	// native_activation_pending clears once a subsequent poll confirms
	// the device is active; reconcile.go clears it there. As a backstop
	// (e.g. no lister configured, or the device never shows up), clear it
	// here too so a future command isn't permanently blocked.
	st.Lock()
	st.Native.NativeActivationPending = false
	st.Unlock()
}

// ActivateDeviceAsync runs ActivateDevice in the background; used by the
// router's fast-path command handlers, which must not block on
// retries/sleeps while holding the state lock.
func ActivateDeviceAsync(ctx context.Context, st *core.State, nh native.Handle, lister DeviceLister) {
	go ActivateDevice(ctx, st, nh, lister, nil)
}
