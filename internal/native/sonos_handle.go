package native

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spotatui/spotatui/internal/core"
	"github.com/spotatui/spotatui/internal/sonos"
)

// SonosHandle implements Handle on top of internal/sonos's UPnP/SOAP
// control client. "Connect" for a real embedded session means an
// established librespot Session; here it means SSDP discovery has
// resolved a Sonos coordinator whose room name matches Name.
type SonosHandle struct {
	client *sonos.Client
	name   string

	mu       sync.RWMutex
	device   *sonos.Device
	shuffle  bool
	repeat   core.RepeatState
	events   chan Event
}

// NewSonosHandle returns a handle that will look for a Sonos room named
// name (case-insensitive), the Go equivalent of the embedded player's
// "device_name" config field in original_source/src/player/streaming.rs.
func NewSonosHandle(client *sonos.Client, name string) *SonosHandle {
	return &SonosHandle{
		client: client,
		name:   name,
		events: make(chan Event, 16),
	}
}

// Resolve runs discovery and binds to the named room if found. Safe to
// call repeatedly (e.g. from the activation retry loop in router/activate.go).
func (h *SonosHandle) Resolve(ctx context.Context) error {
	devices, err := h.client.Discover(ctx)
	if err != nil {
		return fmt.Errorf("sonos discover: %w", err)
	}
	for _, d := range devices {
		if strings.EqualFold(d.Name, h.name) {
			h.mu.Lock()
			h.device = d
			h.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("sonos device %q not found among %d discovered devices", h.name, len(devices))
}

func (h *SonosHandle) boundDevice() *sonos.Device {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.device
}

func (h *SonosHandle) Connected() bool { return h.boundDevice() != nil }
func (h *SonosHandle) Name() string    { return h.name }

func (h *SonosHandle) Play(ctx context.Context) error {
	d := h.boundDevice()
	if d == nil {
		return fmt.Errorf("native handle not connected")
	}
	return h.client.Play(ctx, d)
}

func (h *SonosHandle) Pause(ctx context.Context) error {
	d := h.boundDevice()
	if d == nil {
		return fmt.Errorf("native handle not connected")
	}
	return h.client.Pause(ctx, d)
}

func (h *SonosHandle) Next(ctx context.Context) error {
	d := h.boundDevice()
	if d == nil {
		return fmt.Errorf("native handle not connected")
	}
	return h.client.Next(ctx, d)
}

func (h *SonosHandle) Previous(ctx context.Context) error {
	d := h.boundDevice()
	if d == nil {
		return fmt.Errorf("native handle not connected")
	}
	return h.client.Previous(ctx, d)
}

func (h *SonosHandle) Seek(ctx context.Context, positionMS uint64) error {
	d := h.boundDevice()
	if d == nil {
		return fmt.Errorf("native handle not connected")
	}
	target := formatRelTime(time.Duration(positionMS) * time.Millisecond)
	return h.client.Seek(ctx, d, target)
}

func (h *SonosHandle) SetVolume(ctx context.Context, percent int) error {
	d := h.boundDevice()
	if d == nil {
		return fmt.Errorf("native handle not connected")
	}
	return h.client.SetVolume(ctx, d, percent)
}

func (h *SonosHandle) SetShuffle(ctx context.Context, on bool) error {
	d := h.boundDevice()
	if d == nil {
		return fmt.Errorf("native handle not connected")
	}
	h.mu.Lock()
	h.shuffle = on
	repeat := h.repeat
	h.mu.Unlock()
	return h.client.SetPlayMode(ctx, d, on, string(repeat))
}

func (h *SonosHandle) SetRepeat(ctx context.Context, mode core.RepeatState) error {
	d := h.boundDevice()
	if d == nil {
		return fmt.Errorf("native handle not connected")
	}
	h.mu.Lock()
	h.repeat = mode
	shuffle := h.shuffle
	h.mu.Unlock()
	return h.client.SetPlayMode(ctx, d, shuffle, string(mode))
}

func (h *SonosHandle) Load(ctx context.Context, req LoadRequest) error {
	d := h.boundDevice()
	if d == nil {
		return fmt.Errorf("native handle not connected")
	}

	// An ad-hoc uri list with no context forms a queue; a context with an
	// offset uri plays only that uri (the rest of the context is not
	// queued); a context alone plays the context; neither means resume.
	switch {
	case req.ContextURI != "":
		target := req.ContextURI
		if req.Offset != nil && req.Offset.URI != "" {
			target = req.Offset.URI
		}
		sonosURI, metadata := sonos.ConvertSpotifyURIWithMetadata(target)
		return h.client.PlayURI(ctx, d, sonosURI, metadata)

	case len(req.URIs) > 0:
		_ = h.client.ClearQueue(ctx, d)
		for _, uri := range req.URIs {
			sonosURI, metadata := sonos.ConvertSpotifyURIWithMetadata(uri)
			if err := h.client.AddURIToQueue(ctx, d, sonosURI, metadata); err != nil {
				return fmt.Errorf("add to queue: %w", err)
			}
		}
		return h.client.PlayFromQueue(ctx, d)

	default:
		return h.client.Play(ctx, d)
	}
}

// TransferToSelf is the Sonos analogue of claiming the Spotify Connect
// session with no target device: (re-)run discovery to make sure the
// room is still reachable before Activate confirms it.
func (h *SonosHandle) TransferToSelf(ctx context.Context) error {
	return h.Resolve(ctx)
}

// Activate confirms the bound device answers transport queries, the
// closest Sonos equivalent of "become the active player" since Sonos has
// no separate activation handshake once SetAVTransportURI has succeeded.
func (h *SonosHandle) Activate(ctx context.Context) error {
	d := h.boundDevice()
	if d == nil {
		return fmt.Errorf("native handle not connected")
	}
	_, err := h.client.GetTransportInfo(ctx, d)
	return err
}

func (h *SonosHandle) Events() <-chan Event { return h.events }

// GetPlaybackState satisfies the getState shape Subscriber polls; it
// delegates to a sonos.Player built against the bound device.
func (h *SonosHandle) GetPlaybackState(ctx context.Context) (*core.PlaybackState, error) {
	d := h.boundDevice()
	if d == nil {
		return nil, fmt.Errorf("native handle not connected")
	}
	return sonos.NewPlayer(h.client, d).GetState(ctx)
}

// StartSubscriber launches the polling event subscriber (§4.4) as a
// goroutine that runs until ctx is cancelled.
func (h *SonosHandle) StartSubscriber(ctx context.Context, interval time.Duration) {
	sub := NewSubscriber(h.GetPlaybackState, h.events, interval)
	go sub.Run(ctx)
}

func formatRelTime(d time.Duration) string {
	h2 := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d:%02d", h2, m, s)
}

var _ Handle = (*SonosHandle)(nil)
