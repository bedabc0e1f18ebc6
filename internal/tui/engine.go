package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	spotifylib "github.com/zmb3/spotify/v2"

	"github.com/spotatui/spotatui/internal/core"
	"github.com/spotatui/spotatui/internal/dispatch"
	"github.com/spotatui/spotatui/internal/native"
	"github.com/spotatui/spotatui/internal/reconcile"
	"github.com/spotatui/spotatui/internal/router"
	"github.com/spotatui/spotatui/internal/sonos"
	"github.com/spotatui/spotatui/internal/spotify/auth"
	"github.com/spotatui/spotatui/internal/spotify/library"
	"github.com/spotatui/spotatui/internal/spotify/player"
)

// Engine wires the command router, the remote-API dispatcher, and the
// reconciliation loop into the single shared core.State, giving the TUI
// somewhere to send routed commands instead of calling the Spotify
// client directly.
type Engine struct {
	State      *core.State
	Router     *router.Router
	Dispatcher *dispatch.Dispatcher
	Reconciler *reconcile.Loop
	Native     native.Handle
	Library    *library.Library

	player *player.Player
}

// newEngine builds an Engine around app's already-authenticated Spotify
// client. When app.defaultDevice names a Sonos room, a native.Handle is
// created and resolved in the background, and its event stream is
// folded into State by reconcile.ConsumeNativeEvents; until resolution
// succeeds, Connected() reports false and the router always takes the
// remote path (§4.1 rule 1).
func newEngine(ctx context.Context, app *App) *Engine {
	st := core.NewState()
	log := logrus.NewEntry(logrus.StandardLogger())

	var handle native.Handle
	if app.defaultDevice != "" {
		sh := native.NewSonosHandle(sonos.NewClient(), app.defaultDevice)
		handle = sh
		go func() {
			if err := sh.Resolve(ctx); err != nil {
				log.WithError(err).Debug("sonos device not yet resolved")
			}
		}()
	}

	var lib *library.Library
	if cfg, tok := oauthCredentials(app); cfg != nil && tok != nil {
		lib = library.New(cfg, nil, tok)
	}

	e := &Engine{
		State:      st,
		Router:     router.New(),
		Reconciler: reconcile.New(app.refreshRate),
		Native:     handle,
		Library:    lib,
		player:     app.player,
	}
	e.Dispatcher = dispatch.New(st, e.remoteHandler, log)

	go e.Dispatcher.Run(ctx)
	if handle != nil {
		go reconcile.ConsumeNativeEvents(ctx, st, handle, e.deps())
	}

	return e
}

// oauthCredentials extracts an *auth.Config/*oauth2.Token pair from
// app's already-constructed Spotify client, so internal/spotify/library
// can share the same session instead of re-authenticating.
func oauthCredentials(app *App) (*auth.Config, *oauth2.Token) {
	if app.spotifyClient == nil || !app.spotifyClient.HasToken() {
		return nil, nil
	}
	return &auth.Config{Config: app.spotifyClient.OAuthConfig()}, app.spotifyClient.Token()
}

// deps assembles the reconcile.Deps an Engine drives its Tick and
// ConsumeNativeEvents calls with.
func (e *Engine) deps() reconcile.Deps {
	return reconcile.Deps{
		Native:          e.Native,
		PollPlayback:    e.pollPlayback,
		ApplyNativeSeek: e.applyNativeSeek,
		ApplyAPISeek:    e.applyAPISeek,
		OnTrackChanged:  e.onTrackChanged,
	}
}

// Route runs cmd through the router and, when it comes back RemoteApi,
// submits it to the dispatcher for execution against the Web API.
// NativeFast/NativeQueued/NoOp all mean the router already did
// everything there is to do.
func (e *Engine) Route(ctx context.Context, cmd core.Command) router.Action {
	action := e.Router.Route(ctx, cmd, e.State, e.Native)
	if action == router.RemoteApi {
		e.Dispatcher.Submit(cmd)
	}
	return action
}

// Tick runs one reconciliation pass; intended to be driven by the TUI's
// own refresh tick so polling, seek-flushing, and progress advancement
// happen on the same cadence as rendering.
func (e *Engine) Tick(ctx context.Context) {
	e.Reconciler.Tick(ctx, time.Now(), e.State, e.deps())
}

func (e *Engine) pollPlayback(ctx context.Context) (*reconcile.PollResult, error) {
	state, err := e.player.GetState(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return &reconcile.PollResult{}, nil
	}

	result := &reconcile.PollResult{
		HasItem: state.HasTrack(),
		Context: core.PlaybackContext{
			Device:       state.Device,
			IsPlaying:    state.IsPlaying,
			ShuffleState: state.Shuffle,
			RepeatState:  state.Repeat,
			ProgressMS:   uint64(state.Progress.Milliseconds()),
			Volume:       state.Volume,
		},
	}
	if state.Track != nil {
		result.Context.Item = state.Track
	}
	if state.Device != nil {
		result.DeviceIsNative = state.Device.Platform == core.PlatformSonos
	}
	return result, nil
}

func (e *Engine) applyNativeSeek(ctx context.Context, ms uint64) error {
	if e.Native == nil {
		return nil
	}
	return e.Native.Seek(ctx, ms)
}

func (e *Engine) applyAPISeek(ctx context.Context, ms uint64) error {
	return e.player.Seek(ctx, int(ms))
}

// onTrackChanged is reconcile's §4.2/§4.4 follow-up hook: once a poll or
// a backdated-poll-after-native-event resolves a new track id. It does
// nothing: mergePoll has already replaced st.Context with the full
// remote metadata, and no further call or log line is issued.
func (e *Engine) onTrackChanged(ctx context.Context, trackID string) {
	_ = ctx
	_ = trackID
}

// remoteHandler is the dispatch.Handler that actually issues the
// Web API call a RemoteApi-routed command asked for. Because
// internal/router already applied cmd's optimistic mutation to
// e.State.Context/Selections before returning RemoteApi, this reads the
// already-resolved target values back out under lock rather than
// recomputing them.
func (e *Engine) remoteHandler(ctx context.Context, cmd core.Command) error {
	switch cmd.Kind {
	case core.CmdTogglePlayback:
		playing := false
		e.State.WithLock(func(st *core.State) { playing = st.EffectiveIsPlaying() })
		if playing {
			return e.player.Play(ctx)
		}
		return e.player.Pause(ctx)

	case core.CmdNext:
		return e.player.Next(ctx)

	case core.CmdPrevious:
		return e.player.Prev(ctx)

	case core.CmdSeek:
		var target uint64
		e.State.WithLock(func(st *core.State) { target = st.Context.ProgressMS })
		return e.player.Seek(ctx, int(target))

	case core.CmdVolume:
		var target int
		e.State.WithLock(func(st *core.State) { target = st.Context.Volume })
		return e.player.Volume(ctx, target)

	case core.CmdShuffle:
		var on bool
		e.State.WithLock(func(st *core.State) { on = st.Context.ShuffleState })
		return e.player.Shuffle(ctx, on)

	case core.CmdRepeat:
		var mode core.RepeatState
		e.State.WithLock(func(st *core.State) { mode = st.Context.RepeatState })
		return e.player.Repeat(ctx, mode)

	case core.CmdStartPlayback:
		// A context starts at Offset.Position; cmd.URIs and Offset.URI are
		// not sent. Without a context only the first uri is played.
		if cmd.ContextURI != "" {
			offset := 0
			if cmd.Offset != nil {
				offset = cmd.Offset.Position
			}
			return e.player.PlayContext(ctx, cmd.ContextURI, offset)
		}
		if len(cmd.URIs) > 0 {
			return e.player.PlayURI(ctx, cmd.URIs[0])
		}
		return e.player.Play(ctx)

	case core.CmdTransferDevice:
		return e.player.TransferPlayback(ctx, cmd.TargetID, true)

	case core.CmdAddToQueue:
		return e.player.AddToQueue(ctx, cmd.TargetID)

	case core.CmdToggleLike:
		if e.Library == nil {
			return fmt.Errorf("library surface not available: not authenticated for the extended API")
		}
		var liked bool
		e.State.WithLock(func(st *core.State) { liked = st.Selections.HasTrack(cmd.TargetID) })
		id := spotifylib.ID(cmd.TargetID)
		if liked {
			return e.Library.SaveTracks(ctx, id)
		}
		return e.Library.RemoveTracks(ctx, id)

	default:
		return nil
	}
}
