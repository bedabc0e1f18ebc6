package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spotatui/spotatui/internal/core"
	"github.com/spotatui/spotatui/internal/spotify/player"
)

// playbackFormat is the --format placeholder string shared by every
// playback subcommand; empty means "use the default colorized line".
var playbackFormat string

var playbackCmd = &cobra.Command{
	Use:   "playback",
	Short: "Control playback: play, pause, next, prev, seek, volume, shuffle, repeat",
	Long: `Control playback and print the resulting state as a single line.

--format accepts a placeholder string built from %a %b %p %t %h %f %s
%v %d %r %u (artist, album, playlist, track, show, flags, status,
volume, device, progress, url), e.g.:

  spotatui playback play --format "%s %a - %t (%r)"`,
}

var playbackPlayCmd = &cobra.Command{
	Use:   "play",
	Short: "Resume playback",
	RunE:  runPlaybackAction(func(ctx context.Context, p *player.Player, args []string) error { return p.Play(ctx) }),
}

var playbackPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause playback",
	RunE:  runPlaybackAction(func(ctx context.Context, p *player.Player, args []string) error { return p.Pause(ctx) }),
}

var playbackNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Skip to the next track",
	RunE:  runPlaybackAction(func(ctx context.Context, p *player.Player, args []string) error { return p.Next(ctx) }),
}

var playbackPrevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Go to the previous track",
	RunE:  runPlaybackAction(func(ctx context.Context, p *player.Player, args []string) error { return p.Prev(ctx) }),
}

var playbackSeekCmd = &cobra.Command{
	Use:   "seek <position_ms>",
	Short: "Seek to an absolute position, in milliseconds",
	Args:  cobra.ExactArgs(1),
	RunE: runPlaybackAction(func(ctx context.Context, p *player.Player, args []string) error {
		ms, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid position: %s", args[0])
		}
		return p.Seek(ctx, ms)
	}),
}

var playbackVolumeCmd = &cobra.Command{
	Use:   "volume <0-100>",
	Short: "Set the playback volume",
	Args:  cobra.ExactArgs(1),
	RunE: runPlaybackAction(func(ctx context.Context, p *player.Player, args []string) error {
		level, err := strconv.Atoi(args[0])
		if err != nil || level < 0 || level > 100 {
			return fmt.Errorf("volume must be an integer between 0 and 100")
		}
		return p.Volume(ctx, level)
	}),
}

var playbackShuffleCmd = &cobra.Command{
	Use:   "shuffle <on|off>",
	Short: "Enable or disable shuffle",
	Args:  cobra.ExactArgs(1),
	RunE: runPlaybackAction(func(ctx context.Context, p *player.Player, args []string) error {
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		return p.Shuffle(ctx, on)
	}),
}

var playbackRepeatCmd = &cobra.Command{
	Use:   "repeat <off|context|track>",
	Short: "Set the repeat mode",
	Args:  cobra.ExactArgs(1),
	RunE: runPlaybackAction(func(ctx context.Context, p *player.Player, args []string) error {
		mode := core.RepeatState(args[0])
		switch mode {
		case core.RepeatOff, core.RepeatContext, core.RepeatTrack:
		default:
			return fmt.Errorf("repeat mode must be one of: off, context, track")
		}
		return p.Repeat(ctx, mode)
	}),
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected on/off, got %q", s)
	}
}

func init() {
	playbackCmd.PersistentFlags().StringVar(&playbackFormat, "format", "", "placeholder format string, e.g. \"%s %a - %t\"")
	playbackCmd.AddCommand(playbackPlayCmd, playbackPauseCmd, playbackNextCmd, playbackPrevCmd,
		playbackSeekCmd, playbackVolumeCmd, playbackShuffleCmd, playbackRepeatCmd)
	rootCmd.AddCommand(playbackCmd)
}

// runPlaybackAction wraps a single playback primitive in the common
// "resolve client, apply action, print resulting state" shape every
// playback subcommand shares.
func runPlaybackAction(action func(ctx context.Context, p *player.Player, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		p, err := getSpotifyPlayer(ctx)
		if err != nil {
			return err
		}

		if err := action(ctx, p, args); err != nil {
			return fmt.Errorf("playback command failed: %w", err)
		}

		state, err := p.GetState(ctx)
		if err != nil {
			// The action itself succeeded; a failed refresh isn't fatal.
			if Verbose() {
				fmt.Fprintf(os.Stderr, "warning: could not refresh state: %v\n", err)
			}
			return nil
		}

		printPlaybackState(state)
		return nil
	}
}

func printPlaybackState(state *core.PlaybackState) {
	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(state)
		return
	}

	fields := playbackStateFields(state)

	if playbackFormat != "" {
		fmt.Println(FormatPlaceholder(playbackFormat, fields))
		return
	}

	fmt.Printf("%s  %s  vol %s  %s\n", ColorStatus(state.IsPlaying), fields.Track, fields.Volume, fields.Device)
}

// playbackStateFields maps the ambient core.PlaybackState snapshot onto
// the eleven placeholder fields; playlist/show/url are left blank since
// the playback-primitive endpoints don't return that context (internal/
// spotify/library's richer types do, for list/search output).
func playbackStateFields(state *core.PlaybackState) PlaybackFields {
	f := PlaybackFields{
		Volume: fmt.Sprintf("%d%%", state.Volume),
	}
	if state.IsPlaying {
		f.Status = "playing"
	} else {
		f.Status = "paused"
	}
	if state.Shuffle {
		f.Flags += "S"
	}
	if state.Repeat != core.RepeatOff {
		f.Flags += "R"
	}
	if state.Device != nil {
		f.Device = state.Device.Name
	}
	if state.Track != nil {
		f.Track = state.Track.Title
		f.Artist = state.Track.Artist
		f.Album = state.Track.Album
		f.Progress = FormatDuration(int(state.Progress.Seconds()))
		f.URL = "https://open.spotify.com/track/" + state.Track.ID
	}
	return f
}
