package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	spotifylib "github.com/zmb3/spotify/v2"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tracks, albums, artists, and playlists",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "Maximum results per category")
	searchCmd.Flags().StringVar(&playbackFormat, "format", "", "placeholder format string, e.g. \"%t by %a\"")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := args[0]
	for _, a := range args[1:] {
		query += " " + a
	}

	lib, err := getLibrary()
	if err != nil {
		return err
	}

	types := spotifylib.SearchTypeTrack | spotifylib.SearchTypeAlbum |
		spotifylib.SearchTypeArtist | spotifylib.SearchTypePlaylist

	result, err := lib.Search(ctx, query, types, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	if result.Tracks != nil {
		for _, t := range result.Tracks.Tracks {
			printSearchLine(PlaybackFields{
				Track:  t.Name,
				Artist: joinArtistNames(t.Artists),
				Album:  t.Album.Name,
			})
		}
	}
	if result.Albums != nil {
		for _, a := range result.Albums.Albums {
			printSearchLine(PlaybackFields{Album: a.Name, Artist: joinArtistNames(a.Artists)})
		}
	}
	if result.Artists != nil {
		for _, a := range result.Artists.Artists {
			printSearchLine(PlaybackFields{Artist: a.Name})
		}
	}
	if result.Playlists != nil {
		for _, p := range result.Playlists.Playlists {
			printSearchLine(PlaybackFields{Playlist: p.Name})
		}
	}
	return nil
}

func printSearchLine(f PlaybackFields) {
	if playbackFormat != "" {
		fmt.Println(FormatPlaceholder(playbackFormat, f))
		return
	}
	fmt.Println(defaultListLine(f))
}
