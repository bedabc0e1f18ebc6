// Package library wraps github.com/zmb3/spotify/v2 to cover the parts
// of the Web API that internal/spotify/client's playback-focused REST
// calls don't: playlists, saved library items, search, follows, and
// recommendations.
package library

import (
	"context"
	"fmt"

	spotifylib "github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"

	"github.com/spotatui/spotatui/internal/spotify/auth"
)

// Library is a thin, typed wrapper around the zmb3 Spotify client,
// sharing the same oauth2.Config as internal/spotify/client.Client. It
// holds its own copy of the token; a refresh on one surface is not seen
// by the other.
type Library struct {
	client  *spotifylib.Client
	cfg     *auth.Config
	storage *auth.TokenStorage
}

// New builds a Library from a shared OAuth config and token storage.
// The HTTP client from cfg.Client refreshes an expired token on its own;
// a refreshed token is not written back to storage.
func New(cfg *auth.Config, storage *auth.TokenStorage, token *oauth2.Token) *Library {
	httpClient := cfg.Client(context.Background(), token)
	return &Library{
		client:  spotifylib.New(httpClient),
		cfg:     cfg,
		storage: storage,
	}
}

// Playlists returns the current user's playlists, one page at a time.
func (l *Library) Playlists(ctx context.Context, limit, offset int) ([]spotifylib.SimplePlaylist, error) {
	page, err := l.client.CurrentUsersPlaylists(ctx, spotifylib.Limit(limit), spotifylib.Offset(offset))
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	return page.Playlists, nil
}

// PlaylistTracks returns the tracks in a playlist, one page at a time.
func (l *Library) PlaylistTracks(ctx context.Context, playlistID string, limit, offset int) ([]spotifylib.PlaylistTrack, error) {
	page, err := l.client.GetPlaylistItems(ctx, spotifylib.ID(playlistID), spotifylib.Limit(limit), spotifylib.Offset(offset))
	if err != nil {
		return nil, fmt.Errorf("get playlist tracks: %w", err)
	}
	return page.Items, nil
}

// SavedTracks returns the user's saved ("liked") tracks, one page at a time.
func (l *Library) SavedTracks(ctx context.Context, limit, offset int) ([]spotifylib.SavedTrack, error) {
	page, err := l.client.CurrentUsersTracks(ctx, spotifylib.Limit(limit), spotifylib.Offset(offset))
	if err != nil {
		return nil, fmt.Errorf("list saved tracks: %w", err)
	}
	return page.Tracks, nil
}

// SaveTracks adds tracks to the user's library.
func (l *Library) SaveTracks(ctx context.Context, ids ...spotifylib.ID) error {
	if err := l.client.AddTracksToLibrary(ctx, ids...); err != nil {
		return fmt.Errorf("save tracks: %w", err)
	}
	return nil
}

// RemoveTracks removes tracks from the user's library.
func (l *Library) RemoveTracks(ctx context.Context, ids ...spotifylib.ID) error {
	if err := l.client.RemoveTracksFromLibrary(ctx, ids...); err != nil {
		return fmt.Errorf("remove tracks: %w", err)
	}
	return nil
}

// SavedAlbums returns the user's saved albums, one page at a time.
func (l *Library) SavedAlbums(ctx context.Context, limit, offset int) ([]spotifylib.SavedAlbum, error) {
	page, err := l.client.CurrentUsersAlbums(ctx, spotifylib.Limit(limit), spotifylib.Offset(offset))
	if err != nil {
		return nil, fmt.Errorf("list saved albums: %w", err)
	}
	return page.Albums, nil
}

// SavedShows returns the user's saved podcast shows, one page at a time.
func (l *Library) SavedShows(ctx context.Context, limit, offset int) ([]spotifylib.SavedShow, error) {
	page, err := l.client.CurrentUsersShows(ctx, spotifylib.Limit(limit), spotifylib.Offset(offset))
	if err != nil {
		return nil, fmt.Errorf("list saved shows: %w", err)
	}
	return page.Shows, nil
}

// Search runs a multi-type search (tracks, albums, artists, playlists).
func (l *Library) Search(ctx context.Context, query string, types spotifylib.SearchType, limit int) (*spotifylib.SearchResult, error) {
	result, err := l.client.Search(ctx, query, types, spotifylib.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return result, nil
}

// FollowArtists follows the given artists on behalf of the current user.
func (l *Library) FollowArtists(ctx context.Context, ids ...spotifylib.ID) error {
	if err := l.client.FollowArtist(ctx, ids...); err != nil {
		return fmt.Errorf("follow artists: %w", err)
	}
	return nil
}

// UnfollowArtists unfollows the given artists.
func (l *Library) UnfollowArtists(ctx context.Context, ids ...spotifylib.ID) error {
	if err := l.client.UnfollowArtist(ctx, ids...); err != nil {
		return fmt.Errorf("unfollow artists: %w", err)
	}
	return nil
}

// RecentlyPlayed returns the user's recently played tracks.
func (l *Library) RecentlyPlayed(ctx context.Context, limit int) ([]spotifylib.RecentlyPlayedItem, error) {
	items, err := l.client.PlayerRecentlyPlayedOpt(ctx, &spotifylib.RecentlyPlayedOptions{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("recently played: %w", err)
	}
	return items, nil
}

// TopTracks returns the user's top tracks for the given time range
// ("short_term", "medium_term", "long_term").
func (l *Library) TopTracks(ctx context.Context, timeRange string, limit int) ([]spotifylib.FullTrack, error) {
	page, err := l.client.CurrentUsersTopTracks(ctx,
		spotifylib.Timerange(timeRange), spotifylib.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("top tracks: %w", err)
	}
	return page.Tracks, nil
}

// TopArtists returns the user's top artists for the given time range.
func (l *Library) TopArtists(ctx context.Context, timeRange string, limit int) ([]spotifylib.FullArtist, error) {
	page, err := l.client.CurrentUsersTopArtists(ctx,
		spotifylib.Timerange(timeRange), spotifylib.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("top artists: %w", err)
	}
	return page.Artists, nil
}

// Recommendations returns track recommendations seeded by up to five
// tracks/artists/genres combined.
func (l *Library) Recommendations(ctx context.Context, seeds spotifylib.Seeds, limit int) ([]spotifylib.SimpleTrack, error) {
	recs, err := l.client.GetRecommendations(ctx, seeds, nil, spotifylib.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("recommendations: %w", err)
	}
	return recs.Tracks, nil
}
