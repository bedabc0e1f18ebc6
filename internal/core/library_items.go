package core

// Album, Artist, Playlist, and Show are the library membership item
// shapes the remote API surface (§6) pages over: saved albums/shows,
// followed artists, the user's playlists, and search results of each
// kind. They're deliberately thin projections of the full Spotify API
// response shapes, enough for the TUI/CLI to render a list row and hold
// an id for follow-on actions (open, play, like).
type Album struct {
	ID         string   `json:"id"`
	URI        string   `json:"uri"`
	Name       string   `json:"name"`
	Artists    []string `json:"artists"`
	TotalTracks int     `json:"total_tracks"`
}

type Artist struct {
	ID         string `json:"id"`
	URI        string `json:"uri"`
	Name       string `json:"name"`
	Genres     []string `json:"genres"`
	Followers  int    `json:"followers"`
}

type Playlist struct {
	ID          string `json:"id"`
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Owner       string `json:"owner"`
	TrackCount  int    `json:"track_count"`
	Collaborative bool `json:"collaborative"`
}

type Show struct {
	ID          string `json:"id"`
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Publisher   string `json:"publisher"`
	EpisodeCount int   `json:"episode_count"`
}
