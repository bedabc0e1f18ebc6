package core

// SelectionSets tracks which Spotify ids the user has marked as "liked"
// across the four library membership kinds the remote API exposes
// separately (saved tracks, saved albums, followed artists, followed
// playlists). Membership is a set, not a list: ToggleLike is defined by
// presence/absence, not ordering.
type SelectionSets struct {
	Tracks    map[string]struct{}
	Albums    map[string]struct{}
	Artists   map[string]struct{}
	Playlists map[string]struct{}
}

// NewSelectionSets returns an initialized, empty SelectionSets.
func NewSelectionSets() SelectionSets {
	return SelectionSets{
		Tracks:    make(map[string]struct{}),
		Albums:    make(map[string]struct{}),
		Artists:   make(map[string]struct{}),
		Playlists: make(map[string]struct{}),
	}
}

func setHas(set map[string]struct{}, id string) bool {
	_, ok := set[id]
	return ok
}

func setToggle(set map[string]struct{}, id string) bool {
	if _, ok := set[id]; ok {
		delete(set, id)
		return false
	}
	set[id] = struct{}{}
	return true
}

// HasTrack, HasAlbum, HasArtist, HasPlaylist report current membership.
func (s *SelectionSets) HasTrack(id string) bool    { return setHas(s.Tracks, id) }
func (s *SelectionSets) HasAlbum(id string) bool    { return setHas(s.Albums, id) }
func (s *SelectionSets) HasArtist(id string) bool   { return setHas(s.Artists, id) }
func (s *SelectionSets) HasPlaylist(id string) bool { return setHas(s.Playlists, id) }

// ToggleTrack, ToggleAlbum, ToggleArtist, TogglePlaylist flip membership
// and return the new state. Applying the same toggle twice is an
// identity operation, per the round-trip property ToggleLike(id) twice
// returns the like-set to its prior state.
func (s *SelectionSets) ToggleTrack(id string) bool    { return setToggle(s.Tracks, id) }
func (s *SelectionSets) ToggleAlbum(id string) bool    { return setToggle(s.Albums, id) }
func (s *SelectionSets) ToggleArtist(id string) bool   { return setToggle(s.Artists, id) }
func (s *SelectionSets) TogglePlaylist(id string) bool { return setToggle(s.Playlists, id) }
