package core

import (
	"sync"
	"time"

	"github.com/spotatui/spotatui/internal/nav"
)

// SearchLimits bounds page sizes per UI panel, carried over from
// original_source/src/app.rs's large_search_limit/small_search_limit
// pair: the "currently focused" search result list can show more rows
// than the other four kinds shown at once.
type SearchLimits struct {
	Large int
	Small int
}

// DefaultSearchLimits matches the original's tuning.
func DefaultSearchLimits() SearchLimits {
	return SearchLimits{Large: 20, Small: 4}
}

// Library bundles every paginated, append-only result set the app holds.
type Library struct {
	SavedTracks   LibraryPages[Track]
	SavedAlbums   LibraryPages[Album]
	SavedShows    LibraryPages[Show]
	Playlists     LibraryPages[Playlist]
	PlaylistItems LibraryPages[Track]

	SearchTracks    LibraryPages[Track]
	SearchArtists   LibraryPages[Artist]
	SearchAlbums    LibraryPages[Album]
	SearchPlaylists LibraryPages[Playlist]
	SearchShows     LibraryPages[Show]
}

// State is Application State: the single struct holding every piece of
// mutable state described in spec.md §3, behind one mutex. Every
// multi-field mutation and every multi-field read happens while holding
// the lock; no I/O is ever performed while holding it (§5).
type State struct {
	mu sync.Mutex

	Context       PlaybackContext
	HasContext    bool
	Pending       PendingIntent
	Native        NativeShadow
	Nav           *nav.Stack
	Library       Library
	Selections    SelectionSets
	Status        StatusMessage
	SearchLimits  SearchLimits
	IsLoading     bool
	Dialog        *Dialog
	LastTrackID   string
	LastPollAt    time.Time
	PollInterval  time.Duration
	History       []HistoryEntry
	Queue         Queue
}

// NewState returns a fresh, initialized State with a Home-rooted nav
// stack and a 1s default poll interval (the "else" branch of §4.2 step 3).
func NewState() *State {
	return &State{
		Nav:          nav.NewStack(),
		Selections:   NewSelectionSets(),
		SearchLimits: DefaultSearchLimits(),
		PollInterval: time.Second,
	}
}

// Lock/Unlock satisfy sync.Locker so State can be used directly with
// defer st.Unlock() at call sites that prefer that idiom.
func (s *State) Lock()   { s.mu.Lock() }
func (s *State) Unlock() { s.mu.Unlock() }

// WithLock runs fn with the state lock held. fn must not perform I/O or
// call back into WithLock/Lock.
func (s *State) WithLock(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

// EffectiveIsPlaying is the "native_is_playing ?? context.is_playing ??
// false" rule from §4.1's TogglePlayback contract. Caller must hold the
// lock.
func (s *State) EffectiveIsPlaying() bool {
	if s.Native.IsPlaying != nil {
		return *s.Native.IsPlaying
	}
	if s.HasContext {
		return s.Context.IsPlaying
	}
	return false
}
