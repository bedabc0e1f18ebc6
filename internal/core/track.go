package core

import "time"

// Source indicates the origin platform of a track.
type Source string

const (
	SourceSpotify Source = "spotify"
	SourceSonos   Source = "sonos"
)

// Track represents a playable audio track.
type Track struct {
	ID       string        `json:"id"`
	URI      string        `json:"uri"`
	Title    string        `json:"title"`
	Artist   string        `json:"artist"`
	Artists  []string      `json:"artists"`
	Album    string        `json:"album"`
	Duration time.Duration `json:"duration"`
	Source   Source        `json:"source"`
}

func (t *Track) itemID() string   { return t.ID }
func (t *Track) itemKind() string { return "track" }

// Episode represents a playable podcast episode. A PlaybackContext can
// carry either a track or an episode as the "currently playing" item.
type Episode struct {
	ID       string        `json:"id"`
	URI      string        `json:"uri"`
	Title    string        `json:"title"`
	Show     string        `json:"show"`
	Duration time.Duration `json:"duration"`
}

func (e *Episode) itemID() string   { return e.ID }
func (e *Episode) itemKind() string { return "episode" }

// Item is the tagged union of things a PlaybackContext can be playing:
// a *Track, an *Episode, or nil (nothing playing). Callers type-switch
// on the concrete type rather than forcing a shared interface method
// set onto "now playing nothing".
type Item interface {
	itemID() string
	itemKind() string
}

// ItemID returns the identifier of an Item, or "" if item is nil.
func ItemID(item Item) string {
	if item == nil {
		return ""
	}
	return item.itemID()
}

// ItemKind returns "track", "episode", or "" if item is nil.
func ItemKind(item Item) string {
	if item == nil {
		return ""
	}
	return item.itemKind()
}

var (
	_ Item = (*Track)(nil)
	_ Item = (*Episode)(nil)
)
