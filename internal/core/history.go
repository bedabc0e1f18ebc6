package core

import "time"

// HistoryEntry is one row of recently-played history, as returned by
// Player.GetRecentlyPlayed and rendered by the tail watcher and TUI
// history panel.
type HistoryEntry struct {
	Track    *Track    `json:"track"`
	PlayedAt time.Time `json:"played_at"`
}
