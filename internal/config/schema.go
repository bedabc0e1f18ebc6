package config

// Config is the root configuration structure.
type Config struct {
	Spotify       SpotifyConfig       `toml:"spotify"`
	Sonos         SonosConfig         `toml:"sonos"`
	Defaults      DefaultsConfig      `toml:"defaults"`
	Tail          TailConfig          `toml:"tail"`
	TUI           TUIConfig           `toml:"tui"`
	Log           LogConfig           `toml:"log"`
	Streaming     StreamingConfig     `toml:"streaming"`
	Announcements AnnouncementsConfig `toml:"announcements"`
}

// SpotifyConfig holds Spotify API settings.
type SpotifyConfig struct {
	ClientID    string `toml:"client_id"`
	RedirectURI string `toml:"redirect_uri"`
}

// SonosConfig holds Sonos connection settings.
type SonosConfig struct {
	DefaultRoom      string `toml:"default_room"`
	DiscoveryTimeout int    `toml:"discovery_timeout"`
}

// DefaultsConfig holds default playback settings, doubling as the
// persisted volume/shuffle/repeat preference spec.md's client.yml keeps
// across sessions.
type DefaultsConfig struct {
	Volume  int    `toml:"volume"`
	Shuffle bool   `toml:"shuffle"`
	Repeat  string `toml:"repeat"`
	Device  string `toml:"device"`
}

// TailConfig holds settings for tail/follow mode.
type TailConfig struct {
	Enabled  bool `toml:"enabled"`
	Interval int  `toml:"interval"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme           string `toml:"theme"`
	RefreshInterval int    `toml:"refresh_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// StreamingConfig holds the embedded (native) player's settings: the
// persisted Spotify Connect device id it claims on activation, and the
// audio backend/device/init-timeout env-overridable triple spec.md §6
// names for the embedded session.
type StreamingConfig struct {
	DeviceName       string `toml:"device_name"`
	DeviceID         string `toml:"device_id"`
	AudioBackend     string `toml:"audio_backend"`
	AudioDevice      string `toml:"audio_device"`
	InitTimeoutSecs  int    `toml:"init_timeout_secs"`
}

// AnnouncementsConfig holds the in-app announcement feed settings:
// where to fetch them from, and which ids have already been shown.
type AnnouncementsConfig struct {
	URL  string   `toml:"url"`
	Seen []string `toml:"seen"`
}
