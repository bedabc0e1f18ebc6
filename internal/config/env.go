package config

import (
	"os"
	"strconv"
	"strings"
)

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Spotify
	if v := os.Getenv("SPOTATUI_SPOTIFY_CLIENT_ID"); v != "" {
		cfg.Spotify.ClientID = v
	}
	if v := os.Getenv("SPOTATUI_SPOTIFY_REDIRECT_URI"); v != "" {
		cfg.Spotify.RedirectURI = v
	}

	// Sonos
	if v := os.Getenv("SPOTATUI_SONOS_DEFAULT_ROOM"); v != "" {
		cfg.Sonos.DefaultRoom = v
	}
	if v := os.Getenv("SPOTATUI_SONOS_DISCOVERY_TIMEOUT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Sonos.DiscoveryTimeout = i
		}
	}

	// TUI
	if v := os.Getenv("SPOTATUI_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}
	if v := os.Getenv("SPOTATUI_TUI_REFRESH_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.TUI.RefreshInterval = i
		}
	}

	// Log
	if v := os.Getenv("SPOTATUI_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SPOTATUI_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	// Streaming (embedded player), per spec.md §6's four env vars.
	if v := os.Getenv("SPOTATUI_STREAMING_AUDIO_BACKEND"); v != "" {
		cfg.Streaming.AudioBackend = v
	}
	if v := os.Getenv("SPOTATUI_STREAMING_AUDIO_DEVICE"); v != "" {
		cfg.Streaming.AudioDevice = v
	}
	if v := os.Getenv("SPOTATUI_STREAMING_INIT_TIMEOUT_SECS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Streaming.InitTimeoutSecs = i
		}
	}

	// Announcements: validated https://-only per spec.md §6; a non-https
	// value is ignored rather than rejected outright, since env overrides
	// have no error channel back to the caller.
	if v := os.Getenv("SPOTATUI_ANNOUNCEMENTS_URL"); v != "" {
		if strings.HasPrefix(v, "https://") {
			cfg.Announcements.URL = v
		}
	}
}
