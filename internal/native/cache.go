package native

import (
	"os"
	"path/filepath"
)

// CredentialsCachePath returns <cache_dir>/spotatui/streaming_cache/credentials.json,
// the location a real embedded session would cache librespot credentials
// to skip re-authentication on next launch (per spec §6). The Sonos
// backing has no such cache of its own, but the path and Clear() helper
// are kept so the fatal-init retry path (§7: "cannot create embedded
// session after retries including clearing cached credentials") has
// somewhere real to act on.
func CredentialsCachePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "spotatui", "streaming_cache", "credentials.json"), nil
}

// Clear removes the cached credentials file, if any. Called on
// activation failure so the next attempt starts from a clean session.
func Clear() error {
	path, err := CredentialsCachePath()
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
