package core

import "testing"

// TestToggleTrack_RoundTrip covers the round-trip property: ToggleLike(id)
// applied twice returns the like-set to its prior state.
func TestToggleTrack_RoundTrip(t *testing.T) {
	s := NewSelectionSets()

	if s.HasTrack("t1") {
		t.Fatalf("fresh SelectionSets already has t1")
	}

	on := s.ToggleTrack("t1")
	if !on || !s.HasTrack("t1") {
		t.Fatalf("ToggleTrack first call: on=%v has=%v, want true/true", on, s.HasTrack("t1"))
	}

	off := s.ToggleTrack("t1")
	if off || s.HasTrack("t1") {
		t.Fatalf("ToggleTrack second call: off=%v has=%v, want false/false (round-trip)", off, s.HasTrack("t1"))
	}
}

func TestToggleAlbumArtistPlaylist_Independent(t *testing.T) {
	s := NewSelectionSets()
	s.ToggleAlbum("a1")
	s.ToggleArtist("ar1")
	s.TogglePlaylist("p1")

	if !s.HasAlbum("a1") || !s.HasArtist("ar1") || !s.HasPlaylist("p1") {
		t.Fatalf("expected all three toggled sets to report membership")
	}
	if s.HasTrack("a1") {
		t.Fatalf("toggling an album id must not leak into the track set")
	}
}
