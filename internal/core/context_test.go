package core

import (
	"testing"
	"time"
)

func TestRepeatState_Next_ThreeCycle(t *testing.T) {
	got := RepeatOff
	want := []RepeatState{RepeatContext, RepeatTrack, RepeatOff}
	for i, w := range want {
		got = got.Next()
		if got != w {
			t.Fatalf("cycle step %d: got %v, want %v", i, got, w)
		}
	}
}

func TestPlaybackContext_DurationMS(t *testing.T) {
	c := &PlaybackContext{Item: &Track{Duration: 3 * time.Second}}
	if got := c.DurationMS(); got != 3000 {
		t.Fatalf("DurationMS() = %d, want 3000", got)
	}

	c = &PlaybackContext{Item: &Episode{Duration: 90 * time.Second}}
	if got := c.DurationMS(); got != 90000 {
		t.Fatalf("DurationMS() = %d, want 90000", got)
	}

	c = &PlaybackContext{}
	if got := c.DurationMS(); got != 0 {
		t.Fatalf("DurationMS() with no item = %d, want 0", got)
	}
}

func TestItemIDAndKind(t *testing.T) {
	tr := &Track{ID: "t1"}
	if ItemID(tr) != "t1" || ItemKind(tr) != "track" {
		t.Fatalf("ItemID/ItemKind for track = %q/%q, want t1/track", ItemID(tr), ItemKind(tr))
	}

	ep := &Episode{ID: "e1"}
	if ItemID(ep) != "e1" || ItemKind(ep) != "episode" {
		t.Fatalf("ItemID/ItemKind for episode = %q/%q, want e1/episode", ItemID(ep), ItemKind(ep))
	}

	if ItemID(nil) != "" || ItemKind(nil) != "" {
		t.Fatalf("ItemID/ItemKind(nil) should both be empty strings")
	}
}
