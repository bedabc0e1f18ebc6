package nav

import "testing"

// TestStack_Invariant5_NeverEmpty covers quantified invariant 5:
// navigation stack length is always >= 1; pop on length 1 is a no-op.
func TestStack_Invariant5_NeverEmpty(t *testing.T) {
	s := NewStack()
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 for a fresh stack", s.Len())
	}

	_, ok := s.Pop()
	if ok {
		t.Fatalf("Pop() on a length-1 stack returned ok=true, want no-op")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d after no-op pop, want still 1", s.Len())
	}
}

func TestStack_PushThenPop(t *testing.T) {
	s := NewStack()
	s.Push(NewDynamicRoute(Playlist, "p1", ""))
	if s.Len() != 2 {
		t.Fatalf("Len() = %d after push, want 2", s.Len())
	}
	if s.Top().Kind != Playlist {
		t.Fatalf("Top().Kind = %v, want Playlist", s.Top().Kind)
	}

	popped, ok := s.Pop()
	if !ok {
		t.Fatalf("Pop() = ok=false, want true")
	}
	if popped.Kind != Playlist {
		t.Fatalf("popped.Kind = %v, want Playlist", popped.Kind)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d after pop, want 1", s.Len())
	}
	if s.Top().Kind != Home {
		t.Fatalf("Top().Kind = %v, want Home", s.Top().Kind)
	}
}

func TestStack_PushIsIdempotentForSameRouteID(t *testing.T) {
	s := NewStack()
	route := NewDynamicRoute(Album, "a1", "album-a1")
	s.Push(route)
	s.Push(route)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d after pushing the same route twice, want 2 (idempotent)", s.Len())
	}
}

func TestStack_ResetDiscardsAboveHome(t *testing.T) {
	s := NewStack()
	s.Push(NewDynamicRoute(Artist, "ar1", ""))
	s.Push(NewStaticRoute(Search))
	s.Reset()
	if s.Len() != 1 {
		t.Fatalf("Len() = %d after Reset, want 1", s.Len())
	}
	if s.Top().Kind != Home {
		t.Fatalf("Top().Kind = %v after Reset, want Home", s.Top().Kind)
	}
}

func TestStack_Replace(t *testing.T) {
	s := NewStack()
	s.Push(NewStaticRoute(Search))
	s.Replace(NewErrorRoute("boom"))
	if s.Len() != 2 {
		t.Fatalf("Len() = %d after Replace, want unchanged depth 2", s.Len())
	}
	if s.Top().Kind != Error || s.Top().ErrorMessage != "boom" {
		t.Fatalf("Top() = %+v, want Error route with message 'boom'", s.Top())
	}
}
