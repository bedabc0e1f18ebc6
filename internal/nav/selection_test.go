package nav

import "testing"

// TestSelection_Invariant7_ClampStaysInBounds covers quantified invariant
// 7: selection indices always satisfy 0 <= index < max(1, len(items)).
func TestSelection_Invariant7_ClampStaysInBounds(t *testing.T) {
	cases := []struct {
		name  string
		start int
		count int
		want  int
	}{
		{"negative index clamps to 0", -5, 10, 0},
		{"index past end clamps to last", 50, 10, 9},
		{"empty page leaves index at 0 with no crash", 3, 0, 0},
		{"in-bounds index unchanged", 4, 10, 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sel := &Selection{Index: c.start}
			sel.Clamp(c.count)
			if sel.Index != c.want {
				t.Fatalf("Index = %d, want %d", sel.Index, c.want)
			}
		})
	}
}

func TestSelection_ApplyPending(t *testing.T) {
	t.Run("SelectionFirst", func(t *testing.T) {
		sel := &Selection{Index: 7, Pending: SelectionFirst}
		sel.ApplyPending(20)
		if sel.Index != 0 {
			t.Fatalf("Index = %d, want 0", sel.Index)
		}
		if sel.Pending != SelectionNone {
			t.Fatalf("Pending = %v, want cleared", sel.Pending)
		}
	})

	t.Run("SelectionLast", func(t *testing.T) {
		sel := &Selection{Pending: SelectionLast}
		sel.ApplyPending(20)
		if sel.Index != 19 {
			t.Fatalf("Index = %d, want 19", sel.Index)
		}
	})

	t.Run("SelectionLast on empty page", func(t *testing.T) {
		sel := &Selection{Pending: SelectionLast}
		sel.ApplyPending(0)
		if sel.Index != 0 {
			t.Fatalf("Index = %d, want 0 on empty page", sel.Index)
		}
	})
}

func TestJumpToEndAndStart(t *testing.T) {
	if got := JumpToEnd(105, 20); got != 100 {
		t.Fatalf("JumpToEnd(105, 20) = %d, want 100", got)
	}
	if got := JumpToEnd(0, 20); got != 0 {
		t.Fatalf("JumpToEnd(0, 20) = %d, want 0", got)
	}
	if got := JumpToStart(); got != 0 {
		t.Fatalf("JumpToStart() = %d, want 0", got)
	}
}
