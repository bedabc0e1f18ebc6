package core

import "testing"

func TestEffectiveIsPlaying_NativeShadowWinsOverContext(t *testing.T) {
	st := NewState()
	st.HasContext = true
	st.Context.IsPlaying = true

	playing := false
	st.Native.IsPlaying = &playing

	if st.EffectiveIsPlaying() {
		t.Fatalf("EffectiveIsPlaying() = true, want false (native shadow should win)")
	}
}

func TestEffectiveIsPlaying_FallsBackToContextWhenNativeUnset(t *testing.T) {
	st := NewState()
	st.HasContext = true
	st.Context.IsPlaying = true

	if !st.EffectiveIsPlaying() {
		t.Fatalf("EffectiveIsPlaying() = false, want true (context fallback)")
	}
}

func TestEffectiveIsPlaying_FalseWithNoContext(t *testing.T) {
	st := NewState()
	if st.EffectiveIsPlaying() {
		t.Fatalf("EffectiveIsPlaying() = true, want false with no context at all")
	}
}
