package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spotatui/spotatui/internal/core"
)

func TestDispatcher_SubmitInvokesHandler(t *testing.T) {
	st := core.NewState()

	var mu sync.Mutex
	var got []core.CommandKind
	done := make(chan struct{}, 1)

	d := New(st, func(ctx context.Context, cmd core.Command) error {
		mu.Lock()
		got = append(got, cmd.Kind)
		mu.Unlock()
		done <- struct{}{}
		return nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	d.Submit(core.Command{Kind: core.CmdNext})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler was never invoked")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != core.CmdNext {
		t.Fatalf("got = %v, want [CmdNext]", got)
	}
}

func TestDispatcher_IsLoadingTogglesAroundHandler(t *testing.T) {
	st := core.NewState()
	loadingDuringHandler := make(chan bool, 1)

	d := New(st, func(ctx context.Context, cmd core.Command) error {
		st.WithLock(func(st *core.State) { loadingDuringHandler <- st.IsLoading })
		return nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	d.Submit(core.Command{Kind: core.CmdTogglePlayback})

	select {
	case loading := <-loadingDuringHandler:
		if !loading {
			t.Fatalf("IsLoading = false during handler execution, want true")
		}
	case <-time.After(time.Second):
		t.Fatal("handler was never invoked")
	}

	deadline := time.After(time.Second)
	for {
		var loading bool
		st.WithLock(func(st *core.State) { loading = st.IsLoading })
		if !loading {
			break
		}
		select {
		case <-deadline:
			t.Fatal("IsLoading never cleared after handler returned")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestDispatcher_HandlerErrorDoesNotStopConsumer(t *testing.T) {
	st := core.NewState()
	calls := make(chan core.CommandKind, 2)

	d := New(st, func(ctx context.Context, cmd core.Command) error {
		calls <- cmd.Kind
		if cmd.Kind == core.CmdNext {
			return errors.New("boom")
		}
		return nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	d.Submit(core.Command{Kind: core.CmdNext})
	d.Submit(core.Command{Kind: core.CmdPrevious})

	for i := 0; i < 2; i++ {
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatalf("only %d of 2 commands were handled after a handler error", i)
		}
	}
}

func TestDispatcher_WaitReturnsAfterContextCancel(t *testing.T) {
	st := core.NewState()
	d := New(st, func(ctx context.Context, cmd core.Command) error { return nil }, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go d.Run(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		d.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait() did not return after context cancellation")
	}
}
