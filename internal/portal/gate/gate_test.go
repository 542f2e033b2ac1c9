package gate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// scriptedWidget is a hand-driven widget for exercising the gate.
type scriptedWidget struct {
	mu      sync.Mutex
	renders int
	resets  int
	events  chan Event
}

func newScriptedWidget() *scriptedWidget {
	return &scriptedWidget{events: make(chan Event, 8)}
}

func (w *scriptedWidget) Render(context.Context) error {
	w.mu.Lock()
	w.renders++
	w.mu.Unlock()
	return nil
}

func (w *scriptedWidget) Events() <-chan Event { return w.events }

func (w *scriptedWidget) Reset() {
	w.mu.Lock()
	w.resets++
	w.mu.Unlock()
}

func (w *scriptedWidget) solve(proof string) {
	w.events <- Event{Type: EventSolved, Proof: proof}
}

func (w *scriptedWidget) expire() {
	w.events <- Event{Type: EventExpired}
}

func (w *scriptedWidget) renderCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.renders
}

const mount = "#gate"

func newTestGate(t *testing.T) (*Gate, *scriptedWidget) {
	t.Helper()
	widget := newScriptedWidget()
	g := New(func(string) Widget { return widget })
	g.RegisterMount(mount)
	return g, widget
}

func waitSolved(t *testing.T, g *Gate) {
	t.Helper()
	require.Eventually(t, func() bool { return g.Solved(mount) },
		2*time.Second, 2*time.Millisecond)
}

func TestUnknownMount(t *testing.T) {
	g, _ := newTestGate(t)

	require.ErrorIs(t, g.EnsureRendered(context.Background(), "#other"), ErrMountMissing)

	_, err := g.TakeProof("#other")
	require.ErrorIs(t, err, ErrMountMissing)

	_, err = g.Events("#other")
	require.ErrorIs(t, err, ErrMountMissing)

	require.False(t, g.Rendered("#other"))
}

func TestEnsureRenderedIsIdempotent(t *testing.T) {
	g, widget := newTestGate(t)
	ctx := context.Background()

	require.NoError(t, g.EnsureRendered(ctx, mount))
	require.NoError(t, g.EnsureRendered(ctx, mount))
	require.NoError(t, g.EnsureRendered(ctx, mount))

	require.Equal(t, 1, widget.renderCount())
	require.True(t, g.Rendered(mount))
}

func TestProofIsSingleUse(t *testing.T) {
	g, widget := newTestGate(t)
	require.NoError(t, g.EnsureRendered(context.Background(), mount))

	// No proof before the widget solves.
	_, err := g.TakeProof(mount)
	require.ErrorIs(t, err, ErrNotSolved)

	widget.solve("proof-1")
	waitSolved(t, g)

	proof, err := g.TakeProof(mount)
	require.NoError(t, err)
	require.Equal(t, "proof-1", proof)

	// The same solve never yields a second proof.
	_, err = g.TakeProof(mount)
	require.ErrorIs(t, err, ErrProofConsumed)

	// A fresh solve yields a fresh proof.
	widget.solve("proof-2")
	waitSolved(t, g)
	proof, err = g.TakeProof(mount)
	require.NoError(t, err)
	require.Equal(t, "proof-2", proof)
}

func TestExpiryClearsSolve(t *testing.T) {
	g, widget := newTestGate(t)
	require.NoError(t, g.EnsureRendered(context.Background(), mount))

	widget.solve("proof-1")
	waitSolved(t, g)

	widget.expire()
	require.Eventually(t, func() bool { return !g.Solved(mount) },
		2*time.Second, 2*time.Millisecond)

	_, err := g.TakeProof(mount)
	require.ErrorIs(t, err, ErrNotSolved)
}

func TestResetIsIdempotent(t *testing.T) {
	g, widget := newTestGate(t)
	require.NoError(t, g.EnsureRendered(context.Background(), mount))

	widget.solve("proof-1")
	waitSolved(t, g)

	g.Reset(mount)
	g.Reset(mount)
	g.Reset("#unknown") // no-op

	require.False(t, g.Solved(mount))
	_, err := g.TakeProof(mount)
	require.ErrorIs(t, err, ErrNotSolved)
}

func TestEventsFanOut(t *testing.T) {
	g, widget := newTestGate(t)
	require.NoError(t, g.EnsureRendered(context.Background(), mount))

	first, err := g.Events(mount)
	require.NoError(t, err)
	second, err := g.Events(mount)
	require.NoError(t, err)

	widget.solve("proof-1")

	for _, ch := range []<-chan Event{first, second} {
		select {
		case ev := <-ch:
			require.Equal(t, EventSolved, ev.Type)
			require.Equal(t, "proof-1", ev.Proof)
		case <-time.After(2 * time.Second):
			t.Fatal("subscriber never received the solve event")
		}
	}
}
