// Package gate manages human-verification widgets for the portal. A widget
// is rendered into a named mount point; when it solves it yields a
// single-use proof that sign-in hands to the identity provider.
package gate

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrMountMissing is returned when the named mount point was never
	// registered with the gate.
	ErrMountMissing = errors.New("gate: mount point missing")

	// ErrNotSolved is returned when a proof is requested before the widget
	// has solved.
	ErrNotSolved = errors.New("gate: verification not solved")

	// ErrProofConsumed is returned when the proof for the current solve has
	// already been handed out. The widget must be reset and re-rendered
	// before another proof exists.
	ErrProofConsumed = errors.New("gate: proof already consumed")
)

// EventType tags a widget event.
type EventType int

const (
	// EventSolved carries a fresh proof.
	EventSolved EventType = iota
	// EventExpired means the outstanding proof lapsed before being used.
	EventExpired
)

// Event is emitted by a widget as its verification state changes.
type Event struct {
	Type  EventType
	Proof string // set for EventSolved
}

// Widget is a human-verification widget bound to one mount point.
type Widget interface {
	// Render makes the widget live. Rendering an already-rendered widget
	// must be a no-op.
	Render(ctx context.Context) error

	// Events streams solve and expiry events. The channel is owned by the
	// widget and closed by Close on implementations that have one.
	Events() <-chan Event

	// Reset discards any outstanding solve so the widget can produce a new
	// proof. Resetting an idle widget is a no-op.
	Reset()
}

// WidgetFactory builds a widget for a mount point.
type WidgetFactory func(mount string) Widget

type mountState struct {
	widget   Widget
	rendered bool

	proof    string
	solved   bool
	consumed bool

	subs []chan Event
}

// Gate owns widget lifecycle across mount points and enforces the
// single-use proof rule.
type Gate struct {
	mu      sync.Mutex
	factory WidgetFactory
	mounts  map[string]*mountState
}

func New(factory WidgetFactory) *Gate {
	return &Gate{
		factory: factory,
		mounts:  make(map[string]*mountState),
	}
}

// RegisterMount declares a mount point. Registering the same mount twice is
// a no-op.
func (g *Gate) RegisterMount(mount string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.mounts[mount]; ok {
		return
	}
	g.mounts[mount] = &mountState{widget: g.factory(mount)}
}

// EnsureRendered renders the widget at the mount point. Idempotent: a
// rendered widget stays as it is.
func (g *Gate) EnsureRendered(ctx context.Context, mount string) error {
	g.mu.Lock()
	st, ok := g.mounts[mount]
	if !ok {
		g.mu.Unlock()
		return ErrMountMissing
	}
	alreadyRendered := st.rendered
	st.rendered = true
	g.mu.Unlock()

	if alreadyRendered {
		return nil
	}

	if err := st.widget.Render(ctx); err != nil {
		g.mu.Lock()
		st.rendered = false
		g.mu.Unlock()
		return err
	}

	go g.forward(st)
	return nil
}

// forward pumps widget events into mount state and out to subscribers.
func (g *Gate) forward(st *mountState) {
	for ev := range st.widget.Events() {
		g.mu.Lock()
		switch ev.Type {
		case EventSolved:
			st.proof = ev.Proof
			st.solved = true
			st.consumed = false
		case EventExpired:
			st.proof = ""
			st.solved = false
			st.consumed = false
		}
		subs := make([]chan Event, len(st.subs))
		copy(subs, st.subs)
		g.mu.Unlock()

		for _, sub := range subs {
			select {
			case sub <- ev:
			default:
				// Slow subscriber; dropping beats blocking the widget.
			}
		}
	}
}

// Events subscribes to widget events for a mount point.
func (g *Gate) Events(mount string) (<-chan Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.mounts[mount]
	if !ok {
		return nil, ErrMountMissing
	}

	ch := make(chan Event, 8)
	st.subs = append(st.subs, ch)
	return ch, nil
}

// TakeProof hands out the proof for the current solve, exactly once.
func (g *Gate) TakeProof(mount string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.mounts[mount]
	if !ok {
		return "", ErrMountMissing
	}
	if !st.solved {
		return "", ErrNotSolved
	}
	if st.consumed {
		return "", ErrProofConsumed
	}

	st.consumed = true
	return st.proof, nil
}

// Reset discards the widget's outstanding solve. Idempotent; unknown mounts
// are a no-op.
func (g *Gate) Reset(mount string) {
	g.mu.Lock()
	st, ok := g.mounts[mount]
	if ok {
		st.proof = ""
		st.solved = false
		st.consumed = false
	}
	g.mu.Unlock()

	if ok {
		st.widget.Reset()
	}
}

// Solved reports whether an unconsumed proof is available at the mount
// point. UIs use this to enable submission.
func (g *Gate) Solved(mount string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.mounts[mount]
	return ok && st.solved && !st.consumed
}

// Rendered reports whether the mount point currently has a live widget.
func (g *Gate) Rendered(mount string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.mounts[mount]
	return ok && st.rendered
}
