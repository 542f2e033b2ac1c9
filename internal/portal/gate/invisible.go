package gate

import (
	"context"
	"sync"
	"time"

	"github.com/kindlinghq/kindling/pkg/identitysdk"
)

// ProofRequester is the slice of the identity SDK the invisible widget
// needs.
type ProofRequester interface {
	RequestProof(ctx context.Context, mount string) (identitysdk.Proof, error)
}

// InvisibleWidget solves without user interaction: rendering requests a
// proof from the provider and emits it as solved immediately. An expiry
// timer emits Expired when the proof lapses unused.
type InvisibleWidget struct {
	provider ProofRequester
	mount    string

	mu       sync.Mutex
	rendered bool
	timer    *time.Timer
	events   chan Event
}

var _ Widget = (*InvisibleWidget)(nil)

func NewInvisibleWidget(provider ProofRequester, mount string) *InvisibleWidget {
	return &InvisibleWidget{
		provider: provider,
		mount:    mount,
		events:   make(chan Event, 8),
	}
}

func (w *InvisibleWidget) Render(ctx context.Context) error {
	w.mu.Lock()
	if w.rendered {
		w.mu.Unlock()
		return nil
	}
	w.rendered = true
	w.mu.Unlock()

	if err := w.solve(ctx); err != nil {
		w.mu.Lock()
		w.rendered = false
		w.mu.Unlock()
		return err
	}
	return nil
}

func (w *InvisibleWidget) Events() <-chan Event { return w.events }

// Reset discards the outstanding proof and immediately solves again, since
// an invisible widget has nothing to wait for. A solve failure surfaces as
// an expiry event so the flow notices the mount went dark.
func (w *InvisibleWidget) Reset() {
	w.mu.Lock()
	if !w.rendered {
		w.mu.Unlock()
		return
	}
	w.stopTimerLocked()
	w.mu.Unlock()

	if err := w.solve(context.Background()); err != nil {
		w.events <- Event{Type: EventExpired}
	}
}

func (w *InvisibleWidget) solve(ctx context.Context) error {
	proof, err := w.provider.RequestProof(ctx, w.mount)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.stopTimerLocked()
	w.timer = time.AfterFunc(time.Until(proof.ExpiresAt), func() {
		w.events <- Event{Type: EventExpired}
	})
	w.mu.Unlock()

	w.events <- Event{Type: EventSolved, Proof: proof.Token}
	return nil
}

func (w *InvisibleWidget) stopTimerLocked() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
