// Package sessionwatch observes the identity session for the portal. It
// relays session replacements to subscribers and keeps the last known
// session through transient provider outages so the UI doesn't flicker
// between signed-in and signed-out.
package sessionwatch

import (
	"context"
	"sync"
	"time"

	"github.com/kindlinghq/kindling/internal/portal/notice"
	"github.com/kindlinghq/kindling/pkg/identitysdk"
)

// DefaultInterval is how often the observer revalidates the session.
const DefaultInterval = 30 * time.Second

// Observer watches the identity client's session state.
type Observer struct {
	client   *identitysdk.Client
	notices  *notice.Center
	interval time.Duration

	mu      sync.Mutex
	current *identitysdk.Session
	subs    map[int]func(*identitysdk.Session)
	nextSub int

	cancel context.CancelFunc
	unsub  func()
}

func NewObserver(client *identitysdk.Client, notices *notice.Center, interval time.Duration) *Observer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Observer{
		client:   client,
		notices:  notices,
		interval: interval,
		subs:     make(map[int]func(*identitysdk.Session)),
	}
}

// Start begins observing. It mirrors the client's session changes and runs
// the periodic revalidation loop until Close.
func (o *Observer) Start() {
	ctx, cancel := context.WithCancel(context.Background())

	o.mu.Lock()
	o.cancel = cancel
	o.mu.Unlock()

	o.unsub = o.client.OnSessionChange(func(s *identitysdk.Session) {
		o.mu.Lock()
		o.current = s
		fns := make([]func(*identitysdk.Session), 0, len(o.subs))
		for _, fn := range o.subs {
			fns = append(fns, fn)
		}
		o.mu.Unlock()

		for _, fn := range fns {
			fn(s)
		}
	})

	o.client.StartSessionWatch(ctx, o.interval, func(err error) {
		// Transient failure: keep the session, tell the user.
		if o.notices != nil {
			o.notices.Warn("session check failed: " + err.Error())
		}
	})
}

// Current returns the last observed session, or nil when signed out.
func (o *Observer) Current() *identitysdk.Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Subscribe registers fn for session replacements and returns an
// unsubscribe function. The callback fires immediately with the current
// state.
func (o *Observer) Subscribe(fn func(*identitysdk.Session)) func() {
	o.mu.Lock()
	id := o.nextSub
	o.nextSub++
	o.subs[id] = fn
	current := o.current
	o.mu.Unlock()

	fn(current)

	return func() {
		o.mu.Lock()
		delete(o.subs, id)
		o.mu.Unlock()
	}
}

// Close stops observing. The client's session state is left untouched.
func (o *Observer) Close() {
	o.mu.Lock()
	cancel := o.cancel
	o.cancel = nil
	o.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if o.unsub != nil {
		o.unsub()
		o.unsub = nil
	}
}
