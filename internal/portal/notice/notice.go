// Package notice is the portal's user-facing message center. Flow errors,
// session warnings and transport failures all surface here instead of being
// swallowed by whichever goroutine hit them.
package notice

import (
	"sync"
	"time"

	"github.com/kindlinghq/kindling/pkg/idx"
)

// Severity classifies a notice for rendering.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Notice is a single user-facing message. Transient notices are expected to
// be dismissed automatically by the renderer; persistent ones stay until the
// user clears them.
type Notice struct {
	ID        string
	Severity  Severity
	Text      string
	Transient bool
	PostedAt  time.Time
}

// Center collects notices and fans them out to subscribers.
type Center struct {
	mu      sync.Mutex
	active  []Notice
	subs    map[int]func(Notice)
	nextSub int
}

func NewCenter() *Center {
	return &Center{subs: make(map[int]func(Notice))}
}

// Post adds a notice and returns its id.
func (c *Center) Post(severity Severity, text string, transient bool) string {
	n := Notice{
		ID:        idx.New().String(),
		Severity:  severity,
		Text:      text,
		Transient: transient,
		PostedAt:  time.Now(),
	}

	c.mu.Lock()
	c.active = append(c.active, n)
	fns := make([]func(Notice), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(n)
	}
	return n.ID
}

// Error posts a persistent error notice.
func (c *Center) Error(text string) string {
	return c.Post(SeverityError, text, false)
}

// Warn posts a transient warning notice.
func (c *Center) Warn(text string) string {
	return c.Post(SeverityWarn, text, true)
}

// Dismiss removes a notice by id. Unknown ids are a no-op.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, n := range c.active {
		if n.ID == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			return
		}
	}
}

// Active returns a snapshot of the current notices, oldest first.
func (c *Center) Active() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notice, len(c.active))
	copy(out, c.active)
	return out
}

// Subscribe registers fn for every future notice and returns an unsubscribe
// function.
func (c *Center) Subscribe(fn func(Notice)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}
