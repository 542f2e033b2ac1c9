package identitysdk

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// Client talks to the identity provider. It owns the locally observed
// session state: sign-in and sign-out update it, and subscribers registered
// via OnSessionChange are notified of every replacement.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu      sync.Mutex
	current *Session
	subs    map[int]func(*Session)
	nextSub int
}

// NewClient creates a new identity provider client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		subs: make(map[int]func(*Session)),
	}
}

// Session is the identity record the application observes. It is replaced
// atomically on every provider-initiated change and never mutated in place.
type Session struct {
	UserID      string
	Name        string
	Email       string
	PhoneNumber string

	// Token is the bearer session token backing this session.
	Token string

	ExpiresAt time.Time
}

// CurrentSession returns the last observed session, or nil when signed out.
func (c *Client) CurrentSession() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// OnSessionChange registers fn to be called with every session replacement
// (nil means signed out). It returns an unsubscribe function. The callback
// fires immediately with the current state so late subscribers don't miss
// the initial value.
func (c *Client) OnSessionChange(fn func(*Session)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	current := c.current
	c.mu.Unlock()

	fn(current)

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// setSession replaces the observed session and notifies subscribers.
func (c *Client) setSession(s *Session) {
	c.mu.Lock()
	c.current = s
	fns := make([]func(*Session), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

func sessionFromResponse(resp SessionResponse) *Session {
	return &Session{
		UserID:      resp.UserID,
		Name:        resp.Name,
		Email:       resp.Email,
		PhoneNumber: resp.PhoneNumber,
		Token:       resp.SessionToken,
		ExpiresAt:   time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}
}
