package identitysdk

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// SignOut revokes the current session with the provider and clears the
// locally observed session. The local state is cleared even when the
// provider call fails, so the application is never stuck signed in.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	current := c.current
	c.mu.Unlock()

	if current == nil {
		return nil
	}

	err := c.doJSON(ctx, http.MethodPost, "/v1/signout", nil, nil, current.Token)
	c.setSession(nil)
	return err
}

// CheckSession revalidates the current session against the provider.
//
// A definitive invalid_token answer clears the session (it was revoked or
// expired provider-side). Any other failure is reported to the caller but
// the last known session is retained, so transient network loss does not
// flicker the application into a signed-out state.
func (c *Client) CheckSession(ctx context.Context) error {
	c.mu.Lock()
	current := c.current
	c.mu.Unlock()

	if current == nil {
		return nil
	}

	var resp SessionResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/session", nil, &resp, current.Token)
	if err != nil {
		var provErr *ProviderError
		if errors.As(err, &provErr) && provErr.Code == ErrorCodeInvalidToken {
			c.setSession(nil)
			return nil
		}
		return err
	}

	return nil
}

// StartSessionWatch periodically revalidates the session until ctx is
// cancelled. Transient failures go to onError; session replacements reach
// OnSessionChange subscribers as usual.
func (c *Client) StartSessionWatch(ctx context.Context, interval time.Duration, onError func(error)) {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := c.CheckSession(ctx); err != nil && onError != nil {
					onError(err)
				}
			}
		}
	}()
}
