package memory

import (
	"context"
	"time"

	"github.com/kindlinghq/kindling/internal/identity/domain"
	"github.com/kindlinghq/kindling/internal/identity/store"
)

type challenges Memory

func (c *challenges) CreateChallenge(_ context.Context, ch domain.PhoneChallenge) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.challenges[ch.ID]; ok {
		return store.ErrAlreadyExists
	}

	// Supersede any pending challenge for the same number. Only the most
	// recent handle is ever confirmable.
	for id, existing := range c.challenges {
		if existing.PhoneNumber == ch.PhoneNumber {
			delete(c.challenges, id)
		}
	}

	c.challenges[ch.ID] = ch
	return nil
}

func (c *challenges) GetChallenge(_ context.Context, id string) (domain.PhoneChallenge, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch, ok := c.challenges[id]
	if !ok {
		return domain.PhoneChallenge{}, store.ErrNotFound
	}
	return ch, nil
}

func (c *challenges) IncrementAttempts(_ context.Context, id string) (domain.PhoneChallenge, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch, ok := c.challenges[id]
	if !ok {
		return domain.PhoneChallenge{}, store.ErrNotFound
	}
	ch.Attempts++
	c.challenges[id] = ch
	return ch, nil
}

func (c *challenges) DeleteChallenge(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.challenges, id)
	return nil
}

func (c *challenges) DeleteExpiredChallenges(_ context.Context, now time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, ch := range c.challenges {
		if ch.Expired(now) {
			delete(c.challenges, id)
		}
	}
	return nil
}
