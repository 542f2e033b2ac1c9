package memory

import (
	"context"
	"time"
)

type revocations Memory

func (r *revocations) RevokeSession(_ context.Context, sid string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.revocations[sid] = expiresAt.Unix()
	return nil
}

func (r *revocations) IsSessionRevoked(_ context.Context, sid string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.revocations[sid]
	return ok, nil
}

func (r *revocations) DeleteExpiredRevocations(_ context.Context, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for sid, exp := range r.revocations {
		if now.Unix() > exp {
			delete(r.revocations, sid)
		}
	}
	return nil
}
