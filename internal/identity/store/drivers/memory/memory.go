// Package memory is an in-process store driver for the identity emulator.
// All state is ephemeral; restarting the process forgets every proof,
// challenge and account, which is the behavior a development provider wants.
package memory

import (
	"context"
	"sync"

	"github.com/kindlinghq/kindling/internal/identity/domain"
	"github.com/kindlinghq/kindling/internal/identity/store"
)

type Memory struct {
	mu sync.Mutex

	proofs      map[string]domain.Proof          // keyed by token hash
	challenges  map[string]domain.PhoneChallenge // keyed by challenge id
	accounts    map[string]domain.Account        // keyed by account id
	revocations map[string]int64                 // sid -> expiry unix
}

var _ store.Store = (*Memory)(nil)

func New() *Memory {
	return &Memory{
		proofs:      make(map[string]domain.Proof),
		challenges:  make(map[string]domain.PhoneChallenge),
		accounts:    make(map[string]domain.Account),
		revocations: make(map[string]int64),
	}
}

func (m *Memory) Proofs() store.Proofs           { return (*proofs)(m) }
func (m *Memory) Challenges() store.Challenges   { return (*challenges)(m) }
func (m *Memory) Accounts() store.Accounts       { return (*accounts)(m) }
func (m *Memory) Revocations() store.Revocations { return (*revocations)(m) }

func (m *Memory) Close() error { return nil }

func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }
