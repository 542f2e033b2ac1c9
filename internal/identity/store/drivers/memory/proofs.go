package memory

import (
	"context"
	"time"

	"github.com/kindlinghq/kindling/internal/identity/domain"
	"github.com/kindlinghq/kindling/internal/identity/store"
)

type proofs Memory

func (p *proofs) CreateProof(_ context.Context, proof domain.Proof) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.proofs[proof.TokenHash]; ok {
		return store.ErrAlreadyExists
	}
	p.proofs[proof.TokenHash] = proof
	return nil
}

func (p *proofs) ConsumeProof(_ context.Context, tokenHash string, now time.Time) (domain.Proof, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	proof, ok := p.proofs[tokenHash]
	if !ok {
		return domain.Proof{}, store.ErrNotFound
	}
	if proof.Consumed() {
		return domain.Proof{}, store.ErrProofConsumed
	}

	consumed := now
	proof.ConsumedAt = &consumed
	p.proofs[tokenHash] = proof
	return proof, nil
}

func (p *proofs) DeleteExpiredProofs(_ context.Context, now time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for hash, proof := range p.proofs {
		if proof.Expired(now) {
			delete(p.proofs, hash)
		}
	}
	return nil
}
