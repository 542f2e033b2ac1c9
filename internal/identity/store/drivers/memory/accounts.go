package memory

import (
	"context"
	"time"

	"github.com/kindlinghq/kindling/internal/identity/domain"
	"github.com/kindlinghq/kindling/internal/identity/store"
)

type accounts Memory

func (a *accounts) GetAccountByID(_ context.Context, id string) (domain.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	acct, ok := a.accounts[id]
	if !ok {
		return domain.Account{}, store.ErrNotFound
	}
	return acct, nil
}

func (a *accounts) GetAccountByPhone(_ context.Context, phone string) (domain.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, acct := range a.accounts {
		if acct.PhoneNumber != "" && acct.PhoneNumber == phone {
			return acct, nil
		}
	}
	return domain.Account{}, store.ErrNotFound
}

func (a *accounts) GetAccountBySubject(_ context.Context, subject string) (domain.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, acct := range a.accounts {
		if acct.Subject != "" && acct.Subject == subject {
			return acct, nil
		}
	}
	return domain.Account{}, store.ErrNotFound
}

func (a *accounts) CreateAccount(_ context.Context, acct domain.Account) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.accounts[acct.ID]; ok {
		return store.ErrAlreadyExists
	}
	a.accounts[acct.ID] = acct
	return nil
}

func (a *accounts) UpdateAccount(_ context.Context, acct domain.Account) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	existing, ok := a.accounts[acct.ID]
	if !ok {
		return store.ErrNotFound
	}
	acct.CreatedAt = existing.CreatedAt
	acct.UpdatedAt = time.Now().UTC()
	a.accounts[acct.ID] = acct
	return nil
}

func (a *accounts) SetAdmin(_ context.Context, id string, admin bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	acct, ok := a.accounts[id]
	if !ok {
		return store.ErrNotFound
	}
	acct.Admin = admin
	acct.UpdatedAt = time.Now().UTC()
	a.accounts[id] = acct
	return nil
}
