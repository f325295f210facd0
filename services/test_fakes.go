package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jdcastro/bantay/core"
)

// FakeAccountStore is an in-memory core.Transactor for service tests.
// Transactions stage their writes on a copy of the state; the copy
// replaces the live state only when fn returns nil, mirroring
// commit/rollback semantics.
type FakeAccountStore struct {
	mu       sync.Mutex
	accounts map[string]*core.Account

	// FindErr and InsertErr force storage failures when set.
	FindErr   error
	InsertErr error

	Commits   int
	Rollbacks int
}

var _ core.Transactor = (*FakeAccountStore)(nil)

func NewFakeAccountStore() *FakeAccountStore {
	return &FakeAccountStore{accounts: make(map[string]*core.Account)}
}

// Len reports the number of persisted account rows.
func (f *FakeAccountStore) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.accounts)
}

// Seed persists an account directly, bypassing transactions.
func (f *FakeAccountStore) Seed(account *core.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	f.accounts[account.ID] = account
}

func (f *FakeAccountStore) InTransaction(ctx context.Context, fn func(ctx context.Context, tx core.AccountStore) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	staged := make(map[string]*core.Account, len(f.accounts))
	for id, a := range f.accounts {
		copied := *a
		staged[id] = &copied
	}

	tx := &fakeTx{store: f, accounts: staged}
	if err := fn(ctx, tx); err != nil {
		f.Rollbacks++
		return err
	}

	f.accounts = staged
	f.Commits++
	return nil
}

func (f *FakeAccountStore) FindByID(ctx context.Context, id string) (*core.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (&fakeTx{store: f, accounts: f.accounts}).FindByID(ctx, id)
}

func (f *FakeAccountStore) FindByEmail(ctx context.Context, email string) (*core.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (&fakeTx{store: f, accounts: f.accounts}).FindByEmail(ctx, email)
}

func (f *FakeAccountStore) FindByUsername(ctx context.Context, username string) (*core.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (&fakeTx{store: f, accounts: f.accounts}).FindByUsername(ctx, username)
}

func (f *FakeAccountStore) Insert(ctx context.Context, username, email, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (&fakeTx{store: f, accounts: f.accounts}).Insert(ctx, username, email, passwordHash)
}

func (f *FakeAccountStore) DeleteByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (&fakeTx{store: f, accounts: f.accounts}).DeleteByID(ctx, id)
}

// fakeTx is the store view handed to transaction callbacks.
type fakeTx struct {
	store    *FakeAccountStore
	accounts map[string]*core.Account
}

func (t *fakeTx) FindByID(_ context.Context, id string) (*core.Account, error) {
	if t.store.FindErr != nil {
		return nil, t.store.FindErr
	}
	if a, ok := t.accounts[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, core.ErrAccountNotFound
}

func (t *fakeTx) FindByEmail(_ context.Context, email string) (*core.Account, error) {
	if t.store.FindErr != nil {
		return nil, t.store.FindErr
	}
	for _, a := range t.accounts {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, core.ErrAccountNotFound
}

func (t *fakeTx) FindByUsername(_ context.Context, username string) (*core.Account, error) {
	if t.store.FindErr != nil {
		return nil, t.store.FindErr
	}
	for _, a := range t.accounts {
		if a.Username == username {
			copied := *a
			return &copied, nil
		}
	}
	return nil, core.ErrAccountNotFound
}

func (t *fakeTx) Insert(_ context.Context, username, email, passwordHash string) error {
	if t.store.InsertErr != nil {
		return t.store.InsertErr
	}
	for _, a := range t.accounts {
		if a.Email == email {
			return core.ErrEmailExists
		}
		if a.Username == username {
			return core.ErrUsernameExists
		}
	}
	id := uuid.NewString()
	t.accounts[id] = &core.Account{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		IsActive:     true,
	}
	return nil
}

func (t *fakeTx) DeleteByID(_ context.Context, id string) error {
	if _, ok := t.accounts[id]; !ok {
		return core.ErrAccountNotFound
	}
	delete(t.accounts, id)
	return nil
}
