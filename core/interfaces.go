package core

import "context"

// Ports define interfaces for external dependencies

// ============================================
// STORAGE PORTS (Database operations)
// ============================================

// AccountStore defines account persistence operations.
//
// Lookups return ErrAccountNotFound when no row matches. Insert relies on
// the store's unique constraints and surfaces ErrEmailExists or
// ErrUsernameExists on a violation.
type AccountStore interface {
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
	Insert(ctx context.Context, username, email, passwordHash string) error
	DeleteByID(ctx context.Context, id string) error
}

// Transactor is an AccountStore that can scope a set of calls to a single
// transaction. InTransaction commits when fn returns nil and rolls back
// otherwise; the connection is released on every exit path. The store
// passed to fn is only valid for the duration of the call.
type Transactor interface {
	AccountStore
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx AccountStore) error) error
}

// ============================================
// TOKEN PORT
// ============================================

// TokenIssuer signs and verifies bearer session tokens. Sign binds a
// token to an account ID with the issuer's fixed validity window; Verify
// rejects bad signatures, malformed tokens, expired timestamps, and
// tokens without a usable account ID claim. Both are stateless and safe
// for concurrent use.
type TokenIssuer interface {
	Sign(accountID string) (string, error)
	Verify(token string) (string, error)
}
