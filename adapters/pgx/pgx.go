// Package pgx implements the account store over PostgreSQL.
package pgx

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jdcastro/bantay/core"
)

// querier abstracts query execution for both the pool and pgx.Tx so the
// account methods work inside and outside transactions.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Pool is the subset of *pgxpool.Pool the store needs. Tests substitute a
// mock pool.
type Pool interface {
	querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

var _ Pool = (*pgxpool.Pool)(nil)

// Store implements core.Transactor over a PostgreSQL connection pool.
type Store struct {
	accounts
	pool Pool
}

var _ core.Transactor = (*Store)(nil)

func New(pool Pool) *Store {
	return &Store{accounts: accounts{q: pool}, pool: pool}
}

// InTransaction runs fn against a store scoped to one transaction,
// committing when fn returns nil and rolling back otherwise. The
// transaction is released on every exit path.
func (s *Store) InTransaction(ctx context.Context, fn func(ctx context.Context, tx core.AccountStore) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if err := fn(ctx, accounts{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
