package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jdcastro/bantay/core"
)

// accounts carries the account queries; q is either the pool or an open
// transaction.
type accounts struct {
	q querier
}

func (a accounts) FindByID(ctx context.Context, id string) (*core.Account, error) {
	q := `SELECT id, username, email, password_hash, created_at, is_active FROM accounts WHERE id = $1`
	return a.scanOne(ctx, q, id)
}

func (a accounts) FindByEmail(ctx context.Context, email string) (*core.Account, error) {
	q := `SELECT id, username, email, password_hash, created_at, is_active FROM accounts WHERE email = $1`
	return a.scanOne(ctx, q, email)
}

func (a accounts) FindByUsername(ctx context.Context, username string) (*core.Account, error) {
	q := `SELECT id, username, email, password_hash, created_at, is_active FROM accounts WHERE username = $1`
	return a.scanOne(ctx, q, username)
}

func (a accounts) scanOne(ctx context.Context, query string, arg any) (*core.Account, error) {
	account := &core.Account{}
	err := a.q.QueryRow(ctx, query, arg).Scan(
		&account.ID, &account.Username, &account.Email,
		&account.PasswordHash, &account.CreatedAt, &account.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	return account, nil
}

// Insert persists a new account. The id, created_at, and is_active
// columns come from their defaults; callers re-read the row to obtain
// them. A unique violation surfaces as the matching conflict error.
func (a accounts) Insert(ctx context.Context, username, email, passwordHash string) error {
	q := `INSERT INTO accounts (username, email, password_hash) VALUES ($1, $2, $3)`
	if _, err := a.q.Exec(ctx, q, username, email, passwordHash); err != nil {
		return mapInsertError(err)
	}
	return nil
}

func (a accounts) DeleteByID(ctx context.Context, id string) error {
	tag, err := a.q.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrAccountNotFound
	}
	return nil
}

// mapInsertError converts unique-constraint violations into the same
// conflict errors the transactional pre-checks raise, so a race between
// two concurrent registrations degrades to an identical outcome.
func mapInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case "accounts_email_key":
			return core.ErrEmailExists
		case "accounts_username_key":
			return core.ErrUsernameExists
		}
	}
	return fmt.Errorf("failed to insert account: %w", err)
}
