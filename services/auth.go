// Package services contains the transactional user-lifecycle core:
// registration, login, and protected account operations.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jdcastro/bantay/core"
	"github.com/jdcastro/bantay/pkg/crypto"
)

// AuthService orchestrates registration and login. Store access within a
// single operation is scoped to one transaction; tokens are issued only
// after a successful commit.
type AuthService struct {
	store     core.Transactor
	passwords crypto.PasswordHandler
	tokens    core.TokenIssuer
}

func NewAuthService(store core.Transactor, passwords crypto.PasswordHandler, tokens core.TokenIssuer) *AuthService {
	return &AuthService{
		store:     store,
		passwords: passwords,
		tokens:    tokens,
	}
}

// RegisterUser creates a new account and returns a session token bound to
// it. Uniqueness pre-checks, the insert, and the re-read of the
// store-assigned ID all run inside one transaction; any failure rolls the
// whole operation back and propagates unchanged.
func (s *AuthService) RegisterUser(ctx context.Context, username, email, password string) (*core.AuthResult, error) {
	if err := core.ValidateRegistration(username, email, password); err != nil {
		return nil, err
	}

	var created *core.Account
	err := s.store.InTransaction(ctx, func(ctx context.Context, tx core.AccountStore) error {
		// Step 1: fail fast on a taken email.
		if _, err := tx.FindByEmail(ctx, email); err == nil {
			return core.ErrEmailExists
		} else if !errors.Is(err, core.ErrAccountNotFound) {
			return fmt.Errorf("failed to check existing email: %w", err)
		}

		// Step 2: fail fast on a taken username.
		if _, err := tx.FindByUsername(ctx, username); err == nil {
			return core.ErrUsernameExists
		} else if !errors.Is(err, core.ErrAccountNotFound) {
			return fmt.Errorf("failed to check existing username: %w", err)
		}

		// Step 3: hash the password.
		hash, err := s.passwords.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		// Step 4: insert the account. The store's unique constraints
		// remain the arbiter if a concurrent registration slipped past
		// the pre-checks.
		if err := tx.Insert(ctx, username, email, hash); err != nil {
			return err
		}

		// Step 5: re-read inside the same transaction to obtain the
		// store-assigned ID.
		account, err := tx.FindByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to read created account: %w", err)
		}
		created = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Token issuance happens only after the commit succeeded.
	token, err := s.tokens.Sign(created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &core.AuthResult{
		Token:     token,
		AccountID: created.ID,
		Username:  created.Username,
		Email:     created.Email,
	}, nil
}

// LoginUser authenticates by email or username. An unknown identifier and
// a wrong password both yield ErrInvalidCredentials; nothing discloses
// which part was wrong.
func (s *AuthService) LoginUser(ctx context.Context, identifier, password string) (*core.AuthResult, error) {
	if err := core.ValidateLogin(identifier, password); err != nil {
		return nil, err
	}

	// Both lookups share one connection scope; no mutation happens here.
	var account *core.Account
	err := s.store.InTransaction(ctx, func(ctx context.Context, tx core.AccountStore) error {
		found, err := tx.FindByEmail(ctx, identifier)
		if errors.Is(err, core.ErrAccountNotFound) {
			found, err = tx.FindByUsername(ctx, identifier)
		}
		if err != nil {
			return err
		}
		account = found
		return nil
	})
	if err != nil {
		if errors.Is(err, core.ErrAccountNotFound) {
			return nil, core.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	valid, err := s.passwords.Verify(password, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, core.ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &core.AuthResult{
		Token:     token,
		AccountID: account.ID,
		Username:  account.Username,
		Email:     account.Email,
	}, nil
}
