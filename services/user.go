package services

import (
	"context"

	"github.com/jdcastro/bantay/core"
)

// UserService handles protected account operations for authenticated
// callers.
type UserService struct {
	store core.Transactor
}

func NewUserService(store core.Transactor) *UserService {
	return &UserService{store: store}
}

// GetAccount returns the client-safe projection of an account.
func (s *UserService) GetAccount(ctx context.Context, accountID string) (*core.AccountProjection, error) {
	if err := core.ValidateAccountID(accountID); err != nil {
		return nil, err
	}

	account, err := s.store.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return account.Projection(), nil
}

// DeleteAccount hard-deletes the caller's own account. The target must
// equal the authenticated requester; the existence check and delete share
// one transaction.
func (s *UserService) DeleteAccount(ctx context.Context, requesterID, targetID, reason string) error {
	if err := core.ValidateDeletion(targetID, reason); err != nil {
		return err
	}
	if requesterID != targetID {
		return core.ErrNotAccountOwner
	}

	return s.store.InTransaction(ctx, func(ctx context.Context, tx core.AccountStore) error {
		if _, err := tx.FindByID(ctx, targetID); err != nil {
			return err
		}
		return tx.DeleteByID(ctx, targetID)
	})
}
