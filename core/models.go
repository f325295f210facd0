package core

import "time"

// Account represents a persisted identity record.
//
// Username and email are each unique across all accounts; the store's
// unique constraints are the final arbiter.
type Account struct {
	ID           string    `json:"accountID"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"createdAt"`
	IsActive     bool      `json:"isActive"`
}

// AccountProjection is the outward-facing view of an account.
// The model returned to clients; it never carries the password hash.
type AccountProjection struct {
	AccountID string    `json:"accountID"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	IsActive  bool      `json:"isActive"`
}

// Projection returns the client-safe view of the account.
func (a *Account) Projection() *AccountProjection {
	return &AccountProjection{
		AccountID: a.ID,
		Username:  a.Username,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		IsActive:  a.IsActive,
	}
}

// AuthResult contains the session token and account basics returned by
// registration and login.
type AuthResult struct {
	Token     string `json:"token"`
	AccountID string `json:"accountID"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}
