package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHandler provides one-way password hashing and verification.
type PasswordHandler interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// DefaultBcryptCost is the work factor used for new hashes.
const DefaultBcryptCost = 10

var ErrEmptyPassword = errors.New("password cannot be empty")

// Ensure Bcrypt implements PasswordHandler
var _ PasswordHandler = (*Bcrypt)(nil)

// Bcrypt hashes passwords with a per-hash random salt embedded in the
// digest. The cost is fixed at construction.
type Bcrypt struct {
	Cost int
}

// NewBcrypt creates a Bcrypt handler with the default cost.
func NewBcrypt() *Bcrypt {
	return &Bcrypt{Cost: DefaultBcryptCost}
}

// NewBcryptWithCost creates a Bcrypt handler with a custom cost. Tests
// use bcrypt.MinCost to avoid the slow-hash overhead per operation.
func NewBcryptWithCost(cost int) *Bcrypt {
	return &Bcrypt{Cost: cost}
}

func (b *Bcrypt) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), b.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(digest), nil
}

func (b *Bcrypt) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("failed to verify password: %w", err)
}
