package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jdcastro/bantay/core"
	"github.com/jdcastro/bantay/pkg/crypto"
)

func newAuthService(storage *FakeAccountStore) *AuthService {
	passwords := crypto.NewBcryptWithCost(bcrypt.MinCost)
	tokens := crypto.NewJWT([]byte("test-secret-test-secret-test-secret!"), time.Hour)
	return NewAuthService(storage, passwords, tokens)
}

// Requirement: register followed by login with the same credentials
// succeeds, and both tokens resolve to the same account ID.
func TestAuthService_RegisterThenLogin(t *testing.T) {
	// Arrange
	storage := NewFakeAccountStore()
	service := newAuthService(storage)
	tokens := crypto.NewJWT([]byte("test-secret-test-secret-test-secret!"), time.Hour)

	// Act
	registered, err := service.RegisterUser(context.Background(), "alice", "alice@x.com", "Passw0rd1")
	if err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}
	loggedIn, err := service.LoginUser(context.Background(), "alice@x.com", "Passw0rd1")
	if err != nil {
		t.Fatalf("LoginUser() error = %v", err)
	}

	// Assert
	if registered.AccountID == "" {
		t.Fatal("RegisterUser() should return a non-empty account ID")
	}
	if loggedIn.AccountID != registered.AccountID {
		t.Errorf("LoginUser() account = %q, want %q", loggedIn.AccountID, registered.AccountID)
	}
	subject, err := tokens.Verify(loggedIn.Token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if subject != registered.AccountID {
		t.Errorf("token subject = %q, want %q", subject, registered.AccountID)
	}
}

// Requirement: registration validates input, rejects duplicates with a
// conflict, and leaves no partial writes behind on failure.
func TestAuthService_RegisterUser(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		setup    func(*FakeAccountStore)
		wantErr  error
		wantRows int
	}{
		{
			name:     "creates account for valid input",
			username: "alice",
			email:    "alice@x.com",
			password: "Passw0rd1",
			wantErr:  nil,
			wantRows: 1,
		},
		{
			name:     "rejects empty username",
			username: "",
			email:    "alice@x.com",
			password: "Passw0rd1",
			wantErr:  core.ErrUsernameRequired,
			wantRows: 0,
		},
		{
			name:     "rejects duplicate email with different username",
			username: "bob",
			email:    "alice@x.com",
			password: "Passw0rd2",
			setup: func(storage *FakeAccountStore) {
				storage.Seed(&core.Account{Username: "alice", Email: "alice@x.com"})
			},
			wantErr:  core.ErrEmailExists,
			wantRows: 1,
		},
		{
			name:     "rejects duplicate username with different email",
			username: "alice",
			email:    "bob@x.com",
			password: "Passw0rd2",
			setup: func(storage *FakeAccountStore) {
				storage.Seed(&core.Account{Username: "alice", Email: "alice@x.com"})
			},
			wantErr:  core.ErrUsernameExists,
			wantRows: 1,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			storage := NewFakeAccountStore()
			if test.setup != nil {
				test.setup(storage)
			}
			service := newAuthService(storage)

			// Act
			result, err := service.RegisterUser(context.Background(), test.username, test.email, test.password)

			// Assert
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("RegisterUser() error = %v, want %v", err, test.wantErr)
			}
			if storage.Len() != test.wantRows {
				t.Errorf("persisted rows = %d, want %d", storage.Len(), test.wantRows)
			}
			if test.wantErr == nil {
				if result.Token == "" {
					t.Error("RegisterUser() should return a token")
				}
				if result.Username != test.username || result.Email != test.email {
					t.Errorf("RegisterUser() result = %+v", result)
				}
			}
		})
	}
}

// Requirement: a failure mid-transaction rolls back and persists nothing.
func TestAuthService_RegisterUser_RollbackOnStoreError(t *testing.T) {
	// Arrange
	storage := NewFakeAccountStore()
	storage.InsertErr = errors.New("connection reset")
	service := newAuthService(storage)

	// Act
	_, err := service.RegisterUser(context.Background(), "alice", "alice@x.com", "Passw0rd1")

	// Assert
	if err == nil {
		t.Fatal("RegisterUser() should propagate the store error")
	}
	if storage.Len() != 0 {
		t.Errorf("persisted rows = %d, want 0", storage.Len())
	}
	if storage.Rollbacks != 1 {
		t.Errorf("rollbacks = %d, want 1", storage.Rollbacks)
	}
	if storage.Commits != 0 {
		t.Errorf("commits = %d, want 0", storage.Commits)
	}
}

// Requirement: an unknown identifier and a wrong password are
// indistinguishable, and neither issues a token.
func TestAuthService_LoginUser(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		password   string
		wantErr    error
	}{
		{name: "login by email", identifier: "alice@x.com", password: "Passw0rd1", wantErr: nil},
		{name: "login by username", identifier: "alice", password: "Passw0rd1", wantErr: nil},
		{name: "wrong password", identifier: "alice@x.com", password: "WrongPass1", wantErr: core.ErrInvalidCredentials},
		{name: "unknown identifier", identifier: "ghost@x.com", password: "Passw0rd1", wantErr: core.ErrInvalidCredentials},
		{name: "empty identifier", identifier: "", password: "Passw0rd1", wantErr: core.ErrIdentifierRequired},
		{name: "empty password", identifier: "alice@x.com", password: "", wantErr: core.ErrPasswordRequired},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			storage := NewFakeAccountStore()
			service := newAuthService(storage)
			if _, err := service.RegisterUser(context.Background(), "alice", "alice@x.com", "Passw0rd1"); err != nil {
				t.Fatalf("RegisterUser() error = %v", err)
			}

			// Act
			result, err := service.LoginUser(context.Background(), test.identifier, test.password)

			// Assert
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("LoginUser() error = %v, want %v", err, test.wantErr)
			}
			if test.wantErr != nil && result != nil {
				t.Error("LoginUser() should not return a result on failure")
			}
		})
	}
}

// Requirement: wrong-password and unknown-identifier failures carry the
// exact same error value; no information leaks through the error kind.
func TestAuthService_LoginUser_NoInformationDisclosure(t *testing.T) {
	// Arrange
	storage := NewFakeAccountStore()
	service := newAuthService(storage)
	if _, err := service.RegisterUser(context.Background(), "alice", "alice@x.com", "Passw0rd1"); err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}

	// Act
	_, wrongPassErr := service.LoginUser(context.Background(), "alice@x.com", "WrongPass1")
	_, unknownErr := service.LoginUser(context.Background(), "ghost@x.com", "Passw0rd1")

	// Assert
	if !errors.Is(wrongPassErr, core.ErrInvalidCredentials) || !errors.Is(unknownErr, core.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", wrongPassErr, unknownErr)
	}
	if wrongPassErr.Error() != unknownErr.Error() {
		t.Errorf("failure messages differ: %q vs %q", wrongPassErr, unknownErr)
	}
}
