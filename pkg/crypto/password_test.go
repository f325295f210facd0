package crypto

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_Hash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "success", password: "testPassword123", wantErr: false},
		{name: "empty password", password: "", wantErr: true},
		{name: "unicode", password: "pässwörter1A", wantErr: false},
		{name: "special chars", password: "p@ssw0rd!#$%A", wantErr: false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			b := NewBcryptWithCost(bcrypt.MinCost)

			// Act
			hash, err := b.Hash(test.password)

			// Assert
			if (err != nil) != test.wantErr {
				t.Fatalf("Hash() error = %v, wantErr %v", err, test.wantErr)
			}
			if !test.wantErr {
				if hash == "" {
					t.Error("Hash() returned empty hash")
				}
				if !strings.HasPrefix(hash, "$2") {
					t.Error("Hash() should produce a bcrypt digest")
				}
			}
		})
	}
}

func TestBcrypt_Hash_UniqueSalts(t *testing.T) {
	// Arrange
	b := NewBcryptWithCost(bcrypt.MinCost)
	password := "samePassword1"

	// Act
	hash1, _ := b.Hash(password)
	hash2, _ := b.Hash(password)

	// Assert
	if hash1 == hash2 {
		t.Error("Hash() should generate different hashes with unique salts")
	}
}

func TestBcrypt_Verify(t *testing.T) {
	tests := []struct {
		name     string
		password string
		attempt  string
		wantOk   bool
	}{
		{name: "correct password", password: "correctPassword1", attempt: "correctPassword1", wantOk: true},
		{name: "wrong password", password: "correctPassword1", attempt: "wrongPassword1", wantOk: false},
		{name: "case sensitive", password: "correctPassword1", attempt: "correctpassword1", wantOk: false},
		{name: "extra character", password: "correctPassword1", attempt: "correctPassword12", wantOk: false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			b := NewBcryptWithCost(bcrypt.MinCost)
			hash, err := b.Hash(test.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}

			// Act
			ok, err := b.Verify(test.attempt, hash)

			// Assert
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if ok != test.wantOk {
				t.Errorf("Verify() = %v, want %v", ok, test.wantOk)
			}
		})
	}
}

func TestBcrypt_Verify_MalformedHash(t *testing.T) {
	// Arrange
	b := NewBcryptWithCost(bcrypt.MinCost)

	// Act
	ok, err := b.Verify("anyPassword1", "not-a-bcrypt-hash")

	// Assert
	if err == nil {
		t.Error("Verify() should return an error for a malformed hash")
	}
	if ok {
		t.Error("Verify() should not report a match for a malformed hash")
	}
}
