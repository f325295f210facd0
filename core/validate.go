package core

import (
	"net/mail"
	"unicode"

	"github.com/google/uuid"
)

const (
	usernameMinLen   = 3
	usernameMaxLen   = 20
	passwordMinLen   = 8
	passwordMaxLen   = 32
	identifierMinLen = 3
	identifierMaxLen = 255
	reasonMinLen     = 10
	reasonMaxLen     = 255
)

// ValidateRegistration checks registration input before any storage access.
func ValidateRegistration(username, email, password string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return ErrUsernameLength
	}
	if email == "" {
		return ErrEmailRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	return validatePassword(password)
}

// ValidateLogin checks login input before any storage access.
func ValidateLogin(identifier, password string) error {
	if identifier == "" {
		return ErrIdentifierRequired
	}
	if len(identifier) < identifierMinLen || len(identifier) > identifierMaxLen {
		return ErrIdentifierLength
	}
	if password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// ValidateAccountID checks that id is a well-formed account identifier.
func ValidateAccountID(id string) error {
	if uuid.Validate(id) != nil {
		return ErrInvalidAccountID
	}
	return nil
}

// ValidateDeletion checks account deletion input.
func ValidateDeletion(accountID, reason string) error {
	if err := ValidateAccountID(accountID); err != nil {
		return err
	}
	if len(reason) < reasonMinLen || len(reason) > reasonMaxLen {
		return ErrReasonLength
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < passwordMinLen {
		return ErrPasswordTooShort
	}
	if len(password) > passwordMaxLen {
		return ErrPasswordTooLong
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasDigit {
		return ErrPasswordTooWeak
	}
	return nil
}
