package core

import "errors"

// Authentication related errors
var (
	ErrEmailExists        = errors.New("email already exists")               // 409 Conflict
	ErrUsernameExists     = errors.New("username already exists")            // 409 Conflict
	ErrAccountNotFound    = errors.New("account not found")                  // 404 Not Found
	ErrInvalidCredentials = errors.New("invalid email/username or password") // 401 Unauthorized
	ErrNotAccountOwner    = errors.New("account does not belong to caller")  // 401 Unauthorized
)

// Token errors
var (
	ErrMissingAuthHeader = errors.New("authentication required")    // 401, code MISSING_TOKEN
	ErrInvalidToken      = errors.New("session expired or invalid") // 401, code INVALID_TOKEN
)

// Validation errors (client input)
var (
	ErrUsernameRequired   = errors.New("username is required")                                   // 400
	ErrUsernameLength     = errors.New("username must be between 3 and 20 characters")           // 400
	ErrEmailRequired      = errors.New("email is required")                                      // 400
	ErrInvalidEmail       = errors.New("invalid email format")                                   // 400
	ErrPasswordRequired   = errors.New("password is required")                                   // 400
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")            // 400
	ErrPasswordTooLong    = errors.New("password too long")                                      // 400
	ErrPasswordTooWeak    = errors.New("password needs one uppercase letter and one number")     // 400
	ErrIdentifierRequired = errors.New("email or username is required")                          // 400
	ErrIdentifierLength   = errors.New("email or username must be between 3 and 255 characters") // 400
	ErrInvalidAccountID   = errors.New("invalid user ID format")                                 // 400
	ErrReasonLength       = errors.New("reason must be between 10 and 255 characters")           // 400
)
