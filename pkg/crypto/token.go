package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid covers every verification failure: bad signature,
// malformed structure, expired timestamp, or missing account claim.
var ErrTokenInvalid = errors.New("invalid session token")

// Claims includes the registered claims plus the account the token is
// bound to.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"accountID"`
}

// JWT signs and verifies stateless bearer session tokens with HS256.
// It holds no mutable state beyond the signing secret and is safe for
// concurrent use.
type JWT struct {
	secret []byte
	ttl    time.Duration
}

// NewJWT creates a token issuer with a fixed validity window.
func NewJWT(secret []byte, ttl time.Duration) *JWT {
	return &JWT{secret: secret, ttl: ttl}
}

// Sign issues a token bound to accountID, expiring after the issuer's
// validity window.
func (j *JWT) Sign(accountID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		AccountID: accountID,
	})

	return token.SignedString(j.secret)
}

// Verify checks signature, structure, and expiry, and returns the bound
// account ID. Tokens without a usable accountID claim are rejected even
// when correctly signed.
func (j *JWT) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", ErrTokenInvalid
	}

	if !token.Valid || claims.AccountID == "" {
		return "", ErrTokenInvalid
	}

	return claims.AccountID, nil
}
