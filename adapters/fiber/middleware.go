package fiber

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/jdcastro/bantay/core"
	"github.com/jdcastro/bantay/pkg/ratelimit"
)

// accountIDKey is the locals key under which RequireAuth stores the
// verified subject for downstream handlers.
const accountIDKey = "accountID"

// Machine-readable reason codes attached to guard rejections so clients
// can distinguish an absent token from a bad one.
const (
	codeMissingToken = "MISSING_TOKEN"
	codeInvalidToken = "INVALID_TOKEN"
)

// RequireAuth validates the bearer token on the request and resolves it
// to an account ID before any protected handler runs.
func (a *Adapter) RequireAuth(c fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"message": core.ErrMissingAuthHeader.Error(),
			"code":    codeMissingToken,
		})
	}

	accountID, err := a.tokens.Verify(token)
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"message": core.ErrInvalidToken.Error(),
			"code":    codeInvalidToken,
		})
	}

	c.Locals(accountIDKey, accountID)
	return c.Next()
}

// bearerToken extracts the token from an Authorization header value.
// The header must be exactly "Bearer <token>": one space, non-empty
// token, no trailing parts.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || token == "" || strings.ContainsRune(token, ' ') {
		return "", false
	}
	return token, true
}

// RateLimit consumes one point per request from the given limiter, keyed
// by client IP. Rejections carry a Retry-After header with the wait
// rounded up to whole seconds.
func RateLimit(limiter *ratelimit.Limiter) fiber.Handler {
	return func(c fiber.Ctx) error {
		if _, err := limiter.Consume(c.IP()); err != nil {
			var rlErr *ratelimit.Error
			if !errors.As(err, &rlErr) {
				return err
			}

			retry := rlErr.RetrySeconds()
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retry))
			return c.Status(http.StatusTooManyRequests).JSON(fiber.Map{
				"message": fmt.Sprintf("Too many attempts. Try again in %d seconds.", retry),
			})
		}
		return c.Next()
	}
}
