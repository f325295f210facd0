// Package fiber exposes the account and authentication operations over
// HTTP using gofiber.
package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/jdcastro/bantay/core"
	"github.com/jdcastro/bantay/pkg/logging"
	"github.com/jdcastro/bantay/pkg/ratelimit"
	"github.com/jdcastro/bantay/services"
)

type Adapter struct {
	app    *fiber.App
	auth   *services.AuthService
	users  *services.UserService
	tokens core.TokenIssuer
	log    logging.Logger
}

func New(app *fiber.App, auth *services.AuthService, users *services.UserService, tokens core.TokenIssuer, log logging.Logger) *Adapter {
	return &Adapter{app: app, auth: auth, users: users, tokens: tokens, log: log}
}

// RegisterRoutes mounts the API surface. The credential endpoints sit
// behind their own stricter limiter on top of whatever global middleware
// the app already carries.
func (a *Adapter) RegisterRoutes(authLimiter *ratelimit.Limiter) {
	api := a.app.Group("/api")

	throttle := RateLimit(authLimiter)

	// Public routes
	api.Post("/register", throttle, a.register)
	api.Post("/login", throttle, a.login)

	// Protected routes
	api.Get("/user", a.RequireAuth, a.getUser)
	api.Delete("/user", a.RequireAuth, a.deleteUser)
}
