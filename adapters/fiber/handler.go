package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/jdcastro/bantay/core"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

type deleteRequest struct {
	UserID string `json:"userID"`
	Reason string `json:"reason"`
}

func (a *Adapter) register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid request body",
		})
	}

	result, err := a.auth.RegisterUser(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return a.handleError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(result)
}

func (a *Adapter) login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid request body",
		})
	}

	result, err := a.auth.LoginUser(c.Context(), req.EmailOrUsername, req.Password)
	if err != nil {
		return a.handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

func (a *Adapter) getUser(c fiber.Ctx) error {
	projection, err := a.users.GetAccount(c.Context(), c.Query("userID"))
	if err != nil {
		return a.handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(projection)
}

func (a *Adapter) deleteUser(c fiber.Ctx) error {
	requesterID, _ := c.Locals(accountIDKey).(string)

	var req deleteRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid request body",
		})
	}

	if err := a.users.DeleteAccount(c.Context(), requesterID, req.UserID, req.Reason); err != nil {
		return a.handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

// handleError translates application errors to HTTP responses. Anything
// outside the known taxonomy is logged in full and masked for the caller.
func (a *Adapter) handleError(c fiber.Ctx, err error) error {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		a.log.Error(c.Context(), "request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(status).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}

	return c.Status(status).JSON(fiber.Map{
		"message": err.Error(),
	})
}

// mapErrorToStatus maps application error types to HTTP status codes
func mapErrorToStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, core.ErrEmailExists),
		errors.Is(err, core.ErrUsernameExists):
		return http.StatusConflict

	case errors.Is(err, core.ErrAccountNotFound):
		return http.StatusNotFound

	case errors.Is(err, core.ErrInvalidCredentials),
		errors.Is(err, core.ErrNotAccountOwner),
		errors.Is(err, core.ErrMissingAuthHeader),
		errors.Is(err, core.ErrInvalidToken):
		return http.StatusUnauthorized

	case errors.Is(err, core.ErrUsernameRequired),
		errors.Is(err, core.ErrUsernameLength),
		errors.Is(err, core.ErrEmailRequired),
		errors.Is(err, core.ErrInvalidEmail),
		errors.Is(err, core.ErrPasswordRequired),
		errors.Is(err, core.ErrPasswordTooShort),
		errors.Is(err, core.ErrPasswordTooLong),
		errors.Is(err, core.ErrPasswordTooWeak),
		errors.Is(err, core.ErrIdentifierRequired),
		errors.Is(err, core.ErrIdentifierLength),
		errors.Is(err, core.ErrInvalidAccountID),
		errors.Is(err, core.ErrReasonLength):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
