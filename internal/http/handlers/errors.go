package handlers

import (
	"bytes"
	"encoding/json"
	"errors"

	applog "usersvc/internal/log"
	"usersvc/internal/services"

	"github.com/gofiber/fiber/v2"
)

var errEmptyBody = errors.New("empty body")

// ErrorHandler renders every unhandled error as {"error": msg}. Errors that are not
// *fiber.Error become a 500 carrying the error text as is.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	}
	return c.Status(code).JSON(errorResponse{Error: err.Error()})
}

// respondErr writes the client-facing form of a service error. Unknown errors go to ErrorHandler.
func respondErr(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: verr.Msg})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{Error: "User not found"})
	case errors.Is(err, services.ErrEmailExists):
		return c.Status(fiber.StatusConflict).JSON(errorResponse{Error: "Email already exists"})
	case errors.Is(err, services.ErrNoMatches):
		return c.Status(fiber.StatusNotFound).JSON(messageResponse{Message: "No users found"})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(loginFailedResponse{Status: "failed", Message: "Invalid credentials"})
	}
	return err
}

// decodeJSON decodes the request body with the app's configured decoder.
func decodeJSON(c *fiber.Ctx, v any) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return errEmptyBody
	}
	return c.App().Config().JSONDecoder(body, v)
}

// nonEmptyObject reports whether the body is a JSON object with at least one key.
func nonEmptyObject(c *fiber.Ctx) bool {
	var m map[string]json.RawMessage
	return decodeJSON(c, &m) == nil && len(m) > 0
}
