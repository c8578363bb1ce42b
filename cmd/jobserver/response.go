package main

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Error codes
const (
	codeValidationError = "VALIDATION_ERROR"
	codeNotFound        = "NOT_FOUND"
	codeExpired         = "EXPIRED"
	codeUnavailable     = "UNAVAILABLE"
	codeServiceError    = "SERVICE_ERROR"
)

// envelope is the body of every gateway JSON response. Successful responses
// carry their payload alongside it.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *fiber.Ctx, status int, code, message string, details any) error {
	return c.Status(status).JSON(envelope{
		Message: message,
		Code:    code,
		Details: details,
	})
}

func validationError(c *fiber.Ctx, message string, details any) error {
	return respondError(c, fiber.StatusBadRequest, codeValidationError, message, details)
}

func notFound(c *fiber.Ctx, message string) error {
	return respondError(c, fiber.StatusNotFound, codeNotFound, message, nil)
}

func unavailable(c *fiber.Ctx, message string) error {
	return respondError(c, fiber.StatusServiceUnavailable, codeUnavailable, message, nil)
}

func serviceError(c *fiber.Ctx, message string) error {
	return respondError(c, fiber.StatusInternalServerError, codeServiceError, message, nil)
}

func respondOK(c *fiber.Ctx, data fiber.Map) error {
	data["success"] = true
	return c.JSON(data)
}

func formatValidationErrors(err error) any {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(map[string]string)
		for _, e := range validationErrors {
			fields[e.Field()] = e.Tag()
		}
		return fields
	}
	return nil
}

// errorHandler renders errors that escape a handler, including fiber's own
// routing errors, in the gateway envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(envelope{Message: err.Error()})
}
