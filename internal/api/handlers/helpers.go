package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/cadencehq/cadence-api/internal/transfer"
)

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

func validationFailed(c *fiber.Ctx, result transfer.ValidationResult) error {
	return c.Status(fiber.StatusBadRequest).JSON(transfer.GenerationResponse{
		Success: false,
		Error:   "Validation failed",
		Details: result.Errors,
	})
}

// serverError converts an orchestration failure into a uniform 500 envelope.
// Deadline expiry gets a timeout-flavored message instead of the raw context
// error.
func serverError(c *fiber.Ctx, err error, timeoutMsg string) error {
	slog.Error(fmt.Sprintf("%s %s failed: %v", c.Method(), c.Path(), err))
	msg := err.Error()
	if errors.Is(err, context.DeadlineExceeded) {
		msg = timeoutMsg
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

// MethodNotAllowed answers GET probes on generation endpoints.
func MethodNotAllowed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
		"success": false,
		"error":   "Method not allowed. Use POST.",
	})
}
