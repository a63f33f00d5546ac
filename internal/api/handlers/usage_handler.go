package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cadencehq/cadence-api/internal/gemini"
	"github.com/cadencehq/cadence-api/internal/transfer"
)

// UsageSource exposes the generation client's rate-limit counters.
type UsageSource interface {
	RateLimitInfo() gemini.Usage
	DailyUsage() gemini.Usage
}

type UsageHandler struct {
	src UsageSource
}

func NewUsageHandler(src UsageSource) *UsageHandler {
	return &UsageHandler{src: src}
}

func (h *UsageHandler) GetUsage(c *fiber.Ctx) error {
	minute := h.src.RateLimitInfo()
	daily := h.src.DailyUsage()

	return c.Status(fiber.StatusOK).JSON(transfer.UsageResponse{
		Minute: transfer.RateLimitInfo{Used: minute.Used, Limit: minute.Limit, ResetTime: minute.ResetAt.UnixMilli()},
		Daily:  transfer.RateLimitInfo{Used: daily.Used, Limit: daily.Limit, ResetTime: daily.ResetAt.UnixMilli()},
	})
}
