package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cadencehq/cadence-api/internal/export"
	"github.com/cadencehq/cadence-api/internal/transfer"
)

type ExportHandler struct{}

func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// ExportStrategy renders a strategy for download. format=markdown (default)
// or format=text.
func (h *ExportHandler) ExportStrategy(c *fiber.Ctx) error {
	var req transfer.ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse request body")
	}

	if req.Strategy == nil {
		return badRequest(c, "Strategy is required")
	}

	var body, contentType, filename string
	switch c.Query("format", "markdown") {
	case "text":
		body = export.StrategyText(req.Strategy, req.Title)
		contentType = "text/plain; charset=utf-8"
		filename = "campaign-strategy.txt"
	case "markdown":
		body = export.StrategyMarkdown(req.Strategy, req.Title)
		contentType = "text/markdown; charset=utf-8"
		filename = "campaign-strategy.md"
	default:
		return badRequest(c, "Unknown export format")
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).SendString(body)
}
