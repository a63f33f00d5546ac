package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cadencehq/cadence-api/internal/models"
	"github.com/cadencehq/cadence-api/internal/service"
	"github.com/cadencehq/cadence-api/internal/transfer"
)

// Wall-clock budgets per endpoint. Generation runs under a context deadline
// so an expired budget actually cancels the in-flight remote call.
const (
	singlePostTimeout = 20 * time.Second
	strategyTimeout   = 15 * time.Second
	postsTimeout      = 20 * time.Second
	campaignTimeout   = 30 * time.Second
)

type GenerationHandler struct {
	s service.ContentService
}

func NewGenerationHandler(s service.ContentService) *GenerationHandler {
	return &GenerationHandler{s: s}
}

func (h *GenerationHandler) Enhance(c *fiber.Ctx) error {
	var req transfer.EnhancementRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse request body")
	}

	if req.Prompt == "" || req.Platform == "" || req.ContentType == "" {
		return badRequest(c, "Missing required fields: prompt, platform, contentType")
	}
	if len(req.Prompt) < 10 {
		return badRequest(c, "Prompt must be at least 10 characters long")
	}

	enhanced, err := h.s.EnhancePrompt(c.Context(), req.Prompt, req.Platform, req.ContentType)
	if err != nil {
		return serverError(c, err, "Prompt enhancement timeout")
	}

	return c.Status(fiber.StatusOK).JSON(transfer.EnhancementResponse{
		Success:        true,
		EnhancedPrompt: enhanced,
	})
}

func (h *GenerationHandler) GenerateSingle(c *fiber.Ctx) error {
	start := time.Now()

	var req transfer.GenerationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse request body")
	}

	if result := h.s.ValidateRequest(&req, false); !result.Valid {
		return validationFailed(c, result)
	}

	ctx, cancel := context.WithTimeout(c.Context(), singlePostTimeout)
	defer cancel()

	finalPrompt := h.maybeEnhance(ctx, &req, req.ContentType)

	posts, err := h.s.GenerateSinglePost(ctx, finalPrompt, req.Platforms, req.ContentType)
	if err != nil {
		return serverError(c, err, "Single post generation timeout")
	}

	slog.Info(fmt.Sprintf("Single post request completed in %s (%d posts)", time.Since(start), len(posts)))

	resp := transfer.GenerationResponse{Success: true, Posts: posts}
	if req.EnhancePrompt {
		resp.EnhancedPrompt = finalPrompt
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *GenerationHandler) GenerateCampaignStrategy(c *fiber.Ctx) error {
	var req transfer.GenerationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse request body")
	}

	if result := h.s.ValidateRequest(&req, true); !result.Valid {
		return validationFailed(c, result)
	}

	ctx, cancel := context.WithTimeout(c.Context(), strategyTimeout)
	defer cancel()

	enhanceKind := models.ContentTypeImage
	if req.ContentType == models.ContentTypeVideo {
		enhanceKind = models.ContentTypeVideo
	}
	finalPrompt := h.maybeEnhance(ctx, &req, enhanceKind)

	strategy, err := h.s.GenerateCampaignStrategy(ctx, finalPrompt, req.Platforms, req.Frequency, req.Duration, req.ContentType)
	if err != nil {
		return serverError(c, err, "Strategy generation timeout")
	}

	resp := transfer.GenerationResponse{Success: true, Strategy: strategy}
	if req.EnhancePrompt {
		resp.EnhancedPrompt = finalPrompt
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *GenerationHandler) GenerateCampaignPosts(c *fiber.Ctx) error {
	var req transfer.CampaignPostsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse request body")
	}

	if req.Strategy == nil || len(req.Platforms) == 0 {
		return badRequest(c, "Strategy and platforms are required")
	}

	ctx, cancel := context.WithTimeout(c.Context(), postsTimeout)
	defer cancel()

	posts, err := h.s.GenerateCampaignPosts(ctx, req.Strategy, req.Platforms)
	if err != nil {
		return serverError(c, err, "Campaign posts generation timeout")
	}

	return c.Status(fiber.StatusOK).JSON(transfer.GenerationResponse{Success: true, Posts: posts})
}

// GenerateCampaign runs strategy and posts generation in one call.
func (h *GenerationHandler) GenerateCampaign(c *fiber.Ctx) error {
	var req transfer.GenerationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse request body")
	}

	if result := h.s.ValidateRequest(&req, true); !result.Valid {
		return validationFailed(c, result)
	}

	ctx, cancel := context.WithTimeout(c.Context(), campaignTimeout)
	defer cancel()

	enhanceKind := models.ContentTypeImage
	if req.ContentMix == "video-heavy" {
		enhanceKind = models.ContentTypeVideo
	}
	finalPrompt := h.maybeEnhance(ctx, &req, enhanceKind)

	strategy, err := h.s.GenerateCampaignStrategy(ctx, finalPrompt, req.Platforms, req.Frequency, req.Duration, req.ContentType)
	if err != nil {
		return serverError(c, err, "Campaign generation timeout")
	}

	posts, err := h.s.GenerateCampaignPosts(ctx, strategy, req.Platforms)
	if err != nil {
		return serverError(c, err, "Campaign generation timeout")
	}

	resp := transfer.GenerationResponse{Success: true, Strategy: strategy, Posts: posts}
	if req.EnhancePrompt {
		resp.EnhancedPrompt = finalPrompt
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *GenerationHandler) Adjust(c *fiber.Ctx) error {
	var req transfer.AdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse request body")
	}

	if req.Content == nil || strings.TrimSpace(req.Feedback) == "" {
		return badRequest(c, "Content and feedback are required")
	}

	adjusted, err := h.s.AdjustContent(c.Context(), req.Content, req.Feedback)
	if err != nil {
		return serverError(c, err, "Content adjustment timeout")
	}

	return c.Status(fiber.StatusOK).JSON(transfer.AdjustmentResponse{
		Success:         true,
		AdjustedContent: adjusted,
	})
}

// GenerateMedia is the on-demand media endpoint for posts holding a
// placeholder reference.
func (h *GenerationHandler) GenerateMedia(c *fiber.Ctx) error {
	var req transfer.MediaGenerationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse request body")
	}

	if strings.TrimSpace(req.Prompt) == "" {
		return badRequest(c, "Prompt is required")
	}
	if req.Type != models.ContentTypeImage && req.Type != models.ContentTypeVideo {
		return badRequest(c, "Type must be image or video")
	}

	url, err := h.s.GenerateMedia(c.Context(), req.Prompt, req.Type)
	if err != nil {
		return serverError(c, err, "Media generation timeout")
	}

	return c.Status(fiber.StatusOK).JSON(transfer.MediaGenerationResponse{
		Success:  true,
		MediaURL: url,
	})
}

// maybeEnhance rewrites the prompt when requested. Enhancement is best
// effort: on failure the original prompt is used unchanged.
func (h *GenerationHandler) maybeEnhance(ctx context.Context, req *transfer.GenerationRequest, kind models.ContentType) string {
	if !req.EnhancePrompt || len(req.Platforms) == 0 {
		return req.Prompt
	}
	enhanced, err := h.s.EnhancePrompt(ctx, req.Prompt, req.Platforms[0], kind)
	if err != nil {
		slog.Error(fmt.Sprintf("Prompt enhancement failed: %v", err))
		return req.Prompt
	}
	return enhanced
}
