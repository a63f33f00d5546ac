package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadencehq/cadence-api/internal/models"
	"github.com/cadencehq/cadence-api/internal/service"
	"github.com/cadencehq/cadence-api/internal/transfer"
)

// stubContentService implements service.ContentService with canned behavior.
type stubContentService struct {
	enhanceErr  error
	generateErr error
	strategyErr error
}

var _ service.ContentService = (*stubContentService)(nil)

func (s *stubContentService) EnhancePrompt(ctx context.Context, userPrompt string, platform models.Platform, contentType models.ContentType) (string, error) {
	if s.enhanceErr != nil {
		return "", s.enhanceErr
	}
	return "enhanced: " + userPrompt, nil
}

func (s *stubContentService) GenerateSinglePost(ctx context.Context, prompt string, platforms []models.Platform, contentType models.ContentType) ([]models.GeneratedPost, error) {
	if s.generateErr != nil {
		return nil, s.generateErr
	}
	posts := make([]models.GeneratedPost, 0, len(platforms))
	for _, p := range platforms {
		posts = append(posts, models.GeneratedPost{
			ID:        string(p) + "-test",
			Platform:  p,
			Type:      contentType,
			Caption:   "caption for " + string(p),
			Hashtags:  []string{"#test"},
			Status:    models.PostStatusCompleted,
			CreatedAt: time.Now(),
		})
	}
	return posts, nil
}

func (s *stubContentService) GenerateCampaignStrategy(ctx context.Context, prompt string, platforms []models.Platform, frequency, duration string, contentType models.ContentType) (*models.CampaignStrategy, error) {
	if s.strategyErr != nil {
		return nil, s.strategyErr
	}
	return &models.CampaignStrategy{
		Overview: "a strategy",
		Schedule: []models.PostSlot{{DayNumber: 1, Platform: models.PlatformInstagram, ContentType: "image"}},
	}, nil
}

func (s *stubContentService) GenerateCampaignPosts(ctx context.Context, strategy *models.CampaignStrategy, platforms []models.Platform) ([]models.GeneratedPost, error) {
	if s.generateErr != nil {
		return nil, s.generateErr
	}
	return []models.GeneratedPost{{
		ID:       "campaign-test",
		Platform: models.PlatformInstagram,
		Type:     models.ContentTypeImage,
		Caption:  "campaign caption",
		Hashtags: []string{"#test"},
		MediaURL: models.PlaceholderMediaURL,
		Status:   models.PostStatusCompleted,
	}}, nil
}

func (s *stubContentService) AdjustContent(ctx context.Context, original *models.GeneratedPost, feedback string) (*models.GeneratedPost, error) {
	adjusted := *original
	adjusted.Caption = "adjusted"
	return &adjusted, nil
}

func (s *stubContentService) GenerateMedia(ctx context.Context, prompt string, contentType models.ContentType) (string, error) {
	if s.generateErr != nil {
		return "", s.generateErr
	}
	return "https://cdn.example.com/media.png", nil
}

func (s *stubContentService) ValidateRequest(req *transfer.GenerationRequest, campaign bool) transfer.ValidationResult {
	svc := service.NewContentService(nil)
	return svc.ValidateRequest(req, campaign)
}

func newTestApp(svc service.ContentService) *fiber.App {
	app := fiber.New()
	h := NewGenerationHandler(svc)

	api := app.Group("/api")
	api.Post("/enhance", h.Enhance)
	api.Post("/generate/single", h.GenerateSingle)
	api.Post("/generate/campaign/strategy", h.GenerateCampaignStrategy)
	api.Post("/generate/campaign/posts", h.GenerateCampaignPosts)
	api.Post("/generate/campaign", h.GenerateCampaign)
	api.Post("/generate/media", h.GenerateMedia)
	api.Post("/adjust", h.Adjust)
	api.Get("/generate/single", MethodNotAllowed)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestGenerateSingle_Success(t *testing.T) {
	app := newTestApp(&stubContentService{})

	resp := postJSON(t, app, "/api/generate/single", transfer.GenerationRequest{
		Prompt:      "Launch our new eco-friendly water bottle",
		Platforms:   []models.Platform{models.PlatformInstagram, models.PlatformTwitter},
		ContentType: models.ContentTypeText,
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	posts := body["posts"].([]any)
	require.Len(t, posts, 2)
	first := posts[0].(map[string]any)
	assert.Equal(t, "instagram", first["platform"])
	assert.Equal(t, "completed", first["status"])
	assert.NotEmpty(t, first["caption"])
	assert.NotEmpty(t, first["hashtags"])
	assert.NotContains(t, body, "enhancedPrompt")
}

func TestGenerateSingle_EnhancedPromptEchoed(t *testing.T) {
	app := newTestApp(&stubContentService{})

	resp := postJSON(t, app, "/api/generate/single", transfer.GenerationRequest{
		Prompt:        "Launch our new eco-friendly water bottle",
		Platforms:     []models.Platform{models.PlatformInstagram},
		ContentType:   models.ContentTypeText,
		EnhancePrompt: true,
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "enhanced: Launch our new eco-friendly water bottle", body["enhancedPrompt"])
}

func TestGenerateSingle_ValidationFailure(t *testing.T) {
	app := newTestApp(&stubContentService{})

	resp := postJSON(t, app, "/api/generate/single", transfer.GenerationRequest{
		Prompt:      "short",
		Platforms:   []models.Platform{},
		ContentType: models.ContentTypeImage,
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["error"])
	assert.GreaterOrEqual(t, len(body["details"].([]any)), 2)
}

func TestGenerateSingle_TimeoutFlavoredError(t *testing.T) {
	app := newTestApp(&stubContentService{generateErr: context.DeadlineExceeded})

	resp := postJSON(t, app, "/api/generate/single", transfer.GenerationRequest{
		Prompt:      "a valid ten+ char prompt",
		Platforms:   []models.Platform{models.PlatformInstagram},
		ContentType: models.ContentTypeText,
	})

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "timeout")
}

func TestGenerateSingle_GenerationError(t *testing.T) {
	app := newTestApp(&stubContentService{generateErr: errors.New("daily rate limit exceeded, try again tomorrow")})

	resp := postJSON(t, app, "/api/generate/single", transfer.GenerationRequest{
		Prompt:      "a valid ten+ char prompt",
		Platforms:   []models.Platform{models.PlatformInstagram},
		ContentType: models.ContentTypeText,
	})

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Contains(t, body["error"], "daily rate limit")
}

func TestGenerateSingle_GetIsMethodNotAllowed(t *testing.T) {
	app := newTestApp(&stubContentService{})

	req := httptest.NewRequest(http.MethodGet, "/api/generate/single", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
}

func TestEnhance_MissingFields(t *testing.T) {
	app := newTestApp(&stubContentService{})

	resp := postJSON(t, app, "/api/enhance", transfer.EnhancementRequest{Prompt: "a valid ten+ char prompt"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEnhance_ShortPrompt(t *testing.T) {
	app := newTestApp(&stubContentService{})

	resp := postJSON(t, app, "/api/enhance", transfer.EnhancementRequest{
		Prompt:      "short",
		Platform:    models.PlatformInstagram,
		ContentType: models.ContentTypeImage,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEnhance_Success(t *testing.T) {
	app := newTestApp(&stubContentService{})

	resp := postJSON(t, app, "/api/enhance", transfer.EnhancementRequest{
		Prompt:      "promote a reusable bottle",
		Platform:    models.PlatformInstagram,
		ContentType: models.ContentTypeImage,
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "enhanced: promote a reusable bottle", body["enhancedPrompt"])
}

func TestCampaignStrategy_Validation(t *testing.T) {
	app := newTestApp(&stubContentService{})

	resp := postJSON(t, app, "/api/generate/campaign/strategy", transfer.GenerationRequest{
		Prompt:      "a valid ten+ char prompt",
		Platforms:   []models.Platform{models.PlatformInstagram},
		ContentType: models.ContentTypeImage,
		Frequency:   "hourly",
		Duration:    "1-week",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Contains(t, body["details"].([]any), "Invalid campaign frequency")
}

func TestCampaignStrategy_Success(t *testing.T) {
	app := newTestApp(&stubContentService{})

	resp := postJSON(t, app, "/api/generate/campaign/strategy", transfer.GenerationRequest{
		Prompt:      "a valid ten+ char prompt",
		Platforms:   []models.Platform{models.PlatformInstagram},
		ContentType: models.ContentTypeImage,
		Frequency:   "daily",
		Duration:    "1-week",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.NotNil(t, body["strategy"])
}

func TestCampaignPosts_RequiresStrategyAndPlatforms(t *testing.T) {
	app := newTestApp(&stubContentService{})

	resp := postJSON(t, app, "/api/generate/campaign/posts", transfer.CampaignPostsRequest{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Strategy and platforms are required", body["error"])
}

func TestCampaignPosts_Success(t *testing.T) {
	app := newTestApp(&stubContentService{})

	resp := postJSON(t, app, "/api/generate/campaign/posts", transfer.CampaignPostsRequest{
		Strategy:  &models.CampaignStrategy{Overview: "x"},
		Platforms: []models.Platform{models.PlatformInstagram},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	posts := body["posts"].([]any)
	require.Len(t, posts, 1)
	assert.Equal(t, "placeholder", posts[0].(map[string]any)["mediaUrl"])
}

func TestCampaign_CombinedResponse(t *testing.T) {
	app := newTestApp(&stubContentService{})

	resp := postJSON(t, app, "/api/generate/campaign", transfer.GenerationRequest{
		Prompt:      "a valid ten+ char prompt",
		Platforms:   []models.Platform{models.PlatformInstagram},
		ContentType: models.ContentTypeImage,
		Frequency:   "daily",
		Duration:    "1-week",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotNil(t, body["strategy"])
	assert.NotNil(t, body["posts"])
}

func TestAdjust_Success(t *testing.T) {
	app := newTestApp(&stubContentService{})

	resp := postJSON(t, app, "/api/adjust", transfer.AdjustmentRequest{
		Content:  &models.GeneratedPost{ID: "x", Platform: models.PlatformInstagram, Caption: "old"},
		Feedback: "make it punchier",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	adjusted := body["adjustedContent"].(map[string]any)
	assert.Equal(t, "adjusted", adjusted["caption"])
}

func TestAdjust_MissingFeedback(t *testing.T) {
	app := newTestApp(&stubContentService{})

	resp := postJSON(t, app, "/api/adjust", transfer.AdjustmentRequest{
		Content: &models.GeneratedPost{ID: "x", Platform: models.PlatformInstagram},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateMedia_Success(t *testing.T) {
	app := newTestApp(&stubContentService{})

	resp := postJSON(t, app, "/api/generate/media", transfer.MediaGenerationRequest{
		Prompt: "a bottle on a mint background",
		Type:   models.ContentTypeImage,
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "https://cdn.example.com/media.png", body["mediaUrl"])
}

func TestGenerateMedia_RejectsTextType(t *testing.T) {
	app := newTestApp(&stubContentService{})

	resp := postJSON(t, app, "/api/generate/media", transfer.MediaGenerationRequest{
		Prompt: "a bottle",
		Type:   models.ContentTypeText,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMalformedBody(t *testing.T) {
	app := newTestApp(&stubContentService{})

	req := httptest.NewRequest(http.MethodPost, "/api/generate/single", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
