package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/cadencehq/cadence-api/internal/models"
	"github.com/cadencehq/cadence-api/internal/transfer"
)

const (
	// How long a single-post image generation may take before the post is
	// marked failed and given a fallback image.
	mediaTimeout = 15 * time.Second

	// Campaign posts are capped to bound end-to-end latency; the rest of the
	// schedule is generated on demand.
	maxCampaignPosts = 5
)

// Generator is the slice of the Gemini client the orchestration layer needs.
type Generator interface {
	GenerateText(ctx context.Context, prompt string, retries int) (string, error)
	GenerateJSON(ctx context.Context, prompt string, out any, retries int) error
	GenerateImage(ctx context.Context, prompt string) (string, error)
	GenerateVideo(ctx context.Context, prompt string) (string, error)
}

type ContentService interface {
	EnhancePrompt(ctx context.Context, userPrompt string, platform models.Platform, contentType models.ContentType) (string, error)
	GenerateSinglePost(ctx context.Context, prompt string, platforms []models.Platform, contentType models.ContentType) ([]models.GeneratedPost, error)
	GenerateCampaignStrategy(ctx context.Context, prompt string, platforms []models.Platform, frequency, duration string, contentType models.ContentType) (*models.CampaignStrategy, error)
	GenerateCampaignPosts(ctx context.Context, strategy *models.CampaignStrategy, platforms []models.Platform) ([]models.GeneratedPost, error)
	AdjustContent(ctx context.Context, original *models.GeneratedPost, feedback string) (*models.GeneratedPost, error)
	GenerateMedia(ctx context.Context, prompt string, contentType models.ContentType) (string, error)
	ValidateRequest(req *transfer.GenerationRequest, campaign bool) transfer.ValidationResult
}

type contentService struct {
	gen Generator
}

func NewContentService(gen Generator) ContentService {
	return &contentService{gen: gen}
}

func (s *contentService) EnhancePrompt(ctx context.Context, userPrompt string, platform models.Platform, contentType models.ContentType) (string, error) {
	spec, ok := models.PlatformInfo(platform)
	if !ok {
		return "", fmt.Errorf("unknown platform: %s", platform)
	}
	month := time.Now().Format("January 2006")
	return s.gen.GenerateText(ctx, enhancementPrompt(userPrompt, spec, contentType, month), 1)
}

// GenerateSinglePost produces one record per requested platform, in input
// order, sequentially. A failed platform yields a synthetic failed record
// rather than aborting the loop.
func (s *contentService) GenerateSinglePost(ctx context.Context, prompt string, platforms []models.Platform, contentType models.ContentType) ([]models.GeneratedPost, error) {
	posts := make([]models.GeneratedPost, 0, len(platforms))

	for _, platform := range platforms {
		spec, ok := models.PlatformInfo(platform)
		if !ok {
			slog.Error(fmt.Sprintf("Unknown platform: %s", platform))
			continue
		}

		var pc transfer.PostContent
		if err := s.gen.GenerateJSON(ctx, singlePostPrompt(prompt, spec, contentType), &pc, 2); err != nil {
			slog.Error(fmt.Sprintf("Content generation failed for %s: %v", platform, err))
			posts = append(posts, failedPost(platform, contentType))
			continue
		}

		post := models.GeneratedPost{
			ID:          postID(platform),
			Platform:    platform,
			Type:        contentType,
			Caption:     pc.Caption,
			Hashtags:    pc.Hashtags,
			MediaPrompt: pc.MediaPrompt,
			Status:      models.PostStatusPending,
			CreatedAt:   time.Now(),
		}
		if post.Caption == "" {
			post.Caption = "Generated caption"
		}
		if post.Hashtags == nil {
			post.Hashtags = []string{}
		}

		if contentType != models.ContentTypeText && pc.MediaPrompt != "" {
			s.generateMediaForPost(ctx, &post)
		} else {
			post.Status = models.PostStatusCompleted
		}

		posts = append(posts, post)
	}

	return posts, nil
}

func (s *contentService) generateMediaForPost(ctx context.Context, post *models.GeneratedPost) {
	post.Status = models.PostStatusGenerating

	var url string
	var err error
	switch post.Type {
	case models.ContentTypeImage:
		mctx, cancel := context.WithTimeout(ctx, mediaTimeout)
		url, err = s.gen.GenerateImage(mctx, post.MediaPrompt)
		cancel()
	case models.ContentTypeVideo:
		url, err = s.gen.GenerateVideo(ctx, post.MediaPrompt)
	}

	if err != nil {
		slog.Error(fmt.Sprintf("Media generation failed for %s: %v", post.Platform, err))
		post.Status = models.PostStatusFailed
		post.MediaURL = fallbackImageURL()
		return
	}

	post.MediaURL = url
	post.Status = models.PostStatusCompleted
}

func (s *contentService) GenerateCampaignStrategy(ctx context.Context, prompt string, platforms []models.Platform, frequency, duration string, contentType models.ContentType) (*models.CampaignStrategy, error) {
	totalDays, ok := models.CampaignDurationDays[duration]
	if !ok {
		totalDays = 7
	}
	postsPerDay, ok := models.CampaignPostsPerDay[frequency]
	if !ok {
		postsPerDay = 1
	}
	totalPosts := targetPostCount(totalDays, postsPerDay)

	strategyPrompt := campaignStrategyPrompt(prompt, platforms, frequency, postsPerDay, duration, totalDays, totalPosts, contentType)

	var strategy models.CampaignStrategy
	if err := s.gen.GenerateJSON(ctx, strategyPrompt, &strategy, 2); err != nil {
		return nil, err
	}
	// The generator is free to return a schedule of a different length; no
	// correction is applied.
	return &strategy, nil
}

// targetPostCount is the schedule length requested from the generator.
func targetPostCount(totalDays int, postsPerDay float64) int {
	return int(math.Ceil(float64(totalDays) * postsPerDay))
}

// GenerateCampaignPosts builds posts for the first five schedule slots. The
// trailing media step assigns placeholders instead of generating real media;
// callers fetch real media per post through GenerateMedia when they want it.
func (s *contentService) GenerateCampaignPosts(ctx context.Context, strategy *models.CampaignStrategy, platforms []models.Platform) ([]models.GeneratedPost, error) {
	schedule := strategy.Schedule
	if len(schedule) > maxCampaignPosts {
		schedule = schedule[:maxCampaignPosts]
	}

	posts := make([]models.GeneratedPost, 0, len(schedule))
	for _, slot := range schedule {
		spec, ok := models.PlatformInfo(slot.Platform)
		if !ok {
			slog.Error(fmt.Sprintf("Unknown platform in schedule: %s", slot.Platform))
			continue
		}

		contentType := models.ContentType(slot.ContentType)

		var pc transfer.PostContent
		if err := s.gen.GenerateJSON(ctx, campaignPostPrompt(slot, strategy, spec), &pc, 2); err != nil {
			slog.Error(fmt.Sprintf("Campaign post generation failed for %s: %v", slot.Platform, err))
			posts = append(posts, failedPost(slot.Platform, contentType))
			continue
		}

		post := models.GeneratedPost{
			ID:          "campaign-" + uuid.NewString(),
			Platform:    slot.Platform,
			Type:        contentType,
			Caption:     pc.Caption,
			Hashtags:    pc.Hashtags,
			MediaPrompt: pc.MediaPrompt,
			Status:      models.PostStatusPending,
			CreatedAt:   time.Now(),
		}
		if post.Caption == "" {
			post.Caption = "Generated caption"
		}
		if post.Hashtags == nil {
			post.Hashtags = []string{}
		}

		posts = append(posts, post)
	}

	batchAssignMedia(posts)
	return posts, nil
}

// batchAssignMedia marks every surviving post completed, substituting the
// placeholder sentinel for media slots. Failed records stay failed.
func batchAssignMedia(posts []models.GeneratedPost) {
	for i := range posts {
		post := &posts[i]
		if post.Status == models.PostStatusFailed {
			continue
		}
		if post.Type != models.ContentTypeText && post.MediaPrompt != "" {
			post.MediaURL = models.PlaceholderMediaURL
		}
		post.Status = models.PostStatusCompleted
	}
}

func (s *contentService) AdjustContent(ctx context.Context, original *models.GeneratedPost, feedback string) (*models.GeneratedPost, error) {
	spec, ok := models.PlatformInfo(original.Platform)
	if !ok {
		return nil, fmt.Errorf("unknown platform: %s", original.Platform)
	}

	var pc transfer.PostContent
	if err := s.gen.GenerateJSON(ctx, adjustmentPrompt(original, feedback, spec), &pc, 2); err != nil {
		return nil, err
	}

	adjusted := *original
	if pc.Caption != "" {
		adjusted.Caption = pc.Caption
	}
	if len(pc.Hashtags) > 0 {
		adjusted.Hashtags = pc.Hashtags
	}
	if pc.MediaPrompt != "" {
		adjusted.MediaPrompt = pc.MediaPrompt
	}
	return &adjusted, nil
}

// GenerateMedia is the on-demand media path for posts that were handed a
// placeholder during campaign generation.
func (s *contentService) GenerateMedia(ctx context.Context, prompt string, contentType models.ContentType) (string, error) {
	switch contentType {
	case models.ContentTypeImage:
		mctx, cancel := context.WithTimeout(ctx, mediaTimeout)
		defer cancel()
		return s.gen.GenerateImage(mctx, prompt)
	case models.ContentTypeVideo:
		return s.gen.GenerateVideo(ctx, prompt)
	}
	return "", fmt.Errorf("unsupported media type: %s", contentType)
}

// ValidateRequest runs every check and returns all violations at once so the
// UI can display them together.
func (s *contentService) ValidateRequest(req *transfer.GenerationRequest, campaign bool) transfer.ValidationResult {
	errs := []string{}

	if len(strings.TrimSpace(req.Prompt)) < 10 {
		errs = append(errs, "Prompt must be at least 10 characters long")
	}

	if len(req.Platforms) == 0 {
		errs = append(errs, "At least one platform must be selected")
	} else {
		var invalid []string
		for _, p := range req.Platforms {
			if _, ok := models.PlatformInfo(p); !ok {
				invalid = append(invalid, string(p))
			}
		}
		if len(invalid) > 0 {
			errs = append(errs, "Invalid platforms: "+strings.Join(invalid, ", "))
		}
	}

	if !models.ValidContentType(req.ContentType) {
		errs = append(errs, "Invalid content type")
	}

	if campaign {
		if _, ok := models.CampaignPostsPerDay[req.Frequency]; !ok {
			errs = append(errs, "Invalid campaign frequency")
		}
		if _, ok := models.CampaignDurationDays[req.Duration]; !ok {
			errs = append(errs, "Invalid campaign duration")
		}
	}

	return transfer.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func postID(platform models.Platform) string {
	id, err := gonanoid.New(9)
	if err != nil {
		id = uuid.NewString()
	}
	return fmt.Sprintf("%s-%s", platform, id)
}

func failedPost(platform models.Platform, contentType models.ContentType) models.GeneratedPost {
	return models.GeneratedPost{
		ID:        postID(platform) + "-failed",
		Platform:  platform,
		Type:      contentType,
		Caption:   "Content generation failed",
		Hashtags:  []string{},
		Status:    models.PostStatusFailed,
		CreatedAt: time.Now(),
	}
}

func fallbackImageURL() string {
	return fmt.Sprintf("https://picsum.photos/400/400?random=%d", time.Now().UnixMilli())
}
