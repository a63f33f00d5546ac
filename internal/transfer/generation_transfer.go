package transfer

import "github.com/cadencehq/cadence-api/internal/models"

// GenerationRequest is the envelope shared by the single-post and campaign
// endpoints. Frequency, Duration and ContentMix only apply in campaign mode.
type GenerationRequest struct {
	Prompt        string             `json:"prompt"`
	Platforms     []models.Platform  `json:"platforms"`
	ContentType   models.ContentType `json:"contentType"`
	EnhancePrompt bool               `json:"enhancePrompt"`
	Frequency     string             `json:"frequency,omitempty"`
	Duration      string             `json:"duration,omitempty"`
	ContentMix    string             `json:"contentMix,omitempty"`
}

type GenerationResponse struct {
	Success        bool                     `json:"success"`
	Posts          []models.GeneratedPost   `json:"posts,omitempty"`
	Strategy       *models.CampaignStrategy `json:"strategy,omitempty"`
	EnhancedPrompt string                   `json:"enhancedPrompt,omitempty"`
	Error          string                   `json:"error,omitempty"`
	Details        []string                 `json:"details,omitempty"`
}

type EnhancementRequest struct {
	Prompt      string             `json:"prompt"`
	Platform    models.Platform    `json:"platform"`
	ContentType models.ContentType `json:"contentType"`
}

type EnhancementResponse struct {
	Success        bool   `json:"success"`
	EnhancedPrompt string `json:"enhancedPrompt,omitempty"`
	Error          string `json:"error,omitempty"`
}

type CampaignPostsRequest struct {
	Strategy  *models.CampaignStrategy `json:"strategy"`
	Platforms []models.Platform        `json:"platforms"`
}

type AdjustmentRequest struct {
	Content  *models.GeneratedPost `json:"content"`
	Feedback string                `json:"feedback"`
}

type AdjustmentResponse struct {
	Success         bool                  `json:"success"`
	AdjustedContent *models.GeneratedPost `json:"adjustedContent,omitempty"`
	Error           string                `json:"error,omitempty"`
}

type MediaGenerationRequest struct {
	Prompt string             `json:"prompt"`
	Type   models.ContentType `json:"type"`
}

type MediaGenerationResponse struct {
	Success  bool   `json:"success"`
	MediaURL string `json:"mediaUrl,omitempty"`
	Error    string `json:"error,omitempty"`
}

type ExportRequest struct {
	Strategy *models.CampaignStrategy `json:"strategy"`
	Title    string                   `json:"title,omitempty"`
}

// PostContent is the structured object the generator is asked to return for
// one post.
type PostContent struct {
	Caption     string   `json:"caption"`
	Hashtags    []string `json:"hashtags"`
	MediaPrompt string   `json:"mediaPrompt"`
	CTA         string   `json:"cta,omitempty"`
	Hook        string   `json:"hook,omitempty"`
}

// ValidationResult collects every violation found in a request so the UI can
// display all of them at once.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

type UsageResponse struct {
	Minute RateLimitInfo `json:"minute"`
	Daily  RateLimitInfo `json:"daily"`
}

type RateLimitInfo struct {
	Used      int   `json:"used"`
	Limit     int   `json:"limit"`
	ResetTime int64 `json:"resetTime"`
}
