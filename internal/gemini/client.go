package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"

	config "github.com/cadencehq/cadence-api/configs"
	"github.com/cadencehq/cadence-api/internal/models"
)

const (
	jsonInstruction = "\n\nIMPORTANT: Return ONLY valid JSON with no markdown formatting, no backticks, no explanations. The JSON should be properly formatted and parseable."
	sampleVideoURL  = "https://sample-videos.com/zip/10/mp4/SampleVideo_1280x720_1mb.mp4"
	batchSize       = 5
)

// AssetStore uploads generated media bytes and returns a public URL.
type AssetStore interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

// Client mediates all calls to the Gemini generation API. It owns the
// process-lifetime rate-limit counters; construct one at startup and share it.
type Client struct {
	cfg    config.Config
	http   *http.Client
	limits *limiter
	assets AssetStore
}

// NewClient builds a generation client. assets may be nil, in which case
// inline image data is returned as a data URI instead of an uploaded URL.
func NewClient(cfg config.Config, assets AssetStore) (*Client, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{},
		limits: newLimiter(cfg.RequestsPerMinute, cfg.RequestsPerDay),
		assets: assets,
	}, nil
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *Client) call(ctx context.Context, model string, reqBody generateRequest) (*generateResponse, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.GeminiBaseURL, model, c.cfg.GeminiAPIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("unexpected response (status %d): %w", resp.StatusCode, err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("gemini error %d (%s): %s", out.Error.Code, out.Error.Status, out.Error.Message)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("gemini rate limit hit (status %d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}
	return &out, nil
}

func (c *Client) textCall(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.call(ctx, model, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return p.Text, nil
			}
		}
	}
	return "", errors.New("no text in response")
}

// GenerateText runs one rate-limited text generation. Rate-flavored failures
// back off 2s between attempts and surface as ErrRateLimitExceeded; anything
// else backs off 1s and surfaces as ErrGenerationFailed with the remote
// message attached.
func (c *Client) GenerateText(ctx context.Context, prompt string, retries int) (string, error) {
	if err := c.limits.acquire(ctx); err != nil {
		return "", err
	}

	for i := 0; i < retries; i++ {
		text, err := c.textCall(ctx, c.cfg.GeminiModel, prompt)
		if err == nil {
			return text, nil
		}
		slog.Error(fmt.Sprintf("Gemini API attempt %d failed: %v", i+1, err))

		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if isRateLimited(err) {
			if i == retries-1 {
				return "", ErrRateLimitExceeded
			}
			if serr := sleepCtx(ctx, 2*time.Second); serr != nil {
				return "", serr
			}
			continue
		}

		if i == retries-1 {
			return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}
		if serr := sleepCtx(ctx, time.Second); serr != nil {
			return "", serr
		}
	}
	return "", ErrGenerationFailed
}

// GenerateJSON asks for a JSON-shaped answer, cleans markdown fences off the
// reply and unmarshals it into out. Parse failures get a fresh call with a
// growing backoff; rate-limit and context errors propagate immediately.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, out any, retries int) error {
	jsonPrompt := prompt + jsonInstruction

	var lastErr error
	for i := 0; i < retries; i++ {
		text, err := c.GenerateText(ctx, jsonPrompt, 1)
		if err != nil {
			if isRateLimited(err) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return err
			}
			lastErr = err
		} else {
			cleaned := CleanJSON(text)
			jerr := json.Unmarshal([]byte(cleaned), out)
			if jerr == nil {
				return nil
			}
			slog.Error(fmt.Sprintf("JSON generation attempt %d failed: %v", i+1, jerr))
			lastErr = fmt.Errorf("%w: %v", ErrMalformedResponse, jerr)
		}

		if i == retries-1 {
			break
		}
		if serr := sleepCtx(ctx, time.Duration(i+1)*time.Second); serr != nil {
			return serr
		}
	}
	return lastErr
}

// CleanJSON strips markdown code fences and any leading/trailing non-JSON
// text, keeping the span from the first '{' to the last '}'. Already-clean
// JSON passes through unchanged.
func CleanJSON(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(s[start : end+1])
}

// GenerateBatch processes prompts in batches of five, concurrent within a
// batch and sequential across batches. A failed item yields an empty string
// instead of aborting the batch.
func (c *Client) GenerateBatch(ctx context.Context, prompts []string) []string {
	results := make([]string, len(prompts))

	for i := 0; i < len(prompts); i += batchSize {
		end := min(i+batchSize, len(prompts))

		var wg sync.WaitGroup
		for j := i; j < end; j++ {
			wg.Add(1)
			go func(j int) {
				defer wg.Done()
				text, err := c.GenerateText(ctx, prompts[j], 1)
				if err != nil {
					slog.Error(fmt.Sprintf("Batch item %d failed: %v", j, err))
					return
				}
				results[j] = text
			}(j)
		}
		wg.Wait()
	}
	return results
}

// GenerateImage requests image generation and returns either an uploaded
// asset URL or an inline data URI. Failures are non-fatal: after one 5s
// rate-limit retry the placeholder sentinel is returned instead of an error.
// Context expiry is the exception, so callers racing a deadline see it.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	url, err := c.imageCall(ctx, prompt)
	if err == nil {
		return url, nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if isRateLimited(err) {
		slog.Info("Image generation rate limited, retrying in 5s...")
		if serr := sleepCtx(ctx, 5*time.Second); serr != nil {
			return "", serr
		}
		url, err = c.imageCall(ctx, prompt)
		if err == nil {
			return url, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	slog.Error(fmt.Sprintf("Image generation failed: %v", err))
	return models.PlaceholderMediaURL, nil
}

func (c *Client) imageCall(ctx context.Context, prompt string) (string, error) {
	if err := c.limits.acquire(ctx); err != nil {
		return "", err
	}

	resp, err := c.call(ctx, c.cfg.GeminiImageModel, generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{ResponseModalities: []string{"TEXT", "IMAGE"}},
	})
	if err != nil {
		return "", err
	}

	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData == nil {
				continue
			}
			data, derr := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if derr != nil {
				return "", fmt.Errorf("invalid inline image data: %w", derr)
			}
			if c.assets != nil {
				if url, uerr := c.assets.Upload(ctx, "generated/"+newAssetID(), data); uerr == nil {
					return url, nil
				}
				// fall through to the data URI when the upload fails
			}
			return fmt.Sprintf("data:%s;base64,%s", p.InlineData.MimeType, p.InlineData.Data), nil
		}
	}
	return "", errors.New("no media in response")
}

func newAssetID() string {
	id, err := gonanoid.New()
	if err != nil {
		return uuid.NewString()
	}
	return id
}

// GenerateVideo returns a fixed sample clip. The video model is not wired up
// yet; callers should treat this as a stand-in, not real generation.
func (c *Client) GenerateVideo(ctx context.Context, prompt string) (string, error) {
	if err := c.limits.acquire(ctx); err != nil {
		return "", err
	}
	slog.Warn("Video generation not available yet, using sample clip")
	return sampleVideoURL, nil
}

// RateLimitInfo snapshots the minute window.
func (c *Client) RateLimitInfo() Usage {
	return c.limits.minuteUsage()
}

// DailyUsage snapshots the day window.
func (c *Client) DailyUsage() Usage {
	return c.limits.dayUsage()
}
