package gemini

import (
	"errors"
	"strings"
)

var (
	ErrMissingAPIKey      = errors.New("API key is required")
	ErrRateLimitExceeded  = errors.New("rate limit exceeded, please try again later")
	ErrDailyQuotaExceeded = errors.New("daily rate limit exceeded, try again tomorrow")
	ErrGenerationFailed   = errors.New("content generation failed")
	ErrMalformedResponse  = errors.New("failed to parse model response as JSON")
)

// isRateLimited reports whether err looks like quota or rate exhaustion,
// either our own sentinels or a remote message mentioning quota/rate.
func isRateLimited(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimitExceeded) || errors.Is(err, ErrDailyQuotaExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit") || strings.Contains(msg, "resource_exhausted")
}
