package models

import "time"

type GeneratedPost struct {
	ID          string      `json:"id"`
	Platform    Platform    `json:"platform"`
	Type        ContentType `json:"type"`
	Caption     string      `json:"caption"`
	Hashtags    []string    `json:"hashtags"`
	MediaURL    string      `json:"mediaUrl,omitempty"`
	MediaPrompt string      `json:"mediaPrompt,omitempty"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Post lifecycle. Transitions only move forward: pending -> generating ->
// completed|failed, with completed reachable directly from pending when no
// media step is needed.
const (
	PostStatusPending    = "pending"
	PostStatusGenerating = "generating"
	PostStatusCompleted  = "completed"
	PostStatusFailed     = "failed"
)

// PlaceholderMediaURL is the sentinel the presentation layer renders as a
// stand-in graphic when real media generation was skipped or failed.
const PlaceholderMediaURL = "placeholder"
