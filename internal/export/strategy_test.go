package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cadencehq/cadence-api/internal/models"
)

func sampleStrategy() *models.CampaignStrategy {
	return &models.CampaignStrategy{
		Overview:         "Launch an eco-friendly water bottle over one week.",
		ContentPillars:   []string{"Sustainability", "Design"},
		KeyMessages:      []string{"Less plastic", "Built to last"},
		VisualGuidelines: "Mint and white, natural light, clean backgrounds.",
		HashtagStrategy:  []string{"#eco", "#hydrate"},
		Schedule: []models.PostSlot{
			{DayNumber: 1, Platform: models.PlatformInstagram, ContentType: "image", Topic: "Unboxing", Hook: "Meet your new bottle"},
			{DayNumber: 2, Platform: models.PlatformTwitter, ContentType: "text", Topic: "Plastic | facts", Hook: "Did you know?"},
		},
	}
}

func TestStrategyMarkdown(t *testing.T) {
	doc := StrategyMarkdown(sampleStrategy(), "Eco Launch")

	assert.True(t, strings.HasPrefix(doc, "# Eco Launch\n"))
	assert.Contains(t, doc, "## Overview")
	assert.Contains(t, doc, "- Sustainability")
	assert.Contains(t, doc, "- Less plastic")
	assert.Contains(t, doc, "#eco #hydrate")
	assert.Contains(t, doc, "| 1 | Instagram | image | Unboxing | Meet your new bottle |")
	assert.Contains(t, doc, "Plastic \\| facts", "pipes in cells must be escaped")
}

func TestStrategyMarkdown_DefaultTitle(t *testing.T) {
	doc := StrategyMarkdown(sampleStrategy(), "")
	assert.True(t, strings.HasPrefix(doc, "# Campaign Strategy\n"))
}

func TestStrategyText(t *testing.T) {
	doc := StrategyText(sampleStrategy(), "Eco Launch")

	assert.True(t, strings.HasPrefix(doc, "Eco Launch\n==========\n"))
	assert.Contains(t, doc, "OVERVIEW")
	assert.Contains(t, doc, "1. Sustainability")
	assert.Contains(t, doc, "Day 1 - Instagram (image)")
	assert.Contains(t, doc, "  Hook: Meet your new bottle")
}

func TestRenderersArePure(t *testing.T) {
	s := sampleStrategy()
	assert.Equal(t, StrategyMarkdown(s, "T"), StrategyMarkdown(s, "T"))
	assert.Equal(t, StrategyText(s, "T"), StrategyText(s, "T"))
}
