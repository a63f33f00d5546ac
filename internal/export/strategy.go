// Package export renders a campaign strategy into downloadable documents.
// Both renderers are pure functions of the strategy with no network
// dependency.
package export

import (
	"fmt"
	"strings"

	"github.com/cadencehq/cadence-api/internal/models"
)

// StrategyMarkdown renders the strategy as a styled markdown document.
func StrategyMarkdown(strategy *models.CampaignStrategy, title string) string {
	if title == "" {
		title = "Campaign Strategy"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	fmt.Fprintf(&b, "## Overview\n\n%s\n\n", strategy.Overview)

	b.WriteString("## Content Pillars\n\n")
	for _, pillar := range strategy.ContentPillars {
		fmt.Fprintf(&b, "- %s\n", pillar)
	}
	b.WriteString("\n")

	b.WriteString("## Key Messages\n\n")
	for _, msg := range strategy.KeyMessages {
		fmt.Fprintf(&b, "- %s\n", msg)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Visual Guidelines\n\n%s\n\n", strategy.VisualGuidelines)

	b.WriteString("## Hashtag Strategy\n\n")
	if len(strategy.HashtagStrategy) > 0 {
		b.WriteString(strings.Join(strategy.HashtagStrategy, " "))
	}
	b.WriteString("\n\n")

	b.WriteString("## Posting Schedule\n\n")
	b.WriteString("| Day | Platform | Type | Topic | Hook |\n")
	b.WriteString("|-----|----------|------|-------|------|\n")
	for _, slot := range strategy.Schedule {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
			slot.DayNumber, platformName(slot.Platform), slot.ContentType,
			escapeCell(slot.Topic), escapeCell(slot.Hook))
	}

	return b.String()
}

// StrategyText renders the strategy as a plain structured text document.
func StrategyText(strategy *models.CampaignStrategy, title string) string {
	if title == "" {
		title = "Campaign Strategy"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", title, strings.Repeat("=", len(title)))

	fmt.Fprintf(&b, "OVERVIEW\n%s\n\n", strategy.Overview)

	b.WriteString("CONTENT PILLARS\n")
	for i, pillar := range strategy.ContentPillars {
		fmt.Fprintf(&b, "%d. %s\n", i+1, pillar)
	}
	b.WriteString("\n")

	b.WriteString("KEY MESSAGES\n")
	for i, msg := range strategy.KeyMessages {
		fmt.Fprintf(&b, "%d. %s\n", i+1, msg)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "VISUAL GUIDELINES\n%s\n\n", strategy.VisualGuidelines)

	fmt.Fprintf(&b, "HASHTAG STRATEGY\n%s\n\n", strings.Join(strategy.HashtagStrategy, " "))

	b.WriteString("POSTING SCHEDULE\n")
	for _, slot := range strategy.Schedule {
		fmt.Fprintf(&b, "Day %d - %s (%s)\n  Topic: %s\n  Hook: %s\n",
			slot.DayNumber, platformName(slot.Platform), slot.ContentType, slot.Topic, slot.Hook)
	}

	return b.String()
}

func platformName(p models.Platform) string {
	if spec, ok := models.PlatformInfo(p); ok {
		return spec.Name
	}
	return string(p)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
