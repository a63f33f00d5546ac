package service

import (
	"fmt"
	"strings"

	"github.com/cadencehq/cadence-api/internal/models"
)

func enhancementPrompt(userPrompt string, spec models.PlatformSpec, contentType models.ContentType, currentMonth string) string {
	return fmt.Sprintf(`Act as an expert social media strategist. Enhance this prompt for %[1]s %[2]s content.

Original prompt: "%[3]s"

Platform: %[1]s
Content Type: %[2]s
Current Period: %[4]s

Requirements:
1. Make it specific, actionable, and creative
2. Include trending elements relevant to %[4]s
3. Optimize for %[1]s algorithm and best practices
4. Target high engagement demographics (18-35 age group)
5. Add visual/audio direction if applicable
6. Include emotional hooks and clear CTAs
7. Consider platform-specific features (stories, reels, etc.)
8. Add urgency or FOMO elements where appropriate

Return ONLY the enhanced prompt (50-100 words), no explanations or formatting.`,
		spec.Name, contentType, userPrompt, currentMonth)
}

func singlePostPrompt(brief string, spec models.PlatformSpec, contentType models.ContentType) string {
	return fmt.Sprintf(`Create a %[2]s social media post for %[1]s.

Brief: %[3]s

Platform: %[1]s
Platform limits:
- Caption: %[4]d characters max
- Hashtags: %[5]d max
- Media ratio: %[6]s
- Video length: %[7]d seconds max

Generate a JSON object with:
{
  "caption": "engaging caption with emojis, optimized for %[1]s",
  "hashtags": ["relevant", "trending", "hashtags", "for", "%[1]s"],
  "mediaPrompt": "detailed prompt for AI %[2]s generation with %[6]s aspect ratio",
  "cta": "clear call-to-action",
  "hook": "attention-grabbing opening line"
}

Make the content platform-specific and engaging. Use trending hashtags and emojis appropriately.`,
		spec.Name, contentType, brief,
		spec.Limits.CaptionLength, spec.Limits.HashtagLimit, spec.Limits.ImageRatio, spec.Limits.VideoLength)
}

func campaignStrategyPrompt(brief string, platforms []models.Platform, frequency string, postsPerDay float64, duration string, totalDays, totalPosts int, contentType models.ContentType) string {
	names := make([]string, 0, len(platforms))
	ids := make([]string, 0, len(platforms))
	for _, p := range platforms {
		ids = append(ids, string(p))
		if spec, ok := models.PlatformInfo(p); ok {
			names = append(names, spec.Name)
		}
	}

	constraint := ""
	if contentType != "" {
		constraint = fmt.Sprintf("Content type constraint: Generate ONLY %s content for this campaign\n", contentType)
	}

	return fmt.Sprintf(`Create a comprehensive social media campaign strategy.

Campaign brief: %s
Platforms: %s
Posting frequency: %s (%g posts per day)
Campaign duration: %s (%d days)
Total posts needed: %d
%s
Generate a detailed JSON strategy with:
{
  "overview": "2-3 sentence campaign overview with clear objectives",
  "contentPillars": ["3-5 main content themes that align with the brief"],
  "schedule": [
    {
      "dayNumber": 1,
      "platform": "platform name (one of: %[9]s)",
      "contentType": "image/video/text",
      "topic": "specific post topic that fits the content pillars",
      "hook": "attention-grabbing opening for this specific post"
    }
  ],
  "keyMessages": ["3-5 core messages that will be communicated throughout the campaign"],
  "visualGuidelines": "detailed visual style description including colors, mood, and aesthetic",
  "hashtagStrategy": ["10-15 campaign hashtags that will be used consistently"]
}

Requirements:
- Create exactly %[7]d posts in the schedule
- Distribute posts evenly across platforms: %[9]s
- Ensure variety in content types while maintaining cohesion
- Each post should have a unique topic but align with the content pillars
- Make the campaign feel cohesive and strategic
- Include a mix of educational, promotional, and engaging content`,
		brief, strings.Join(names, ", "), frequency, postsPerDay, duration, totalDays, totalPosts,
		constraint, strings.Join(ids, ", "))
}

func campaignPostPrompt(slot models.PostSlot, strategy *models.CampaignStrategy, spec models.PlatformSpec) string {
	return fmt.Sprintf(`Generate a %[2]s post for %[1]s.

Campaign Context:
- Topic: %[3]s
- Hook: %[4]s
- Campaign overview: %[5]s
- Key messages: %[6]s
- Visual style: %[7]s
- Campaign hashtags: %[8]s

Platform: %[1]s
Platform limits:
- Caption: %[9]d characters max
- Hashtags: %[10]d max
- Media ratio: %[11]s

Generate JSON:
{
  "caption": "engaging platform-optimized caption that incorporates the hook and key messages",
  "hashtags": ["mix of campaign hashtags and platform-specific trending hashtags"],
  "mediaPrompt": "detailed AI generation prompt that follows the visual guidelines and fits the topic"
}

Make sure the content is engaging, on-brand, and optimized for %[1]s.`,
		slot.Platform, slot.ContentType, slot.Topic, slot.Hook,
		strategy.Overview, strings.Join(strategy.KeyMessages, ", "),
		strategy.VisualGuidelines, strings.Join(strategy.HashtagStrategy, ", "),
		spec.Limits.CaptionLength, spec.Limits.HashtagLimit, spec.Limits.ImageRatio)
}

func adjustmentPrompt(original *models.GeneratedPost, feedback string, spec models.PlatformSpec) string {
	mediaPrompt := original.MediaPrompt
	if mediaPrompt == "" {
		mediaPrompt = "N/A"
	}

	return fmt.Sprintf(`Adjust this social media content based on user feedback.

Original content:
Platform: %s
Type: %s
Caption: %s
Hashtags: %s
Media Prompt: %s

User feedback: %s

Platform limits:
- Caption: %d characters max
- Hashtags: %d max

Generate improved JSON:
{
  "caption": "adjusted caption based on feedback",
  "hashtags": ["adjusted hashtags based on feedback"],
  "mediaPrompt": "adjusted media prompt if mentioned in feedback, otherwise keep original"
}

Make the adjustments while maintaining the original intent and platform optimization.`,
		original.Platform, original.Type, original.Caption, strings.Join(original.Hashtags, ", "),
		mediaPrompt, feedback, spec.Limits.CaptionLength, spec.Limits.HashtagLimit)
}
