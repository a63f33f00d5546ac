package models

// CampaignStrategy is the campaign plan returned by a single structured
// generation call. The schedule length is requested as
// ceil(durationDays * postsPerDay) but the generator is free to return a
// different count; no correction is applied.
type CampaignStrategy struct {
	Overview         string     `json:"overview"`
	ContentPillars   []string   `json:"contentPillars"`
	Schedule         []PostSlot `json:"schedule"`
	KeyMessages      []string   `json:"keyMessages"`
	VisualGuidelines string     `json:"visualGuidelines"`
	HashtagStrategy  []string   `json:"hashtagStrategy"`
}

// PostSlot is one schedule entry, consumed to build per-post prompts.
type PostSlot struct {
	DayNumber   int      `json:"dayNumber"`
	Platform    Platform `json:"platform"`
	ContentType string   `json:"contentType"`
	Topic       string   `json:"topic"`
	Hook        string   `json:"hook"`
}
