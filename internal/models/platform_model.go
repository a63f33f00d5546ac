package models

// Platform is a supported social network target.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTiktok    Platform = "tiktok"
	PlatformLinkedin  Platform = "linkedin"
	PlatformTwitter   Platform = "twitter"
	PlatformFacebook  Platform = "facebook"
	PlatformYoutube   Platform = "youtube"
)

// ContentType is the kind of media a post carries.
type ContentType string

const (
	ContentTypeImage ContentType = "image"
	ContentTypeVideo ContentType = "video"
	ContentTypeText  ContentType = "text"
)

type PlatformLimits struct {
	CaptionLength int
	HashtagLimit  int
	VideoLength   int // seconds
	ImageRatio    string
}

type PlatformSpec struct {
	ID     Platform
	Name   string
	Limits PlatformLimits
}

var platforms = map[Platform]PlatformSpec{
	PlatformInstagram: {
		ID:     PlatformInstagram,
		Name:   "Instagram",
		Limits: PlatformLimits{CaptionLength: 2200, HashtagLimit: 30, VideoLength: 60, ImageRatio: "1:1"},
	},
	PlatformTiktok: {
		ID:     PlatformTiktok,
		Name:   "TikTok/Reels/Shorts",
		Limits: PlatformLimits{CaptionLength: 150, HashtagLimit: 20, VideoLength: 30, ImageRatio: "9:16"},
	},
	PlatformLinkedin: {
		ID:     PlatformLinkedin,
		Name:   "LinkedIn",
		Limits: PlatformLimits{CaptionLength: 3000, HashtagLimit: 5, VideoLength: 180, ImageRatio: "16:9"},
	},
	PlatformTwitter: {
		ID:     PlatformTwitter,
		Name:   "Twitter/X",
		Limits: PlatformLimits{CaptionLength: 280, HashtagLimit: 2, VideoLength: 140, ImageRatio: "16:9"},
	},
	PlatformFacebook: {
		ID:     PlatformFacebook,
		Name:   "Facebook",
		Limits: PlatformLimits{CaptionLength: 63206, HashtagLimit: 30, VideoLength: 240, ImageRatio: "16:9"},
	},
	PlatformYoutube: {
		ID:     PlatformYoutube,
		Name:   "YouTube",
		Limits: PlatformLimits{CaptionLength: 5000, HashtagLimit: 15, VideoLength: 600, ImageRatio: "16:9"},
	},
}

// PlatformInfo returns the spec for a platform, reporting whether it is recognized.
func PlatformInfo(p Platform) (PlatformSpec, bool) {
	spec, ok := platforms[p]
	return spec, ok
}

// ValidContentType reports whether t is one of the enumerated content kinds.
func ValidContentType(t ContentType) bool {
	switch t {
	case ContentTypeImage, ContentTypeVideo, ContentTypeText:
		return true
	}
	return false
}

// CampaignDurationDays maps a duration selector to its length in days.
var CampaignDurationDays = map[string]int{
	"1-week":   7,
	"2-weeks":  14,
	"1-month":  30,
	"3-months": 90,
	"6-months": 180,
}

// CampaignPostsPerDay maps a frequency selector to posts per day.
var CampaignPostsPerDay = map[string]float64{
	"daily":        1,
	"every-2-days": 0.5,
	"weekly":       0.14,
	"bi-weekly":    0.07,
}
