package job

import (
	"fmt"
	"log/slog"

	"github.com/cadencehq/cadence-api/internal/gemini"
)

type UsageSource interface {
	RateLimitInfo() gemini.Usage
	DailyUsage() gemini.Usage
}

// UsageReportJob periodically logs the generation client's budget usage so
// quota exhaustion is visible before requests start blocking.
type UsageReportJob struct {
	src UsageSource
}

func NewUsageReportJob(src UsageSource) *UsageReportJob {
	return &UsageReportJob{src: src}
}

func (j *UsageReportJob) Report() {
	minute := j.src.RateLimitInfo()
	daily := j.src.DailyUsage()
	slog.Info(fmt.Sprintf("generation usage: %d/%d this minute, %d/%d today (daily reset %s)",
		minute.Used, minute.Limit, daily.Used, daily.Limit, daily.ResetAt.Format("15:04:05")))
}
