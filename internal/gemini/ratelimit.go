package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Usage is a read-only snapshot of one rate-limit window.
type Usage struct {
	Used    int       `json:"used"`
	Limit   int       `json:"limit"`
	ResetAt time.Time `json:"resetAt"`
}

// limiter tracks per-minute and per-day request budgets for one process
// instance. State is process-lifetime and local only; in a multi-instance
// deployment the limits are approximate by design. The mutex matters because
// GenerateBatch fans calls out across goroutines.
type limiter struct {
	mu          sync.Mutex
	perMinute   int
	perDay      int
	minuteCount int
	dayCount    int
	minuteReset time.Time
	dayReset    time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func newLimiter(perMinute, perDay int) *limiter {
	now := time.Now()
	return &limiter{
		perMinute:   perMinute,
		perDay:      perDay,
		minuteReset: now.Add(time.Minute),
		dayReset:    now.Add(24 * time.Hour),
		now:         time.Now,
		sleep:       sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// acquire claims one request slot. Minute exhaustion blocks until the window
// resets; daily exhaustion fails immediately since the wait could be hours.
func (l *limiter) acquire(ctx context.Context) error {
	l.mu.Lock()

	now := l.now()
	if now.After(l.minuteReset) {
		l.minuteCount = 0
		l.minuteReset = now.Add(time.Minute)
	}
	if now.After(l.dayReset) {
		l.dayCount = 0
		l.dayReset = now.Add(24 * time.Hour)
	}

	if l.minuteCount >= l.perMinute {
		wait := l.minuteReset.Sub(now)
		l.mu.Unlock()
		slog.Info(fmt.Sprintf("Rate limit reached. Waiting %s...", wait))
		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
		l.mu.Lock()
		l.minuteCount = 0
		l.minuteReset = l.now().Add(time.Minute)
	}

	if l.dayCount >= l.perDay {
		l.mu.Unlock()
		return ErrDailyQuotaExceeded
	}

	l.minuteCount++
	l.dayCount++
	l.mu.Unlock()
	return nil
}

func (l *limiter) minuteUsage() Usage {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Usage{Used: l.minuteCount, Limit: l.perMinute, ResetAt: l.minuteReset}
}

func (l *limiter) dayUsage() Usage {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Usage{Used: l.dayCount, Limit: l.perDay, ResetAt: l.dayReset}
}
