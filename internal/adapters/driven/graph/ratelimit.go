package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/graphscope/internal/logger"
)

const (
	// HeaderAppUsage reports application-level usage as percentages.
	HeaderAppUsage = "X-App-Usage"

	// UsageWarnPercent is the usage at which a warning is logged.
	UsageWarnPercent = 90
)

// Usage is the decoded X-App-Usage header.
type Usage struct {
	CallCount    int `json:"call_count"`
	TotalTime    int `json:"total_time"`
	TotalCPUTime int `json:"total_cputime"`
}

// Max returns the highest of the three percentages.
func (u Usage) Max() int {
	return max(u.CallCount, u.TotalTime, u.TotalCPUTime)
}

// RateLimiter throttles requests proactively and records the usage the
// API reports. It never retries; a 429 is surfaced to the caller.
type RateLimiter struct {
	mu     sync.Mutex
	usage  Usage
	bucket *rate.Limiter
}

// NewRateLimiter creates a limiter allowing perSecond requests with a
// burst of three, one per concurrent fetch call. perSecond <= 0 disables
// throttling.
func NewRateLimiter(perSecond float64) *RateLimiter {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &RateLimiter{
		bucket: rate.NewLimiter(limit, 3),
	}
}

// Wait blocks until a request may be sent or ctx ends.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}

// UpdateFromResponse records the usage header of resp, if present.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}
	raw := resp.Header.Get(HeaderAppUsage)
	if raw == "" {
		return
	}

	var usage Usage
	if err := json.Unmarshal([]byte(raw), &usage); err != nil {
		logger.Debug("Ignoring malformed %s header: %v", HeaderAppUsage, err)
		return
	}

	r.mu.Lock()
	r.usage = usage
	r.mu.Unlock()

	if usage.Max() >= UsageWarnPercent {
		logger.Warn("API usage at %d%% of the application limit", usage.Max())
	}
}

// Usage returns the last reported usage.
func (r *RateLimiter) Usage() Usage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.usage
}
