package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

const (
	HeaderRateLimit          = "X-Ratelimit-Limit"
	HeaderRateLimitRemaining = "X-Ratelimit-Remaining"
)

// RateLimit captures the hourly request quota reported with each response.
type RateLimit struct {
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

// IsZero reports whether quota data is absent.
func (r RateLimit) IsZero() bool {
	return r.Limit == 0 && r.Remaining == 0
}

// LogValue groups the quota under one attribute on log lines.
func (r RateLimit) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("limit", r.Limit),
		slog.Int("remaining", r.Remaining),
	)
}

// ParseRateLimit reads the quota headers. Missing or malformed values read
// as zero.
func ParseRateLimit(h http.Header) RateLimit {
	return RateLimit{
		Limit:     headerInt(h, HeaderRateLimit),
		Remaining: headerInt(h, HeaderRateLimitRemaining),
	}
}

func headerInt(h http.Header, key string) int {
	v := strings.TrimSpace(h.Get(key))
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
