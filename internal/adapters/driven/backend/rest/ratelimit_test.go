package rest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{"missing", "", defaultRetryAfter},
		{"seconds", "12", 12 * time.Second},
		{"zero", "0", defaultRetryAfter},
		{"http date", now.Add(90 * time.Second).Format(time.RFC1123), 90 * time.Second},
		{"past date", now.Add(-time.Minute).Format(time.RFC1123), defaultRetryAfter},
		{"garbage", "soon", defaultRetryAfter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseRetryAfter(tt.header, now))
		})
	}
}

func TestRateLimiter_UnlimitedDoesNotBlock(t *testing.T) {
	limiter := NewRateLimiter(0)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 20; i++ {
		assert.NoError(t, limiter.Wait(ctx))
	}
}

func TestRateLimiter_BackoffKeepsLongestDeadline(t *testing.T) {
	limiter := NewRateLimiter(0)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Backoff("60")
	limiter.Backoff("5")

	assert.Equal(t, now.Add(time.Minute), limiter.retryAt)
}
