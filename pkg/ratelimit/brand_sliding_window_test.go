package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlidingWindowLimiter_NoRedisAdmits(t *testing.T) {
	l := NewSlidingWindowLimiter(nil, 1, time.Minute)

	for i := 0; i < 5; i++ {
		ok, wait := l.Allow(context.Background(), "1.2.3.4")
		assert.True(t, ok)
		assert.Zero(t, wait)
	}
	assert.Equal(t, 1, l.Limit())
	assert.Equal(t, "sliding window 1/1m0s", l.String())
}
