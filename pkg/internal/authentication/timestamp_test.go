package authentication_test

import (
	"math"
	"testing"
	"time"

	"github.com/bsv-blockchain/go-node-auth/pkg/internal/authentication"
	"github.com/stretchr/testify/assert"
)

func TestCheckTimestamp(t *testing.T) {
	const base int64 = 1502390208007
	now := base + 300000

	tests := map[string]struct {
		timestamp int64
		expected  bool
	}{
		"timestamp below threshold": {
			timestamp: base - 300000 - 1,
			expected:  false,
		},
		"timestamp above threshold": {
			timestamp: base + 600000 + 1,
			expected:  false,
		},
		"timestamp within threshold": {
			timestamp: base + 300000 + 1,
			expected:  true,
		},
		"timestamp equal to server time": {
			timestamp: now,
			expected:  true,
		},
		"timestamp exactly at past edge": {
			timestamp: now - 300000,
			expected:  true,
		},
		"timestamp exactly at future edge": {
			timestamp: now + 300000,
			expected:  true,
		},
		"timestamp one millisecond past the past edge": {
			timestamp: now - 300001,
			expected:  false,
		},
		"timestamp one millisecond past the future edge": {
			timestamp: now + 300001,
			expected:  false,
		},
		"timestamp zero": {
			timestamp: 0,
			expected:  false,
		},
		"negative timestamp overflowing delta": {
			timestamp: math.MinInt64,
			expected:  false,
		},
		"max timestamp": {
			timestamp: math.MaxInt64,
			expected:  false,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			// when:
			result := authentication.CheckTimestamp(test.timestamp, now)

			// then:
			assert.Equal(t, test.expected, result)
		})
	}
}

func TestCheckTimestampWithin(t *testing.T) {
	t.Run("use custom window", func(t *testing.T) {
		// given:
		const now int64 = 1502390208007

		// then:
		assert.True(t, authentication.CheckTimestampWithin(now-1000, now, time.Second))
		assert.False(t, authentication.CheckTimestampWithin(now-1001, now, time.Second))
		assert.False(t, authentication.CheckTimestampWithin(now+1001, now, time.Second))
	})

	t.Run("overflow with negative server time", func(t *testing.T) {
		// then:
		assert.False(t, authentication.CheckTimestampWithin(math.MaxInt64, -1000, time.Minute))
	})
}
