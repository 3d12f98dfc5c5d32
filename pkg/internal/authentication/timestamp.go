package authentication

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultTimestampWindow is how far the request timestamp may be from the server time, in both directions.
const DefaultTimestampWindow = 5 * time.Minute

// CheckTimestamp reports whether the claimed timestamp lies within DefaultTimestampWindow of now.
// Both values are milliseconds since epoch. The window bound is inclusive.
func CheckTimestamp(claimedMs, nowMs int64) bool {
	return CheckTimestampWithin(claimedMs, nowMs, DefaultTimestampWindow)
}

// CheckTimestampWithin reports whether the claimed timestamp lies within window of now.
func CheckTimestampWithin(claimedMs, nowMs int64, window time.Duration) bool {
	windowMs := window.Milliseconds()

	delta := nowMs - claimedMs
	// overflow of the subtraction means the values are far apart anyway
	if (claimedMs > 0 && delta > nowMs) || (claimedMs < 0 && delta < nowMs) {
		return false
	}

	return delta <= windowMs && delta >= -windowMs
}

func parseTimestamp(value string) (int64, error) {
	if value == "" {
		return 0, fmt.Errorf("%w: missing timestamp header", ErrInvalidTimestamp)
	}

	timestamp, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidTimestamp, err)
	}
	return timestamp, nil
}
