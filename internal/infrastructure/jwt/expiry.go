package jwt

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const maxExpiryLen = 100

// expiryRe is the grammar of the "ms" package that jsonwebtoken reads a
// string expiresIn with: a decimal number, optional spaces, optional unit.
var expiryRe = regexp.MustCompile(
	`(?i)^(-?\d*\.?\d+) *(milliseconds?|msecs?|ms|seconds?|secs?|s|minutes?|mins?|m|hours?|hrs?|h|days?|d|weeks?|w|years?|yrs?|y)?$`,
)

// ParseExpiry reads an ACCESS_TOKEN_EXPIRY value. A number with no unit is
// milliseconds ("900" is 900ms); units run from ms to y, short or long
// ("7d", "2 days", "1.5h", "1w", "1y"). Compound Go durations such as
// "1h30m" are accepted as well. The result must be positive and fit in a
// time.Duration.
func ParseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("expiry is empty")
	}
	if len(s) > maxExpiryLen {
		return 0, fmt.Errorf("expiry is longer than %d characters", maxExpiryLen)
	}

	m := expiryRe.FindStringSubmatch(s)
	if m == nil {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid expiry %q: %w", s, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("expiry %q must be positive", s)
		}
		return d, nil
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid expiry %q: %w", s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("expiry %q must be positive", s)
	}

	ns := n * float64(expiryUnit(m[2]))
	if ns >= math.MaxInt64 {
		return 0, fmt.Errorf("expiry %q is too large", s)
	}
	d := time.Duration(ns)
	if d <= 0 {
		return 0, fmt.Errorf("expiry %q must be positive", s)
	}

	return d, nil
}

func expiryUnit(unit string) time.Duration {
	switch strings.ToLower(unit) {
	case "s", "sec", "secs", "second", "seconds":
		return time.Second
	case "m", "min", "mins", "minute", "minutes":
		return time.Minute
	case "h", "hr", "hrs", "hour", "hours":
		return time.Hour
	case "d", "day", "days":
		return 24 * time.Hour
	case "w", "week", "weeks":
		return 7 * 24 * time.Hour
	case "y", "yr", "yrs", "year", "years":
		// 365.25 days
		return 8766 * time.Hour
	default:
		return time.Millisecond
	}
}
