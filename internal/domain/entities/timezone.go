package entities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidTimezone = errors.New("unsupported timezone")

// ParseTimezoneLocation resolves the timezone a user sends with /timezone:
//   - IANA names like "Asia/Karachi"
//   - "UTC" / "GMT"
//   - fixed offsets: "UTC+3", "UTC-7", "UTC+5:30", "+3", "-03:30"
//
// Fixed offsets become a time.FixedZone and ignore DST.
func ParseTimezoneLocation(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" || strings.EqualFold(tz, "UTC") || strings.EqualFold(tz, "Etc/UTC") {
		return time.UTC, nil
	}
	if strings.EqualFold(tz, "GMT") {
		return time.UTC, nil
	}

	// IANA names take priority over offsets.
	if loc, err := time.LoadLocation(tz); err == nil {
		return loc, nil
	}

	offSec, ok := parseUTCOffsetSeconds(tz)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrInvalidTimezone, tz)
	}
	return time.FixedZone(formatUTCOffsetName(offSec), offSec), nil
}

func parseUTCOffsetSeconds(tz string) (int, bool) {
	s := strings.TrimSpace(tz)

	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return parseSignHourMinuteToSeconds(s)
	}

	if strings.HasPrefix(strings.ToUpper(s), "UTC") {
		s = strings.TrimSpace(s[3:])
		if s == "" {
			return 0, true
		}
		if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
			return parseSignHourMinuteToSeconds(s)
		}
		return 0, false
	}

	return 0, false
}

func parseSignHourMinuteToSeconds(s string) (int, bool) {
	if len(s) < 2 {
		return 0, false
	}
	var sign int
	switch s[0] {
	case '+':
		sign = 1
	case '-':
		sign = -1
	default:
		return 0, false
	}
	s = s[1:]

	hh := s
	mm := "0"
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 2 {
			return 0, false
		}
		hh, mm = parts[0], parts[1]
	}

	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, false
	}

	// no zone is more than 14 hours from UTC
	if h < 0 || h > 14 || m < 0 || m >= 60 {
		return 0, false
	}

	return sign * (h*3600 + m*60), true
}

func formatUTCOffsetName(offsetSec int) string {
	sign := "+"
	if offsetSec < 0 {
		sign = "-"
		offsetSec = -offsetSec
	}
	h := offsetSec / 3600
	m := (offsetSec % 3600) / 60
	return fmt.Sprintf("UTC%s%02d:%02d", sign, h, m)
}
