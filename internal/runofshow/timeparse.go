package runofshow

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTimeToSeconds parses a wall-clock time token as seconds since
// midnight.  "HH:MM:SS" and "MM:SS" are accepted; any other token count, a
// non-numeric component or a blank string yields no value.  The second
// return reports whether a value was parsed; callers must not treat a failed
// parse as zero.
func ParseTimeToSeconds(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	switch len(parts) {
	case 3:
		h, errH := strconv.Atoi(parts[0])
		m, errM := strconv.Atoi(parts[1])
		sec, errS := strconv.Atoi(parts[2])
		if errH != nil || errM != nil || errS != nil {
			return 0, false
		}
		return h*3600 + m*60 + sec, true
	case 2:
		m, errM := strconv.Atoi(parts[0])
		sec, errS := strconv.Atoi(parts[1])
		if errM != nil || errS != nil {
			return 0, false
		}
		return m*60 + sec, true
	}
	return 0, false
}

// ParseDurationToSeconds parses a duration token as a span in seconds.
// "MM:SS" and a bare integer second count are accepted; anything else
// yields no value.
func ParseDurationToSeconds(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	switch len(parts) {
	case 2:
		m, errM := strconv.Atoi(parts[0])
		sec, errS := strconv.Atoi(parts[1])
		if errM != nil || errS != nil {
			return 0, false
		}
		return m*60 + sec, true
	case 1:
		sec, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, false
		}
		return sec, true
	}
	return 0, false
}

// FormatSecondsToTime renders a second count as "MM:SS" when it is under an
// hour and "HH:MM:SS" otherwise, each component zero-padded to two digits.
// Values of a day or more keep incrementing the hour field; there is no
// wrap at 24h.
func FormatSecondsToTime(totalSeconds int) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
