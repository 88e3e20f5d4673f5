package runofshow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeToSeconds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"19:00:00", 68400, true},
		{"00:05:30", 330, true},
		{"05:30", 330, true},
		{" 05:30 ", 330, true},
		{"1:2:3", 3723, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"12", 0, false},
		{"1:2:3:4", 0, false},
		{"aa:30", 0, false},
		{"19:xx:00", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseTimeToSeconds(tc.in)
		assert.Equal(t, tc.ok, ok, "ok for %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "seconds for %q", tc.in)
		}
	}
}

func TestParseDurationToSeconds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"05:30", 330, true},
		{"0:45", 45, true},
		{"90", 90, true},
		{" 90 ", 90, true},
		{"", 0, false},
		{"aa", 0, false},
		{"1:2:3", 0, false},
		{"a:30", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseDurationToSeconds(tc.in)
		assert.Equal(t, tc.ok, ok, "ok for %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "seconds for %q", tc.in)
		}
	}
}

func TestFormatSecondsToTime(t *testing.T) {
	t.Parallel()

	// Boundary: one second under an hour stays MM:SS, the hour flips the
	// long form on.
	assert.Equal(t, "59:59", FormatSecondsToTime(3599))
	assert.Equal(t, "01:00:00", FormatSecondsToTime(3600))
	assert.Equal(t, "00:00", FormatSecondsToTime(0))
	assert.Equal(t, "05:30", FormatSecondsToTime(330))
	assert.Equal(t, "19:05:30", FormatSecondsToTime(68730))
	// No 24h wrap: hours keep counting up.
	assert.Equal(t, "25:00:00", FormatSecondsToTime(90000))
}
