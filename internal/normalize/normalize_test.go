package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2026-09-15", "9/15/2026"},
		{"2026-12-01", "12/1/2026"},
		{"2026-01-31", "1/31/2026"},
		// Already normalized input is a fixed point.
		{"9/15/2026", "9/15/2026"},
		// Malformed input falls through unchanged.
		{"", ""},
		{"tomorrow", "tomorrow"},
		{"2026-09", "2026-09"},
		{"2026-xx-15", "2026-xx-15"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Date(tc.in), "Date(%q)", tc.in)
	}
}

// TestDateNoTimezoneShift pins the day component for dates around midnight
// boundaries; string surgery must never consult the host timezone.
func TestDateNoTimezoneShift(t *testing.T) {
	assert.Equal(t, "1/1/2027", Date("2027-01-01"))
	assert.Equal(t, "12/31/2026", Date("2026-12-31"))
}

func TestTime(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"13:30", "1:30:00 PM"},
		{"00:15", "12:15:00 AM"},
		{"12:00", "12:00:00 PM"},
		{"09:05", "9:05:00 AM"},
		{"23:59", "11:59:00 PM"},
		{"2:00 PM", "2:00:00 PM"},
		{"10:00 AM", "10:00:00 AM"},
		// Seconds already present: fixed point.
		{"2:00:00 PM", "2:00:00 PM"},
		{"12:15:00 AM", "12:15:00 AM"},
		// Malformed input falls through unchanged.
		{"", ""},
		{"noonish", "noonish"},
		{"25:00", "25:00"},
		{"13:3", "13:3"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Time(tc.in), "Time(%q)", tc.in)
	}
}

// TestIdempotence feeds each function its own output; both must be fixed
// points on normalized values.
func TestIdempotence(t *testing.T) {
	for _, in := range []string{"2026-09-15", "13:30", "2:00 PM", "garbage", ""} {
		d := Date(in)
		assert.Equal(t, d, Date(d), "Date not idempotent for %q", in)
		tm := Time(in)
		assert.Equal(t, tm, Time(tm), "Time not idempotent for %q", in)
	}
}

func TestClockFrom24(t *testing.T) {
	h, m, ok := ClockFrom24("1:30:00 PM")
	assert.True(t, ok)
	assert.Equal(t, 13, h)
	assert.Equal(t, 30, m)

	h, m, ok = ClockFrom24("12:15:00 AM")
	assert.True(t, ok)
	assert.Equal(t, 0, h)
	assert.Equal(t, 15, m)

	h, _, ok = ClockFrom24("12:00:00 PM")
	assert.True(t, ok)
	assert.Equal(t, 12, h)

	_, _, ok = ClockFrom24("13:30")
	assert.False(t, ok)
}
