// Package normalize converts human-entered date and time strings into the
// canonical textual forms required by the destination sheet columns.
//
// Both functions are pure and total: malformed input is returned unchanged
// rather than reported as an error, and already-normalized input is a fixed
// point.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Date converts "YYYY-MM-DD" to "M/D/YYYY".
//
// The components are split and re-assembled as plain integers on purpose:
// round-tripping through a timezone-aware date value can shift the day by
// one depending on the host offset. Anything that does not look like a
// dashed date is returned unchanged.
func Date(input string) string {
	parts := strings.Split(input, "-")
	if len(parts) != 3 {
		return input
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return input
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return input
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return input
	}
	return fmt.Sprintf("%d/%d/%d", month, day, year)
}

var (
	timeWithSecondsRe = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})\s*(AM|PM)$`)
	timeMeridiemRe    = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(AM|PM)$`)
)

// Time converts a clock time to "H:MM:SS AM/PM".
//
// Input already carrying an AM/PM marker only gets a seconds component
// inserted if absent. Otherwise the input is interpreted as 24-hour "HH:MM":
// hour 0 becomes 12 AM, 13-23 become (hour-12) PM, and 12 stays 12 PM.
// Malformed input is returned unchanged.
func Time(input string) string {
	t := strings.TrimSpace(input)
	if t == "" {
		return input
	}

	if strings.Contains(t, "AM") || strings.Contains(t, "PM") {
		if timeWithSecondsRe.MatchString(t) {
			return t
		}
		if m := timeMeridiemRe.FindStringSubmatch(t); m != nil {
			return m[1] + ":" + m[2] + ":00 " + m[3]
		}
		return input
	}

	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return input
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return input
	}
	minutes := parts[1]
	if len(minutes) != 2 {
		return input
	}
	if _, err := strconv.Atoi(minutes); err != nil {
		return input
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	hour12 := hour
	switch {
	case hour == 0:
		hour12 = 12
	case hour > 12:
		hour12 = hour - 12
	}
	return fmt.Sprintf("%d:%s:00 %s", hour12, minutes, period)
}

// ClockFrom24 parses a normalized "H:MM:SS AM/PM" string back into 24-hour
// hour and minute components, for callers that need a real point in time
// (e.g. calendar scheduling). Returns ok=false for anything malformed.
func ClockFrom24(normalized string) (hour, minute int, ok bool) {
	m := timeWithSecondsRe.FindStringSubmatch(strings.TrimSpace(normalized))
	if m == nil {
		return 0, 0, false
	}
	h, err := strconv.Atoi(m[1])
	if err != nil || h < 1 || h > 12 {
		return 0, 0, false
	}
	min, err := strconv.Atoi(m[2])
	if err != nil || min < 0 || min > 59 {
		return 0, 0, false
	}
	if m[4] == "PM" && h != 12 {
		h += 12
	} else if m[4] == "AM" && h == 12 {
		h = 0
	}
	return h, min, true
}
