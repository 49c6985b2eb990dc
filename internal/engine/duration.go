package engine

import (
	"fmt"
	"strings"
)

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// FormatDuration renders a millisecond duration as localized text,
// largest unit first, skipping zero-valued units. A zero (or negative)
// duration renders as the localized zero-seconds form instead of an
// empty string.
func FormatDuration(ms int64, translate func(string) string) string {
	if translate == nil {
		translate = func(key string) string { return key }
	}
	if ms < 0 {
		ms = -ms
	}
	units := []struct {
		size     int64
		singular string
		plural   string
	}{
		{msPerDay, "duration.day", "duration.days"},
		{msPerHour, "duration.hour", "duration.hours"},
		{msPerMinute, "duration.minute", "duration.minutes"},
		{msPerSecond, "duration.second", "duration.seconds"},
	}
	var parts []string
	rest := ms
	for _, u := range units {
		n := rest / u.size
		rest %= u.size
		if n == 0 {
			continue
		}
		key := u.plural
		if n == 1 {
			key = u.singular
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, translate(key)))
	}
	if len(parts) == 0 {
		return "0 " + translate("duration.seconds")
	}
	return strings.Join(parts, " ")
}
