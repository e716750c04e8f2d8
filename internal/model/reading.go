package model

import (
	"fmt"
	"strings"
	"time"
)

// SeriesTimeLayout renders a reading's time of day, matching the HH:MM
// layout the forecast is requested in.
const SeriesTimeLayout = "15:04"

// Reading is one temperature sample. Time carries only the time of day; its
// date part is meaningless.
type Reading struct {
	Time        time.Time
	Temperature float64
}

// Line renders the reading as "HH:MM -> 21.50°C".
func (r Reading) Line() string {
	return fmt.Sprintf("%s -> %.2f°C", r.Time.Format(SeriesTimeLayout), r.Temperature)
}

// HistoricalSeries renders readings one per line, in the order given.
func HistoricalSeries(readings []Reading) string {
	var sb strings.Builder
	for _, r := range readings {
		sb.WriteString(r.Line())
		sb.WriteString("\n")
	}
	return sb.String()
}

// ParseTimeOfDay accepts the textual forms drivers hand back for a time
// column: "15:04", "15:04:05", "15:04:05.999999" or a full RFC 3339 timestamp.
func ParseTimeOfDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05.999999999", "15:04", time.RFC3339Nano, "2006-01-02 15:04:05.999999999", "2006-01-02T15:04:05.999999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time of day %q", s)
}
