// Package flighttime holds the timestamp arithmetic behind delay estimation
// and in-flight progress. Canonical records keep provider timestamps verbatim;
// parsing happens only here, and anything unparsable degrades to the neutral
// value (zero delay, 50% progress) instead of erroring.
package flighttime

import (
	"math"
	"time"

	"github.com/castlesolutions/flighttracker/internal/models"
)

// NeutralProgress is returned when timestamps are missing or inconsistent.
const NeutralProgress = 50

var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Parse attempts the timestamp formats the upstream providers emit. The bool
// result is false when the input is nil, empty or unparsable.
func Parse(ts *string) (time.Time, bool) {
	if ts == nil || *ts == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, *ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Delay estimates a departure or arrival delay in whole minutes from the gap
// between the scheduled and estimated timestamps. Early estimates and
// unparsable inputs both yield zero; providers that report a delay directly
// take precedence over this estimate.
func Delay(scheduled, estimated *string) int {
	sched, ok := Parse(scheduled)
	if !ok {
		return 0
	}
	est, ok := Parse(estimated)
	if !ok {
		return 0
	}
	mins := int(math.Round(est.Sub(sched).Minutes()))
	if mins < 0 {
		return 0
	}
	return mins
}

// Progress derives a 0-100 route completion percentage. departed reports
// whether the flight has an actual off-block time, which is what separates a
// delayed flight still on the ground from one en route. A flight that has not
// landed is capped at 99 so the UI never shows a premature 100%.
func Progress(departure, arrival *string, st models.Status, departed bool, now time.Time) int {
	switch st {
	case models.StatusLanded:
		return 100
	case models.StatusScheduled, models.StatusCancelled:
		return 0
	case models.StatusDelayed:
		if !departed {
			return 0
		}
	}

	dep, ok := Parse(departure)
	if !ok {
		return NeutralProgress
	}
	arr, ok := Parse(arrival)
	if !ok {
		return NeutralProgress
	}
	if !arr.After(dep) {
		return NeutralProgress
	}

	pct := int(math.Round(float64(now.Sub(dep)) / float64(arr.Sub(dep)) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 99 {
		return 99
	}
	return pct
}
