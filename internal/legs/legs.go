// Package legs resolves a flight designator that matches several scheduled
// legs (recurring daily flights) down to the single leg relevant now.
package legs

import (
	"time"

	"github.com/castlesolutions/flighttracker/internal/flighttime"
	"github.com/castlesolutions/flighttracker/internal/status"
)

// FlexWindow widens the "today" window on both sides to tolerate timezone
// skew between the server and the airports involved.
const FlexWindow = 6 * time.Hour

// Candidate is the slice of a raw provider leg that disambiguation needs.
type Candidate struct {
	ScheduledDeparture *string
	RawStatus          string
}

// Pick returns the index of the leg to track. Legs departing inside the
// flexed today window are preferred, and among those an active or delayed leg
// beats a merely scheduled one. With no leg in the window the first leg wins,
// so the result is always a valid index for a non-empty input. Empty input
// returns -1.
func Pick(candidates []Candidate, now time.Time) int {
	if len(candidates) == 0 {
		return -1
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowStart := dayStart.Add(-FlexWindow)
	windowEnd := dayStart.Add(24*time.Hour - time.Millisecond).Add(FlexWindow)

	var today []int
	for i, c := range candidates {
		dep, ok := flighttime.Parse(c.ScheduledDeparture)
		if !ok {
			continue
		}
		if dep.Before(windowStart) || dep.After(windowEnd) {
			continue
		}
		today = append(today, i)
	}

	for _, i := range today {
		if status.IsDisrupted(candidates[i].RawStatus) {
			return i
		}
	}
	if len(today) > 0 {
		return today[0]
	}
	return 0
}
