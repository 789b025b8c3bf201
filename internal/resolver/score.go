package resolver

import "github.com/castlesolutions/flighttracker/internal/models"

// Score rates how informative a canonical record is. Operational signals
// (delay, activity, live position) weigh more than static details like gates
// and terminals, so the provider that actually knows something about a moving
// flight beats the one echoing the schedule. A nil record scores -1, below
// any real record.
func Score(f *models.Flight) int {
	if f == nil {
		return -1
	}

	score := 0
	if f.Status == models.StatusDelayed || f.Status == models.StatusActive {
		score += 10
	}
	if f.Departure.Delay > 0 {
		score += 5
	}
	if f.Departure.Actual != nil {
		score += 3
	}
	if timesDiffer(f.Departure.Estimated, f.Departure.Scheduled) {
		score += 3
	}
	if timesDiffer(f.Arrival.Estimated, f.Arrival.Scheduled) {
		score += 3
	}
	if f.Live != nil {
		score += 5
	}
	if f.Departure.Gate != nil {
		score++
	}
	if f.Departure.Terminal != nil {
		score++
	}
	if f.Arrival.Terminal != nil {
		score++
	}
	if f.Arrival.Baggage != nil {
		score++
	}
	return score
}

func timesDiffer(estimated, scheduled *string) bool {
	if estimated == nil {
		return false
	}
	return scheduled == nil || *estimated != *scheduled
}
