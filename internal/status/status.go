// Package status maps provider status vocabularies onto the canonical
// taxonomy. Matching is case-insensitive substring matching over an ordered
// rule list; the first rule that matches wins. The delay signal is evaluated
// before everything else so a "Scheduled" flight running 20 minutes late
// still reads as delayed.
package status

import (
	"strings"

	"github.com/castlesolutions/flighttracker/internal/models"
)

// DelayThresholdMinutes is the departure delay above which a flight is
// considered delayed regardless of what the provider calls it.
const DelayThresholdMinutes = 15

var delayedSubstrings = []string{"delay", "late", "departing late"}

var activeSubstrings = []string{"active", "en-route", "en route", "airborne"}

// Normalize maps a raw provider status onto the canonical taxonomy for the
// single-flight path. delayMinutes is the departure delay signal, zero when
// none exists.
func Normalize(raw string, delayMinutes int) models.Status {
	return normalize(raw, delayMinutes, []string{"land"})
}

// NormalizeArrival is the arrivals-board flavor, where provider strings like
// "arrived" also count as landed.
func NormalizeArrival(raw string, delayMinutes int) models.Status {
	return normalize(raw, delayMinutes, []string{"land", "arriv"})
}

func normalize(raw string, delayMinutes int, landed []string) models.Status {
	s := strings.ToLower(strings.TrimSpace(raw))

	if delayMinutes > DelayThresholdMinutes || containsAny(s, delayedSubstrings) {
		return models.StatusDelayed
	}
	if s == "" {
		return models.StatusUnknown
	}
	if strings.Contains(s, "sched") {
		return models.StatusScheduled
	}
	if containsAny(s, activeSubstrings) {
		return models.StatusActive
	}
	if containsAny(s, landed) {
		return models.StatusLanded
	}
	if strings.Contains(s, "cancel") {
		return models.StatusCancelled
	}
	if strings.Contains(s, "divert") {
		return models.StatusDiverted
	}
	// Unrecognized vocabularies pass through lower-cased; consumers treat
	// them as unknown.
	return models.Status(s)
}

// IsDisrupted reports whether a raw status reads as active or delayed, the
// signal leg disambiguation uses to prefer a leg already underway.
func IsDisrupted(raw string) bool {
	s := strings.ToLower(raw)
	return containsAny(s, activeSubstrings) || containsAny(s, delayedSubstrings)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
