package legs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

var noon = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func TestPickEmpty(t *testing.T) {
	assert.Equal(t, -1, Pick(nil, noon))
}

func TestPickSingleLeg(t *testing.T) {
	cands := []Candidate{
		{ScheduledDeparture: strptr("2026-08-31T09:00:00Z"), RawStatus: "scheduled"},
	}
	assert.Equal(t, 0, Pick(cands, noon))
}

func TestPickPrefersTodayWindow(t *testing.T) {
	cands := []Candidate{
		{ScheduledDeparture: strptr("2026-08-30T09:00:00Z"), RawStatus: "landed"},
		{ScheduledDeparture: strptr("2026-08-31T09:00:00Z"), RawStatus: "scheduled"},
		{ScheduledDeparture: strptr("2026-09-01T09:00:00Z"), RawStatus: "scheduled"},
	}
	assert.Equal(t, 1, Pick(cands, noon))
}

func TestPickPrefersActiveOverScheduled(t *testing.T) {
	cands := []Candidate{
		{ScheduledDeparture: strptr("2026-08-31T06:00:00Z"), RawStatus: "scheduled"},
		{ScheduledDeparture: strptr("2026-08-31T09:00:00Z"), RawStatus: "En Route"},
	}
	assert.Equal(t, 1, Pick(cands, noon))
}

func TestPickPrefersDelayedOverScheduled(t *testing.T) {
	cands := []Candidate{
		{ScheduledDeparture: strptr("2026-08-31T06:00:00Z"), RawStatus: "scheduled"},
		{ScheduledDeparture: strptr("2026-08-31T18:00:00Z"), RawStatus: "Delayed"},
	}
	assert.Equal(t, 1, Pick(cands, noon))
}

func TestPickFlexWindowToleratesTimezoneSkew(t *testing.T) {
	// 20:00 yesterday is inside the six-hour flex margin.
	cands := []Candidate{
		{ScheduledDeparture: strptr("2026-08-29T09:00:00Z"), RawStatus: "landed"},
		{ScheduledDeparture: strptr("2026-08-30T20:00:00Z"), RawStatus: "scheduled"},
	}
	assert.Equal(t, 1, Pick(cands, noon))
}

func TestPickFallsBackToFirstLeg(t *testing.T) {
	// Nothing in the window: first leg of the unfiltered sequence wins.
	cands := []Candidate{
		{ScheduledDeparture: strptr("2026-08-25T09:00:00Z"), RawStatus: "landed"},
		{ScheduledDeparture: strptr("2026-09-05T09:00:00Z"), RawStatus: "scheduled"},
	}
	assert.Equal(t, 0, Pick(cands, noon))
}

func TestPickIgnoresUnparsableDepartures(t *testing.T) {
	cands := []Candidate{
		{ScheduledDeparture: nil, RawStatus: "active"},
		{ScheduledDeparture: strptr("not a time"), RawStatus: "active"},
		{ScheduledDeparture: strptr("2026-08-31T09:00:00Z"), RawStatus: "scheduled"},
	}
	assert.Equal(t, 2, Pick(cands, noon))
}
