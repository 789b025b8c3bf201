package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlesolutions/flighttracker/internal/models"
	"github.com/castlesolutions/flighttracker/internal/providers"
)

type fakeProvider struct {
	name        string
	flight      *models.Flight
	flightErr   error
	arrivals    *models.ArrivalsList
	arrivalsErr error
	delay       time.Duration
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) FetchFlight(ctx context.Context, ident string) (*models.Flight, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.flight, f.flightErr
}

func (f *fakeProvider) FetchArrivals(ctx context.Context, airport string, limit int) (*models.ArrivalsList, error) {
	return f.arrivals, f.arrivalsErr
}

func strptr(s string) *string { return &s }

func scheduledFlight(source models.Source) *models.Flight {
	return &models.Flight{
		Source: source,
		Ident:  "AA123",
		Status: models.StatusScheduled,
		Departure: models.Endpoint{
			IATA:      "JFK",
			Scheduled: strptr("2026-08-31T08:00:00Z"),
		},
		Arrival: models.Endpoint{
			IATA:      "PVR",
			Scheduled: strptr("2026-08-31T12:00:00Z"),
		},
	}
}

func TestResolveReturnsOnlyNonNilResult(t *testing.T) {
	a := &fakeProvider{name: "aviationstack", flight: scheduledFlight(models.SourceAviationStack)}
	b := &fakeProvider{name: "flightaware"}

	r := New([]providers.Provider{a, b}, Config{})
	got, err := r.Resolve(context.Background(), "AA123", "")
	require.NoError(t, err)
	assert.Equal(t, models.SourceAviationStack, got.Source)
}

func TestResolveNotFound(t *testing.T) {
	a := &fakeProvider{name: "aviationstack", flightErr: errors.New("boom")}
	b := &fakeProvider{name: "flightaware"}

	r := New([]providers.Provider{a, b}, Config{})
	_, err := r.Resolve(context.Background(), "AA123", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveHigherScoreWins(t *testing.T) {
	plain := scheduledFlight(models.SourceAviationStack)
	withLive := scheduledFlight(models.SourceFlightAware)
	withLive.Live = &models.Position{Lat: 20.5, Lng: -105.2, Alt: 35000, Speed: 460}

	a := &fakeProvider{name: "aviationstack", flight: plain}
	b := &fakeProvider{name: "flightaware", flight: withLive}

	r := New([]providers.Provider{a, b}, Config{})
	got, err := r.Resolve(context.Background(), "AA123", "")
	require.NoError(t, err)
	assert.Equal(t, models.SourceFlightAware, got.Source)
}

func TestResolveTieGoesToLaterProvider(t *testing.T) {
	a := &fakeProvider{name: "aviationstack", flight: scheduledFlight(models.SourceAviationStack)}
	b := &fakeProvider{name: "flightaware", flight: scheduledFlight(models.SourceFlightAware)}

	r := New([]providers.Provider{a, b}, Config{})
	got, err := r.Resolve(context.Background(), "AA123", "")
	require.NoError(t, err)
	assert.Equal(t, models.SourceFlightAware, got.Source)
}

func TestResolvePreferenceFallsBack(t *testing.T) {
	a := &fakeProvider{name: "aviationstack", flight: scheduledFlight(models.SourceAviationStack)}
	b := &fakeProvider{name: "flightaware", flightErr: errors.New("upstream down")}

	r := New([]providers.Provider{a, b}, Config{})
	got, err := r.Resolve(context.Background(), "AA123", "flightaware")
	require.NoError(t, err)
	assert.Equal(t, models.SourceAviationStack, got.Source)
}

func TestResolvePreferredProviderWinsWithoutScoring(t *testing.T) {
	// With a pinned source a lower-scoring record still wins as long as the
	// preferred provider has one.
	withLive := scheduledFlight(models.SourceFlightAware)
	withLive.Live = &models.Position{Lat: 1, Lng: 2}

	a := &fakeProvider{name: "aviationstack", flight: scheduledFlight(models.SourceAviationStack)}
	b := &fakeProvider{name: "flightaware", flight: withLive}

	r := New([]providers.Provider{a, b}, Config{})
	got, err := r.Resolve(context.Background(), "AA123", "aviationstack")
	require.NoError(t, err)
	assert.Equal(t, models.SourceAviationStack, got.Source)
}

func TestResolveSlowProviderCountsAsAbsent(t *testing.T) {
	a := &fakeProvider{name: "aviationstack", flight: scheduledFlight(models.SourceAviationStack)}
	b := &fakeProvider{name: "flightaware", flight: scheduledFlight(models.SourceFlightAware), delay: 500 * time.Millisecond}

	r := New([]providers.Provider{a, b}, Config{Timeout: 50 * time.Millisecond})
	got, err := r.Resolve(context.Background(), "AA123", "")
	require.NoError(t, err)
	assert.Equal(t, models.SourceAviationStack, got.Source)
}

func TestArrivalsPrimaryWins(t *testing.T) {
	faList := &models.ArrivalsList{Airport: "PVR", Source: models.SourceFlightAware, Count: 1, Flights: []models.Arrival{{Ident: "AA123"}}}
	asList := &models.ArrivalsList{Airport: "PVR", Source: models.SourceAviationStack, Count: 1, Flights: []models.Arrival{{Ident: "DL9"}}}

	a := &fakeProvider{name: "aviationstack", arrivals: asList}
	b := &fakeProvider{name: "flightaware", arrivals: faList}

	r := New([]providers.Provider{a, b}, Config{})
	got, err := r.Arrivals(context.Background(), "PVR", 20)
	require.NoError(t, err)
	assert.Equal(t, models.SourceFlightAware, got.Source)
}

func TestArrivalsEmptyPrimaryFallsBack(t *testing.T) {
	empty := &models.ArrivalsList{Airport: "PVR", Source: models.SourceFlightAware, Count: 0, Flights: []models.Arrival{}}
	asList := &models.ArrivalsList{Airport: "PVR", Source: models.SourceAviationStack, Count: 1, Flights: []models.Arrival{{Ident: "DL9"}}}

	a := &fakeProvider{name: "aviationstack", arrivals: asList}
	b := &fakeProvider{name: "flightaware", arrivals: empty}

	r := New([]providers.Provider{a, b}, Config{})
	got, err := r.Arrivals(context.Background(), "PVR", 20)
	require.NoError(t, err)
	assert.Equal(t, models.SourceAviationStack, got.Source)
}

func TestArrivalsBothEmptyIsNotAnError(t *testing.T) {
	empty := &models.ArrivalsList{Airport: "PVR", Source: models.SourceFlightAware, Count: 0, Flights: []models.Arrival{}}

	a := &fakeProvider{name: "aviationstack", arrivalsErr: errors.New("no data")}
	b := &fakeProvider{name: "flightaware", arrivals: empty}

	r := New([]providers.Provider{a, b}, Config{})
	got, err := r.Arrivals(context.Background(), "PVR", 15)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Count)
	assert.Empty(t, got.Flights)
}

func TestArrivalsAllProvidersFailing(t *testing.T) {
	a := &fakeProvider{name: "aviationstack", arrivalsErr: errors.New("no data")}
	b := &fakeProvider{name: "flightaware", arrivalsErr: errors.New("502")}

	r := New([]providers.Provider{a, b}, Config{})
	_, err := r.Arrivals(context.Background(), "PVR", 20)
	assert.ErrorIs(t, err, ErrNoData)
}
