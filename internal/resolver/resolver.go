// Package resolver reconciles the upstream providers into one answer per
// request: ordered fallback when the caller pins a source, parallel fetch
// plus scoring when it does not, and a first-usable-result chain for the
// arrivals board.
package resolver

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/castlesolutions/flighttracker/internal/models"
	"github.com/castlesolutions/flighttracker/internal/providers"
)

var (
	// ErrNotFound means every provider was exhausted without a usable record.
	ErrNotFound = errors.New("flight not found")

	// ErrNoData means no provider yielded an arrivals payload at all.
	ErrNoData = errors.New("no provider returned arrivals data")
)

type Config struct {
	// Timeout bounds each individual provider call. A provider that runs
	// over counts as having returned nothing.
	Timeout time.Duration
}

// Resolver queries an ordered list of providers. Order matters twice: it is
// the fallback order when a preferred source fails, and later providers win
// scoring ties.
type Resolver struct {
	providers []providers.Provider
	config    Config
}

func New(providerList []providers.Provider, config Config) *Resolver {
	if config.Timeout == 0 {
		config.Timeout = 8 * time.Second
	}
	return &Resolver{
		providers: providerList,
		config:    config,
	}
}

// Resolve produces the canonical record for one flight. With a source
// preference the preferred provider is tried first and the others in
// registration order after it; without one every provider is queried in
// parallel and the highest-scoring record wins.
func (r *Resolver) Resolve(ctx context.Context, ident string, preference string) (*models.Flight, error) {
	if preference != "" {
		for _, p := range r.ordered(preference) {
			if f := r.fetchFlight(ctx, p, ident); f != nil {
				return f, nil
			}
		}
		return nil, ErrNotFound
	}

	results := make([]*models.Flight, len(r.providers))
	var wg sync.WaitGroup
	for i, p := range r.providers {
		wg.Add(1)
		go func(i int, p providers.Provider) {
			defer wg.Done()
			results[i] = r.fetchFlight(ctx, p, ident)
		}(i, p)
	}
	wg.Wait()

	var best *models.Flight
	bestScore := Score(nil)
	for _, f := range results {
		if f == nil {
			continue
		}
		if s := Score(f); s >= bestScore {
			best = f
			bestScore = s
		}
	}
	if best == nil {
		return nil, ErrNotFound
	}
	return best, nil
}

// Arrivals returns the inbound board for an airport from the first provider
// that yields one. An arrivals payload with zero flights is still usable; it
// only loses to a peer that has actual flights.
func (r *Resolver) Arrivals(ctx context.Context, airport string, limit int) (*models.ArrivalsList, error) {
	var empty *models.ArrivalsList
	for _, p := range r.arrivalsOrder() {
		list := r.fetchArrivals(ctx, p, airport, limit)
		if list == nil {
			continue
		}
		if list.Count > 0 {
			return list, nil
		}
		if empty == nil {
			empty = list
		}
	}
	if empty != nil {
		return empty, nil
	}
	return nil, ErrNoData
}

func (r *Resolver) fetchFlight(ctx context.Context, p providers.Provider, ident string) *models.Flight {
	callCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	f, err := p.FetchFlight(callCtx, ident)
	if err != nil {
		log.Printf("Provider %s failed for %s: %v", p.Name(), ident, err)
		return nil
	}
	return f
}

func (r *Resolver) fetchArrivals(ctx context.Context, p providers.Provider, airport string, limit int) *models.ArrivalsList {
	callCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	list, err := p.FetchArrivals(callCtx, airport, limit)
	if err != nil {
		log.Printf("Provider %s arrivals failed for %s: %v", p.Name(), airport, err)
		return nil
	}
	return list
}

// ordered returns the providers with the preferred one first, keeping
// registration order for the rest.
func (r *Resolver) ordered(preference string) []providers.Provider {
	out := make([]providers.Provider, 0, len(r.providers))
	for _, p := range r.providers {
		if p.Name() == preference {
			out = append(out, p)
		}
	}
	for _, p := range r.providers {
		if p.Name() != preference {
			out = append(out, p)
		}
	}
	return out
}

// arrivalsOrder puts FlightAware first; its arrivals board covers flights the
// activity filter on the other side misses.
func (r *Resolver) arrivalsOrder() []providers.Provider {
	return r.ordered(string(models.SourceFlightAware))
}
