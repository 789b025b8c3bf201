package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/castlesolutions/flighttracker/internal/cache"
	"github.com/castlesolutions/flighttracker/internal/models"
)

// Provider is one upstream flight-data source. Adapters convert the raw
// upstream shape into canonical records and never let it leak past this
// boundary. A (nil, nil) flight means the provider was reachable but had no
// usable record; errors cover transport and decode failures. Either way the
// caller falls back to the next provider.
type Provider interface {
	Name() string
	FetchFlight(ctx context.Context, ident string) (*models.Flight, error)
	FetchArrivals(ctx context.Context, airport string, limit int) (*models.ArrivalsList, error)
}

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}

// fetchPayload performs a GET against an upstream provider, serving the raw
// body from cache when the provider's freshness window has not expired.
func fetchPayload(ctx context.Context, client *http.Client, c cache.Cache, req *http.Request, key string, ttl time.Duration) ([]byte, error) {
	if payload, ok := c.Get(ctx, key); ok {
		return payload, nil
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	_ = c.Set(ctx, key, payload, ttl)
	return payload, nil
}
