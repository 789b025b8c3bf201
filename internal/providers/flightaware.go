package providers

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/castlesolutions/flighttracker/internal/cache"
	"github.com/castlesolutions/flighttracker/internal/flighttime"
	"github.com/castlesolutions/flighttracker/internal/legs"
	"github.com/castlesolutions/flighttracker/internal/models"
	"github.com/castlesolutions/flighttracker/internal/status"
)

type faFlightsResponse struct {
	Flights []faFlight `json:"flights"`
}

type faArrivalsResponse struct {
	Arrivals []faFlight `json:"arrivals"`
}

type faFlight struct {
	Ident               string      `json:"ident"`
	Operator            string      `json:"operator"`
	Status              string      `json:"status"`
	Origin              *faAirport  `json:"origin"`
	Destination         *faAirport  `json:"destination"`
	ScheduledOut        *string     `json:"scheduled_out"`
	EstimatedOut        *string     `json:"estimated_out"`
	ActualOut           *string     `json:"actual_out"`
	ActualOff           *string     `json:"actual_off"`
	ScheduledIn         *string     `json:"scheduled_in"`
	EstimatedIn         *string     `json:"estimated_in"`
	ActualIn            *string     `json:"actual_in"`
	TerminalOrigin      *string     `json:"terminal_origin"`
	GateOrigin          *string     `json:"gate_origin"`
	TerminalDestination *string     `json:"terminal_destination"`
	GateDestination     *string     `json:"gate_destination"`
	BaggageClaim        *string     `json:"baggage_claim"`
	DepartureDelay      int         `json:"departure_delay"`
	ArrivalDelay        int         `json:"arrival_delay"`
	LastPosition        *faPosition `json:"last_position"`
}

type faAirport struct {
	Code     string `json:"code"`
	CodeIATA string `json:"code_iata"`
	Name     string `json:"name"`
}

type faPosition struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Altitude    float64 `json:"altitude"`
	Groundspeed float64 `json:"groundspeed"`
}

type FlightAwareConfig struct {
	BaseURL     string
	APIKey      string
	Client      *http.Client
	Cache       cache.Cache
	FlightTTL   time.Duration
	ArrivalsTTL time.Duration
}

// FlightAware adapts the FlightAware AeroAPI. Authentication is an x-apikey
// header; delay fields arrive in seconds and are converted to minutes.
type FlightAware struct {
	baseURL     string
	apiKey      string
	client      *http.Client
	cache       cache.Cache
	flightTTL   time.Duration
	arrivalsTTL time.Duration
	now         func() time.Time
}

func NewFlightAware(cfg FlightAwareConfig) *FlightAware {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://aeroapi.flightaware.com/aeroapi"
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{}
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNoOpCache()
	}
	if cfg.FlightTTL == 0 {
		cfg.FlightTTL = 2 * time.Minute
	}
	if cfg.ArrivalsTTL == 0 {
		cfg.ArrivalsTTL = 5 * time.Minute
	}
	return &FlightAware{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		client:      cfg.Client,
		cache:       cfg.Cache,
		flightTTL:   cfg.FlightTTL,
		arrivalsTTL: cfg.ArrivalsTTL,
		now:         time.Now,
	}
}

func (p *FlightAware) Name() string {
	return string(models.SourceFlightAware)
}

func (p *FlightAware) FetchFlight(ctx context.Context, ident string) (*models.Flight, error) {
	var resp faFlightsResponse
	if err := p.get(ctx, "/flights/"+url.PathEscape(ident), p.flightTTL, &resp); err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	if len(resp.Flights) == 0 {
		return nil, nil
	}

	candidates := make([]legs.Candidate, len(resp.Flights))
	for i, f := range resp.Flights {
		candidates[i] = legs.Candidate{
			ScheduledDeparture: f.ScheduledOut,
			RawStatus:          f.Status,
		}
	}
	f := resp.Flights[legs.Pick(candidates, p.now())]

	depDelay := delayMinutes(f.DepartureDelay, f.ScheduledOut, f.EstimatedOut)
	arrDelay := delayMinutes(f.ArrivalDelay, f.ScheduledIn, f.EstimatedIn)
	st := status.Normalize(f.Status, depDelay)

	flightIdent := f.Ident
	if flightIdent == "" {
		flightIdent = ident
	}

	var live *models.Position
	if f.LastPosition != nil {
		live = &models.Position{
			Lat:   f.LastPosition.Latitude,
			Lng:   f.LastPosition.Longitude,
			Alt:   f.LastPosition.Altitude,
			Speed: f.LastPosition.Groundspeed,
		}
	}

	return &models.Flight{
		Source:  models.SourceFlightAware,
		Ident:   flightIdent,
		Airline: f.Operator,
		Status:  st,
		Departure: models.Endpoint{
			Airport:   airportName(f.Origin),
			IATA:      airportCode(f.Origin),
			Scheduled: f.ScheduledOut,
			Estimated: f.EstimatedOut,
			Actual:    f.ActualOut,
			Terminal:  f.TerminalOrigin,
			Gate:      f.GateOrigin,
			Delay:     depDelay,
		},
		Arrival: models.Endpoint{
			Airport:   airportName(f.Destination),
			IATA:      airportCode(f.Destination),
			Scheduled: f.ScheduledIn,
			Estimated: f.EstimatedIn,
			Actual:    f.ActualIn,
			Terminal:  f.TerminalDestination,
			Gate:      f.GateDestination,
			Delay:     arrDelay,
			Baggage:   f.BaggageClaim,
		},
		Progress: flighttime.Progress(
			coalesce(f.ActualOff, f.ActualOut, f.EstimatedOut, f.ScheduledOut),
			coalesce(f.EstimatedIn, f.ScheduledIn),
			st,
			coalesce(f.ActualOff, f.ActualOut) != nil,
			p.now(),
		),
		Live:      live,
		UpdatedAt: p.now().UTC(),
	}, nil
}

func (p *FlightAware) FetchArrivals(ctx context.Context, airport string, limit int) (*models.ArrivalsList, error) {
	var resp faArrivalsResponse
	if err := p.get(ctx, "/airports/"+url.PathEscape(airport)+"/flights/arrivals", p.arrivalsTTL, &resp); err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	if resp.Arrivals == nil {
		return nil, NewProviderError(p.Name(), errors.New("no arrivals in response"))
	}

	if limit > 0 && len(resp.Arrivals) > limit {
		resp.Arrivals = resp.Arrivals[:limit]
	}

	flights := make([]models.Arrival, 0, len(resp.Arrivals))
	for _, f := range resp.Arrivals {
		delay := delayMinutes(f.ArrivalDelay, f.ScheduledIn, f.EstimatedIn)
		flights = append(flights, models.Arrival{
			Ident:      f.Ident,
			Airline:    f.Operator,
			Origin:     airportCode(f.Origin),
			OriginName: airportName(f.Origin),
			Status:     status.NormalizeArrival(f.Status, delay),
			Scheduled:  f.ScheduledIn,
			Estimated:  f.EstimatedIn,
			Terminal:   f.TerminalDestination,
			Gate:       f.GateDestination,
			Delay:      delay,
		})
	}

	return &models.ArrivalsList{
		Airport:   airport,
		Source:    models.SourceFlightAware,
		Count:     len(flights),
		Flights:   flights,
		UpdatedAt: p.now().UTC(),
	}, nil
}

func (p *FlightAware) get(ctx context.Context, path string, ttl time.Duration, out any) error {
	fullURL := p.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-apikey", p.apiKey)

	payload, err := fetchPayload(ctx, p.client, p.cache, req, fullURL, ttl)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, out)
}

// delayMinutes converts an AeroAPI delay (seconds, possibly negative for an
// early flight) to canonical non-negative minutes, estimating from timestamps
// when the reported value is absent or zero.
func delayMinutes(seconds int, scheduled, estimated *string) int {
	if seconds > 0 {
		return int(math.Round(float64(seconds) / 60))
	}
	return flighttime.Delay(scheduled, estimated)
}

func airportName(a *faAirport) string {
	if a == nil {
		return ""
	}
	return a.Name
}

func airportCode(a *faAirport) string {
	if a == nil {
		return ""
	}
	if a.CodeIATA != "" {
		return a.CodeIATA
	}
	return a.Code
}
