package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/castlesolutions/flighttracker/internal/cache"
	"github.com/castlesolutions/flighttracker/internal/flighttime"
	"github.com/castlesolutions/flighttracker/internal/legs"
	"github.com/castlesolutions/flighttracker/internal/models"
	"github.com/castlesolutions/flighttracker/internal/status"
)

type asResponse struct {
	Data []asFlight `json:"data"`
}

type asFlight struct {
	FlightStatus string `json:"flight_status"`
	Flight       struct {
		IATA string `json:"iata"`
	} `json:"flight"`
	Airline struct {
		Name string `json:"name"`
	} `json:"airline"`
	Departure asEndpoint `json:"departure"`
	Arrival   asEndpoint `json:"arrival"`
	Live      *asLive    `json:"live"`
}

type asEndpoint struct {
	Airport   string  `json:"airport"`
	IATA      string  `json:"iata"`
	Scheduled *string `json:"scheduled"`
	Estimated *string `json:"estimated"`
	Actual    *string `json:"actual"`
	Terminal  *string `json:"terminal"`
	Gate      *string `json:"gate"`
	Delay     *int    `json:"delay"`
	Baggage   *string `json:"baggage"`
}

type asLive struct {
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Altitude        float64 `json:"altitude"`
	SpeedHorizontal float64 `json:"speed_horizontal"`
}

type AviationStackConfig struct {
	BaseURL     string
	APIKey      string
	Client      *http.Client
	Cache       cache.Cache
	FlightTTL   time.Duration
	ArrivalsTTL time.Duration
}

// AviationStack adapts the AviationStack flights API. Authentication is an
// access_key query parameter; delays arrive in minutes.
type AviationStack struct {
	baseURL     string
	apiKey      string
	client      *http.Client
	cache       cache.Cache
	flightTTL   time.Duration
	arrivalsTTL time.Duration
	now         func() time.Time
}

func NewAviationStack(cfg AviationStackConfig) *AviationStack {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.aviationstack.com/v1"
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
	return &AviationStack{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		client:      cfg.Client,
		cache:       cfg.Cache,
		flightTTL:   cfg.FlightTTL,
		arrivalsTTL: cfg.ArrivalsTTL,
		now:         time.Now,
	}
}

func (p *AviationStack) Name() string {
	return string(models.SourceAviationStack)
}

func (p *AviationStack) FetchFlight(ctx context.Context, ident string) (*models.Flight, error) {
	query := url.Values{}
	query.Set("access_key", p.apiKey)
	query.Set("flight_iata", ident)
	query.Set("limit", "10")

	var resp asResponse
	if err := p.get(ctx, "/flights?"+query.Encode(), p.flightTTL, &resp); err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}

	candidates := make([]legs.Candidate, len(resp.Data))
	for i, f := range resp.Data {
		candidates[i] = legs.Candidate{
			ScheduledDeparture: f.Departure.Scheduled,
			RawStatus:          f.FlightStatus,
		}
	}
	f := resp.Data[legs.Pick(candidates, p.now())]

	depDelay := delayOrEstimate(f.Departure.Delay, f.Departure.Scheduled, f.Departure.Estimated)
	arrDelay := delayOrEstimate(f.Arrival.Delay, f.Arrival.Scheduled, f.Arrival.Estimated)
	st := status.Normalize(f.FlightStatus, depDelay)

	flightIdent := f.Flight.IATA
	if flightIdent == "" {
		flightIdent = ident
	}

	var live *models.Position
	if f.Live != nil {
		live = &models.Position{
			Lat:   f.Live.Latitude,
			Lng:   f.Live.Longitude,
			Alt:   f.Live.Altitude,
			Speed: f.Live.SpeedHorizontal,
		}
	}

	return &models.Flight{
		Source:  models.SourceAviationStack,
		Ident:   flightIdent,
		Airline: f.Airline.Name,
		Status:  st,
		Departure: models.Endpoint{
			Airport:   f.Departure.Airport,
			IATA:      f.Departure.IATA,
			Scheduled: f.Departure.Scheduled,
			Estimated: f.Departure.Estimated,
			Actual:    f.Departure.Actual,
			Terminal:  f.Departure.Terminal,
			Gate:      f.Departure.Gate,
			Delay:     depDelay,
		},
		Arrival: models.Endpoint{
			Airport:   f.Arrival.Airport,
			IATA:      f.Arrival.IATA,
			Scheduled: f.Arrival.Scheduled,
			Estimated: f.Arrival.Estimated,
			Actual:    f.Arrival.Actual,
			Terminal:  f.Arrival.Terminal,
			Gate:      f.Arrival.Gate,
			Delay:     arrDelay,
			Baggage:   f.Arrival.Baggage,
		},
		Progress: flighttime.Progress(
			coalesce(f.Departure.Actual, f.Departure.Estimated, f.Departure.Scheduled),
			coalesce(f.Arrival.Estimated, f.Arrival.Scheduled),
			st,
			f.Departure.Actual != nil,
			p.now(),
		),
		Live:      live,
		UpdatedAt: p.now().UTC(),
	}, nil
}

func (p *AviationStack) FetchArrivals(ctx context.Context, airport string, limit int) (*models.ArrivalsList, error) {
	query := url.Values{}
	query.Set("access_key", p.apiKey)
	query.Set("arr_iata", airport)
	query.Set("limit", strconv.Itoa(limit))
	query.Set("flight_status", "active")

	var resp asResponse
	if err := p.get(ctx, "/flights?"+query.Encode(), p.arrivalsTTL, &resp); err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	if resp.Data == nil {
		return nil, NewProviderError(p.Name(), errors.New("no data in response"))
	}

	flights := make([]models.Arrival, 0, len(resp.Data))
	for _, f := range resp.Data {
		delay := delayOrEstimate(f.Arrival.Delay, f.Arrival.Scheduled, f.Arrival.Estimated)
		flightIdent := f.Flight.IATA
		if flightIdent == "" {
			flightIdent = "N/A"
		}
		flights = append(flights, models.Arrival{
			Ident:      flightIdent,
			Airline:    f.Airline.Name,
			Origin:     f.Departure.IATA,
			OriginName: f.Departure.Airport,
			Status:     status.NormalizeArrival(f.FlightStatus, delay),
			Scheduled:  f.Arrival.Scheduled,
			Estimated:  f.Arrival.Estimated,
			Terminal:   f.Arrival.Terminal,
			Gate:       f.Arrival.Gate,
			Delay:      delay,
		})
	}

	return &models.ArrivalsList{
		Airport:   airport,
		Source:    models.SourceAviationStack,
		Count:     len(flights),
		Flights:   flights,
		UpdatedAt: p.now().UTC(),
	}, nil
}

func (p *AviationStack) get(ctx context.Context, path string, ttl time.Duration, out any) error {
	fullURL := p.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return err
	}

	payload, err := fetchPayload(ctx, p.client, p.cache, req, fullURL, ttl)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, out)
}

// delayOrEstimate prefers a provider-reported delay and falls back to the
// scheduled/estimated gap.
func delayOrEstimate(reported *int, scheduled, estimated *string) int {
	if reported != nil && *reported > 0 {
		return *reported
	}
	return flighttime.Delay(scheduled, estimated)
}

func coalesce(values ...*string) *string {
	for _, v := range values {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}
