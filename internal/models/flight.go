package models

import "time"

// Source identifies which provider produced a canonical record.
type Source string

const (
	SourceAviationStack Source = "aviationstack"
	SourceFlightAware   Source = "flightaware"
)

// Status is the provider-independent flight state. Normalization may pass an
// unrecognized provider string through lower-cased; consumers treat anything
// outside the constants below as StatusUnknown.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusActive    Status = "active"
	StatusLanded    Status = "landed"
	StatusCancelled Status = "cancelled"
	StatusDiverted  Status = "diverted"
	StatusDelayed   Status = "delayed"
	StatusUnknown   Status = "unknown"
)

// Endpoint is one end of a flight leg. Timestamps are kept verbatim as the
// provider sent them; they are parsed only where delay or progress math needs
// an instant.
type Endpoint struct {
	Airport   string  `json:"airport"`
	IATA      string  `json:"iata"`
	Scheduled *string `json:"scheduled"`
	Estimated *string `json:"estimated"`
	Actual    *string `json:"actual"`
	Terminal  *string `json:"terminal"`
	Gate      *string `json:"gate"`
	Delay     int     `json:"delay"`
	Baggage   *string `json:"baggage,omitempty"`
}

// Position is the last reported in-air position of a flight.
type Position struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Alt   float64 `json:"alt"`
	Speed float64 `json:"speed"`
}

// Flight is the canonical single-flight record, assembled fresh per request.
type Flight struct {
	Source    Source    `json:"source"`
	Ident     string    `json:"flight"`
	Airline   string    `json:"airline"`
	Status    Status    `json:"status"`
	Departure Endpoint  `json:"departure"`
	Arrival   Endpoint  `json:"arrival"`
	Progress  int       `json:"progress"`
	Live      *Position `json:"live"`
	UpdatedAt time.Time `json:"updated"`
}
