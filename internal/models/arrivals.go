package models

import "time"

// Arrival is the reduced, arrival-facing view of a flight used by the
// live-arrivals board.
type Arrival struct {
	Ident      string  `json:"flight"`
	Airline    string  `json:"airline"`
	Origin     string  `json:"origin"`
	OriginName string  `json:"originName"`
	Status     Status  `json:"status"`
	Scheduled  *string `json:"scheduled"`
	Estimated  *string `json:"estimated"`
	Terminal   *string `json:"terminal"`
	Gate       *string `json:"gate"`
	Delay      int     `json:"delay"`
}

// ArrivalsList is the canonical inbound-flights record for one airport.
type ArrivalsList struct {
	Airport   string    `json:"airport"`
	Source    Source    `json:"source"`
	Count     int       `json:"count"`
	Flights   []Arrival `json:"flights"`
	UpdatedAt time.Time `json:"updated"`
}
