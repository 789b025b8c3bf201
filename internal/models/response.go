package models

// ErrorResponse is the JSON body for every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// NotifyArrival is the arrival excerpt echoed back when a landed notification
// has been sent.
type NotifyArrival struct {
	Airport  string  `json:"airport"`
	Actual   *string `json:"actual"`
	Terminal *string `json:"terminal"`
	Baggage  *string `json:"baggage"`
}

// NotifyResponse is the body of POST /notify on success.
type NotifyResponse struct {
	Flight   string         `json:"flight"`
	Status   Status         `json:"status"`
	Notified bool           `json:"notified"`
	Message  string         `json:"message,omitempty"`
	Arrival  *NotifyArrival `json:"arrival,omitempty"`
}
