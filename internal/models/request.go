package models

import "strings"

// NotifyRequest is the body of POST /notify.
type NotifyRequest struct {
	Flight    string `json:"flight" validate:"required"`
	GuestName string `json:"guestName"`
	Property  string `json:"property"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// NormalizeIdent strips all whitespace from a flight designator and upper-cases
// it, so "aa 123" and "AA123" address the same flight.
func NormalizeIdent(ident string) string {
	return strings.ToUpper(strings.Join(strings.Fields(ident), ""))
}
