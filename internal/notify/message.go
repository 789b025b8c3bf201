package notify

import (
	"fmt"
	"strings"

	"github.com/castlesolutions/flighttracker/internal/models"
)

// LandedMessage builds the Spanish-language arrival email sent to the
// property team when a guest's flight touches down.
func LandedMessage(flight *models.Flight, guestName, property, trackingBase string) (subject, body string) {
	guest := guestName
	if guest == "" {
		guest = "No especificado"
	}
	prop := property
	if prop == "" {
		prop = "No especificada"
	}

	airport := flight.Arrival.Airport
	if airport == "" {
		airport = flight.Arrival.IATA
	}

	subject = fmt.Sprintf("🛬 Vuelo %s aterrizó — %s llegó a %s",
		flight.Ident, orDefault(guestName, "Huésped"), flight.Arrival.IATA)

	body = strings.TrimSpace(fmt.Sprintf(`
🛬 VUELO ATERRIZÓ — CASTLE SOLUTIONS

✈️ Vuelo: %s
👤 Huésped: %s
🏠 Propiedad: %s

📍 Aeropuerto: %s
⏰ Hora de aterrizaje: %s
🚪 Terminal: %s
🎒 Equipaje: %s

🔗 Rastreo: %s?flight=%s

---
El huésped ya está en %s. Coordina la recepción.
`,
		flight.Ident,
		guest,
		prop,
		airport,
		orDefault(stringValue(coalesceTime(flight.Arrival.Actual, flight.Arrival.Estimated)), "N/A"),
		orDefault(stringValue(flight.Arrival.Terminal), "N/A"),
		orDefault(stringValue(flight.Arrival.Baggage), "N/A"),
		trackingBase,
		flight.Ident,
		flight.Arrival.IATA,
	))
	return subject, body
}

func coalesceTime(values ...*string) *string {
	for _, v := range values {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
