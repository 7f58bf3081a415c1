// Package offer holds the canonical flight offer schema. Every provider's
// native result is translated into this shape before leaving the engine.
package offer

// Defaults for fields a provider did not supply. Normalization fills gaps,
// it never rejects data.
const (
	UnknownAirline = "N/A"
	UnknownTime    = ""
)

// Offer is a single canonical flight offer.
type Offer struct {
	price         float64
	airline       string
	departureTime string
	arrivalTime   string
}

// New creates a canonical offer, degrading missing fields to the documented
// defaults: negative price clamps to 0, empty airline becomes "N/A".
// Timestamps are ISO-8601 strings or empty when unavailable.
func New(price float64, airline, departureTime, arrivalTime string) Offer {
	if price < 0 {
		price = 0
	}
	if airline == "" {
		airline = UnknownAirline
	}
	return Offer{
		price:         price,
		airline:       airline,
		departureTime: departureTime,
		arrivalTime:   arrivalTime,
	}
}

// Price returns the offer price (non-negative).
func (o Offer) Price() float64 { return o.price }

// Airline returns the carrier code, "N/A" when unknown.
func (o Offer) Airline() string { return o.airline }

// DepartureTime returns the ISO-8601 departure timestamp, "" when unknown.
func (o Offer) DepartureTime() string { return o.departureTime }

// ArrivalTime returns the ISO-8601 arrival timestamp, "" when unknown.
func (o Offer) ArrivalTime() string { return o.arrivalTime }
