package amadeus

// SearchResponse is the native flight-offers payload. Prices arrive as
// decimal strings and carrier codes live outside the itinerary.
type SearchResponse struct {
	Data []FlightOffer `json:"data"`
}

// FlightOffer is one priced offer.
type FlightOffer struct {
	Price                  Price       `json:"price"`
	ValidatingAirlineCodes []string    `json:"validatingAirlineCodes"`
	Itineraries            []Itinerary `json:"itineraries"`
}

// Price holds the offer total as a decimal string.
type Price struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// Itinerary is an ordered list of flight segments.
type Itinerary struct {
	Segments []Segment `json:"segments"`
}

// Segment is a single flight leg.
type Segment struct {
	Departure Endpoint `json:"departure"`
	Arrival   Endpoint `json:"arrival"`
}

// Endpoint is an airport touch point with a local timestamp.
type Endpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}
