package duffel

// OfferResponse is the native offer-request payload. Offers nest under
// a data envelope and amounts arrive as decimal strings.
type OfferResponse struct {
	Data OfferRequestResult `json:"data"`
}

// OfferRequestResult holds the offers created for a request.
type OfferRequestResult struct {
	Offers []Offer `json:"offers"`
}

// Offer is one bookable offer.
type Offer struct {
	TotalAmount   string  `json:"total_amount"`
	TotalCurrency string  `json:"total_currency"`
	Owner         Airline `json:"owner"`
	Slices        []Slice `json:"slices"`
}

// Airline is the carrier owning an offer.
type Airline struct {
	IATACode string `json:"iata_code"`
	Name     string `json:"name"`
}

// Slice is one direction of travel.
type Slice struct {
	Segments []Segment `json:"segments"`
}

// Segment is a single flight within a slice.
type Segment struct {
	DepartingAt string `json:"departing_at"`
	ArrivingAt  string `json:"arriving_at"`
}
