package skyscanner

// SearchResponse is the native itinerary payload. Prices are numeric
// and carriers nest inside the legs rather than the itinerary.
type SearchResponse struct {
	Itineraries []Itinerary `json:"itineraries"`
}

// Itinerary is one priced travel option.
type Itinerary struct {
	PricingOptions []PricingOption `json:"pricing_options"`
	Legs           []Leg           `json:"legs"`
}

// PricingOption is one seller's cost for an itinerary.
type PricingOption struct {
	Price Amount `json:"price"`
}

// Amount is a numeric price value.
type Amount struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Leg is one direction of travel.
type Leg struct {
	Carriers  []Carrier `json:"carriers"`
	Departure string    `json:"departure"`
	Arrival   string    `json:"arrival"`
}

// Carrier is an operating airline.
type Carrier struct {
	Name string `json:"name"`
}
