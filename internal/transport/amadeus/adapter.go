package amadeus

import (
	"context"
	"strconv"

	"github.com/zenese/flightgate/internal/domain"
	"github.com/zenese/flightgate/internal/domain/criteria"
	"github.com/zenese/flightgate/internal/domain/offer"
	"github.com/zenese/flightgate/internal/provider"
)

// Adapter implements provider.Adapter over the Amadeus client.
type Adapter struct {
	client *Client
}

// NewAdapter creates an Amadeus adapter.
func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

// Name implements provider.Adapter.
func (a *Adapter) Name() string { return Name }

// Search implements provider.Adapter.
func (a *Adapter) Search(ctx context.Context, cr criteria.Criteria) (provider.Native, error) {
	resp, err := a.client.SearchOffers(ctx, cr)
	if err != nil {
		return nil, domain.NewProviderCall(Name, err)
	}
	return resp, nil
}

// Normalizer converts flight-offers payloads to canonical offers.
type Normalizer struct{}

// Normalize implements provider.Normalizer. The offer total is a
// decimal string; an unparseable total degrades to 0. Departure and
// arrival come from the first itinerary's boundary segments.
func (Normalizer) Normalize(native provider.Native) []offer.Offer {
	resp, ok := native.(*SearchResponse)
	if !ok || resp == nil {
		return nil
	}

	offers := make([]offer.Offer, 0, len(resp.Data))
	for _, fo := range resp.Data {
		price, err := strconv.ParseFloat(fo.Price.Total, 64)
		if err != nil {
			price = 0
		}

		var airline string
		if len(fo.ValidatingAirlineCodes) > 0 {
			airline = fo.ValidatingAirlineCodes[0]
		}

		var departure, arrival string
		if len(fo.Itineraries) > 0 {
			segs := fo.Itineraries[0].Segments
			if len(segs) > 0 {
				departure = segs[0].Departure.At
				arrival = segs[len(segs)-1].Arrival.At
			}
		}

		offers = append(offers, offer.New(price, airline, departure, arrival))
	}
	return offers
}

// Register wires an Amadeus variant into the registry.
func Register(r *provider.Registry, cfg Config) error {
	return r.Register(provider.Variant{
		Adapter:    NewAdapter(NewClient(cfg)),
		Normalizer: Normalizer{},
	})
}
