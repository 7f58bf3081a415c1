package skyscanner

import (
	"context"

	"github.com/zenese/flightgate/internal/domain"
	"github.com/zenese/flightgate/internal/domain/criteria"
	"github.com/zenese/flightgate/internal/domain/offer"
	"github.com/zenese/flightgate/internal/provider"
)

// Adapter implements provider.Adapter over the Skyscanner client.
type Adapter struct {
	client *Client
}

// NewAdapter creates a Skyscanner adapter.
func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

// Name implements provider.Adapter.
func (a *Adapter) Name() string { return Name }

// Search implements provider.Adapter.
func (a *Adapter) Search(ctx context.Context, cr criteria.Criteria) (provider.Native, error) {
	resp, err := a.client.Search(ctx, cr)
	if err != nil {
		return nil, domain.NewProviderCall(Name, err)
	}
	return resp, nil
}

// Normalizer converts itinerary payloads to canonical offers.
type Normalizer struct{}

// Normalize implements provider.Normalizer. Picks the cheapest pricing
// option per itinerary; carrier and times come from the outbound leg.
func (Normalizer) Normalize(native provider.Native) []offer.Offer {
	resp, ok := native.(*SearchResponse)
	if !ok || resp == nil {
		return nil
	}

	offers := make([]offer.Offer, 0, len(resp.Itineraries))
	for _, it := range resp.Itineraries {
		var price float64
		for i, po := range it.PricingOptions {
			if i == 0 || po.Price.Amount < price {
				price = po.Price.Amount
			}
		}

		var airline, departure, arrival string
		if len(it.Legs) > 0 {
			leg := it.Legs[0]
			if len(leg.Carriers) > 0 {
				airline = leg.Carriers[0].Name
			}
			departure = leg.Departure
			arrival = leg.Arrival
		}

		offers = append(offers, offer.New(price, airline, departure, arrival))
	}
	return offers
}

// Register wires a Skyscanner variant into the registry.
func Register(r *provider.Registry, cfg Config) error {
	return r.Register(provider.Variant{
		Adapter:    NewAdapter(NewClient(cfg)),
		Normalizer: Normalizer{},
	})
}
