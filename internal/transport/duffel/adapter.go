package duffel

import (
	"context"
	"strconv"

	"github.com/zenese/flightgate/internal/domain"
	"github.com/zenese/flightgate/internal/domain/criteria"
	"github.com/zenese/flightgate/internal/domain/offer"
	"github.com/zenese/flightgate/internal/provider"
)

// Adapter implements provider.Adapter over the Duffel client.
type Adapter struct {
	client *Client
}

// NewAdapter creates a Duffel adapter.
func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

// Name implements provider.Adapter.
func (a *Adapter) Name() string { return Name }

// Search implements provider.Adapter.
func (a *Adapter) Search(ctx context.Context, cr criteria.Criteria) (provider.Native, error) {
	resp, err := a.client.CreateOfferRequest(ctx, cr)
	if err != nil {
		return nil, domain.NewProviderCall(Name, err)
	}
	return resp, nil
}

// Normalizer converts offer-request payloads to canonical offers.
type Normalizer struct{}

// Normalize implements provider.Normalizer. The airline comes from the
// offer owner, preferring the IATA code over the display name. Times
// come from the outbound slice's boundary segments.
func (Normalizer) Normalize(native provider.Native) []offer.Offer {
	resp, ok := native.(*OfferResponse)
	if !ok || resp == nil {
		return nil
	}

	offers := make([]offer.Offer, 0, len(resp.Data.Offers))
	for _, o := range resp.Data.Offers {
		price, err := strconv.ParseFloat(o.TotalAmount, 64)
		if err != nil {
			price = 0
		}

		airline := o.Owner.IATACode
		if airline == "" {
			airline = o.Owner.Name
		}

		var departure, arrival string
		if len(o.Slices) > 0 {
			segs := o.Slices[0].Segments
			if len(segs) > 0 {
				departure = segs[0].DepartingAt
				arrival = segs[len(segs)-1].ArrivingAt
			}
		}

		offers = append(offers, offer.New(price, airline, departure, arrival))
	}
	return offers
}

// Register wires a Duffel variant into the registry.
func Register(r *provider.Registry, cfg Config) error {
	return r.Register(provider.Variant{
		Adapter:    NewAdapter(NewClient(cfg)),
		Normalizer: Normalizer{},
	})
}
