// Package provider defines the upstream flight-provider contract and a
// registry the routing engine resolves adapters from.
package provider

import (
	"context"

	"github.com/zenese/flightgate/internal/domain/criteria"
	"github.com/zenese/flightgate/internal/domain/offer"
)

// Native is an upstream provider's raw decoded payload. The routing
// engine treats it as opaque and hands it to the matching Normalizer.
type Native any

// Adapter calls one upstream flight API. An error means the call
// failed and the router should try the next provider.
type Adapter interface {
	Name() string
	Search(ctx context.Context, c criteria.Criteria) (Native, error)
}

// Normalizer converts a provider's native payload into canonical
// offers. Normalization never fails: unparseable entries degrade to
// defaults instead of rejecting the whole response.
type Normalizer interface {
	Normalize(native Native) []offer.Offer
}

// Variant pairs an adapter with the normalizer for its payload shape.
type Variant struct {
	Adapter    Adapter
	Normalizer Normalizer
}
