package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ProviderLister reports the registered flight providers.
type ProviderLister interface {
	Names() []string
}
