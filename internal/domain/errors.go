package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCriteria signals malformed search criteria. Never retried.
	ErrInvalidCriteria = errors.New("invalid search criteria")
	// ErrUnknownProvider signals a usage-store key for an unconfigured provider.
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrProviderCall signals an upstream provider failure.
	ErrProviderCall = errors.New("provider call failed")
	// ErrQuotaExhausted is the per-provider routing signal for a spent monthly
	// quota. It never crosses the engine boundary.
	ErrQuotaExhausted = errors.New("provider quota exhausted")
	// ErrAllProvidersExhausted is the terminal outcome when every provider is
	// over quota or failing. Distinct from a legitimate empty result.
	ErrAllProvidersExhausted = errors.New("all providers exhausted")
)

// ProviderCallError wraps ErrProviderCall with the provider name and cause.
type ProviderCallError struct {
	Provider string
	Err      error
}

func (e *ProviderCallError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrProviderCall.Error(), e.Provider, e.Err)
}

func (e *ProviderCallError) Unwrap() error { return ErrProviderCall }

// NewProviderCall creates a provider call error.
func NewProviderCall(provider string, err error) error {
	return &ProviderCallError{Provider: provider, Err: err}
}
