package swaps

import "context"

// Provider is a single upstream quote source: one DEX aggregator or one
// bridge service, bound to one base URL and one timeout.
//
// FetchQuote issues exactly one outbound call. It never retries; retry
// policy lives in the quote service so it stays centralized. Expected
// failure modes come back as typed errors (*TimeoutError, *ProviderError),
// never panics.
type Provider interface {
	Name() string
	FetchQuote(ctx context.Context, req SwapRequest) (Quote, error)
}
