// Package router holds the top-level routing decision: same-chain swaps go
// straight to the quote service, cross-chain swaps try the bridge pool
// first and fall back to the same-chain path when no bridge can serve.
package router

import (
	"context"
	"log"

	"github.com/RaghavSood/swaprouter/quotes"
	"github.com/RaghavSood/swaprouter/swaps"
)

// Router is the primary entry point for quote requests.
type Router struct {
	service *quotes.Service
	bridges *swaps.Pool
}

// MultiQuote carries both route candidates for display, plus the
// recommendation by net amount. Either candidate may be nil if its path
// failed; Recommended is nil only if both did.
type MultiQuote struct {
	Recommended *swaps.Quote `json:"recommended"`
	SameChain   *swaps.Quote `json:"same_chain,omitempty"`
	CrossChain  *swaps.Quote `json:"cross_chain,omitempty"`
}

// New creates a Router over the same-chain quote service and a pool of
// bridge providers.
func New(service *quotes.Service, bridges *swaps.Pool) *Router {
	return &Router{service: service, bridges: bridges}
}

// GetOptimalQuote routes the request to the best execution path. Same-chain
// requests go to the quote service. Cross-chain requests fan out to the
// bridge pool and select by net amount; if every bridge fails, the request
// falls back to the same-chain path rather than propagating the bridge
// failure.
func (r *Router) GetOptimalQuote(ctx context.Context, form swaps.FormData) (swaps.Quote, error) {
	req, err := swaps.Normalize(form)
	if err != nil {
		return swaps.Quote{}, err
	}

	if req.SameChain() {
		return r.service.QuoteFor(ctx, req)
	}

	q, err := r.crossChainQuote(ctx, req)
	if err != nil {
		log.Printf("cross-chain route for %s -> %s failed, falling back to same-chain: %v",
			req.FromToken.Symbol, req.ToToken.Symbol, err)
		return r.service.QuoteFor(ctx, req)
	}
	return q, nil
}

// GetMultipleQuotes attempts both paths independently and tolerates either
// failing alone. Used by callers that want to show alternatives; the
// primary swap flow uses GetOptimalQuote.
func (r *Router) GetMultipleQuotes(ctx context.Context, form swaps.FormData) (MultiQuote, error) {
	req, err := swaps.Normalize(form)
	if err != nil {
		return MultiQuote{}, err
	}

	var result MultiQuote

	if same, err := r.service.QuoteFor(ctx, req); err == nil {
		result.SameChain = &same
	} else {
		log.Printf("same-chain quote for %s -> %s failed: %v", req.FromToken.Symbol, req.ToToken.Symbol, err)
	}

	if !req.SameChain() {
		if cross, err := r.crossChainQuote(ctx, req); err == nil {
			result.CrossChain = &cross
		} else {
			log.Printf("cross-chain quote for %s -> %s failed: %v", req.FromToken.Symbol, req.ToToken.Symbol, err)
		}
	}

	switch {
	case result.SameChain != nil && result.CrossChain != nil:
		if result.CrossChain.NetAmount().Cmp(result.SameChain.NetAmount()) > 0 {
			result.Recommended = result.CrossChain
		} else {
			result.Recommended = result.SameChain
		}
	case result.SameChain != nil:
		result.Recommended = result.SameChain
	case result.CrossChain != nil:
		result.Recommended = result.CrossChain
	default:
		return MultiQuote{}, &swaps.QuoteUnavailableError{}
	}

	return result, nil
}

func (r *Router) crossChainQuote(ctx context.Context, req swaps.SwapRequest) (swaps.Quote, error) {
	candidates, err := r.bridges.FetchAll(ctx, req)
	if err != nil {
		return swaps.Quote{}, err
	}
	q, ok := swaps.BestNet(candidates)
	if !ok {
		return swaps.Quote{}, &swaps.AllProvidersFailedError{}
	}
	return q, nil
}
