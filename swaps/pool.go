package swaps

import (
	"context"
	"log"
	"sync"
	"time"
)

// Pool fans a request out to a class of providers (same-chain DEXes or
// cross-chain bridges) and collects whatever succeeds. Partial failure is
// the expected steady state, not an error.
type Pool struct {
	providers []Provider
}

// NewPool creates a Pool over the given providers.
func NewPool(providers ...Provider) *Pool {
	return &Pool{providers: providers}
}

// Size returns the number of registered providers.
func (p *Pool) Size() int {
	return len(p.providers)
}

// FetchAll queries every provider concurrently and returns the quotes that
// landed, in completion order. Individual failures are logged and
// discarded; each provider's timeout aborts only its own call. The result
// is available once every provider has responded or been abandoned.
// Returns *AllProvidersFailedError only when zero providers succeeded.
func (p *Pool) FetchAll(ctx context.Context, req SwapRequest) ([]Quote, error) {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		quotes []Quote
		errs   = make(map[string]error)
	)

	for _, prov := range p.providers {
		wg.Add(1)
		go func(prov Provider) {
			defer wg.Done()

			start := time.Now()
			q, err := prov.FetchQuote(ctx, req)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("provider %s quote error after %s: %v", prov.Name(), time.Since(start).Round(time.Millisecond), err)
				errs[prov.Name()] = err
				return
			}
			quotes = append(quotes, q)
		}(prov)
	}

	wg.Wait()

	if len(quotes) == 0 {
		return nil, &AllProvidersFailedError{Errs: errs}
	}
	return quotes, nil
}
