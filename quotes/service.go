// Package quotes implements the quote service: cache lookup, provider pool
// fan-out, best-quote selection, and the one place in the engine where
// retries happen.
package quotes

import (
	"context"
	"log"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/RaghavSood/swaprouter/swaps"
)

const (
	defaultAttempts  = 3
	defaultBaseDelay = time.Second
)

// Service orchestrates cache, pool and selector for same-chain swaps.
type Service struct {
	pool  *swaps.Pool
	cache *Cache

	// Retry policy: up to attempts rounds with linear backoff
	// (baseDelay * attemptNumber) between failed rounds.
	attempts  uint64
	baseDelay time.Duration

	// onFailure, when set, is invoked after retries are exhausted.
	onFailure func(req swaps.SwapRequest, err error)

	// onQuote, when set, is invoked with every freshly selected quote.
	onQuote func(fingerprint string, q swaps.Quote)
}

// NewService creates a quote service over a pool of same-chain providers.
func NewService(pool *swaps.Pool) *Service {
	return &Service{
		pool:      pool,
		cache:     NewCache(swaps.ValidityWindow, defaultCacheCapacity),
		attempts:  defaultAttempts,
		baseDelay: defaultBaseDelay,
	}
}

// SetRetryPolicy overrides the retry policy. attempts is the total number
// of pool rounds; baseDelay scales the linear backoff between them.
func (s *Service) SetRetryPolicy(attempts uint64, baseDelay time.Duration) {
	if attempts > 0 {
		s.attempts = attempts
	}
	if baseDelay > 0 {
		s.baseDelay = baseDelay
	}
}

// OnFailure registers a hook called when a request exhausts its retries.
func (s *Service) OnFailure(fn func(req swaps.SwapRequest, err error)) {
	s.onFailure = fn
}

// OnQuote registers a hook called with every freshly fetched (non-cached)
// winning quote. Must not block; it runs on the request path.
func (s *Service) OnQuote(fn func(fingerprint string, q swaps.Quote)) {
	s.onQuote = fn
}

// GetQuote normalizes the raw form input and returns the best available
// quote, consulting the cache first.
func (s *Service) GetQuote(ctx context.Context, form swaps.FormData) (swaps.Quote, error) {
	req, err := swaps.Normalize(form)
	if err != nil {
		return swaps.Quote{}, err
	}
	return s.QuoteFor(ctx, req)
}

// QuoteFor serves an already-normalized request. On a cache miss it runs up
// to three pool rounds, backing off linearly between failed rounds, and
// caches the first success. Providers and the pool never retry internally;
// this loop is the only retry site in the engine.
func (s *Service) QuoteFor(ctx context.Context, req swaps.SwapRequest) (swaps.Quote, error) {
	key := req.Fingerprint()
	if q, ok := s.cache.Get(key); ok {
		return q, nil
	}

	var best swaps.Quote
	backoff := retry.WithMaxRetries(s.attempts-1, linearBackoff(s.baseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		candidates, err := s.pool.FetchAll(ctx, req)
		if err != nil {
			return retry.RetryableError(err)
		}
		q, ok := swaps.BestRaw(candidates)
		if !ok {
			return retry.RetryableError(&swaps.AllProvidersFailedError{})
		}
		best = q
		return nil
	})
	if err != nil {
		log.Printf("quote unavailable for %s -> %s after %d attempts: %v",
			req.FromToken.Symbol, req.ToToken.Symbol, s.attempts, err)
		if s.onFailure != nil {
			s.onFailure(req, err)
		}
		return swaps.Quote{}, &swaps.QuoteUnavailableError{Last: err}
	}

	s.cache.Put(key, best)
	if s.onQuote != nil {
		s.onQuote(key, best)
	}
	return best, nil
}

// ClearCache drops all cached quotes. Diagnostics/testing only.
func (s *Service) ClearCache() {
	s.cache.Clear()
}

// CacheStats returns a snapshot of the quote cache.
func (s *Service) CacheStats() CacheStats {
	return s.cache.Stats()
}

// linearBackoff waits baseDelay * attemptNumber between rounds: 1x after
// the first failure, 2x after the second, and so on.
func linearBackoff(base time.Duration) retry.Backoff {
	var attempt int64
	return retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		return base * time.Duration(attempt), false
	})
}
