package swaps

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"
	"time"
)

type fakeProvider struct {
	name  string
	calls int64
	fetch func(ctx context.Context, req SwapRequest) (Quote, error)
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) FetchQuote(ctx context.Context, req SwapRequest) (Quote, error) {
	atomic.AddInt64(&f.calls, 1)
	return f.fetch(ctx, req)
}

func (f *fakeProvider) callCount() int64 {
	return atomic.LoadInt64(&f.calls)
}

func succeeding(name string, toAmount int64) *fakeProvider {
	return &fakeProvider{
		name: name,
		fetch: func(ctx context.Context, req SwapRequest) (Quote, error) {
			return Quote{
				Provider:   name,
				ToAmount:   big.NewInt(toAmount),
				ValidUntil: time.Now().Add(ValidityWindow),
			}, nil
		},
	}
}

func failing(name string, err error) *fakeProvider {
	return &fakeProvider{
		name: name,
		fetch: func(ctx context.Context, req SwapRequest) (Quote, error) {
			return Quote{}, err
		},
	}
}

func testRequest(t *testing.T) SwapRequest {
	t.Helper()
	req, err := Normalize(validForm())
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func TestFetchAllPartialFailure(t *testing.T) {
	pool := NewPool(
		failing("slow", &TimeoutError{Provider: "slow"}),
		failing("broken", &ProviderError{Provider: "broken", Status: 500}),
		succeeding("ok", 42),
	)

	quotes, err := pool.FetchAll(context.Background(), testRequest(t))
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(quotes) != 1 {
		t.Fatalf("got %d quotes, want 1", len(quotes))
	}
	if quotes[0].Provider != "ok" {
		t.Errorf("quote from %s, want ok", quotes[0].Provider)
	}
}

func TestFetchAllAllFail(t *testing.T) {
	pool := NewPool(
		failing("a", &TimeoutError{Provider: "a"}),
		failing("b", &ProviderError{Provider: "b", Status: 502}),
	)

	_, err := pool.FetchAll(context.Background(), testRequest(t))
	var allFailed *AllProvidersFailedError
	if !errors.As(err, &allFailed) {
		t.Fatalf("err = %v, want *AllProvidersFailedError", err)
	}
	if len(allFailed.Errs) != 2 {
		t.Errorf("captured %d provider errors, want 2", len(allFailed.Errs))
	}
}

func TestFetchAllRunsConcurrently(t *testing.T) {
	// Three providers each taking ~50ms must settle well under the
	// 150ms a sequential pass would need.
	delay := 50 * time.Millisecond
	slowOK := func(name string) *fakeProvider {
		return &fakeProvider{
			name: name,
			fetch: func(ctx context.Context, req SwapRequest) (Quote, error) {
				time.Sleep(delay)
				return Quote{Provider: name, ToAmount: big.NewInt(1), ValidUntil: time.Now().Add(ValidityWindow)}, nil
			},
		}
	}

	pool := NewPool(slowOK("a"), slowOK("b"), slowOK("c"))

	start := time.Now()
	quotes, err := pool.FetchAll(context.Background(), testRequest(t))
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(quotes) != 3 {
		t.Fatalf("got %d quotes, want 3", len(quotes))
	}
	if elapsed > 2*delay {
		t.Errorf("FetchAll took %s; providers appear to run sequentially", elapsed)
	}
}

func TestFetchAllEveryProviderCalledOnce(t *testing.T) {
	providers := []*fakeProvider{
		succeeding("a", 1),
		failing("b", errors.New("boom")),
		succeeding("c", 2),
	}
	pool := NewPool(providers[0], providers[1], providers[2])

	if _, err := pool.FetchAll(context.Background(), testRequest(t)); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	for _, p := range providers {
		if p.callCount() != 1 {
			t.Errorf("provider %s called %d times, want 1 (no internal retries)", p.name, p.callCount())
		}
	}
}
