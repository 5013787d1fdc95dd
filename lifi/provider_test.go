package lifi

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RaghavSood/swaprouter/swaps"
)

const quoteFixture = `{
	"tool": "stargateV2",
	"toolDetails": {"key": "stargateV2", "name": "Stargate V2"},
	"estimate": {
		"fromAmount": "100000000",
		"toAmount": "99450000",
		"gasCosts": [
			{"type": "SEND", "estimate": "210000", "amount": "120000"},
			{"type": "APPROVE", "estimate": "50000", "amount": "30000"}
		]
	},
	"includedSteps": [
		{"tool": "uniswap", "toolDetails": {"key": "uniswap", "name": "Uniswap"}},
		{"tool": "stargateV2", "toolDetails": {"key": "stargateV2", "name": "Stargate V2"}}
	]
}`

func testRequest(t *testing.T) swaps.SwapRequest {
	t.Helper()
	from := swaps.Token{Symbol: "USDC", Decimals: 6, ChainID: 1}
	from.Address[19] = 1
	to := swaps.Token{Symbol: "USDC", Decimals: 6, ChainID: 8453}
	to.Address[19] = 2
	req, err := swaps.Normalize(swaps.FormData{
		FromToken:   from,
		ToToken:     to,
		Amount:      "100",
		FromChainID: 1,
		ToChainID:   8453,
		SlippageBps: 50,
	})
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func TestFetchQuoteMapsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("fromChain") != "1" || q.Get("toChain") != "8453" {
			t.Errorf("chains = %s -> %s, want 1 -> 8453", q.Get("fromChain"), q.Get("toChain"))
		}
		// 50 bps = 0.005 fractional
		if q.Get("slippage") != "0.005" {
			t.Errorf("slippage = %q, want 0.005", q.Get("slippage"))
		}
		w.Write([]byte(quoteFixture))
	}))
	defer srv.Close()

	p := NewProvider("", srv.URL, "", 0, nil)
	q, err := p.FetchQuote(context.Background(), testRequest(t))
	if err != nil {
		t.Fatalf("FetchQuote: %v", err)
	}

	if q.ToAmount.Cmp(big.NewInt(99450000)) != 0 {
		t.Errorf("toAmount = %s, want 99450000", q.ToAmount)
	}
	// gas costs summed: 120000 + 30000
	if q.GasEstimate.Int64() != 150000 {
		t.Errorf("gas = %s, want 150000", q.GasEstimate)
	}
	if len(q.Route.Exchanges) != 2 || q.Route.Exchanges[0] != "Uniswap" || q.Route.Exchanges[1] != "Stargate V2" {
		t.Errorf("exchanges = %v, want [Uniswap, Stargate V2]", q.Route.Exchanges)
	}
	if until := time.Until(q.ValidUntil); until <= 0 || until > swaps.ValidityWindow {
		t.Errorf("validUntil %s out of the fixed 30s window", q.ValidUntil)
	}
}

func TestFetchQuoteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(quoteFixture))
	}))
	defer srv.Close()

	p := NewProvider("", srv.URL, "", 20*time.Millisecond, &http.Client{})
	_, err := p.FetchQuote(context.Background(), testRequest(t))

	var terr *swaps.TimeoutError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v, want *TimeoutError", err)
	}
}

func TestFetchQuoteNoRouteFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"No available quotes for the requested transfer"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewProvider("", srv.URL, "", 0, nil)
	_, err := p.FetchQuote(context.Background(), testRequest(t))

	var perr *swaps.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ProviderError", err)
	}
	if perr.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", perr.Status)
	}
}
