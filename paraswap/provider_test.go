package paraswap

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RaghavSood/swaprouter/swaps"
)

const pricesFixture = `{
	"priceRoute": {
		"srcAmount": "500000000",
		"destAmount": "163750000000000000",
		"gasCost": "185000",
		"srcUSD": "500.00",
		"destUSD": "498.50",
		"bestRoute": [
			{
				"percent": 100,
				"swaps": [
					{
						"srcToken": "0x0000000000000000000000000000000000000001",
						"destToken": "0x0000000000000000000000000000000000000002",
						"swapExchanges": [
							{"exchange": "UniswapV3", "percent": 70},
							{"exchange": "SushiSwap", "percent": 30}
						]
					}
				]
			}
		]
	}
}`

func testRequest(t *testing.T) swaps.SwapRequest {
	t.Helper()
	from := swaps.Token{Symbol: "USDC", Decimals: 6, ChainID: 1}
	from.Address[19] = 1
	to := swaps.Token{Symbol: "WETH", Decimals: 18, ChainID: 1}
	to.Address[19] = 2
	req, err := swaps.Normalize(swaps.FormData{
		FromToken:   from,
		ToToken:     to,
		Amount:      "500",
		FromChainID: 1,
		ToChainID:   1,
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
		if q.Get("side") != "SELL" {
			t.Errorf("side = %q, want SELL", q.Get("side"))
		}
		if q.Get("network") != "1" {
			t.Errorf("network = %q, want 1", q.Get("network"))
		}
		w.Write([]byte(pricesFixture))
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, 0, nil)
	q, err := p.FetchQuote(context.Background(), testRequest(t))
	if err != nil {
		t.Fatalf("FetchQuote: %v", err)
	}

	want, _ := new(big.Int).SetString("163750000000000000", 10)
	if q.ToAmount.Cmp(want) != 0 {
		t.Errorf("toAmount = %s, want %s", q.ToAmount, want)
	}
	if q.GasEstimate.Int64() != 185000 {
		t.Errorf("gas = %s, want 185000", q.GasEstimate)
	}
	// (500.00 - 498.50) / 500.00 * 100 = 0.3%
	if q.PriceImpact < 0.29 || q.PriceImpact > 0.31 {
		t.Errorf("priceImpact = %f, want ~0.3", q.PriceImpact)
	}
	if len(q.Route.Exchanges) != 2 || q.Route.Exchanges[0] != "UniswapV3" || q.Route.Exchanges[1] != "SushiSwap" {
		t.Errorf("exchanges = %v, want [UniswapV3 SushiSwap]", q.Route.Exchanges)
	}
}

func TestFetchQuoteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no routes", http.StatusBadRequest)
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, 0, nil)
	_, err := p.FetchQuote(context.Background(), testRequest(t))

	var perr *swaps.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ProviderError", err)
	}
	if perr.Provider != ProviderName {
		t.Errorf("provider = %q, want %q", perr.Provider, ProviderName)
	}
}
