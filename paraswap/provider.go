// Package paraswap provides same-chain quotes via the ParaSwap prices API.
package paraswap

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/RaghavSood/swaprouter/swaps"
)

const ProviderName = "paraswap"

type Provider struct {
	client  *Client
	timeout time.Duration
}

// NewProvider creates a ParaSwap provider. timeout 0 uses the DEX default.
func NewProvider(baseURL string, timeout time.Duration, httpClient *http.Client) *Provider {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Provider{
		client:  NewClient(baseURL, httpClient),
		timeout: timeout,
	}
}

func (p *Provider) Name() string {
	return ProviderName
}

func (p *Provider) FetchQuote(ctx context.Context, req swaps.SwapRequest) (swaps.Quote, error) {
	if !req.SameChain() {
		return swaps.Quote{}, fmt.Errorf("paraswap: cross-chain request %d -> %d not supported", req.FromChainID, req.ToChainID)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.GetPrices(ctx, req.FromChainID,
		req.FromToken.Address.Hex(), req.ToToken.Address.Hex(), req.Amount.String(),
		req.FromToken.Decimals, req.ToToken.Decimals)
	if err != nil {
		return swaps.Quote{}, err
	}

	route := resp.PriceRoute

	toAmount, ok := new(big.Int).SetString(route.DestAmount, 10)
	if !ok {
		return swaps.Quote{}, fmt.Errorf("paraswap: bad destAmount %q", route.DestAmount)
	}

	gas := new(big.Int)
	if route.GasCost != "" {
		gas.SetString(route.GasCost, 10)
	}

	return swaps.Quote{
		Provider:    ProviderName,
		FromToken:   req.FromToken,
		ToToken:     req.ToToken,
		FromAmount:  new(big.Int).Set(req.Amount),
		ToAmount:    toAmount,
		PriceImpact: priceImpact(route.SrcUSD, route.DestUSD),
		GasEstimate: gas,
		Route: swaps.RouteDetails{
			Path:        routePath(req, route.BestRoute),
			Exchanges:   routeExchanges(route.BestRoute),
			GasEstimate: gas,
			PriceImpact: priceImpact(route.SrcUSD, route.DestUSD),
			Slippage:    req.SlippagePercent(),
		},
		ValidUntil: time.Now().Add(swaps.ValidityWindow),
	}, nil
}

// priceImpact derives the impact percentage from the USD legs of the
// route. ParaSwap reports no impact field directly.
func priceImpact(srcUSD, destUSD string) float64 {
	src, err1 := strconv.ParseFloat(srcUSD, 64)
	dest, err2 := strconv.ParseFloat(destUSD, 64)
	if err1 != nil || err2 != nil || src <= 0 {
		return 0
	}
	impact := (src - dest) / src * 100
	if impact < 0 {
		return 0
	}
	return impact
}

func routeExchanges(routes []BestRoute) []string {
	var names []string
	seen := make(map[string]bool)
	for _, r := range routes {
		for _, s := range r.Swaps {
			for _, ex := range s.SwapExchanges {
				if ex.Exchange == "" || seen[ex.Exchange] {
					continue
				}
				seen[ex.Exchange] = true
				names = append(names, ex.Exchange)
			}
		}
	}
	return names
}

func routePath(req swaps.SwapRequest, routes []BestRoute) []common.Address {
	if len(routes) == 0 || len(routes[0].Swaps) == 0 {
		return []common.Address{req.FromToken.Address, req.ToToken.Address}
	}
	path := []common.Address{req.FromToken.Address}
	for _, s := range routes[0].Swaps {
		path = append(path, common.HexToAddress(s.DestToken))
	}
	return path
}
