// Package oneinch provides same-chain quotes via the 1inch Aggregation
// API v6.
package oneinch

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/RaghavSood/swaprouter/swaps"
)

const ProviderName = "1inch"

type Provider struct {
	client  *Client
	timeout time.Duration
}

// NewProvider creates a 1inch provider. timeout 0 uses the DEX default.
func NewProvider(apiKey, baseURL string, timeout time.Duration, httpClient *http.Client) *Provider {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Provider{
		client:  NewClient(apiKey, baseURL, httpClient),
		timeout: timeout,
	}
}

func (p *Provider) Name() string {
	return ProviderName
}

// FetchQuote issues one quote call bounded by the provider timeout and
// maps the native response into the common quote shape.
func (p *Provider) FetchQuote(ctx context.Context, req swaps.SwapRequest) (swaps.Quote, error) {
	if !req.SameChain() {
		return swaps.Quote{}, fmt.Errorf("1inch: cross-chain request %d -> %d not supported", req.FromChainID, req.ToChainID)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.GetQuote(ctx, req.FromChainID,
		req.FromToken.Address.Hex(), req.ToToken.Address.Hex(), req.Amount.String())
	if err != nil {
		return swaps.Quote{}, err
	}

	toAmount, ok := new(big.Int).SetString(resp.DstAmount, 10)
	if !ok {
		return swaps.Quote{}, fmt.Errorf("1inch: bad dstAmount %q", resp.DstAmount)
	}

	return swaps.Quote{
		Provider:    ProviderName,
		FromToken:   req.FromToken,
		ToToken:     req.ToToken,
		FromAmount:  new(big.Int).Set(req.Amount),
		ToAmount:    toAmount,
		GasEstimate: big.NewInt(resp.Gas),
		Route: swaps.RouteDetails{
			Path:        routePath(req, resp.Protocols),
			Exchanges:   routeExchanges(resp.Protocols),
			GasEstimate: big.NewInt(resp.Gas),
			Slippage:    req.SlippagePercent(),
		},
		ValidUntil: time.Now().Add(swaps.ValidityWindow),
	}, nil
}

// routeExchanges flattens the protocol breakdown into a de-duplicated,
// ordered list of protocol names.
func routeExchanges(protocols [][][]ProtocolStep) []string {
	var names []string
	seen := make(map[string]bool)
	for _, route := range protocols {
		for _, hop := range route {
			for _, step := range hop {
				if step.Name == "" || seen[step.Name] {
					continue
				}
				seen[step.Name] = true
				names = append(names, step.Name)
			}
		}
	}
	return names
}

// routePath reconstructs the token hop path from the first route split,
// falling back to the direct pair when no breakdown is present.
func routePath(req swaps.SwapRequest, protocols [][][]ProtocolStep) []common.Address {
	if len(protocols) == 0 || len(protocols[0]) == 0 {
		return []common.Address{req.FromToken.Address, req.ToToken.Address}
	}
	path := []common.Address{req.FromToken.Address}
	for _, hop := range protocols[0] {
		if len(hop) == 0 {
			continue
		}
		path = append(path, common.HexToAddress(hop[0].ToTokenAddress))
	}
	return path
}
