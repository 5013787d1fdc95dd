// Package lifi provides cross-chain quotes via the LI.FI bridge
// aggregation API.
package lifi

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/RaghavSood/swaprouter/swaps"
)

const ProviderName = "lifi"

type Provider struct {
	client  *Client
	timeout time.Duration

	// fromAddress is required by the LI.FI quote endpoint. The engine does
	// not know the user's wallet, so quotes are priced against a
	// configured placeholder address.
	fromAddress string
}

// NewProvider creates a LI.FI bridge provider. timeout 0 uses the bridge
// default.
func NewProvider(apiKey, baseURL, fromAddress string, timeout time.Duration, httpClient *http.Client) *Provider {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if fromAddress == "" {
		fromAddress = common.Address{}.Hex()
	}
	return &Provider{
		client:      NewClient(apiKey, baseURL, httpClient),
		timeout:     timeout,
		fromAddress: fromAddress,
	}
}

func (p *Provider) Name() string {
	return ProviderName
}

func (p *Provider) FetchQuote(ctx context.Context, req swaps.SwapRequest) (swaps.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.GetQuote(ctx, req.FromChainID, req.ToChainID,
		req.FromToken.Address.Hex(), req.ToToken.Address.Hex(),
		req.Amount.String(), p.fromAddress, float64(req.SlippageBps)/10000)
	if err != nil {
		return swaps.Quote{}, err
	}

	toAmount, ok := new(big.Int).SetString(resp.Estimate.ToAmount, 10)
	if !ok {
		return swaps.Quote{}, fmt.Errorf("lifi: bad toAmount %q", resp.Estimate.ToAmount)
	}

	gas := new(big.Int)
	for _, gc := range resp.Estimate.GasCosts {
		if amt, ok := new(big.Int).SetString(gc.Amount, 10); ok {
			gas.Add(gas, amt)
		}
	}

	return swaps.Quote{
		Provider:    ProviderName,
		FromToken:   req.FromToken,
		ToToken:     req.ToToken,
		FromAmount:  new(big.Int).Set(req.Amount),
		ToAmount:    toAmount,
		GasEstimate: gas,
		Route: swaps.RouteDetails{
			Path:        []common.Address{req.FromToken.Address, req.ToToken.Address},
			Exchanges:   stepTools(resp),
			GasEstimate: gas,
			Slippage:    req.SlippagePercent(),
		},
		ValidUntil: time.Now().Add(swaps.ValidityWindow),
	}, nil
}

// stepTools lists the bridges/exchanges used along the route, de-duplicated
// in step order.
func stepTools(resp *QuoteResponse) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	for _, step := range resp.IncludedSteps {
		add(step.ToolDetails.Name)
	}
	if len(names) == 0 {
		add(resp.ToolDetails.Name)
	}
	return names
}
