// Package nearintents provides cross-chain quotes via the NEAR Intents
// 1click API.
package nearintents

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	oneclick "github.com/defuse-protocol/one-click-sdk-go"
	"github.com/ethereum/go-ethereum/common"

	"github.com/RaghavSood/swaprouter/swaps"
)

const ProviderName = "nearintents"

// DefaultTimeout bounds a single quote call; bridge default.
const DefaultTimeout = 15 * time.Second

type Provider struct {
	client  *Client
	timeout time.Duration

	// recipient prices dry quotes; the engine never executes, so a
	// configured placeholder address stands in for the user wallet.
	recipient string
}

// NewProvider creates a NEAR Intents bridge provider. timeout 0 uses the
// bridge default.
func NewProvider(apiKey, recipient string, timeout time.Duration, httpClient *http.Client) *Provider {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if recipient == "" {
		recipient = common.Address{}.Hex()
	}
	return &Provider{
		client:    NewClient(apiKey, httpClient),
		timeout:   timeout,
		recipient: recipient,
	}
}

func (p *Provider) Name() string {
	return ProviderName
}

// FetchQuote issues one dry quote call bounded by the provider timeout.
// Dry quotes price the swap without allocating a deposit address.
func (p *Provider) FetchQuote(ctx context.Context, req swaps.SwapRequest) (swaps.Quote, error) {
	originAsset, ok := AssetID(req.FromToken)
	if !ok {
		return swaps.Quote{}, fmt.Errorf("nearintents: unsupported source chain %d", req.FromChainID)
	}
	destAsset, ok := AssetID(req.ToToken)
	if !ok {
		return swaps.Quote{}, fmt.Errorf("nearintents: unsupported destination chain %d", req.ToChainID)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	quoteReq := *oneclick.NewQuoteRequest(
		true,          // dry: price only, no deposit address
		"EXACT_INPUT", // swapType
		float32(req.SlippageBps),
		originAsset,
		"ORIGIN_CHAIN", // depositType
		destAsset,
		req.Amount.String(),
		p.recipient,    // refundTo
		"ORIGIN_CHAIN", // refundType
		p.recipient,    // recipient
		"DESTINATION_CHAIN",
		time.Now().Add(10*time.Minute), // deadline
	)

	resp, err := p.client.GetQuote(ctx, quoteReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return swaps.Quote{}, &swaps.TimeoutError{Provider: ProviderName}
		}
		return swaps.Quote{}, err
	}

	amountOut := resp.Quote.GetAmountOut()
	toAmount, ok := new(big.Int).SetString(amountOut, 10)
	if !ok {
		return swaps.Quote{}, fmt.Errorf("nearintents: bad amountOut %q", amountOut)
	}

	return swaps.Quote{
		Provider:    ProviderName,
		FromToken:   req.FromToken,
		ToToken:     req.ToToken,
		FromAmount:  new(big.Int).Set(req.Amount),
		ToAmount:    toAmount,
		GasEstimate: new(big.Int),
		Route: swaps.RouteDetails{
			Path:        []common.Address{req.FromToken.Address, req.ToToken.Address},
			Exchanges:   []string{"near-intents"},
			GasEstimate: new(big.Int),
			Slippage:    req.SlippagePercent(),
		},
		ValidUntil: time.Now().Add(swaps.ValidityWindow),
	}, nil
}
