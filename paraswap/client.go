package paraswap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/RaghavSood/swaprouter/swaps"
)

const defaultBaseURL = "https://api.paraswap.io"

// DefaultTimeout bounds a single quote call to the ParaSwap API.
const DefaultTimeout = 10 * time.Second

// PricesResponse is the native ParaSwap /prices shape.
type PricesResponse struct {
	PriceRoute PriceRoute `json:"priceRoute"`
}

type PriceRoute struct {
	SrcAmount  string      `json:"srcAmount"`
	DestAmount string      `json:"destAmount"`
	GasCost    string      `json:"gasCost"`
	SrcUSD     string      `json:"srcUSD"`
	DestUSD    string      `json:"destUSD"`
	BestRoute  []BestRoute `json:"bestRoute"`
}

type BestRoute struct {
	Percent float64 `json:"percent"`
	Swaps   []Swap  `json:"swaps"`
}

type Swap struct {
	SrcToken      string         `json:"srcToken"`
	DestToken     string         `json:"destToken"`
	SwapExchanges []SwapExchange `json:"swapExchanges"`
}

type SwapExchange struct {
	Exchange string  `json:"exchange"`
	Percent  float64 `json:"percent"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a ParaSwap API client. The public prices endpoint
// needs no API key.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// GetPrices fetches the best price route for a sell of amount srcToken.
func (c *Client) GetPrices(ctx context.Context, chainID uint64, srcToken, destToken, amount string, srcDecimals, destDecimals uint8) (*PricesResponse, error) {
	params := url.Values{}
	params.Set("srcToken", srcToken)
	params.Set("destToken", destToken)
	params.Set("amount", amount)
	params.Set("srcDecimals", fmt.Sprintf("%d", srcDecimals))
	params.Set("destDecimals", fmt.Sprintf("%d", destDecimals))
	params.Set("side", "SELL")
	params.Set("network", fmt.Sprintf("%d", chainID))

	reqURL := fmt.Sprintf("%s/prices?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &swaps.TimeoutError{Provider: ProviderName}
		}
		return nil, fmt.Errorf("requesting prices: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &swaps.ProviderError{Provider: ProviderName, Status: resp.StatusCode, Body: string(body)}
	}

	var prices PricesResponse
	if err := json.Unmarshal(body, &prices); err != nil {
		return nil, fmt.Errorf("parsing prices: %w", err)
	}

	return &prices, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
