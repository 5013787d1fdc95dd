package lifi

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

const defaultBaseURL = "https://li.quest/v1"

// DefaultTimeout bounds a single quote call; bridges are slower than DEX
// aggregators so they get a wider bound.
const DefaultTimeout = 15 * time.Second

// QuoteResponse is the native LI.FI /v1/quote shape (the fields we use).
type QuoteResponse struct {
	Tool          string      `json:"tool"`
	ToolDetails   ToolDetails `json:"toolDetails"`
	Estimate      Estimate    `json:"estimate"`
	IncludedSteps []Step      `json:"includedSteps"`
}

type ToolDetails struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type Estimate struct {
	FromAmount string    `json:"fromAmount"`
	ToAmount   string    `json:"toAmount"`
	GasCosts   []GasCost `json:"gasCosts"`
}

type GasCost struct {
	Type     string `json:"type"`
	Estimate string `json:"estimate"`
	Amount   string `json:"amount"`
}

type Step struct {
	Tool        string      `json:"tool"`
	ToolDetails ToolDetails `json:"toolDetails"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a LI.FI API client. apiKey is optional for the public
// tier.
func NewClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{baseURL: baseURL, apiKey: apiKey, httpClient: httpClient}
}

// GetQuote fetches a cross-chain quote. slippage is fractional (0.01 = 1%).
func (c *Client) GetQuote(ctx context.Context, fromChain, toChain uint64, fromToken, toToken, fromAmount, fromAddress string, slippage float64) (*QuoteResponse, error) {
	params := url.Values{}
	params.Set("fromChain", fmt.Sprintf("%d", fromChain))
	params.Set("toChain", fmt.Sprintf("%d", toChain))
	params.Set("fromToken", fromToken)
	params.Set("toToken", toToken)
	params.Set("fromAmount", fromAmount)
	params.Set("fromAddress", fromAddress)
	params.Set("slippage", fmt.Sprintf("%g", slippage))

	reqURL := fmt.Sprintf("%s/quote?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("x-lifi-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &swaps.TimeoutError{Provider: ProviderName}
		}
		return nil, fmt.Errorf("requesting quote: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &swaps.ProviderError{Provider: ProviderName, Status: resp.StatusCode, Body: string(body)}
	}

	var quote QuoteResponse
	if err := json.Unmarshal(body, &quote); err != nil {
		return nil, fmt.Errorf("parsing quote: %w", err)
	}

	return &quote, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
