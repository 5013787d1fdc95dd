package oneinch

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

const defaultBaseURL = "https://api.1inch.dev/swap/v6.0"

// DefaultTimeout bounds a single quote call to the 1inch API.
const DefaultTimeout = 10 * time.Second

// QuoteResponse is the native 1inch Aggregation API v6 quote shape.
type QuoteResponse struct {
	DstAmount string             `json:"dstAmount"`
	Gas       int64              `json:"gas"`
	Protocols [][][]ProtocolStep `json:"protocols"`
}

// ProtocolStep is one hop segment in the 1inch route breakdown.
type ProtocolStep struct {
	Name             string  `json:"name"`
	Part             float64 `json:"part"`
	FromTokenAddress string  `json:"fromTokenAddress"`
	ToTokenAddress   string  `json:"toTokenAddress"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a 1inch API client. baseURL and httpClient may be
// empty/nil to use the defaults.
func NewClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// GetQuote fetches a quote for swapping amount of src into dst on the
// given chain, with the route breakdown included.
func (c *Client) GetQuote(ctx context.Context, chainID uint64, src, dst, amount string) (*QuoteResponse, error) {
	params := url.Values{}
	params.Set("src", src)
	params.Set("dst", dst)
	params.Set("amount", amount)
	params.Set("includeProtocols", "true")
	params.Set("includeGas", "true")

	reqURL := fmt.Sprintf("%s/%d/quote?%s", c.baseURL, chainID, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
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
