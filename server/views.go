package server

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/RaghavSood/swaprouter/swaps"
)

// quoteRequest is the wire shape of a quote request.
type quoteRequest struct {
	FromToken   tokenView `json:"from_token"`
	ToToken     tokenView `json:"to_token"`
	Amount      string    `json:"amount"`
	FromChainID uint64    `json:"from_chain_id"`
	ToChainID   uint64    `json:"to_chain_id"`
	SlippageBps uint32    `json:"slippage_bps"`
}

type tokenView struct {
	Address  common.Address `json:"address"`
	Symbol   string         `json:"symbol"`
	Name     string         `json:"name,omitempty"`
	Decimals uint8          `json:"decimals"`
	ChainID  uint64         `json:"chain_id"`
	LogoURI  string         `json:"logo_uri,omitempty"`
}

func (r quoteRequest) formData() swaps.FormData {
	return swaps.FormData{
		FromToken:   r.FromToken.token(),
		ToToken:     r.ToToken.token(),
		Amount:      r.Amount,
		FromChainID: r.FromChainID,
		ToChainID:   r.ToChainID,
		SlippageBps: r.SlippageBps,
	}
}

func (t tokenView) token() swaps.Token {
	return swaps.Token{
		Address:  t.Address,
		Symbol:   t.Symbol,
		Name:     t.Name,
		Decimals: t.Decimals,
		ChainID:  t.ChainID,
		LogoURI:  t.LogoURI,
	}
}

// QuoteView is the wire shape of a quote. Amounts go out as decimal
// strings; big.Int would otherwise serialize as a bare JSON number and
// lose precision in JS clients.
type QuoteView struct {
	Provider    string    `json:"provider"`
	FromToken   tokenView `json:"from_token"`
	ToToken     tokenView `json:"to_token"`
	FromAmount  string    `json:"from_amount"`
	ToAmount    string    `json:"to_amount"`
	NetAmount   string    `json:"net_amount"`
	PriceImpact float64   `json:"price_impact"`
	GasEstimate string    `json:"gas_estimate"`
	Exchanges   []string  `json:"exchanges"`
	Path        []string  `json:"path"`
	Slippage    float64   `json:"slippage"`
	ValidUntil  time.Time `json:"valid_until"`
}

func quoteView(q swaps.Quote) QuoteView {
	path := make([]string, 0, len(q.Route.Path))
	for _, addr := range q.Route.Path {
		path = append(path, addr.Hex())
	}

	gas := "0"
	if q.GasEstimate != nil {
		gas = q.GasEstimate.String()
	}

	return QuoteView{
		Provider:    q.Provider,
		FromToken:   viewToken(q.FromToken),
		ToToken:     viewToken(q.ToToken),
		FromAmount:  q.FromAmount.String(),
		ToAmount:    q.ToAmount.String(),
		NetAmount:   q.NetAmount().String(),
		PriceImpact: q.PriceImpact,
		GasEstimate: gas,
		Exchanges:   q.Route.Exchanges,
		Path:        path,
		Slippage:    q.Route.Slippage,
		ValidUntil:  q.ValidUntil,
	}
}

func quoteViewPtr(q *swaps.Quote) *QuoteView {
	if q == nil {
		return nil
	}
	v := quoteView(*q)
	return &v
}

func viewToken(t swaps.Token) tokenView {
	return tokenView{
		Address:  t.Address,
		Symbol:   t.Symbol,
		Name:     t.Name,
		Decimals: t.Decimals,
		ChainID:  t.ChainID,
		LogoURI:  t.LogoURI,
	}
}
