package swaps

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ValidityWindow is how long a quote may be executed after it is produced.
// Upstream-declared validity windows are ignored; every quote gets this one.
const ValidityWindow = 30 * time.Second

// RouteDetails describes the execution path behind a quote.
type RouteDetails struct {
	// Path is the ordered list of token addresses the swap hops through.
	Path []common.Address

	// Exchanges is the de-duplicated, ordered list of protocol names
	// (DEXes or bridges) used along the route.
	Exchanges []string

	GasEstimate *big.Int
	PriceImpact float64 // percent
	Slippage    float64 // percent
}

// Quote is the common shape every provider response is normalized into.
type Quote struct {
	Provider    string
	FromToken   Token
	ToToken     Token
	FromAmount  *big.Int // smallest unit of FromToken
	ToAmount    *big.Int // smallest unit of ToToken
	PriceImpact float64  // percent
	GasEstimate *big.Int
	Route       RouteDetails
	ValidUntil  time.Time
}

// Usable reports whether the quote may still be acted on at the given time.
func (q Quote) Usable(now time.Time) bool {
	return now.Before(q.ValidUntil)
}

// NetAmount returns ToAmount minus the gas estimate. Bridge fee structures
// vary widely, so cross-path comparisons must net out cost rather than
// compare raw output.
func (q Quote) NetAmount() *big.Int {
	if q.ToAmount == nil {
		return new(big.Int)
	}
	net := new(big.Int).Set(q.ToAmount)
	if q.GasEstimate != nil {
		net.Sub(net, q.GasEstimate)
	}
	return net
}

// CheckExecutable is the pre-submission guard for the execution layer:
// executing a quote past its validity window is its own failure mode,
// distinct from a stale cache read.
func CheckExecutable(q Quote, now time.Time) error {
	if !q.Usable(now) {
		return ErrExpiredQuoteExecution
	}
	return nil
}
