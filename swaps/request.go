package swaps

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math/big"
	"strings"
)

// Slippage tolerance bounds in basis points: 0.1% to 50%.
const (
	MinSlippageBps = 10
	MaxSlippageBps = 5000
)

// FormData is the raw, form-level swap request before normalization.
// Amount is a human-readable decimal string (e.g. "1.5").
type FormData struct {
	FromToken   Token
	ToToken     Token
	Amount      string
	FromChainID uint64
	ToChainID   uint64
	SlippageBps uint32
}

// SwapRequest is a validated, normalized swap request. Amount is an integer
// in the source token's smallest unit.
type SwapRequest struct {
	FromToken   Token
	ToToken     Token
	Amount      *big.Int
	FromChainID uint64
	ToChainID   uint64
	SlippageBps uint32
}

// SameChain reports whether source and destination live on the same chain.
func (r SwapRequest) SameChain() bool {
	return r.FromChainID == r.ToChainID
}

// SlippagePercent returns the slippage tolerance as a percentage.
func (r SwapRequest) SlippagePercent() float64 {
	return float64(r.SlippageBps) / 100
}

// Normalize validates form input and converts it into a SwapRequest.
// All failures are *ValidationError naming the offending field; no network
// calls happen here or before this.
func Normalize(form FormData) (SwapRequest, error) {
	if err := validateToken("fromToken", form.FromToken, form.FromChainID); err != nil {
		return SwapRequest{}, err
	}
	if err := validateToken("toToken", form.ToToken, form.ToChainID); err != nil {
		return SwapRequest{}, err
	}
	if form.FromChainID == 0 {
		return SwapRequest{}, &ValidationError{Field: "fromChainId", Reason: "must be non-zero"}
	}
	if form.ToChainID == 0 {
		return SwapRequest{}, &ValidationError{Field: "toChainId", Reason: "must be non-zero"}
	}
	if form.FromChainID == form.ToChainID && form.FromToken.Address == form.ToToken.Address {
		return SwapRequest{}, &ValidationError{Field: "toToken", Reason: "same as fromToken on same chain"}
	}
	if form.SlippageBps < MinSlippageBps || form.SlippageBps > MaxSlippageBps {
		return SwapRequest{}, &ValidationError{Field: "slippage", Reason: "must be between 10 and 5000 basis points"}
	}

	amount, err := ToSmallestUnit(form.Amount, form.FromToken.Decimals)
	if err != nil {
		return SwapRequest{}, err
	}

	return SwapRequest{
		FromToken:   form.FromToken,
		ToToken:     form.ToToken,
		Amount:      amount,
		FromChainID: form.FromChainID,
		ToChainID:   form.ToChainID,
		SlippageBps: form.SlippageBps,
	}, nil
}

// ToSmallestUnit converts a human decimal amount string into an integer in
// the token's smallest unit. Fractional digits beyond decimals are
// truncated, not rounded.
func ToSmallestUnit(amount string, decimals uint8) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, &ValidationError{Field: "amount", Reason: "must not be empty"}
	}
	if strings.HasPrefix(amount, "-") {
		return nil, &ValidationError{Field: "amount", Reason: "must be positive"}
	}

	whole, frac, _ := strings.Cut(amount, ".")
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return nil, &ValidationError{Field: "amount", Reason: "not a decimal number"}
	}

	if len(frac) > int(decimals) {
		frac = frac[:decimals]
	}
	for len(frac) < int(decimals) {
		frac += "0"
	}

	val, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, &ValidationError{Field: "amount", Reason: "not a decimal number"}
	}
	if val.Sign() <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	return val, nil
}

// Fingerprint returns a deterministic cache key for the request: a SHA-256
// over a canonical binary tuple of the identity fields. Structural encoding
// (fixed-width fields, length-prefixed amount) rather than string joining,
// so no delimiter collisions are possible.
func (r SwapRequest) Fingerprint() string {
	h := sha256.New()
	h.Write(r.FromToken.Address.Bytes())
	h.Write(r.ToToken.Address.Bytes())

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], r.FromChainID)
	h.Write(buf[:])
	binary.BigEndian.PutUint64(buf[:], r.ToChainID)
	h.Write(buf[:])
	binary.BigEndian.PutUint32(buf[:4], r.SlippageBps)
	h.Write(buf[:4])

	amount := r.Amount.Bytes()
	binary.BigEndian.PutUint64(buf[:], uint64(len(amount)))
	h.Write(buf[:])
	h.Write(amount)

	return hex.EncodeToString(h.Sum(nil))
}

func validateToken(field string, t Token, wantChain uint64) error {
	if t.Address == (Token{}).Address {
		return &ValidationError{Field: field, Reason: "address must be set"}
	}
	if t.Decimals > 18 {
		return &ValidationError{Field: field, Reason: "decimals must be 0-18"}
	}
	if t.ChainID != wantChain {
		return &ValidationError{Field: field, Reason: "chain id does not match request"}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
