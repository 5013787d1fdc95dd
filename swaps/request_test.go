package swaps

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func testToken(addr byte, chainID uint64, decimals uint8) Token {
	var a common.Address
	a[19] = addr
	return Token{
		Address:  a,
		Symbol:   "TKN",
		Decimals: decimals,
		ChainID:  chainID,
	}
}

func validForm() FormData {
	return FormData{
		FromToken:   testToken(1, 1, 6),
		ToToken:     testToken(2, 1, 18),
		Amount:      "100",
		FromChainID: 1,
		ToChainID:   1,
		SlippageBps: 50,
	}
}

func TestNormalizeAmountTruncation(t *testing.T) {
	form := validForm()
	form.Amount = "1.23456789"

	req, err := Normalize(form)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	// 6-decimals token: truncated at 6 fractional digits, not rounded
	if got := req.Amount.String(); got != "1234567" {
		t.Errorf("amount = %s, want 1234567", got)
	}
}

func TestNormalizeAmountPadding(t *testing.T) {
	form := validForm()
	form.Amount = "2.5"

	req, err := Normalize(form)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got := req.Amount.String(); got != "2500000" {
		t.Errorf("amount = %s, want 2500000", got)
	}
}

func TestNormalizeRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*FormData)
		field  string
	}{
		{"same token same chain", func(f *FormData) { f.ToToken = f.FromToken }, "toToken"},
		{"zero amount", func(f *FormData) { f.Amount = "0" }, "amount"},
		{"negative amount", func(f *FormData) { f.Amount = "-5" }, "amount"},
		{"non-numeric amount", func(f *FormData) { f.Amount = "12a.b" }, "amount"},
		{"empty amount", func(f *FormData) { f.Amount = "" }, "amount"},
		{"dust below smallest unit", func(f *FormData) { f.Amount = "0.0000001" }, "amount"},
		{"slippage too low", func(f *FormData) { f.SlippageBps = 9 }, "slippage"},
		{"slippage too high", func(f *FormData) { f.SlippageBps = 5001 }, "slippage"},
		{"token chain mismatch", func(f *FormData) { f.FromToken.ChainID = 137 }, "fromToken"},
		{"missing token address", func(f *FormData) { f.ToToken.Address = common.Address{} }, "toToken"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(&form)

			_, err := Normalize(form)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if verr.Field != tc.field {
				t.Errorf("field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}

func TestNormalizeAllowsSameTokenCrossChain(t *testing.T) {
	form := validForm()
	form.ToToken = testToken(1, 8453, 6)
	form.ToChainID = 8453

	if _, err := Normalize(form); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
}

func TestFingerprintDeterminism(t *testing.T) {
	a, err := Normalize(validForm())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Normalize(validForm())
	if err != nil {
		t.Fatal(err)
	}

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("equal requests produced different fingerprints")
	}
}

func TestFingerprintFieldSensitivity(t *testing.T) {
	base, err := Normalize(validForm())
	if err != nil {
		t.Fatal(err)
	}

	mutations := map[string]func(*SwapRequest){
		"amount":     func(r *SwapRequest) { r.Amount.Add(r.Amount, r.Amount) },
		"slippage":   func(r *SwapRequest) { r.SlippageBps = 100 },
		"from chain": func(r *SwapRequest) { r.FromChainID = 137 },
		"to chain":   func(r *SwapRequest) { r.ToChainID = 137 },
		"from token": func(r *SwapRequest) { r.FromToken = testToken(9, 1, 6) },
		"to token":   func(r *SwapRequest) { r.ToToken = testToken(8, 1, 18) },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			req, err := Normalize(validForm())
			if err != nil {
				t.Fatal(err)
			}
			mutate(&req)
			if req.Fingerprint() == base.Fingerprint() {
				t.Errorf("changing %s did not change the fingerprint", name)
			}
		})
	}
}

func TestFingerprintCaseNormalized(t *testing.T) {
	// Token addresses arriving with different hex casing must produce the
	// same fingerprint; common.Address stores raw bytes so this holds by
	// construction. Guard it anyway.
	form1 := validForm()
	form1.FromToken.Address = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	form2 := validForm()
	form2.FromToken.Address = common.HexToAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")

	a, err := Normalize(form1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Normalize(form2)
	if err != nil {
		t.Fatal(err)
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("address casing changed the fingerprint")
	}
}
