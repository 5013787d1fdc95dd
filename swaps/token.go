package swaps

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Token identifies an ERC-20 (or native placeholder) token on a single chain.
// Identity is the (Address, ChainID) pair; values are immutable once built.
type Token struct {
	Address  common.Address
	Symbol   string
	Name     string
	Decimals uint8
	ChainID  uint64
	LogoURI  string
}

// Same reports whether two tokens are the same asset on the same chain.
func (t Token) Same(other Token) bool {
	return t.Address == other.Address && t.ChainID == other.ChainID
}

func (t Token) String() string {
	return fmt.Sprintf("%s@%d (%s)", t.Symbol, t.ChainID, t.Address.Hex())
}
