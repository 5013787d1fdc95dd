package nearintents

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/RaghavSood/swaprouter/swaps"
)

// chainPrefix maps EVM chain ids to the 1click omft chain prefix.
var chainPrefix = map[uint64]string{
	1:     "eth",
	8453:  "base",
	42161: "arb",
	43114: "avax",
}

// nativePlaceholder is the conventional sentinel address for the chain's
// native asset in aggregator requests.
var nativePlaceholder = common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")

// AssetID builds the 1click token id for a token on a chain.
// Native assets map to "nep141:<chain>.omft.near", ERC-20s to
// "nep141:<chain>-<contract>.omft.near".
func AssetID(t swaps.Token) (string, bool) {
	prefix, ok := chainPrefix[t.ChainID]
	if !ok {
		return "", false
	}
	if t.Address == (common.Address{}) || t.Address == nativePlaceholder {
		return fmt.Sprintf("nep141:%s.omft.near", prefix), true
	}
	return fmt.Sprintf("nep141:%s-%s.omft.near", prefix, strings.ToLower(t.Address.Hex())), true
}

// SupportsChain reports whether 1click can serve the given chain id.
func SupportsChain(id uint64) bool {
	_, ok := chainPrefix[id]
	return ok
}
