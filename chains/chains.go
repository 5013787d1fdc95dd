// Package chains holds the static registry of supported chains. The
// registry is read-only at runtime; RPC endpoints may be overridden from
// config at startup, before anything else touches it.
package chains

// Chain describes one supported network.
type Chain struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	NativeSymbol string `json:"native_symbol"`
	RPCEndpoint  string `json:"rpc_endpoint"`
	ExplorerURL  string `json:"explorer_url"`
}

var registry = map[uint64]Chain{
	1: {
		ID:           1,
		Name:         "Ethereum",
		NativeSymbol: "ETH",
		RPCEndpoint:  "https://ethereum-rpc.publicnode.com",
		ExplorerURL:  "https://etherscan.io",
	},
	10: {
		ID:           10,
		Name:         "Optimism",
		NativeSymbol: "ETH",
		RPCEndpoint:  "https://optimism-rpc.publicnode.com",
		ExplorerURL:  "https://optimistic.etherscan.io",
	},
	137: {
		ID:           137,
		Name:         "Polygon",
		NativeSymbol: "POL",
		RPCEndpoint:  "https://polygon-bor-rpc.publicnode.com",
		ExplorerURL:  "https://polygonscan.com",
	},
	8453: {
		ID:           8453,
		Name:         "Base",
		NativeSymbol: "ETH",
		RPCEndpoint:  "https://base-rpc.publicnode.com",
		ExplorerURL:  "https://basescan.org",
	},
	42161: {
		ID:           42161,
		Name:         "Arbitrum One",
		NativeSymbol: "ETH",
		RPCEndpoint:  "https://arbitrum-one-rpc.publicnode.com",
		ExplorerURL:  "https://arbiscan.io",
	},
	43114: {
		ID:           43114,
		Name:         "Avalanche C-Chain",
		NativeSymbol: "AVAX",
		RPCEndpoint:  "https://avalanche-c-chain-rpc.publicnode.com",
		ExplorerURL:  "https://snowtrace.io",
	},
}

// ByID looks up a chain by numeric id.
func ByID(id uint64) (Chain, bool) {
	c, ok := registry[id]
	return c, ok
}

// All returns every registered chain.
func All() []Chain {
	out := make([]Chain, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	return out
}

// OverrideRPC replaces the RPC endpoint for a chain. Call during startup
// only, before concurrent readers exist.
func OverrideRPC(id uint64, endpoint string) {
	c, ok := registry[id]
	if !ok {
		return
	}
	c.RPCEndpoint = endpoint
	registry[id] = c
}
