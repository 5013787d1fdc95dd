package server

import (
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/RaghavSood/swaprouter/balances"
	"github.com/RaghavSood/swaprouter/chains"
)

var (
	rpcMu      sync.Mutex
	rpcClients = map[uint64]*ethclient.Client{}
)

// rpcClient returns a lazily-dialed, cached RPC client for a chain.
func rpcClient(chainID uint64) (*ethclient.Client, error) {
	rpcMu.Lock()
	defer rpcMu.Unlock()

	if c, ok := rpcClients[chainID]; ok {
		return c, nil
	}

	chain, ok := chains.ByID(chainID)
	if !ok {
		return nil, errUnknownChain
	}

	c, err := ethclient.Dial(chain.RPCEndpoint)
	if err != nil {
		return nil, err
	}
	rpcClients[chainID] = c
	return c, nil
}

var errUnknownChain = &unknownChainError{}

type unknownChainError struct{}

func (e *unknownChainError) Error() string { return "unknown chain" }

// handleBalance serves GET /api/balance?chain_id=&token=&address= with the
// smallest-unit ERC-20 balance. Diagnostics only; eligibility checks live
// in the surrounding execution flow.
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	chainID, err := strconv.ParseUint(r.URL.Query().Get("chain_id"), 10, 64)
	if err != nil {
		http.Error(w, "bad chain_id", http.StatusBadRequest)
		return
	}

	tokenStr := r.URL.Query().Get("token")
	addrStr := r.URL.Query().Get("address")
	if !common.IsHexAddress(tokenStr) || !common.IsHexAddress(addrStr) {
		http.Error(w, "bad token or address", http.StatusBadRequest)
		return
	}

	rpc, err := rpcClient(chainID)
	if err != nil {
		if err == errUnknownChain {
			http.Error(w, "unknown chain", http.StatusBadRequest)
			return
		}
		log.Printf("dialing RPC for chain %d: %v", chainID, err)
		http.Error(w, "rpc unavailable", http.StatusBadGateway)
		return
	}

	bal, err := balances.TokenBalance(r.Context(), rpc, common.HexToAddress(tokenStr), common.HexToAddress(addrStr))
	if err != nil {
		log.Printf("balance query on chain %d failed: %v", chainID, err)
		http.Error(w, "balance query failed", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"chain_id": strconv.FormatUint(chainID, 10),
		"token":    common.HexToAddress(tokenStr).Hex(),
		"address":  common.HexToAddress(addrStr).Hex(),
		"balance":  bal.String(),
	})
}
