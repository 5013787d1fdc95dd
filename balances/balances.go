// Package balances reads ERC-20 state over JSON-RPC. Used by the
// diagnostics server and quotecheck CLI; the quote path itself never
// touches the chain.
package balances

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

var erc20ABI abi.ABI

func init() {
	var err error
	erc20ABI, err = abi.JSON(strings.NewReader(`[{"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},{"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"}]`))
	if err != nil {
		panic(err)
	}
}

// TokenBalance returns the smallest-unit balance of token for addr.
func TokenBalance(ctx context.Context, rpc *ethclient.Client, token, addr common.Address) (*big.Int, error) {
	data, err := erc20ABI.Pack("balanceOf", addr)
	if err != nil {
		return nil, err
	}

	output, err := rpc.CallContract(ctx, ethereum.CallMsg{
		To:   &token,
		Data: data,
	}, nil)
	if err != nil {
		return nil, err
	}

	if len(output) < 32 {
		return big.NewInt(0), nil
	}
	return new(big.Int).SetBytes(output), nil
}

// TokenDecimals reads the on-chain decimals of a token contract, for
// cross-checking form input against chain state.
func TokenDecimals(ctx context.Context, rpc *ethclient.Client, token common.Address) (uint8, error) {
	data, err := erc20ABI.Pack("decimals")
	if err != nil {
		return 0, err
	}

	output, err := rpc.CallContract(ctx, ethereum.CallMsg{
		To:   &token,
		Data: data,
	}, nil)
	if err != nil {
		return 0, err
	}

	if len(output) < 32 {
		return 0, nil
	}
	return uint8(new(big.Int).SetBytes(output).Uint64()), nil
}
