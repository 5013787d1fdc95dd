// One-shot quote fetcher for poking at providers from the command line.
// Usage:
//
//	go run ./cmd/quotecheck -config config.json \
//	  -from 0xA0b8... -from-decimals 6 -to 0xC02a... -to-decimals 18 \
//	  -from-chain 1 -to-chain 1 -amount 250 -slippage 50
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/RaghavSood/swaprouter/config"
	"github.com/RaghavSood/swaprouter/lifi"
	"github.com/RaghavSood/swaprouter/nearintents"
	"github.com/RaghavSood/swaprouter/oneinch"
	"github.com/RaghavSood/swaprouter/paraswap"
	"github.com/RaghavSood/swaprouter/quotes"
	"github.com/RaghavSood/swaprouter/router"
	"github.com/RaghavSood/swaprouter/swaps"
)

func main() {
	log.SetFlags(log.Ltime)

	configPath := flag.String("config", "config.json", "path to config file")
	from := flag.String("from", "", "source token address")
	fromSymbol := flag.String("from-symbol", "SRC", "source token symbol")
	fromDecimals := flag.Uint("from-decimals", 18, "source token decimals")
	to := flag.String("to", "", "destination token address")
	toSymbol := flag.String("to-symbol", "DST", "destination token symbol")
	toDecimals := flag.Uint("to-decimals", 18, "destination token decimals")
	fromChain := flag.Uint64("from-chain", 1, "source chain id")
	toChain := flag.Uint64("to-chain", 1, "destination chain id")
	amount := flag.String("amount", "", "human-readable amount to swap")
	slippage := flag.Uint("slippage", 50, "slippage tolerance in basis points")
	flag.Parse()

	if !common.IsHexAddress(*from) || !common.IsHexAddress(*to) {
		log.Fatal("-from and -to must be hex token addresses")
	}
	if *amount == "" {
		log.Fatal("-amount is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var dex, bridges []swaps.Provider
	if p := cfg.Provider("1inch"); p.Enabled {
		dex = append(dex, oneinch.NewProvider(p.APIKey, p.BaseURL, 0, nil))
	}
	if p := cfg.Provider("paraswap"); p.Enabled {
		dex = append(dex, paraswap.NewProvider(p.BaseURL, 0, nil))
	}
	if p := cfg.Provider("lifi"); p.Enabled {
		bridges = append(bridges, lifi.NewProvider(p.APIKey, p.BaseURL, cfg.QuoteAddress, 0, nil))
	}
	if p := cfg.Provider("nearintents"); p.Enabled {
		bridges = append(bridges, nearintents.NewProvider(p.APIKey, cfg.QuoteAddress, 0, nil))
	}

	service := quotes.NewService(swaps.NewPool(dex...))
	rtr := router.New(service, swaps.NewPool(bridges...))

	form := swaps.FormData{
		FromToken: swaps.Token{
			Address:  common.HexToAddress(*from),
			Symbol:   *fromSymbol,
			Decimals: uint8(*fromDecimals),
			ChainID:  *fromChain,
		},
		ToToken: swaps.Token{
			Address:  common.HexToAddress(*to),
			Symbol:   *toSymbol,
			Decimals: uint8(*toDecimals),
			ChainID:  *toChain,
		},
		Amount:      *amount,
		FromChainID: *fromChain,
		ToChainID:   *toChain,
		SlippageBps: uint32(*slippage),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	q, err := rtr.GetOptimalQuote(ctx, form)
	if err != nil {
		log.Fatalf("Quote failed: %v", err)
	}

	fmt.Printf("Provider:     %s\n", q.Provider)
	fmt.Printf("From:         %s %s\n", q.FromAmount, q.FromToken.Symbol)
	fmt.Printf("To:           %s %s\n", q.ToAmount, q.ToToken.Symbol)
	fmt.Printf("Net:          %s\n", q.NetAmount())
	fmt.Printf("Gas estimate: %s\n", q.GasEstimate)
	fmt.Printf("Route:        %s\n", strings.Join(q.Route.Exchanges, " -> "))
	fmt.Printf("Valid until:  %s (fetched in %s)\n", q.ValidUntil.Format(time.RFC3339), time.Since(start).Round(time.Millisecond))
}
