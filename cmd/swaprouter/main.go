package main

import (
	"context"
	"flag"
	"log"
	"strconv"
	"time"

	"github.com/RaghavSood/swaprouter/alerts"
	"github.com/RaghavSood/swaprouter/apilog"
	"github.com/RaghavSood/swaprouter/chains"
	"github.com/RaghavSood/swaprouter/config"
	"github.com/RaghavSood/swaprouter/db"
	"github.com/RaghavSood/swaprouter/lifi"
	"github.com/RaghavSood/swaprouter/nearintents"
	"github.com/RaghavSood/swaprouter/oneinch"
	"github.com/RaghavSood/swaprouter/paraswap"
	"github.com/RaghavSood/swaprouter/quotes"
	"github.com/RaghavSood/swaprouter/router"
	"github.com/RaghavSood/swaprouter/server"
	"github.com/RaghavSood/swaprouter/swaps"
)

func main() {
	configPath := flag.String("config", "config.json", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// RPC overrides from config
	for idStr, endpoint := range cfg.RPCEndpoints {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			log.Fatalf("Bad chain id %q in rpc_endpoints", idStr)
		}
		chains.OverrideRPC(id, endpoint)
	}

	// Optional request/quote logging store
	var store *db.Store
	if cfg.DatabasePath != "" {
		store, err = db.Open(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer store.Close()
	}

	dexPool, bridgePool := buildPools(cfg, store)
	log.Printf("Registered %d DEX providers, %d bridge providers", dexPool.Size(), bridgePool.Size())

	service := quotes.NewService(dexPool)

	if store != nil {
		service.OnQuote(func(fingerprint string, q swaps.Quote) {
			go func() {
				if err := store.InsertQuote(context.Background(), fingerprint, q); err != nil {
					log.Printf("recording quote: %v", err)
				}
			}()
		})
	}

	if cfg.Telegram != nil {
		notifier, err := alerts.NewNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			log.Fatalf("Failed to create telegram notifier: %v", err)
		}
		service.OnFailure(notifier.QuoteFailed)
		log.Println("Telegram alerts enabled")
	}

	rtr := router.New(service, bridgePool)

	srv := server.New(cfg, rtr, service, store)
	log.Println("Starting swaprouter...")
	if err := srv.Start(); err != nil {
		log.Fatalf("HTTP server error: %v", err)
	}
}

func buildPools(cfg *config.Config, store *db.Store) (*swaps.Pool, *swaps.Pool) {
	var dex, bridges []swaps.Provider

	if p := cfg.Provider("1inch"); p.Enabled {
		client := apilog.NewHTTPClient("1inch", store, timeout(p, oneinch.DefaultTimeout))
		dex = append(dex, oneinch.NewProvider(p.APIKey, p.BaseURL, timeout(p, oneinch.DefaultTimeout), client))
		log.Println("1inch provider enabled")
	}
	if p := cfg.Provider("paraswap"); p.Enabled {
		client := apilog.NewHTTPClient("paraswap", store, timeout(p, paraswap.DefaultTimeout))
		dex = append(dex, paraswap.NewProvider(p.BaseURL, timeout(p, paraswap.DefaultTimeout), client))
		log.Println("ParaSwap provider enabled")
	}
	if p := cfg.Provider("lifi"); p.Enabled {
		client := apilog.NewHTTPClient("lifi", store, timeout(p, lifi.DefaultTimeout))
		bridges = append(bridges, lifi.NewProvider(p.APIKey, p.BaseURL, cfg.QuoteAddress, timeout(p, lifi.DefaultTimeout), client))
		log.Println("LI.FI provider enabled")
	}
	if p := cfg.Provider("nearintents"); p.Enabled {
		client := apilog.NewHTTPClient("nearintents", store, timeout(p, nearintents.DefaultTimeout))
		bridges = append(bridges, nearintents.NewProvider(p.APIKey, cfg.QuoteAddress, timeout(p, nearintents.DefaultTimeout), client))
		log.Println("NEAR Intents provider enabled")
	}

	return swaps.NewPool(dex...), swaps.NewPool(bridges...)
}

func timeout(p config.ProviderConfig, def time.Duration) time.Duration {
	if p.TimeoutSeconds > 0 {
		return time.Duration(p.TimeoutSeconds) * time.Second
	}
	return def
}
