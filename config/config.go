package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// ProviderConfig configures one upstream quote provider.
type ProviderConfig struct {
	// Enabled toggles the provider without removing its config.
	Enabled bool `json:"enabled"`

	// APIKey for providers that require one (1inch, LI.FI, NEAR Intents).
	APIKey string `json:"api_key,omitempty"`

	// BaseURL overrides the provider default; empty uses the default.
	BaseURL string `json:"base_url,omitempty"`

	// TimeoutSeconds overrides the per-call timeout (DEX default 10s,
	// bridge default 15s).
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`
}

type TelegramConfig struct {
	Token  string `json:"token"`
	ChatID int64  `json:"chat_id"`
}

type Config struct {
	// HTTP server port (default 8080)
	Port int `json:"port"`

	// Path to SQLite database for API/quote logging; empty disables it
	DatabasePath string `json:"database_path,omitempty"`

	// RPC endpoint overrides keyed by numeric chain id (as string)
	RPCEndpoints map[string]string `json:"rpc_endpoints,omitempty"`

	// Quote providers keyed by name: "1inch", "paraswap", "lifi",
	// "nearintents"
	Providers map[string]ProviderConfig `json:"providers"`

	// Placeholder wallet address used by bridges that require one for
	// pricing
	QuoteAddress string `json:"quote_address,omitempty"`

	// Optional operator alerts on terminal quote failure
	Telegram *TelegramConfig `json:"telegram,omitempty"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Providers) == 0 {
		return fmt.Errorf("at least one provider is required")
	}
	enabled := 0
	for name, p := range c.Providers {
		switch name {
		case "1inch", "paraswap", "lifi", "nearintents":
		default:
			return fmt.Errorf("unknown provider %q", name)
		}
		if p.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("at least one provider must be enabled")
	}
	if c.Telegram != nil {
		if c.Telegram.Token == "" {
			return fmt.Errorf("telegram.token is required when telegram is set")
		}
		if c.Telegram.ChatID == 0 {
			return fmt.Errorf("telegram.chat_id is required when telegram is set")
		}
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	return nil
}

// Provider returns the config for a provider name, with Enabled false when
// absent.
func (c *Config) Provider(name string) ProviderConfig {
	return c.Providers[name]
}
