package config

import (
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ServiceName identifies this service in capability descriptors on
	// every surface
	ServiceName = "coingecko-market-gateway"
	// ServiceVersion is reported on /, /info and the MCP initialize
	// handshake
	ServiceVersion = "1.0.0"

	// TransportStdio selects the MCP stdio transport instead of the HTTP
	// server
	TransportStdio = "stdio"
)

// KeyType represents the type of CoinGecko API key in use
type KeyType int

const (
	// NoKey means no API key is configured, public API only
	NoKey KeyType = iota
	// DemoKey is a free demo key (CG- prefix), served by the public API
	DemoKey
	// ProKey is a paid key, served by the pro API
	ProKey
)

// CoinGeckoConfig holds upstream API settings
type CoinGeckoConfig struct {
	APIKey string `yaml:"api_key"`

	// Override URLs are used in tests to point the client at a mock server
	OverridePublicURL string `yaml:"override_public_url"`
	OverrideProURL    string `yaml:"override_pro_url"`
}

// PaymentConfig holds x402 payment gate settings. The gate is enabled only
// when both FacilitatorURL and PayTo are present.
type PaymentConfig struct {
	FacilitatorURL string `yaml:"facilitator_url"`
	PayTo          string `yaml:"pay_to"`
	Network        string `yaml:"network"`
}

// Config is the process configuration, loaded once at startup and treated
// as immutable afterwards
type Config struct {
	Port         string          `yaml:"port"`
	MCPTransport string          `yaml:"mcp_transport"`
	CoinGecko    CoinGeckoConfig `yaml:"coingecko"`
	Payment      PaymentConfig   `yaml:"payment"`
}

// Load reads configuration from a YAML file and applies environment
// overrides. A missing config file is tolerated: all settings can come
// from the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		log.Printf("Config: %s not found, using environment only", path)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("MCP_TRANSPORT"); v != "" {
		c.MCPTransport = v
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		c.CoinGecko.APIKey = v
	}
	if v := os.Getenv("X402_FACILITATOR_URL"); v != "" {
		c.Payment.FacilitatorURL = v
	}
	if v := os.Getenv("X402_PAY_TO"); v != "" {
		c.Payment.PayTo = v
	}
	if v := os.Getenv("X402_NETWORK"); v != "" {
		c.Payment.Network = v
	}
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.Payment.Network == "" {
		c.Payment.Network = "base-sepolia"
	}
}

// APIKeyType detects the type of the configured CoinGecko key using the
// same heuristic CoinGecko documents for demo keys
func (c *CoinGeckoConfig) APIKeyType() KeyType {
	if c.APIKey == "" {
		return NoKey
	}
	if strings.HasPrefix(c.APIKey, "CG-") ||
		strings.HasPrefix(c.APIKey, "demo_") ||
		strings.Contains(strings.ToLower(c.APIKey), "demo") {
		return DemoKey
	}
	return ProKey
}

// PaymentEnabled reports whether the x402 gate should be installed
func (c *Config) PaymentEnabled() bool {
	return c.Payment.FacilitatorURL != "" && c.Payment.PayTo != ""
}
