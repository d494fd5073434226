// Package operations implements the four market-data operations shared by
// every surface: HTTP routes, MCP tools and the controller facade. The
// operation metadata (names, parameters, upstream paths) is declared once
// in the descriptor table below and consumed everywhere else.
package operations

// Operation names, used as tool names on the MCP surface and as keys in
// the capability descriptor
const (
	OpSimplePrice    = "get_crypto_price"
	OpTrending       = "get_trending_coins"
	OpNewCoins       = "get_new_coins"
	OpTokenByAddress = "get_token_by_address"
)

// Param describes a single caller-supplied parameter
type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Descriptor is the static definition of one operation: its parameters,
// requiredness and upstream path. Defined once at process start, never
// mutated.
type Descriptor struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	UpstreamPath  string  `json:"-"`
	ErrorCategory string  `json:"-"`
	Required      []Param `json:"required_params"`
	Optional      []Param `json:"optional_params"`
}

// RequiredNames returns the names of all required parameters
func (d Descriptor) RequiredNames() []string {
	names := make([]string, 0, len(d.Required))
	for _, p := range d.Required {
		names = append(names, p.Name)
	}
	return names
}

var (
	// SimplePriceDescriptor describes the price lookup operation
	SimplePriceDescriptor = Descriptor{
		Name:          OpSimplePrice,
		Description:   "Get current prices for one or more cryptocurrencies in the given quote currencies",
		UpstreamPath:  "/api/v3/simple/price",
		ErrorCategory: "price_lookup_failed",
		Required: []Param{
			{Name: "ids", Type: "string", Description: "Comma-separated CoinGecko coin IDs (e.g. 'bitcoin,ethereum')"},
			{Name: "vs_currencies", Type: "string", Description: "Comma-separated quote currencies (e.g. 'usd,eur')"},
		},
		Optional: []Param{
			{Name: "include_market_cap", Type: "boolean", Description: "Include market capitalization"},
			{Name: "include_24hr_vol", Type: "boolean", Description: "Include 24 hour volume"},
			{Name: "include_24hr_change", Type: "boolean", Description: "Include 24 hour price change"},
			{Name: "include_last_updated_at", Type: "boolean", Description: "Include last updated timestamp"},
			{Name: "precision", Type: "number", Description: "Decimal places for price values"},
		},
	}

	// TrendingDescriptor describes the trending coins operation
	TrendingDescriptor = Descriptor{
		Name:          OpTrending,
		Description:   "Get the coins currently trending on CoinGecko search",
		UpstreamPath:  "/api/v3/search/trending",
		ErrorCategory: "trending_lookup_failed",
	}

	// NewCoinsDescriptor describes the new listings operation
	NewCoinsDescriptor = Descriptor{
		Name:          OpNewCoins,
		Description:   "Get the most recently listed coins on CoinGecko",
		UpstreamPath:  "/api/v3/coins/list/new",
		ErrorCategory: "new_coins_lookup_failed",
	}

	// TokenByAddressDescriptor describes the token-by-contract-address
	// operation. Its upstream path is a template interpolated with the
	// chain ID and contract address.
	TokenByAddressDescriptor = Descriptor{
		Name:          OpTokenByAddress,
		Description:   "Look up token data by blockchain platform and contract address",
		UpstreamPath:  "/api/v3/coins/%s/contract/%s",
		ErrorCategory: "token_lookup_failed",
		Required: []Param{
			{Name: "chainId", Type: "string", Description: "CoinGecko asset platform ID (e.g. 'ethereum')"},
			{Name: "tokenAddress", Type: "string", Description: "Token contract address"},
		},
		Optional: []Param{
			{Name: "localization", Type: "boolean", Description: "Include localized names"},
			{Name: "tickers", Type: "boolean", Description: "Include ticker data"},
			{Name: "market_data", Type: "boolean", Description: "Include market data"},
			{Name: "community_data", Type: "boolean", Description: "Include community data"},
			{Name: "developer_data", Type: "boolean", Description: "Include developer data"},
			{Name: "sparkline", Type: "boolean", Description: "Include 7 day sparkline"},
		},
	}
)

// All returns the full descriptor table in a stable order
func All() []Descriptor {
	return []Descriptor{
		SimplePriceDescriptor,
		TrendingDescriptor,
		NewCoinsDescriptor,
		TokenByAddressDescriptor,
	}
}

// ByName returns the descriptor for the given operation name
func ByName(name string) (Descriptor, bool) {
	for _, d := range All() {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}
