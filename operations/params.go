package operations

// PriceParams are the inputs of the price lookup operation. All fields
// are raw strings: an empty string means the caller did not supply the
// parameter. Surfaces stringify booleans and numbers before handing them
// over, so the handler stays fully typed while values pass through to the
// upstream query unchanged.
type PriceParams struct {
	IDs                  string
	Currencies           string
	IncludeMarketCap     string
	Include24hrVol       string
	Include24hrChange    string
	IncludeLastUpdatedAt string
	Precision            string
}

// Query builds the upstream query map, keeping only supplied values
func (p PriceParams) Query() map[string]string {
	query := map[string]string{
		"ids":           p.IDs,
		"vs_currencies": p.Currencies,
	}
	putIfSet(query, "include_market_cap", p.IncludeMarketCap)
	putIfSet(query, "include_24hr_vol", p.Include24hrVol)
	putIfSet(query, "include_24hr_change", p.Include24hrChange)
	putIfSet(query, "include_last_updated_at", p.IncludeLastUpdatedAt)
	putIfSet(query, "precision", p.Precision)
	return query
}

func (p PriceParams) missingFields() []string {
	var missing []string
	if p.IDs == "" {
		missing = append(missing, "ids")
	}
	if p.Currencies == "" {
		missing = append(missing, "vs_currencies")
	}
	return missing
}

// TokenParams are the inputs of the token-by-address operation. ChainID
// and TokenAddress are path-level identifiers; the rest are optional
// flags passed through as raw strings.
type TokenParams struct {
	ChainID       string
	TokenAddress  string
	Localization  string
	Tickers       string
	MarketData    string
	CommunityData string
	DeveloperData string
	Sparkline     string
}

// Query builds the upstream query map, keeping only supplied values
func (p TokenParams) Query() map[string]string {
	query := map[string]string{}
	putIfSet(query, "localization", p.Localization)
	putIfSet(query, "tickers", p.Tickers)
	putIfSet(query, "market_data", p.MarketData)
	putIfSet(query, "community_data", p.CommunityData)
	putIfSet(query, "developer_data", p.DeveloperData)
	putIfSet(query, "sparkline", p.Sparkline)
	return query
}

func (p TokenParams) missingFields() []string {
	var missing []string
	if p.ChainID == "" {
		missing = append(missing, "chainId")
	}
	if p.TokenAddress == "" {
		missing = append(missing, "tokenAddress")
	}
	return missing
}

func putIfSet(query map[string]string, key, value string) {
	if value != "" {
		query[key] = value
	}
}
