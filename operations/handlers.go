package operations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Fetcher performs a single upstream call. Implemented by the CoinGecko
// client; tests substitute a fake.
type Fetcher interface {
	Fetch(ctx context.Context, path string, query map[string]string) (json.RawMessage, error)
}

// Handlers implements the four operations as direct stateless proxies to
// the upstream API. Every method follows the same template: validate
// required inputs, build the upstream query from supplied values, perform
// exactly one upstream call, wrap the raw JSON in an Envelope.
type Handlers struct {
	fetcher Fetcher
}

// NewHandlers creates the operation handlers on top of the given fetcher
func NewHandlers(fetcher Fetcher) *Handlers {
	return &Handlers{fetcher: fetcher}
}

// SimplePrice looks up current prices for the requested coin IDs
func (h *Handlers) SimplePrice(ctx context.Context, params PriceParams) (*Envelope, error) {
	if missing := params.missingFields(); len(missing) > 0 {
		return nil, &ValidationError{MissingFields: missing}
	}

	query := params.Query()
	data, err := h.fetcher.Fetch(ctx, SimplePriceDescriptor.UpstreamPath, query)
	if err != nil {
		return nil, err
	}

	return &Envelope{Success: true, Data: data, Parameters: query}, nil
}

// Trending fetches the coins currently trending on CoinGecko search
func (h *Handlers) Trending(ctx context.Context) (*Envelope, error) {
	data, err := h.fetcher.Fetch(ctx, TrendingDescriptor.UpstreamPath, nil)
	if err != nil {
		return nil, err
	}

	return &Envelope{Success: true, Data: data, Parameters: map[string]string{}}, nil
}

// NewCoins fetches the most recently listed coins
func (h *Handlers) NewCoins(ctx context.Context) (*Envelope, error) {
	data, err := h.fetcher.Fetch(ctx, NewCoinsDescriptor.UpstreamPath, nil)
	if err != nil {
		return nil, err
	}

	return &Envelope{Success: true, Data: data, Parameters: map[string]string{}}, nil
}

// TokenByAddress looks up a token by platform and contract address. The
// identifiers travel in the path, the optional flags in the query.
func (h *Handlers) TokenByAddress(ctx context.Context, params TokenParams) (*Envelope, error) {
	if missing := params.missingFields(); len(missing) > 0 {
		return nil, &ValidationError{MissingFields: missing}
	}

	path := fmt.Sprintf(TokenByAddressDescriptor.UpstreamPath,
		url.PathEscape(params.ChainID), url.PathEscape(params.TokenAddress))

	query := params.Query()
	data, err := h.fetcher.Fetch(ctx, path, query)
	if err != nil {
		return nil, err
	}

	// Echo path identifiers alongside the query parameters
	echoed := map[string]string{
		"chainId":      params.ChainID,
		"tokenAddress": params.TokenAddress,
	}
	for key, value := range query {
		echoed[key] = value
	}

	return &Envelope{Success: true, Data: data, Parameters: echoed}, nil
}
