package operations

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gecko-tools/market-gateway/coingecko"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher records every upstream call and plays back canned responses
type fakeFetcher struct {
	calls []fetchCall

	response json.RawMessage
	err      error
}

type fetchCall struct {
	path  string
	query map[string]string
}

func (f *fakeFetcher) Fetch(ctx context.Context, path string, query map[string]string) (json.RawMessage, error) {
	f.calls = append(f.calls, fetchCall{path: path, query: query})
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func TestSimplePrice(t *testing.T) {
	upstreamJSON := `{"bitcoin":{"usd":50000},"ethereum":{"usd":3000}}`
	fetcher := &fakeFetcher{response: json.RawMessage(upstreamJSON)}
	handlers := NewHandlers(fetcher)

	envelope, err := handlers.SimplePrice(context.Background(), PriceParams{
		IDs:        "bitcoin,ethereum",
		Currencies: "usd",
	})

	require.NoError(t, err)
	assert.True(t, envelope.Success)
	assert.JSONEq(t, upstreamJSON, string(envelope.Data))
	assert.Equal(t, map[string]string{
		"ids":           "bitcoin,ethereum",
		"vs_currencies": "usd",
	}, envelope.Parameters)

	require.Len(t, fetcher.calls, 1)
	assert.Equal(t, "/api/v3/simple/price", fetcher.calls[0].path)
}

func TestSimplePriceOptionalParams(t *testing.T) {
	tests := []struct {
		name     string
		params   PriceParams
		expected map[string]string
	}{
		{
			name: "supplied flags included stringified",
			params: PriceParams{
				IDs:               "bitcoin",
				Currencies:        "usd",
				IncludeMarketCap:  "true",
				Include24hrChange: "false",
				Precision:         "4",
			},
			expected: map[string]string{
				"ids":                 "bitcoin",
				"vs_currencies":       "usd",
				"include_market_cap":  "true",
				"include_24hr_change": "false",
				"precision":           "4",
			},
		},
		{
			name: "empty flags excluded",
			params: PriceParams{
				IDs:        "bitcoin",
				Currencies: "usd",
			},
			expected: map[string]string{
				"ids":           "bitcoin",
				"vs_currencies": "usd",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{response: json.RawMessage(`{}`)}
			handlers := NewHandlers(fetcher)

			_, err := handlers.SimplePrice(context.Background(), tt.params)

			require.NoError(t, err)
			require.Len(t, fetcher.calls, 1)
			assert.Equal(t, tt.expected, fetcher.calls[0].query)
		})
	}
}

func TestSimplePriceValidation(t *testing.T) {
	tests := []struct {
		name    string
		params  PriceParams
		missing []string
	}{
		{"missing ids", PriceParams{Currencies: "usd"}, []string{"ids"}},
		{"missing vs_currencies", PriceParams{IDs: "bitcoin"}, []string{"vs_currencies"}},
		{"missing both", PriceParams{}, []string{"ids", "vs_currencies"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{}
			handlers := NewHandlers(fetcher)

			_, err := handlers.SimplePrice(context.Background(), tt.params)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.missing, validationErr.MissingFields)

			// Fail-fast: no upstream call may be attempted
			assert.Empty(t, fetcher.calls)
		})
	}
}

func TestTrendingAndNewCoins(t *testing.T) {
	tests := []struct {
		name         string
		call         func(*Handlers) (*Envelope, error)
		expectedPath string
	}{
		{
			name: "trending",
			call: func(h *Handlers) (*Envelope, error) {
				return h.Trending(context.Background())
			},
			expectedPath: "/api/v3/search/trending",
		},
		{
			name: "new coins",
			call: func(h *Handlers) (*Envelope, error) {
				return h.NewCoins(context.Background())
			},
			expectedPath: "/api/v3/coins/list/new",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{response: json.RawMessage(`{"coins":[]}`)}
			handlers := NewHandlers(fetcher)

			envelope, err := tt.call(handlers)

			require.NoError(t, err)
			assert.True(t, envelope.Success)
			assert.JSONEq(t, `{"coins":[]}`, string(envelope.Data))
			assert.Empty(t, envelope.Parameters)

			require.Len(t, fetcher.calls, 1)
			assert.Equal(t, tt.expectedPath, fetcher.calls[0].path)
			assert.Empty(t, fetcher.calls[0].query)
		})
	}
}

func TestTokenByAddress(t *testing.T) {
	fetcher := &fakeFetcher{response: json.RawMessage(`{"id":"usd-coin"}`)}
	handlers := NewHandlers(fetcher)

	envelope, err := handlers.TokenByAddress(context.Background(), TokenParams{
		ChainID:      "ethereum",
		TokenAddress: "0xABC",
		MarketData:   "true",
	})

	require.NoError(t, err)
	assert.True(t, envelope.Success)

	require.Len(t, fetcher.calls, 1)
	assert.Equal(t, "/api/v3/coins/ethereum/contract/0xABC", fetcher.calls[0].path)
	assert.Equal(t, map[string]string{"market_data": "true"}, fetcher.calls[0].query)

	assert.Equal(t, map[string]string{
		"chainId":      "ethereum",
		"tokenAddress": "0xABC",
		"market_data":  "true",
	}, envelope.Parameters)
}

func TestTokenByAddressNoOptions(t *testing.T) {
	fetcher := &fakeFetcher{response: json.RawMessage(`{}`)}
	handlers := NewHandlers(fetcher)

	_, err := handlers.TokenByAddress(context.Background(), TokenParams{
		ChainID:      "ethereum",
		TokenAddress: "0xABC",
	})

	require.NoError(t, err)
	require.Len(t, fetcher.calls, 1)

	// No optional keys at all when none are supplied
	assert.Empty(t, fetcher.calls[0].query)
}

func TestTokenByAddressValidation(t *testing.T) {
	fetcher := &fakeFetcher{}
	handlers := NewHandlers(fetcher)

	_, err := handlers.TokenByAddress(context.Background(), TokenParams{ChainID: "ethereum"})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"tokenAddress"}, validationErr.MissingFields)
	assert.Empty(t, fetcher.calls)
}

func TestHandlerUpstreamError(t *testing.T) {
	fetcher := &fakeFetcher{err: &coingecko.UpstreamError{Status: 404, StatusText: "Not Found"}}
	handlers := NewHandlers(fetcher)

	_, err := handlers.Trending(context.Background())

	require.Error(t, err)
	assert.True(t, IsUpstream(err))

	envelope := FailureEnvelope(TrendingDescriptor, err)
	assert.Equal(t, "trending_lookup_failed", envelope.Error)
	assert.Contains(t, envelope.Message, "404")

	// One failed call stays one failed call
	assert.Len(t, fetcher.calls, 1)
}

func TestFailureEnvelopeValidation(t *testing.T) {
	err := &ValidationError{MissingFields: []string{"ids"}}

	envelope := FailureEnvelope(SimplePriceDescriptor, err)

	assert.Equal(t, "missing_required_parameters", envelope.Error)
	assert.Contains(t, envelope.Message, "ids")
	assert.Equal(t, []string{"ids", "vs_currencies"}, envelope.Required)
}
