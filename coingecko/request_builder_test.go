package coingecko

import (
	"net/url"
	"testing"

	"github.com/gecko-tools/market-gateway/config"
	"github.com/stretchr/testify/assert"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		path     string
		expected string
	}{
		{
			name:     "simple join",
			baseURL:  "https://api.coingecko.com",
			path:     "/api/v3/simple/price",
			expected: "https://api.coingecko.com/api/v3/simple/price",
		},
		{
			name:     "trailing and leading slashes collapse",
			baseURL:  "https://api.coingecko.com/",
			path:     "api/v3/search/trending",
			expected: "https://api.coingecko.com/api/v3/search/trending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildURL(tt.baseURL, tt.path))
		})
	}
}

func TestRequestBuilder_With(t *testing.T) {
	builder := NewRequestBuilder("https://api.coingecko.com", "/api/v3/simple/price")

	builder.With("ids", "bitcoin,ethereum").
		With("vs_currencies", "usd").
		With("precision", "")

	parsedURL, err := url.Parse(builder.BuildURL())
	assert.NoError(t, err)

	query := parsedURL.Query()
	assert.Equal(t, "bitcoin,ethereum", query.Get("ids"))
	assert.Equal(t, "usd", query.Get("vs_currencies"))

	// Empty values must not reach the upstream query string
	_, present := query["precision"]
	assert.False(t, present)
}

func TestRequestBuilder_NoQueryString(t *testing.T) {
	builder := NewRequestBuilder("https://api.coingecko.com", "/api/v3/search/trending")

	assert.Equal(t, "https://api.coingecko.com/api/v3/search/trending", builder.BuildURL())
}

func TestRequestBuilder_WithParams(t *testing.T) {
	builder := NewRequestBuilder("https://api.coingecko.com", "/api/v3/simple/price")

	builder.WithParams(map[string]string{
		"ids":           "bitcoin",
		"vs_currencies": "usd",
		"precision":     "",
	})

	parsedURL, err := url.Parse(builder.BuildURL())
	assert.NoError(t, err)

	query := parsedURL.Query()
	assert.Equal(t, "bitcoin", query.Get("ids"))
	_, present := query["precision"]
	assert.False(t, present)
}

func TestRequestBuilder_ApiKeyHeaders(t *testing.T) {
	tests := []struct {
		name       string
		apiKey     string
		keyType    config.KeyType
		demoHeader string
		proHeader  string
	}{
		{
			name:       "demo key",
			apiKey:     "CG-demo-key",
			keyType:    config.DemoKey,
			demoHeader: "CG-demo-key",
		},
		{
			name:      "pro key",
			apiKey:    "pro-key",
			keyType:   config.ProKey,
			proHeader: "pro-key",
		},
		{
			name:    "no key",
			keyType: config.NoKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := NewRequestBuilder("https://api.coingecko.com", "/api/v3/search/trending").
				WithApiKey(tt.apiKey, tt.keyType)

			req, err := builder.Build()
			assert.NoError(t, err)

			assert.Equal(t, tt.demoHeader, req.Header.Get("x-cg-demo-api-key"))
			assert.Equal(t, tt.proHeader, req.Header.Get("x-cg-pro-api-key"))
			assert.Equal(t, "application/json", req.Header.Get("Accept"))
			assert.Equal(t, userAgent, req.Header.Get("User-Agent"))
		})
	}
}
