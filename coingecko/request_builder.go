package coingecko

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gecko-tools/market-gateway/config"
)

const (
	// Base URL for public API
	PublicURL = "https://api.coingecko.com"
	// Base URL for Pro API
	ProURL = "https://pro-api.coingecko.com"

	userAgent = "Mozilla/5.0 Market-Gateway"
)

// buildURL safely combines a base URL with a path
func buildURL(baseURL, path string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	trimmedPath := strings.TrimLeft(path, "/")

	return baseURL + "/" + trimmedPath
}

// RequestBuilder implements the Builder pattern for CoinGecko API requests
type RequestBuilder struct {
	baseURL string
	apiPath string

	params map[string]string

	apiKey  string
	keyType config.KeyType

	headers map[string]string
}

// NewRequestBuilder creates a new request builder for a CoinGecko endpoint
func NewRequestBuilder(baseURL, apiPath string) *RequestBuilder {
	rb := &RequestBuilder{
		baseURL: baseURL,
		apiPath: apiPath,
		params:  make(map[string]string),
		headers: make(map[string]string),
	}

	rb.headers["Accept"] = "application/json"

	return rb
}

// With adds a query parameter. Empty values are dropped because the
// upstream API rejects empty strings for some fields.
func (rb *RequestBuilder) With(key, value string) *RequestBuilder {
	if value != "" {
		rb.params[key] = value
	}
	return rb
}

// WithParams adds every non-empty entry of the given query map
func (rb *RequestBuilder) WithParams(params map[string]string) *RequestBuilder {
	for key, value := range params {
		rb.With(key, value)
	}
	return rb
}

// WithApiKey sets the API key and its type. The key travels as a header,
// never in the query string.
func (rb *RequestBuilder) WithApiKey(apiKey string, keyType config.KeyType) *RequestBuilder {
	rb.apiKey = apiKey
	rb.keyType = keyType
	return rb
}

// BuildURL builds the complete URL for the request
func (rb *RequestBuilder) BuildURL() string {
	fullPath := buildURL(rb.baseURL, rb.apiPath)

	query := url.Values{}
	for key, value := range rb.params {
		query.Add(key, value)
	}

	finalURL := fullPath
	if queryString := query.Encode(); queryString != "" {
		finalURL = fmt.Sprintf("%s?%s", finalURL, queryString)
	}

	return finalURL
}

// Build creates an http.Request object
func (rb *RequestBuilder) Build() (*http.Request, error) {
	req, err := http.NewRequest(http.MethodGet, rb.BuildURL(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	for key, value := range rb.headers {
		req.Header.Set(key, value)
	}

	if rb.apiKey != "" {
		switch rb.keyType {
		case config.ProKey:
			req.Header.Set("x-cg-pro-api-key", rb.apiKey)
		case config.DemoKey:
			req.Header.Set("x-cg-demo-api-key", rb.apiKey)
		}
	}

	return req, nil
}
