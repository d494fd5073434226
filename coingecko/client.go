package coingecko

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gecko-tools/market-gateway/config"
)

// StatusHandler receives the outcome of every upstream request. The
// metrics writer implements it.
type StatusHandler interface {
	OnRequest(status string)
}

// Client performs calls against the CoinGecko REST API. Every call is a
// single attempt: no retries, no backoff, no caching. A failed call is a
// failed operation.
type Client struct {
	cfg           *config.CoinGeckoConfig
	httpClient    *http.Client
	statusHandler StatusHandler
}

// NewClient creates a CoinGecko API client from the given configuration
func NewClient(cfg *config.CoinGeckoConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

// SetStatusHandler sets the handler notified about request outcomes
func (c *Client) SetStatusHandler(handler StatusHandler) {
	c.statusHandler = handler
}

// Fetch performs a GET against the given API path with the given query
// parameters and returns the raw JSON body. Path segment identifiers must
// already be interpolated into path. Query entries with empty values are
// omitted.
func (c *Client) Fetch(ctx context.Context, path string, query map[string]string) (json.RawMessage, error) {
	req, err := NewRequestBuilder(c.baseURL(), path).
		WithParams(query).
		WithApiKey(c.cfg.APIKey, c.cfg.APIKeyType()).
		Build()
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		c.recordStatus("error")
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordStatus("error")
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.recordStatus("error")
		return nil, &UpstreamError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Body:       string(body),
		}
	}

	c.recordStatus("success")
	log.Printf("CoinGecko: GET %s completed in %.2fs (%.2f KB)",
		path, time.Since(requestStart).Seconds(), float64(len(body))/1024)

	return json.RawMessage(body), nil
}

// Returns the appropriate API base URL based on the configured key type
func (c *Client) baseURL() string {
	switch c.cfg.APIKeyType() {
	case config.ProKey:
		if c.cfg.OverrideProURL != "" {
			return c.cfg.OverrideProURL
		}
		return ProURL
	default:
		if c.cfg.OverridePublicURL != "" {
			return c.cfg.OverridePublicURL
		}
		return PublicURL
	}
}

func (c *Client) recordStatus(status string) {
	if c.statusHandler != nil {
		c.statusHandler.OnRequest(status)
	}
}
