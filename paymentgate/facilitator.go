package paymentgate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// FacilitatorClient talks to the external x402 facilitator service
type FacilitatorClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewFacilitatorClient creates a client for the given facilitator URL
func NewFacilitatorClient(baseURL string) *FacilitatorClient {
	return &FacilitatorClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Verify asks the facilitator to validate a payment payload against the
// requirements without executing it
func (c *FacilitatorClient) Verify(ctx context.Context, payload json.RawMessage, requirements PaymentRequirements) (*VerifyResponse, error) {
	var result VerifyResponse
	if err := c.post(ctx, "/verify", payload, requirements, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Settle asks the facilitator to execute a verified payment
func (c *FacilitatorClient) Settle(ctx context.Context, payload json.RawMessage, requirements PaymentRequirements) (*SettleResponse, error) {
	var result SettleResponse
	if err := c.post(ctx, "/settle", payload, requirements, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *FacilitatorClient) post(ctx context.Context, path string, payload json.RawMessage, requirements PaymentRequirements, result any) error {
	body, err := json.Marshal(VerifyRequest{
		X402Version:         X402Version,
		PaymentPayload:      payload,
		PaymentRequirements: requirements,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("facilitator request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("facilitator response unreadable: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("facilitator %s returned status %d: %s", path, resp.StatusCode, string(respBody))
	}

	return json.Unmarshal(respBody, result)
}
