// Package paymentgate implements an optional x402 payment gate in front
// of the paid HTTP routes. The gate only transports payment payloads
// between the caller and the configured facilitator; verification and
// settlement happen entirely inside the facilitator.
package paymentgate

import "encoding/json"

// X402Version is the protocol version spoken with clients and the
// facilitator
const X402Version = 1

// PaymentRequirements describes one accepted way to pay for a resource
type PaymentRequirements struct {
	Scheme            string         `json:"scheme"`
	Network           string         `json:"network"`
	MaxAmountRequired string         `json:"maxAmountRequired"`
	Resource          string         `json:"resource"`
	Description       string         `json:"description"`
	MimeType          string         `json:"mimeType"`
	PayTo             string         `json:"payTo"`
	MaxTimeoutSeconds int64          `json:"maxTimeoutSeconds"`
	Asset             string         `json:"asset"`
	Extra             map[string]any `json:"extra,omitempty"`
}

// PaymentRequiredResponse is the 402 response body
type PaymentRequiredResponse struct {
	X402Version int                   `json:"x402Version"`
	Error       string                `json:"error"`
	Accepts     []PaymentRequirements `json:"accepts"`
}

// VerifyRequest is the body sent to the facilitator's /verify and /settle
// endpoints. The payment payload is opaque to the gate: its signature and
// authorization fields are the facilitator's business.
type VerifyRequest struct {
	X402Version         int                 `json:"x402Version"`
	PaymentPayload      json.RawMessage     `json:"paymentPayload"`
	PaymentRequirements PaymentRequirements `json:"paymentRequirements"`
}

// SettleRequest carries the same body as VerifyRequest
type SettleRequest = VerifyRequest

// VerifyResponse is the facilitator's verification result
type VerifyResponse struct {
	IsValid       bool   `json:"isValid"`
	InvalidReason string `json:"invalidReason,omitempty"`
	Payer         string `json:"payer,omitempty"`
}

// SettleResponse is the facilitator's settlement result
type SettleResponse struct {
	Success     bool   `json:"success"`
	ErrorReason string `json:"errorReason,omitempty"`
	Transaction string `json:"transaction,omitempty"`
	Network     string `json:"network,omitempty"`
	Payer       string `json:"payer,omitempty"`
}

// USDC contract addresses per supported network
var usdcAssets = map[string]string{
	"base":         "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
	"base-sepolia": "0x036CbD53842c5426634e7929541eC2318f3dCF7e",
}
