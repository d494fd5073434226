package paymentgate

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gecko-tools/market-gateway/config"
	"github.com/gecko-tools/market-gateway/metrics"
)

// Rule maps one HTTP route to its price. The table of rules is static:
// defined at process start, consulted read-only afterwards.
type Rule struct {
	Method      string
	Path        string
	Price       string // atomic USDC units
	Description string
}

// DefaultRules is the price table for the paid market-data routes. Paths
// must match the mux route templates they guard.
func DefaultRules() []Rule {
	return []Rule{
		{Method: http.MethodGet, Path: "/simple/price", Price: "1000", Description: "Cryptocurrency price lookup"},
		{Method: http.MethodGet, Path: "/search/trending", Price: "1000", Description: "Trending coins"},
		{Method: http.MethodGet, Path: "/coins/list/new", Price: "1000", Description: "Newly listed coins"},
		{Method: http.MethodGet, Path: "/coins/{chainId}/contract/{tokenAddress}", Price: "2000", Description: "Token lookup by contract address"},
	}
}

// Facilitator is the external verify/settle collaborator
type Facilitator interface {
	Verify(ctx context.Context, payload json.RawMessage, requirements PaymentRequirements) (*VerifyResponse, error)
	Settle(ctx context.Context, payload json.RawMessage, requirements PaymentRequirements) (*SettleResponse, error)
}

// Gate has exactly two states, fixed at construction: enabled when both a
// facilitator URL and a payout address are configured, disabled
// otherwise. A disabled gate leaves every route untouched.
type Gate struct {
	enabled     bool
	payTo       string
	network     string
	asset       string
	rules       []Rule
	facilitator Facilitator
}

// New creates the gate from payment configuration
func New(cfg config.PaymentConfig) *Gate {
	gate := &Gate{
		payTo:   cfg.PayTo,
		network: cfg.Network,
		asset:   usdcAssets[cfg.Network],
		rules:   DefaultRules(),
	}

	if cfg.FacilitatorURL != "" && cfg.PayTo != "" {
		gate.enabled = true
		gate.facilitator = NewFacilitatorClient(cfg.FacilitatorURL)
		log.Printf("PaymentGate: enabled, network=%s payTo=%s", cfg.Network, cfg.PayTo)
	} else {
		log.Printf("PaymentGate: disabled (facilitator URL or payout address not configured)")
	}

	return gate
}

// SetFacilitator replaces the facilitator client, used by tests
func (g *Gate) SetFacilitator(f Facilitator) {
	g.facilitator = f
}

// Enabled reports the gate state
func (g *Gate) Enabled() bool {
	return g.enabled
}

// Rules returns the static price table
func (g *Gate) Rules() []Rule {
	return g.rules
}

// Requirements builds the payment requirements for a rule and the
// concrete resource URL being requested
func (g *Gate) Requirements(rule Rule, resource string) PaymentRequirements {
	return PaymentRequirements{
		Scheme:            "exact",
		Network:           g.network,
		MaxAmountRequired: rule.Price,
		Resource:          resource,
		Description:       rule.Description,
		MimeType:          "application/json",
		PayTo:             g.payTo,
		MaxTimeoutSeconds: 60,
		Asset:             g.asset,
	}
}

// Protect wraps next with the payment check for the rule registered under
// (method, path). Routes without a rule and a disabled gate pass through
// unchanged.
func (g *Gate) Protect(method, path string, next http.Handler) http.Handler {
	if !g.enabled {
		return next
	}

	rule, found := g.lookupRule(method, path)
	if !found {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resource := requestResource(r)
		requirements := g.Requirements(rule, resource)

		header := r.Header.Get("X-PAYMENT")
		if header == "" {
			metrics.RecordPaymentCheck("required")
			g.sendPaymentRequired(w, requirements, "X-PAYMENT header is required")
			return
		}

		payload, err := base64.StdEncoding.DecodeString(header)
		if err != nil {
			metrics.RecordPaymentCheck("failed")
			g.sendPaymentRequired(w, requirements, "invalid X-PAYMENT header: not valid base64")
			return
		}

		verification, err := g.facilitator.Verify(r.Context(), payload, requirements)
		if err != nil {
			metrics.RecordPaymentCheck("failed")
			g.sendPaymentRequired(w, requirements, "payment verification failed: "+err.Error())
			return
		}
		if !verification.IsValid {
			metrics.RecordPaymentCheck("failed")
			g.sendPaymentRequired(w, requirements, "invalid payment: "+verification.InvalidReason)
			return
		}

		settlement, err := g.facilitator.Settle(r.Context(), payload, requirements)
		if err != nil {
			metrics.RecordPaymentCheck("failed")
			g.sendPaymentRequired(w, requirements, "payment settlement failed: "+err.Error())
			return
		}
		if !settlement.Success {
			metrics.RecordPaymentCheck("failed")
			g.sendPaymentRequired(w, requirements, "payment settlement failed: "+settlement.ErrorReason)
			return
		}

		if encoded, err := json.Marshal(settlement); err == nil {
			w.Header().Set("X-PAYMENT-RESPONSE", base64.StdEncoding.EncodeToString(encoded))
		}

		metrics.RecordPaymentCheck("settled")
		next.ServeHTTP(w, r)
	})
}

func (g *Gate) lookupRule(method, path string) (Rule, bool) {
	for _, rule := range g.rules {
		if rule.Method == method && rule.Path == path {
			return rule, true
		}
	}
	return Rule{}, false
}

func (g *Gate) sendPaymentRequired(w http.ResponseWriter, requirements PaymentRequirements, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusPaymentRequired)

	json.NewEncoder(w).Encode(PaymentRequiredResponse{
		X402Version: X402Version,
		Error:       message,
		Accepts:     []PaymentRequirements{requirements},
	})
}

func requestResource(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.Path
}
