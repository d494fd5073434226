package api

import (
	"net/http"
	"time"

	"github.com/gecko-tools/market-gateway/operations"
	"github.com/gecko-tools/market-gateway/paymentgate"
)

// handleRoot responds with the server capability descriptor
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	descriptors := operations.All()
	ops := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		ops = append(ops, d.Name)
	}

	s.sendJSONResponse(w, map[string]interface{}{
		"name":        ServerName,
		"version":     ServerVersion,
		"description": "Read-only CoinGecko market data over HTTP and MCP",
		"operations":  ops,
		"endpoints": []string{
			"/simple/price",
			"/search/trending",
			"/coins/list/new",
			"/coins/{chainId}/contract/{tokenAddress}",
			"/health",
			"/info",
			"/metrics",
		},
		"payment_enabled": s.gate.Enabled(),
	})
}

// handleHealth responds with 200 OK to indicate the service is running
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, map[string]interface{}{
		"status":    "ok",
		"uptime":    time.Since(s.startTime).Seconds(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// infoPricing is the pricing section of /info, present only when the
// payment gate is enabled
type infoPricing struct {
	Network string            `json:"network"`
	Routes  []infoPricedRoute `json:"routes"`
}

type infoPricedRoute struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

// handleInfo responds with the full capability and pricing descriptor,
// built from the same operation table the other surfaces use
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":       ServerName,
		"version":    ServerVersion,
		"operations": operations.All(),
		"payment": map[string]interface{}{
			"enabled": s.gate.Enabled(),
		},
	}

	if s.gate.Enabled() {
		info["pricing"] = buildPricing(s.cfg.Payment.Network, s.gate.Rules())
	}

	s.sendJSONResponse(w, info)
}

func buildPricing(network string, rules []paymentgate.Rule) infoPricing {
	pricing := infoPricing{Network: network}
	for _, rule := range rules {
		pricing.Routes = append(pricing.Routes, infoPricedRoute{
			Method:      rule.Method,
			Path:        rule.Path,
			Price:       rule.Price,
			Description: rule.Description,
		})
	}
	return pricing
}
