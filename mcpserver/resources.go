package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gecko-tools/market-gateway/controller"
	"github.com/gecko-tools/market-gateway/operations"
)

// Resource URIs exposed on the protocol surface
const (
	ResourcePrices   = "coingecko://prices"
	ResourceTrending = "coingecko://trending"
	ResourceNewCoins = "coingecko://new-coins"
	ResourceDocs     = "coingecko://docs"
)

// Default lookup used by the parameterless prices resource
const (
	defaultPriceIDs        = "bitcoin,ethereum,solana"
	defaultPriceCurrencies = "usd"
)

// registerResources registers the three live resources plus the static
// documentation resource. Live reads go through the same controller as
// every other surface; failures come back as the failure envelope text
// so resource reads behave like tool calls instead of faulting the
// transport.
func registerResources(s *server.MCPServer, ctrl *controller.Controller) {
	resources := []struct {
		uri         string
		name        string
		description string
		mimeType    string
	}{
		{ResourcePrices, "Current Prices", "Current prices for a default set of major coins", "application/json"},
		{ResourceTrending, "Trending Coins", "Coins currently trending on CoinGecko search", "application/json"},
		{ResourceNewCoins, "New Listings", "Most recently listed coins on CoinGecko", "application/json"},
		{ResourceDocs, "API Documentation", "Description of the available operations", "text/plain"},
	}

	for _, res := range resources {
		uri := res.uri
		mimeType := res.mimeType
		s.AddResource(
			mcp.NewResource(res.uri, res.name,
				mcp.WithResourceDescription(res.description),
				mcp.WithMIMEType(res.mimeType),
			),
			func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				text, err := readResource(ctx, ctrl, uri)
				if err != nil {
					return nil, err
				}
				return []mcp.ResourceContents{
					mcp.TextResourceContents{
						URI:      uri,
						MIMEType: mimeType,
						Text:     text,
					},
				}, nil
			},
		)
	}
}

// readResource dispatches a resource read by URI. An unrecognized URI
// fails the call.
func readResource(ctx context.Context, ctrl *controller.Controller, uri string) (string, error) {
	switch uri {
	case ResourcePrices:
		envelope, err := ctrl.SimplePrice(ctx, operations.PriceParams{
			IDs:        defaultPriceIDs,
			Currencies: defaultPriceCurrencies,
		})
		return envelopeText(operations.SimplePriceDescriptor, envelope, err), nil
	case ResourceTrending:
		envelope, err := ctrl.Trending(ctx)
		return envelopeText(operations.TrendingDescriptor, envelope, err), nil
	case ResourceNewCoins:
		envelope, err := ctrl.NewCoins(ctx)
		return envelopeText(operations.NewCoinsDescriptor, envelope, err), nil
	case ResourceDocs:
		return docsText(), nil
	default:
		return "", fmt.Errorf("unknown resource URI: %s", uri)
	}
}

// envelopeText renders a success or failure envelope as JSON text
func envelopeText(d operations.Descriptor, envelope *operations.Envelope, err error) string {
	if err != nil {
		failure, _ := json.Marshal(operations.FailureEnvelope(d, err))
		return string(failure)
	}

	result, marshalErr := json.Marshal(envelope)
	if marshalErr != nil {
		failure, _ := json.Marshal(operations.ErrorEnvelope{
			Error:   d.ErrorCategory,
			Message: marshalErr.Error(),
		})
		return string(failure)
	}

	return string(result)
}

// docsText builds the static documentation resource from the descriptor
// table
func docsText() string {
	var b strings.Builder

	b.WriteString("CoinGecko Market Gateway\n")
	b.WriteString("========================\n\n")
	b.WriteString("Read-only market data proxied from the CoinGecko API.\n")
	b.WriteString("Every operation is available as an HTTP route and as an MCP tool.\n\n")

	for _, d := range operations.All() {
		b.WriteString(d.Name + "\n")
		b.WriteString("  " + d.Description + "\n")
		if len(d.Required) > 0 {
			b.WriteString("  required: " + strings.Join(d.RequiredNames(), ", ") + "\n")
		}
		if len(d.Optional) > 0 {
			names := make([]string, 0, len(d.Optional))
			for _, p := range d.Optional {
				names = append(names, p.Name)
			}
			b.WriteString("  optional: " + strings.Join(names, ", ") + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}
