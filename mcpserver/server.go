// Package mcpserver exposes the four market-data operations over the
// Model Context Protocol: one tool per operation, three canned prompts
// and four read-only resources. All operation metadata comes from the
// shared descriptor table in the operations package.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/gecko-tools/market-gateway/config"
	"github.com/gecko-tools/market-gateway/controller"
	"github.com/gecko-tools/market-gateway/metrics"
)

// New builds the MCP server with every tool, prompt and resource
// registered
func New(ctrl *controller.Controller) *server.MCPServer {
	s := server.NewMCPServer(
		config.ServiceName,
		config.ServiceVersion,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Read-only CoinGecko market data: price lookup, trending coins, new listings and token lookup by contract address."),
	)

	writer := metrics.NewWriter(metrics.SurfaceMCP)

	registerTools(s, ctrl, writer)
	registerPrompts(s)
	registerResources(s, ctrl)

	return s
}

// ServeStdio runs the server over stdin/stdout until the client
// disconnects
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
