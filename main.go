package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gecko-tools/market-gateway/api"
	"github.com/gecko-tools/market-gateway/coingecko"
	"github.com/gecko-tools/market-gateway/config"
	"github.com/gecko-tools/market-gateway/controller"
	"github.com/gecko-tools/market-gateway/mcpserver"
	"github.com/gecko-tools/market-gateway/metrics"
	"github.com/gecko-tools/market-gateway/operations"
	"github.com/gecko-tools/market-gateway/paymentgate"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Wire the upstream client and the operation layer shared by both
	// surfaces
	client := coingecko.NewClient(&cfg.CoinGecko)
	ctrl := controller.New(operations.NewHandlers(client))

	// Serve over stdio when running as an MCP server
	if cfg.MCPTransport == config.TransportStdio {
		client.SetStatusHandler(metrics.NewWriter(metrics.SurfaceMCP))
		log.Println("Starting MCP server on stdio")
		if err := mcpserver.ServeStdio(mcpserver.New(ctrl)); err != nil {
			log.Fatal("MCP server failed:", err)
		}
		return
	}

	client.SetStatusHandler(metrics.NewWriter(metrics.SurfaceHTTP))

	gate := paymentgate.New(cfg.Payment)

	// Create and start HTTP server
	server := api.New(cfg, ctrl, gate)
	if err := server.Start(); err != nil {
		log.Fatal("Server failed:", err)
	}
	defer server.Stop()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Received shutdown signal, stopping server...")
}
