package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gecko-tools/market-gateway/config"
	"github.com/gecko-tools/market-gateway/controller"
	"github.com/gecko-tools/market-gateway/metrics"
	"github.com/gecko-tools/market-gateway/paymentgate"
)

const (
	// ServerName identifies this service in capability descriptors
	ServerName = config.ServiceName
	// ServerVersion is reported on / and /info
	ServerVersion = config.ServiceVersion
)

// Gate guards paid routes. The payment gate implements it; tests use a
// recording fake.
type Gate interface {
	Protect(method, path string, next http.Handler) http.Handler
	Enabled() bool
	Rules() []paymentgate.Rule
}

// Server is the HTTP surface: one GET route per operation plus the
// service endpoints (/, /health, /info, /metrics)
type Server struct {
	port       string
	controller *controller.Controller
	gate       Gate
	cfg        *config.Config
	metrics    *metrics.Writer
	server     *http.Server
	startTime  time.Time
}

// New creates the HTTP server for the given controller and payment gate
func New(cfg *config.Config, ctrl *controller.Controller, gate Gate) *Server {
	return &Server{
		port:       cfg.Port,
		controller: ctrl,
		gate:       gate,
		cfg:        cfg,
		metrics:    metrics.NewWriter(metrics.SurfaceHTTP),
		startTime:  time.Now(),
	}
}

// Router builds the route table. Data routes are wrapped by the payment
// gate when it is enabled; service endpoints are never gated.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()

	// The fixed /coins/list/new route must be registered ahead of the
	// templated contract route.
	s.handlePaid(router, "/simple/price", s.handleSimplePrice)
	s.handlePaid(router, "/search/trending", s.handleTrending)
	s.handlePaid(router, "/coins/list/new", s.handleNewCoins)
	s.handlePaid(router, "/coins/{chainId}/contract/{tokenAddress}", s.handleTokenByAddress)

	router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/info", s.handleInfo).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func (s *Server) handlePaid(router *mux.Router, path string, handler http.HandlerFunc) {
	router.Handle(path, s.gate.Protect(http.MethodGet, path, handler)).Methods(http.MethodGet)
}

// Start begins serving in the background
func (s *Server) Start() error {
	s.startTime = time.Now()
	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Router(),
	}

	log.Printf("Server starting at http://localhost:%s", s.port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}
}
