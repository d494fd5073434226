package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/gecko-tools/market-gateway/operations"
)

// handleSimplePrice implements GET /simple/price. Required inputs come
// from the query string; optional flags pass through verbatim.
func (s *Server) handleSimplePrice(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	query := r.URL.Query()

	params := operations.PriceParams{
		IDs:                  query.Get("ids"),
		Currencies:           query.Get("vs_currencies"),
		IncludeMarketCap:     query.Get("include_market_cap"),
		Include24hrVol:       query.Get("include_24hr_vol"),
		Include24hrChange:    query.Get("include_24hr_change"),
		IncludeLastUpdatedAt: query.Get("include_last_updated_at"),
		Precision:            query.Get("precision"),
	}

	envelope, err := s.controller.SimplePrice(r.Context(), params)
	if err != nil {
		s.writeOperationFailure(w, operations.SimplePriceDescriptor, err, start)
		return
	}

	s.metrics.RecordOperation(operations.OpSimplePrice, "success", start)
	s.sendJSONResponse(w, envelope)
}

// handleTrending implements GET /search/trending
func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	envelope, err := s.controller.Trending(r.Context())
	if err != nil {
		s.writeOperationFailure(w, operations.TrendingDescriptor, err, start)
		return
	}

	s.metrics.RecordOperation(operations.OpTrending, "success", start)
	s.sendJSONResponse(w, envelope)
}

// handleNewCoins implements GET /coins/list/new
func (s *Server) handleNewCoins(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	envelope, err := s.controller.NewCoins(r.Context())
	if err != nil {
		s.writeOperationFailure(w, operations.NewCoinsDescriptor, err, start)
		return
	}

	s.metrics.RecordOperation(operations.OpNewCoins, "success", start)
	s.sendJSONResponse(w, envelope)
}

// handleTokenByAddress implements GET /coins/{chainId}/contract/{tokenAddress}
func (s *Server) handleTokenByAddress(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	vars := mux.Vars(r)
	query := r.URL.Query()

	params := operations.TokenParams{
		ChainID:       vars["chainId"],
		TokenAddress:  vars["tokenAddress"],
		Localization:  query.Get("localization"),
		Tickers:       query.Get("tickers"),
		MarketData:    query.Get("market_data"),
		CommunityData: query.Get("community_data"),
		DeveloperData: query.Get("developer_data"),
		Sparkline:     query.Get("sparkline"),
	}

	envelope, err := s.controller.TokenByAddress(r.Context(), params)
	if err != nil {
		s.writeOperationFailure(w, operations.TokenByAddressDescriptor, err, start)
		return
	}

	s.metrics.RecordOperation(operations.OpTokenByAddress, "success", start)
	s.sendJSONResponse(w, envelope)
}

// writeOperationFailure maps operation errors onto HTTP: validation
// failures become 400, upstream and transport failures become 500. The
// body is always the uniform failure envelope.
func (s *Server) writeOperationFailure(w http.ResponseWriter, d operations.Descriptor, err error, start time.Time) {
	status := http.StatusInternalServerError
	outcome := "error"
	if operations.IsValidation(err) {
		status = http.StatusBadRequest
		outcome = "validation_error"
	}

	s.metrics.RecordOperation(d.Name, outcome, start)
	s.sendJSONResponseStatus(w, status, operations.FailureEnvelope(d, err))
}
