package coingecko

import "fmt"

// UpstreamError is returned when CoinGecko responds with a non-2xx status.
// The body is kept for error messages only, it is never parsed.
type UpstreamError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("CoinGecko API error: %d %s", e.Status, e.StatusText)
}

// TransportError is returned when the outbound call could not complete at
// all (DNS failure, connection refused, cancelled context)
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("CoinGecko request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
