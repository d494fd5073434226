package operations

import (
	"encoding/json"
	"errors"

	"github.com/gecko-tools/market-gateway/coingecko"
)

// Envelope is the uniform success wrapper returned by every operation:
// the raw upstream JSON plus the upstream query echoed back
type Envelope struct {
	Success    bool              `json:"success"`
	Data       json.RawMessage   `json:"data"`
	Parameters map[string]string `json:"parameters"`
}

// ErrorEnvelope is the uniform failure wrapper. Required is populated for
// validation failures and lists the operation's full required set.
type ErrorEnvelope struct {
	Error    string   `json:"error"`
	Message  string   `json:"message"`
	Required []string `json:"required,omitempty"`
}

// FailureEnvelope converts an operation error into the failure shape for
// the given descriptor. Validation failures carry the required parameter
// list; upstream and transport failures carry the operation's error
// category and the underlying message. Stack traces never leak, only the
// message text.
func FailureEnvelope(d Descriptor, err error) ErrorEnvelope {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ErrorEnvelope{
			Error:    "missing_required_parameters",
			Message:  validationErr.Error(),
			Required: d.RequiredNames(),
		}
	}

	return ErrorEnvelope{
		Error:   d.ErrorCategory,
		Message: err.Error(),
	}
}

// IsValidation reports whether err is a fail-fast validation error
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsUpstream reports whether err came back from the provider as a non-2xx
func IsUpstream(err error) bool {
	var upstreamErr *coingecko.UpstreamError
	return errors.As(err, &upstreamErr)
}
