package operations

import (
	"fmt"
	"strings"
)

// ValidationError is returned when a caller omits required inputs. It is
// always raised before any upstream call is attempted.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required parameters: %s", strings.Join(e.MissingFields, ", "))
}
