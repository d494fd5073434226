package operations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorTable(t *testing.T) {
	descriptors := All()
	require.Len(t, descriptors, 4)

	seen := map[string]bool{}
	for _, d := range descriptors {
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.Description)
		assert.NotEmpty(t, d.UpstreamPath)
		assert.NotEmpty(t, d.ErrorCategory)
		assert.False(t, seen[d.Name], "duplicate operation name %s", d.Name)
		seen[d.Name] = true
	}
}

// The handlers' fail-fast checks must stay aligned with what the
// descriptor table declares as required
func TestRequiredParamsMatchHandlers(t *testing.T) {
	assert.Equal(t, []string{"ids", "vs_currencies"},
		SimplePriceDescriptor.RequiredNames())
	assert.Equal(t, []string{"ids", "vs_currencies"},
		PriceParams{}.missingFields())

	assert.Equal(t, []string{"chainId", "tokenAddress"},
		TokenByAddressDescriptor.RequiredNames())
	assert.Equal(t, []string{"chainId", "tokenAddress"},
		TokenParams{}.missingFields())

	assert.Empty(t, TrendingDescriptor.Required)
	assert.Empty(t, NewCoinsDescriptor.Required)
}

func TestByName(t *testing.T) {
	d, ok := ByName(OpTokenByAddress)
	require.True(t, ok)
	assert.Equal(t, "token_lookup_failed", d.ErrorCategory)

	_, ok = ByName("unknown_operation")
	assert.False(t, ok)
}
