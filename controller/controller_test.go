package controller

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gecko-tools/market-gateway/operations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedFetcher struct {
	response json.RawMessage
}

func (f *fixedFetcher) Fetch(ctx context.Context, path string, query map[string]string) (json.RawMessage, error) {
	return f.response, nil
}

// The facade must stay behaviorally identical to the handlers it wraps
func TestControllerDelegates(t *testing.T) {
	ctrl := New(operations.NewHandlers(&fixedFetcher{response: json.RawMessage(`{"ok":true}`)}))

	envelope, err := ctrl.SimplePrice(context.Background(), operations.PriceParams{
		IDs:        "bitcoin",
		Currencies: "usd",
	})
	require.NoError(t, err)
	assert.True(t, envelope.Success)

	envelope, err = ctrl.Trending(context.Background())
	require.NoError(t, err)
	assert.True(t, envelope.Success)

	envelope, err = ctrl.NewCoins(context.Background())
	require.NoError(t, err)
	assert.True(t, envelope.Success)

	envelope, err = ctrl.TokenByAddress(context.Background(), operations.TokenParams{
		ChainID:      "ethereum",
		TokenAddress: "0xABC",
	})
	require.NoError(t, err)
	assert.True(t, envelope.Success)
}

func TestControllerPropagatesValidationErrors(t *testing.T) {
	ctrl := New(operations.NewHandlers(&fixedFetcher{}))

	_, err := ctrl.SimplePrice(context.Background(), operations.PriceParams{})

	var validationErr *operations.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
