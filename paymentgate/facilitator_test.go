package paymentgate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacilitatorClientVerify(t *testing.T) {
	var gotBody VerifyRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/verify", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(VerifyResponse{IsValid: true, Payer: "0xpayer"})
	}))
	defer server.Close()

	client := NewFacilitatorClient(server.URL + "/")

	requirements := PaymentRequirements{Scheme: "exact", Network: "base-sepolia", MaxAmountRequired: "1000"}
	response, err := client.Verify(context.Background(), json.RawMessage(`{"scheme":"exact"}`), requirements)

	require.NoError(t, err)
	assert.True(t, response.IsValid)
	assert.Equal(t, "0xpayer", response.Payer)

	assert.Equal(t, X402Version, gotBody.X402Version)
	assert.Equal(t, "exact", gotBody.PaymentRequirements.Scheme)
	assert.JSONEq(t, `{"scheme":"exact"}`, string(gotBody.PaymentPayload))
}

func TestFacilitatorClientSettle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/settle", r.URL.Path)
		json.NewEncoder(w).Encode(SettleResponse{Success: true, Transaction: "0xtx", Network: "base-sepolia"})
	}))
	defer server.Close()

	client := NewFacilitatorClient(server.URL)

	response, err := client.Settle(context.Background(), json.RawMessage(`{}`), PaymentRequirements{})

	require.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, "0xtx", response.Transaction)
}

func TestFacilitatorClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewFacilitatorClient(server.URL)

	_, err := client.Verify(context.Background(), json.RawMessage(`{}`), PaymentRequirements{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
