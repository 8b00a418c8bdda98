package solana

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
)

func TestLatestHandshake(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "getLatestBlockhash", req.Method)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":{"context":{"slot":42},"value":{"blockhash":"EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N","lastValidBlockHeight":3090}}}`, req.ID)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	defer client.Close()

	handshake, err := client.LatestHandshake(context.Background())
	require.NoError(t, err)
	assert.Equal(t, server.URL, handshake.Endpoint)
	assert.Equal(t, "EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N", handshake.Blockhash)
	assert.Equal(t, uint64(3090), handshake.LastValidBlockHeight)
}

func TestLatestHandshakeUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).LatestHandshake(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrLedgerUnavailable)
}

func TestNewClientDefaultsToDevnet(t *testing.T) {
	assert.Equal(t, DefaultEndpoint, NewClient("  ").endpoint)
}
