package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeneratorRequiresKey(t *testing.T) {
	_, err := NewGenerator(context.Background(), " ", "")
	require.Error(t, err)
}

func TestGenerateSendsPromptToModel(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": "Take with food."}},
				},
			}},
		})
	}))
	t.Cleanup(srv.Close)

	gen, err := NewGenerator(context.Background(), "test-key", "", WithBaseURL(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, gen.Model())

	answer, err := gen.Generate(context.Background(), "Medicine Name: Ibuprofen")
	require.NoError(t, err)
	assert.Equal(t, "Take with food.", answer)
	assert.True(t, strings.HasSuffix(gotPath, DefaultModel+":generateContent"), gotPath)
	assert.Contains(t, gotBody, "Medicine Name: Ibuprofen")
}

func TestGenerateSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	t.Cleanup(srv.Close)

	gen, err := NewGenerator(context.Background(), "test-key", "gemini-test", WithBaseURL(srv.URL))
	require.NoError(t, err)
	_, err = gen.Generate(context.Background(), "hi")
	require.Error(t, err)
}
