package analysis

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeImageUnconfiguredReturnsFallback(t *testing.T) {
	c := NewClient("", "", "")
	assert.False(t, c.Enabled())
	assert.Equal(t, FallbackDescription, c.AnalyzeImage([]byte("img"), "image/png"))
}

func TestAnalyzeImageParsesResponse(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("api-key")

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Bronze Age ceramic vessel."}},
			},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, "key-123", "vision-model")
	got := c.AnalyzeImage([]byte("img"), "image/jpeg")
	assert.Equal(t, "Bronze Age ceramic vessel.", got)
	assert.Equal(t, "key-123", gotAuth)
}

func TestAnalyzeImageFallsBackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient(server.URL, "key", "")
	assert.Equal(t, FallbackDescription, c.AnalyzeImage([]byte("img"), ""))
}

func TestAnalyzeImageFallsBackOnEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	c := NewClient(server.URL, "key", "")
	assert.Equal(t, FallbackDescription, c.AnalyzeImage([]byte("img"), ""))
}

func TestAnalyzeImageFallsBackWhenUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "key", "")
	assert.Equal(t, FallbackDescription, c.AnalyzeImage([]byte("img"), ""))
}
