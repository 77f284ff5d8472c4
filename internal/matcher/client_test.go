package matcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportSendsMultipartForm(t *testing.T) {
	var gotFields map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/report", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		gotFields = map[string]string{}
		for key, values := range r.MultipartForm.Value {
			gotFields[key] = values[0]
		}

		json.NewEncoder(w).Encode(map[string]any{
			"status":    "success",
			"item_id":   "LOST-KEY-A9F2",
			"embedding": []float64{0.1, 0.2},
			"matches": []map[string]any{
				{"item_id": "FOUND-KEY-B1C2", "score": 0.95, "confidence": "High", "reason": "Image and description are semantically similar"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	result, err := client.Report(context.Background(), "https://cdn/img.webp", "silver key", "Library", "keys", "lost")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"image_url":   "https://cdn/img.webp",
		"description": "silver key",
		"location":    "Library",
		"category":    "keys",
		"report_type": "lost",
	}, gotFields)

	assert.Equal(t, "LOST-KEY-A9F2", result.ItemID)
	assert.Equal(t, []float64{0.1, 0.2}, result.Embedding)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "FOUND-KEY-B1C2", result.Matches[0].ItemID)
	assert.Equal(t, 0.95, result.Matches[0].Score)
	assert.Equal(t, "High", result.Matches[0].Confidence)
}

func TestReportDefaultsEmptyCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "general", r.MultipartForm.Value["category"][0])
		json.NewEncoder(w).Encode(map[string]any{"status": "success", "item_id": "FOUND-GENERAL-0001"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Report(context.Background(), "", "red umbrella", "Bus stop", "", "found")
	require.NoError(t, err)
}

func TestReportSurfacesUpstreamErrors(t *testing.T) {
	t.Run("error body with 200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"error": "could not fetch image"})
		}))
		defer server.Close()

		client := NewClient(server.URL, 5*time.Second)
		_, err := client.Report(context.Background(), "bad-url", "d", "l", "c", "lost")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not fetch image")
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(server.URL, 5*time.Second)
		_, err := client.Report(context.Background(), "", "d", "l", "c", "lost")
		require.Error(t, err)
	})

	t.Run("unreachable service", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
		_, err := client.Report(context.Background(), "", "d", "l", "c", "lost")
		require.Error(t, err)
	})
}

func TestFindSimilarReturnsRankedCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/find-similar", r.URL.Path)

		var payload struct {
			Embedding []float64 `json:"embedding"`
			TopK      int       `json:"top_k"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, []float64{0.5, 0.6}, payload.Embedding)
		assert.Equal(t, 5, payload.TopK)

		json.NewEncoder(w).Encode(map[string]any{
			"matches": []map[string]any{
				{"item_id": "LOST-PHONE-0001", "score": 0.92},
				{"item_id": "LOST-PHONE-0002", "score": 0.44},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	candidates := client.FindSimilar(context.Background(), []float64{0.5, 0.6}, 5)
	require.Len(t, candidates, 2)
	assert.Equal(t, "LOST-PHONE-0001", candidates[0].ItemID)
	assert.Equal(t, 0.92, candidates[0].Score)
}

// FindSimilar soft-fails: a degraded matching service yields an empty list,
// never an error.
func TestFindSimilarSwallowsFailures(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL, 5*time.Second)
		assert.Empty(t, client.FindSimilar(context.Background(), []float64{0.1}, 5))
	})

	t.Run("unreachable service", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
		assert.Empty(t, client.FindSimilar(context.Background(), []float64{0.1}, 5))
	})
}
