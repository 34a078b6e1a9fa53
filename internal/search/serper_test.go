package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sagolabs/sago/internal/model"
)

func newTestSerper(t *testing.T, baseURL string) *Serper {
	t.Helper()
	provider, err := NewSerper(
		model.SearchConfig{APIKey: "test-key", BaseURL: baseURL},
		model.HTTPConfig{Timeout: 5 * time.Second},
	)
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}
	return provider
}

func TestSerper_Search_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("Expected path /search, got %s", r.URL.Path)
		}
		if r.Header.Get("X-API-KEY") != "test-key" {
			t.Errorf("Expected X-API-KEY header, got %q", r.Header.Get("X-API-KEY"))
		}

		var apiReq serperRequest
		if err := json.NewDecoder(r.Body).Decode(&apiReq); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if apiReq.Query != "Acme funding" {
			t.Errorf("Expected query forwarded, got %q", apiReq.Query)
		}

		_, _ = w.Write([]byte(`{
			"organic": [
				{"title": "Acme raises $10M", "link": "https://www.crunchbase.com/acme", "snippet": "Acme announced a $10M Series A."},
				{"title": "No link entry", "link": "", "snippet": "dropped"},
				{"title": "Second", "link": "https://reuters.com/acme", "snippet": "more"}
			]
		}`))
	}))
	defer server.Close()

	provider := newTestSerper(t, server.URL)
	results, err := provider.Search(context.Background(), "Acme funding", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results (entry without link dropped), got %d", len(results))
	}
	if results[0].SourceDomain != "crunchbase.com" {
		t.Errorf("Expected source domain crunchbase.com, got %s", results[0].SourceDomain)
	}
}

func TestSerper_Search_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := newTestSerper(t, server.URL)
	_, err := provider.Search(context.Background(), "query", 5)

	var rlErr *RateLimitError
	if !errors.As(err, &rlErr) {
		t.Fatalf("Expected RateLimitError for HTTP 429, got %v", err)
	}
}

func TestNewSerper_RequiresAPIKey(t *testing.T) {
	_, err := NewSerper(model.SearchConfig{}, model.HTTPConfig{})
	if err == nil {
		t.Error("Expected error when API key is missing, got nil")
	}
}
