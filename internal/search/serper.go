package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sagolabs/sago/internal/model"
	"github.com/sagolabs/sago/internal/util"
)

// Serper queries the serper.dev Google Search API. It needs an API key
// but is far less throttle-prone than scraping.
type Serper struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type serperRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num,omitempty"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// NewSerper creates the serper.dev provider
func NewSerper(cfg model.SearchConfig, httpCfg model.HTTPConfig) (*Serper, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("serper API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://google.serper.dev"
	}

	return &Serper{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
		},
	}, nil
}

// Name returns the provider name
func (s *Serper) Name() string {
	return "serper"
}

// Search runs one query against the search endpoint
func (s *Serper) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	body, err := json.Marshal(serperRequest{Query: query, Num: maxResults})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{Provider: "serper", Status: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var apiResp serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	results := make([]Result, 0, len(apiResp.Organic))
	for _, hit := range apiResp.Organic {
		if hit.Link == "" {
			continue
		}
		results = append(results, Result{
			Title:        hit.Title,
			URL:          hit.Link,
			Snippet:      hit.Snippet,
			SourceDomain: domainOf(hit.Link),
		})
		if len(results) >= maxResults {
			break
		}
	}
	return results, nil
}
