package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/sagolabs/sago/internal/cache"
	"github.com/sagolabs/sago/internal/model"
)

// searchSleepFunc is the sleep function used between retries (injectable for tests)
var searchSleepFunc = time.Sleep

// Result is one raw hit returned by a search provider
type Result struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	Snippet      string `json:"snippet"`
	SourceDomain string `json:"source_domain"`
}

// Searcher issues a single query against one provider. Implementations
// return RateLimitError when the provider throttles; the Client handles
// the backoff policy.
type Searcher interface {
	// Name returns the provider name
	Name() string

	// Search runs one query and returns up to maxResults hits
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// RateLimitError indicates the provider throttled the request
type RateLimitError struct {
	Provider string
	Status   int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (HTTP %d)", e.Provider, e.Status)
}

// NewProvider creates a search provider based on configuration
func NewProvider(cfg model.SearchConfig, httpCfg model.HTTPConfig) (Searcher, error) {
	switch strings.ToLower(cfg.Provider) {
	case "duckduckgo", "":
		return NewDuckDuckGo(cfg, httpCfg), nil

	case "serper":
		return NewSerper(cfg, httpCfg)

	default:
		return nil, fmt.Errorf("unknown search provider: %s (supported: duckduckgo, serper)", cfg.Provider)
	}
}

// Client wraps a provider with pacing, rate-limit retries and a result
// cache. Its Search never returns an error: after the retry budget is
// exhausted, or on any non-retryable failure, it degrades to an empty
// result set so one throttled query cannot abort a whole deck analysis.
type Client struct {
	provider   Searcher
	limiter    *rate.Limiter
	maxResults int
	maxRetries int
	store      cache.Cache
	cacheTTL   time.Duration
}

// NewClient creates a search client. store may be nil to disable caching.
func NewClient(provider Searcher, cfg model.SearchConfig, store cache.Cache, cacheTTL time.Duration) *Client {
	pause := cfg.Pause
	if pause <= 0 {
		pause = 1500 * time.Millisecond
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	return &Client{
		provider:   provider,
		limiter:    rate.NewLimiter(rate.Every(pause), 1),
		maxResults: maxResults,
		maxRetries: cfg.MaxRetries,
		store:      store,
		cacheTTL:   cacheTTL,
	}
}

// Search runs one query through the cache, the pacer and the retry loop.
// The returned slice is empty (never nil-checked by callers) when nothing
// usable came back.
func (c *Client) Search(ctx context.Context, query string) []Result {
	key := cache.CacheKey("search:" + query)
	if c.store != nil {
		if raw, found := c.store.Get(key); found {
			var results []Result
			if err := json.Unmarshal(raw, &results); err == nil {
				return results
			}
			// Corrupt entry, drop it and fall through to a live search
			_ = c.store.Delete(key)
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return []Result{}
	}

	for attempt := 0; ; attempt++ {
		results, err := c.provider.Search(ctx, query, c.maxResults)
		if err == nil {
			if c.store != nil && len(results) > 0 {
				if raw, merr := json.Marshal(results); merr == nil {
					_ = c.store.Set(key, raw, c.cacheTTL)
				}
			}
			return results
		}

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) && attempt < c.maxRetries {
			backoff := time.Duration(attempt+1) * 3 * time.Second
			fmt.Fprintf(os.Stderr, "Search rate limited, retrying in %s...\n", backoff)
			searchSleepFunc(backoff)
			continue
		}

		fmt.Fprintf(os.Stderr, "Search failed for %q: %v\n", query, err)
		return []Result{}
	}
}

// domainOf extracts the registrable host of a result URL, with the
// leading www. stripped
func domainOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}
