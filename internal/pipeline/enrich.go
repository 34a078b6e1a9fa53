package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/sagolabs/sago/internal/cache"
	"github.com/sagolabs/sago/internal/model"
	"github.com/sagolabs/sago/internal/util"
	"github.com/sagolabs/sago/internal/worker"
)

// excerptLimit bounds the attached page excerpt length
const excerptLimit = 600

// Enricher optionally fetches the top evidence page per verdict to attach
// a visible-text excerpt. Strictly additive: any failure (robots denial,
// network error, unparseable page) leaves the verdict untouched.
type Enricher struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	store      cache.Cache
	userAgent  string
	maxBytes   int64
}

// NewEnricher creates an enricher. store may be nil to skip page caching.
func NewEnricher(cfg model.HTTPConfig, store cache.Cache) *Enricher {
	return &Enricher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:    util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		limiter:   worker.NewLimiter(1, 1),
		store:     store,
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
	}
}

// EnrichVerdicts attaches a page excerpt to the most relevant evidence
// item of each verdict that has one
func (e *Enricher) EnrichVerdicts(ctx context.Context, verdicts []model.Verdict) {
	for i := range verdicts {
		if len(verdicts[i].Evidence) == 0 {
			continue
		}
		top := &verdicts[i].Evidence[0]
		excerpt, err := e.PageExcerpt(ctx, top.URL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Enrichment skipped for %s: %v\n", top.URL, err)
			continue
		}
		top.PageExcerpt = excerpt
	}
}

// PageExcerpt fetches one page, robots.txt permitting, and returns the
// leading visible text
func (e *Enricher) PageExcerpt(ctx context.Context, pageURL string) (string, error) {
	key := cache.CacheKey("page:" + pageURL)
	if e.store != nil {
		if raw, found := e.store.Get(key); found {
			return string(raw), nil
		}
	}

	allowed, crawlDelay, err := e.robots.CanFetch(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("robots.txt check: %w", err)
	}
	if !allowed {
		return "", fmt.Errorf("disallowed by robots.txt")
	}
	if err := e.limiter.WaitWithDelay(ctx, pageURL, crawlDelay); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	excerpt := strings.TrimSpace(clip(visibleText(doc), excerptLimit))
	if excerpt == "" {
		return "", fmt.Errorf("no visible text")
	}

	if e.store != nil {
		_ = e.store.Set(key, []byte(excerpt), 0)
	}
	return excerpt, nil
}

// visibleText extracts text nodes from HTML, skipping scripts/styles
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}
