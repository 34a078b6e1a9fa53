package model

import "time"

// Config is the complete, explicit configuration for one analysis run.
// It is built once (defaults, config file, env, flags) and passed into
// constructors by value reference; there is no process-wide singleton.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Search      SearchConfig      `yaml:"search"`
	LLM         LLMConfig         `yaml:"llm"`
	Verify      VerifyConfig      `yaml:"verify"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
	Investor    InvestorProfile   `yaml:"investor"`
}

// HTTPConfig configures outbound HTTP behaviour shared by the search
// client and the evidence page fetcher
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty"`
}

// SearchConfig configures the evidence source
type SearchConfig struct {
	// Provider name: "duckduckgo" (no key needed) or "serper"
	Provider string `yaml:"provider"`

	// APIKey for providers that need one (serper)
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL override, mainly for tests
	BaseURL string `yaml:"base_url,omitempty"`

	// MaxResults bounds the raw results taken per query
	MaxResults int `yaml:"max_results"`

	// Pause is the deliberate delay enforced before each search call
	Pause time.Duration `yaml:"pause"`

	// MaxRetries bounds rate-limit retries before degrading to empty
	MaxRetries int `yaml:"max_retries"`
}

// LLMConfig configures the narrative oracle
type LLMConfig struct {
	// Provider name: "openai", "anthropic", "ollama", "" (disabled)
	Provider string `yaml:"provider"`

	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// VerifyConfig configures the verification core
type VerifyConfig struct {
	// ClaimBudget is the hard cap on claims receiving full verification
	// per run (the rest get synthetic skipped verdicts)
	ClaimBudget int `yaml:"claim_budget"`

	// RelevanceThreshold below or at which evidence is discarded
	RelevanceThreshold float64 `yaml:"relevance_threshold"`

	// MaxEvidence retained per verdict
	MaxEvidence int `yaml:"max_evidence"`

	// MaxClaims extracted from a deck before prioritization cut
	MaxClaims int `yaml:"max_claims"`

	// MaxQuestions generated per analysis
	MaxQuestions int `yaml:"max_questions"`

	// EnrichEvidence fetches the top evidence page per claim to attach a
	// visible-text excerpt. Off by default: it multiplies outbound calls.
	EnrichEvidence bool `yaml:"enrich_evidence"`
}

// CacheConfig configures the layered search/page cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig bounds parallelism. Claims within one deck are always
// verified sequentially to respect the search rate limit; Workers only
// applies to multi-deck batch runs.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Sago/0.1 (+https://github.com/sagolabs/sago)",
			MaxBodyBytes: 2_000_000,
		},
		Search: SearchConfig{
			Provider:   "duckduckgo",
			MaxResults: 5,
			Pause:      1500 * time.Millisecond,
			MaxRetries: 2,
		},
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			Timeout:   30,
			MaxTokens: 2000,
		},
		Verify: VerifyConfig{
			ClaimBudget:        5,
			RelevanceThreshold: 0.3,
			MaxEvidence:        5,
			MaxClaims:          12,
			MaxQuestions:       10,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 1,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		Investor: DefaultInvestorProfile(),
	}
}
