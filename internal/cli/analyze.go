package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sagolabs/sago/internal/model"
	"github.com/sagolabs/sago/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON        string
	outMD          string
	timeout        time.Duration
	userAgent      string
	maxBytes       int64
	noCache        bool
	noFooter       bool
	httpProxy      string
	httpsProxy     string
	llmProvider    string
	llmModel       string
	searchProvider string
	claimBudget    int
	maxClaims      int
	maxQuestions   int
	enrichEvidence bool
	investorName   string
	focusAreas     []string
	investStage    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <deck.txt>",
	Short: "Analyze a single pitch deck and generate a verification report",
	Long: `Analyze reads a text-extracted pitch deck to:
- Extract verifiable factual claims (market size, revenue, team, traction)
- Search the public web for supporting or contradicting evidence
- Produce a per-claim verdict with confidence and red flags
- Aggregate an overall verification score for the deck
- Generate due diligence questions for the investor

Example:
  sago analyze deck.txt
  sago analyze deck.txt --json report.json --md report.md
  sago analyze deck.txt --llm-provider anthropic --llm-model claude-3-5-haiku-20241022
  sago analyze deck.txt --search-provider serper --enrich`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// HTTP flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "overall analysis timeout (searches are rate limited, so runs take minutes)")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "Sago/0.1 (+https://github.com/sagolabs/sago)", "HTTP User-Agent")
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read per page")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh searches)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	analyzeCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	analyzeCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")

	// Search flags
	analyzeCmd.Flags().StringVar(&searchProvider, "search-provider", "duckduckgo", "search provider (duckduckgo, serper)")

	// Verification flags
	analyzeCmd.Flags().IntVar(&claimBudget, "claim-budget", 5, "max claims receiving full web verification per run")
	analyzeCmd.Flags().IntVar(&maxClaims, "max-claims", 12, "max claims extracted from the deck")
	analyzeCmd.Flags().IntVar(&maxQuestions, "max-questions", 10, "max due diligence questions generated")
	analyzeCmd.Flags().BoolVar(&enrichEvidence, "enrich", false, "fetch top evidence pages to attach text excerpts")

	// Investor profile flags
	analyzeCmd.Flags().StringVar(&investorName, "investor-name", "", "investor name for personalized questions")
	analyzeCmd.Flags().StringSliceVar(&focusAreas, "focus-areas", nil, "investor focus areas, comma separated (e.g. \"B2B SaaS,FinTech\")")
	analyzeCmd.Flags().StringVar(&investStage, "stage", "", "investment stage (e.g. \"Series A\")")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	deckPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", deckPath)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	analysis, err := p.Analyze(ctx, deckPath)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d claims\n", len(analysis.Claims))
		fmt.Fprintf(os.Stderr, "✓ Produced %d verdicts\n", len(analysis.Verdicts))
		fmt.Fprintf(os.Stderr, "✓ Verification score: %.0f%%\n", analysis.DeckScore*100)
		fmt.Fprintf(os.Stderr, "✓ Generated %d questions\n", len(analysis.Questions))
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(analysis, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig assembles the run configuration from defaults and flags
func buildConfig() (model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = 30 * time.Second
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter
	cfg.Verify.ClaimBudget = claimBudget
	cfg.Verify.MaxClaims = maxClaims
	cfg.Verify.MaxQuestions = maxQuestions
	cfg.Verify.EnrichEvidence = enrichEvidence

	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	switch strings.ToLower(llmProvider) {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return cfg, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return cfg, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	cfg.Search.Provider = searchProvider
	if strings.ToLower(searchProvider) == "serper" {
		cfg.Search.APIKey = os.Getenv("SERPER_API_KEY")
		if cfg.Search.APIKey == "" {
			return cfg, fmt.Errorf("SERPER_API_KEY environment variable not set")
		}
	}

	if investorName != "" {
		cfg.Investor.Name = investorName
	}
	if len(focusAreas) > 0 {
		cfg.Investor.FocusAreas = focusAreas
	}
	if investStage != "" {
		cfg.Investor.InvestmentStage = investStage
	}

	return cfg, nil
}
