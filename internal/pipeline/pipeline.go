package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sagolabs/sago/internal/cache"
	"github.com/sagolabs/sago/internal/extract"
	"github.com/sagolabs/sago/internal/llm"
	"github.com/sagolabs/sago/internal/model"
	"github.com/sagolabs/sago/internal/questions"
	"github.com/sagolabs/sago/internal/search"
	"github.com/sagolabs/sago/internal/verify"
)

// Pipeline orchestrates the complete deck analysis: load, extract claims,
// verify, score, question, summarize.
type Pipeline struct {
	oracle    llm.Provider
	extractor *extract.ClaimExtractor
	verifier  *verify.Verifier
	questions *questions.Generator
	enricher  *Enricher // nil unless evidence enrichment is enabled
	renderer  *Renderer
	config    model.Config

	now func() time.Time
}

// NewPipeline wires all collaborators from one explicit configuration.
// It fails fast on misconfiguration (unknown providers, missing keys)
// rather than at first use.
func NewPipeline(cfg model.Config) (*Pipeline, error) {
	oracle, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	provider, err := search.NewProvider(cfg.Search, cfg.HTTP)
	if err != nil {
		return nil, fmt.Errorf("initialize search provider: %w", err)
	}
	client := search.NewClient(provider, cfg.Search, store, cfg.Cache.DiskTTL)

	var enricher *Enricher
	if cfg.Verify.EnrichEvidence {
		enricher = NewEnricher(cfg.HTTP, store)
	}

	return &Pipeline{
		oracle:    oracle,
		extractor: extract.NewClaimExtractor(oracle, cfg.Verify.MaxClaims),
		verifier:  verify.NewVerifier(client, oracle, cfg.Verify),
		questions: questions.NewGenerator(oracle, cfg.Verify.MaxQuestions),
		enricher:  enricher,
		renderer:  NewRenderer(cfg.Output.IncludeFooter),
		config:    cfg,
		now:       time.Now,
	}, nil
}

// Analyze runs the full workflow for one deck file
func (p *Pipeline) Analyze(ctx context.Context, deckPath string) (*model.DeckAnalysis, error) {
	fmt.Fprintf(os.Stderr, "Analyzing: %s\n", deckPath)

	// 1. Load the deck
	deck, err := extract.LoadDeck(deckPath)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}
	companyName := deck.CompanyName()
	fmt.Fprintf(os.Stderr, "   Company: %s (%d pages, %d characters)\n", companyName, len(deck.Pages), len(deck.FullText))

	// 2. Extract claims
	fmt.Fprintf(os.Stderr, "Extracting claims...\n")
	claims, err := p.extractor.ExtractClaims(ctx, deck)
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}
	fmt.Fprintf(os.Stderr, "   Found %d claims\n", len(claims))

	// 3. Verify claims against web evidence
	fmt.Fprintf(os.Stderr, "Verifying claims...\n")
	verdicts := p.verifier.VerifyAll(ctx, claims, companyName)
	score := verify.AggregateScore(verdicts)
	fmt.Fprintf(os.Stderr, "   Overall score: %.0f%%\n", score*100)

	// 4. Optional evidence page enrichment (never affects verdicts)
	if p.enricher != nil {
		fmt.Fprintf(os.Stderr, "Enriching evidence pages...\n")
		p.enricher.EnrichVerdicts(ctx, verdicts)
	}

	// 5. Generate investor questions
	fmt.Fprintf(os.Stderr, "Generating questions...\n")
	qs := p.questions.Generate(ctx, verdicts, p.config.Investor, companyName)
	fmt.Fprintf(os.Stderr, "   Generated %d questions\n", len(qs))

	// 6. Summaries
	analysis := &model.DeckAnalysis{
		DeckFile:         deck.Filename,
		CompanyName:      companyName,
		AnalyzedAt:       p.now(),
		Claims:           claims,
		Verdicts:         verdicts,
		Questions:        qs,
		ExecutiveSummary: p.executiveSummary(ctx, companyName, verdicts, score),
		RiskAssessment:   riskAssessment(verdicts),
		DeckScore:        score,
	}

	return analysis, nil
}

// RenderReport renders the analysis to the requested outputs, and always
// prints the stdout summary
func (p *Pipeline) RenderReport(analysis *model.DeckAnalysis, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(analysis, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(analysis, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(analysis)
	return nil
}

// executiveSummary asks the LLM for a short investor-facing summary,
// falling back to a deterministic sentence when that fails
func (p *Pipeline) executiveSummary(ctx context.Context, companyName string, verdicts []model.Verdict, score float64) string {
	verifiedCount, contradictedCount := 0, 0
	for _, verdict := range verdicts {
		switch verdict.Status {
		case model.StatusVerified:
			verifiedCount++
		case model.StatusContradicted:
			contradictedCount++
		}
	}

	fallback := fmt.Sprintf(
		"Analysis of %s's pitch deck completed with a %.0f%% verification score. %d claims verified, %d contradicted.",
		companyName, score*100, verifiedCount, contradictedCount,
	)
	if p.oracle == nil {
		return fallback
	}

	type finding struct {
		Claim   string `json:"claim"`
		Status  string `json:"status"`
		Summary string `json:"summary"`
	}
	findings := make([]finding, 0, 5)
	for _, verdict := range verdicts {
		if len(findings) == 5 {
			break
		}
		findings = append(findings, finding{
			Claim:   clip(verdict.Claim.Text, 100),
			Status:  string(verdict.Status),
			Summary: clip(verdict.Summary, 100),
		})
	}
	findingsJSON, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return fallback
	}

	prompt := fmt.Sprintf(`Write a brief executive summary (3-4 sentences) for an investor about %s's pitch deck analysis.

Verification Score: %.0f%%
Total claims analyzed: %d
Claims verified: %d
Claims contradicted: %d

Key findings from verification:
%s

Write a professional, balanced summary highlighting the key verification findings. Be specific about what was verified and what needs attention.`,
		companyName, score*100, len(verdicts), verifiedCount, contradictedCount, findingsJSON)

	summary, err := p.oracle.Complete(ctx, llm.CompleteRequest{
		Prompt:      prompt,
		Temperature: 0.3,
		MaxTokens:   300,
	})
	if err != nil || summary == "" {
		return fallback
	}
	return summary
}

// riskAssessment folds collected red flags into a short bullet list
func riskAssessment(verdicts []model.Verdict) string {
	var redFlags []string
	for _, verdict := range verdicts {
		redFlags = append(redFlags, verdict.RedFlags...)
	}

	if len(redFlags) == 0 {
		return "No significant red flags identified during automated verification. Standard due diligence still recommended."
	}
	if len(redFlags) > 7 {
		redFlags = redFlags[:7]
	}

	out := "Potential concerns identified:"
	for _, flag := range redFlags {
		out += "\n- " + flag
	}
	return out
}

// clip cuts s to at most n runes, never splitting a multi-byte rune
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
