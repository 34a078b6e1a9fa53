package verify

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sagolabs/sago/internal/llm"
	"github.com/sagolabs/sago/internal/model"
	"github.com/sagolabs/sago/internal/search"
)

// EvidenceSource is the slice of the search client the verifier needs.
// Implementations degrade to an empty result set on failure, so Search
// carries no error return.
type EvidenceSource interface {
	Search(ctx context.Context, query string) []search.Result
}

// Verifier verifies a single claim through web search plus an LLM read
// of the surviving evidence. Verify never returns an error: every
// collaborator failure degrades to an unable_to_verify verdict.
type Verifier struct {
	source EvidenceSource
	oracle llm.Provider
	config model.VerifyConfig

	// now is injectable for deterministic retrieval timestamps in tests
	now func() time.Time
}

// NewVerifier creates a verifier. oracle may be nil (LLM disabled); every
// claim then resolves from the heuristic layer alone.
func NewVerifier(source EvidenceSource, oracle llm.Provider, config model.VerifyConfig) *Verifier {
	if config.RelevanceThreshold <= 0 {
		config.RelevanceThreshold = 0.3
	}
	if config.MaxEvidence <= 0 {
		config.MaxEvidence = 5
	}
	return &Verifier{
		source: source,
		oracle: oracle,
		config: config,
		now:    time.Now,
	}
}

// Verify runs one claim through query generation, evidence collection and
// verdict synthesis
func (v *Verifier) Verify(ctx context.Context, claim model.Claim, companyName string) model.Verdict {
	queries := GenerateQueries(claim, companyName)

	// One external call per claim: only the first query is issued
	evidence := v.collectEvidence(ctx, queries[0], claim)

	verdict := v.synthesize(ctx, claim, evidence, companyName)
	if len(verdict.Evidence) > v.config.MaxEvidence {
		verdict.Evidence = verdict.Evidence[:v.config.MaxEvidence]
	}
	return verdict
}

// collectEvidence scores raw search results against the claim and keeps
// the ones above the relevance threshold, most relevant first
func (v *Verifier) collectEvidence(ctx context.Context, query string, claim model.Claim) []model.EvidenceItem {
	results := v.source.Search(ctx, query)

	evidence := make([]model.EvidenceItem, 0, len(results))
	for _, result := range results {
		relevance := RelevanceScore(result.Snippet, result.SourceDomain, claim.Text)
		if relevance <= v.config.RelevanceThreshold {
			continue
		}
		evidence = append(evidence, model.EvidenceItem{
			URL:          result.URL,
			SourceDomain: result.SourceDomain,
			Snippet:      result.Snippet,
			Relevance:    relevance,
			Supports:     SupportsClaim(result.Snippet),
			RetrievedAt:  v.now(),
		})
	}

	sort.SliceStable(evidence, func(i, j int) bool {
		return evidence[i].Relevance > evidence[j].Relevance
	})
	return evidence
}

// oracleVerdict is the structured judgement requested from the LLM
type oracleVerdict struct {
	Status     string   `json:"status"`
	Summary    string   `json:"summary"`
	Confidence *float64 `json:"confidence"`
	RedFlags   []string `json:"red_flags"`
}

// synthesize turns collected evidence into the final verdict
func (v *Verifier) synthesize(ctx context.Context, claim model.Claim, evidence []model.EvidenceItem, companyName string) model.Verdict {
	if len(evidence) == 0 {
		return model.Verdict{
			Claim:      claim,
			Status:     model.StatusUnableToVerify,
			Evidence:   []model.EvidenceItem{},
			Summary:    "No relevant evidence found through web search. This claim could not be independently verified.",
			Confidence: 0.2,
			RedFlags:   []string{"No external sources found to verify this claim"},
		}
	}

	result, err := v.askOracle(ctx, claim, evidence, companyName)
	if err != nil {
		return model.Verdict{
			Claim:      claim,
			Status:     model.StatusUnableToVerify,
			Evidence:   evidence,
			Summary:    fmt.Sprintf("Error during verification analysis: %v", err),
			Confidence: 0.3,
			RedFlags:   []string{"Automated verification encountered an error"},
		}
	}

	summary := result.Summary
	if summary == "" {
		summary = "Verification analysis completed."
	}
	confidence := 0.5
	if result.Confidence != nil {
		confidence = *result.Confidence
	}

	return model.Verdict{
		Claim:      claim,
		Status:     model.ParseStatus(result.Status),
		Evidence:   evidence,
		Summary:    summary,
		Confidence: confidence,
		RedFlags:   result.RedFlags,
	}
}

// askOracle submits the claim and top evidence to the LLM and decodes the
// structured judgement
func (v *Verifier) askOracle(ctx context.Context, claim model.Claim, evidence []model.EvidenceItem, companyName string) (oracleVerdict, error) {
	if v.oracle == nil {
		return oracleVerdict{}, fmt.Errorf("no LLM provider configured")
	}

	top := evidence
	if len(top) > v.config.MaxEvidence {
		top = top[:v.config.MaxEvidence]
	}

	var evidenceText strings.Builder
	for _, item := range top {
		fmt.Fprintf(&evidenceText, "Source: %s\nURL: %s\nContent: %s\n\n", item.SourceDomain, item.URL, item.Snippet)
	}

	prompt := fmt.Sprintf(`Analyze the following claim from %s's pitch deck and the evidence found:

CLAIM: %s
CLAIM CATEGORY: %s

EVIDENCE FOUND:
%s
Based on the evidence, provide a verification analysis in JSON format:
{
    "status": "verified" | "partially_verified" | "unverified" | "contradicted" | "unable_to_verify",
    "summary": "Brief summary of verification findings (2-3 sentences)",
    "confidence": 0.0 to 1.0,
    "red_flags": ["list", "of", "concerns"]
}

Be rigorous - only mark as "verified" if there's strong corroborating evidence.`,
		companyName, claim.Text, claim.Category, evidenceText.String())

	raw, err := v.oracle.Complete(ctx, llm.CompleteRequest{
		Prompt: prompt,
		System: "You are a rigorous due diligence analyst. Respond only with the requested JSON.",
	})
	if err != nil {
		return oracleVerdict{}, err
	}

	var result oracleVerdict
	if err := llm.DecodeObject(raw, &result); err != nil {
		return oracleVerdict{}, err
	}
	return result, nil
}
