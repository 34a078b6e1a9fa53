package verify

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sagolabs/sago/internal/llm"
	"github.com/sagolabs/sago/internal/model"
	"github.com/sagolabs/sago/internal/search"
)

// fakeSource returns canned search results and records queries
type fakeSource struct {
	results []search.Result
	queries []string
}

func (f *fakeSource) Search(_ context.Context, query string) []search.Result {
	f.queries = append(f.queries, query)
	return f.results
}

// fakeOracle returns a canned completion and counts calls
type fakeOracle struct {
	response string
	err      error
	calls    int
}

func (f *fakeOracle) Name() string { return "fake" }

func (f *fakeOracle) IsAvailable(context.Context) bool { return true }

func (f *fakeOracle) Complete(_ context.Context, _ llm.CompleteRequest) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func growthClaim() model.Claim {
	return model.Claim{
		ID:         "claim_0001",
		Text:       "Revenue grew 300% in 2023",
		Category:   model.CategoryGrowthMetrics,
		Confidence: 0.9,
	}
}

func defaultVerifyConfig() model.VerifyConfig {
	return model.VerifyConfig{
		ClaimBudget:        5,
		RelevanceThreshold: 0.3,
		MaxEvidence:        5,
	}
}

func TestVerify_EvidenceFoundOraclePassthrough(t *testing.T) {
	source := &fakeSource{results: []search.Result{{
		Title:        "Acme grows 300% year over year",
		URL:          "https://techcrunch.com/2024/acme",
		Snippet:      "Acme says revenue grew 300% in 2023 according to filings",
		SourceDomain: "techcrunch.com",
	}}}
	oracle := &fakeOracle{response: `{"status": "verified", "summary": "Corroborated by coverage.", "confidence": 0.8, "red_flags": []}`}

	v := NewVerifier(source, oracle, defaultVerifyConfig())
	verdict := v.Verify(context.Background(), growthClaim(), "Acme")

	if verdict.Status != model.StatusVerified {
		t.Errorf("Expected oracle status passed through, got %s", verdict.Status)
	}
	if verdict.Confidence != 0.8 {
		t.Errorf("Expected oracle confidence 0.8, got %v", verdict.Confidence)
	}
	if oracle.calls != 1 {
		t.Errorf("Expected 1 oracle call, got %d", oracle.calls)
	}
	if len(verdict.Evidence) != 1 {
		t.Fatalf("Expected 1 evidence item, got %d", len(verdict.Evidence))
	}

	item := verdict.Evidence[0]
	if item.Relevance != 1.0 {
		t.Errorf("Expected relevance 1.0 (full overlap + number + credible), got %v", item.Relevance)
	}
	if !item.Supports {
		t.Error("Expected snippet without contradiction phrases to support the claim")
	}
	if item.RetrievedAt.IsZero() {
		t.Error("Expected retrieval timestamp to be set")
	}
}

func TestVerify_NoEvidenceSkipsOracle(t *testing.T) {
	// Search degraded to empty (e.g. rate limited on every retry)
	source := &fakeSource{results: nil}
	oracle := &fakeOracle{response: `{"status": "verified"}`}

	v := NewVerifier(source, oracle, defaultVerifyConfig())
	verdict := v.Verify(context.Background(), growthClaim(), "Acme")

	if verdict.Status != model.StatusUnableToVerify {
		t.Errorf("Expected unable_to_verify, got %s", verdict.Status)
	}
	if verdict.Confidence != 0.2 {
		t.Errorf("Expected confidence 0.2, got %v", verdict.Confidence)
	}
	if len(verdict.Evidence) != 0 {
		t.Errorf("Expected no evidence, got %d items", len(verdict.Evidence))
	}
	if len(verdict.RedFlags) != 1 || verdict.RedFlags[0] != "No external sources found to verify this claim" {
		t.Errorf("Expected the no-sources red flag, got %v", verdict.RedFlags)
	}
	if oracle.calls != 0 {
		t.Errorf("Expected oracle not to be called without evidence, got %d calls", oracle.calls)
	}
}

func TestVerify_IrrelevantEvidenceFiltered(t *testing.T) {
	source := &fakeSource{results: []search.Result{{
		Title:        "Unrelated",
		URL:          "https://example.com/post",
		Snippet:      "completely different topic entirely",
		SourceDomain: "example.com",
	}}}
	oracle := &fakeOracle{response: `{"status": "verified"}`}

	v := NewVerifier(source, oracle, defaultVerifyConfig())
	verdict := v.Verify(context.Background(), growthClaim(), "Acme")

	if verdict.Status != model.StatusUnableToVerify {
		t.Errorf("Expected unable_to_verify when nothing passes the threshold, got %s", verdict.Status)
	}
	if len(verdict.Evidence) != 0 {
		t.Errorf("Evidence at or below the threshold must never appear in a verdict, got %d items", len(verdict.Evidence))
	}
	if oracle.calls != 0 {
		t.Errorf("Expected oracle skipped, got %d calls", oracle.calls)
	}
}

func TestVerify_OracleErrorDegrades(t *testing.T) {
	source := &fakeSource{results: []search.Result{{
		URL:          "https://techcrunch.com/2024/acme",
		Snippet:      "Acme says revenue grew 300% in 2023 according to filings",
		SourceDomain: "techcrunch.com",
	}}}
	oracle := &fakeOracle{err: fmt.Errorf("request timed out")}

	v := NewVerifier(source, oracle, defaultVerifyConfig())
	verdict := v.Verify(context.Background(), growthClaim(), "Acme")

	if verdict.Status != model.StatusUnableToVerify {
		t.Errorf("Expected unable_to_verify on oracle failure, got %s", verdict.Status)
	}
	if verdict.Confidence != 0.3 {
		t.Errorf("Expected confidence 0.3 on oracle failure, got %v", verdict.Confidence)
	}
	if len(verdict.RedFlags) != 1 || verdict.RedFlags[0] != "Automated verification encountered an error" {
		t.Errorf("Expected the automated-error red flag, got %v", verdict.RedFlags)
	}
	if !strings.Contains(verdict.Summary, "request timed out") {
		t.Errorf("Expected failure summary to carry the cause, got %q", verdict.Summary)
	}
	// Evidence is still attached: the search succeeded, only the read failed
	if len(verdict.Evidence) != 1 {
		t.Errorf("Expected collected evidence retained, got %d items", len(verdict.Evidence))
	}
}

func TestVerify_MalformedOracleOutputDegrades(t *testing.T) {
	source := &fakeSource{results: []search.Result{{
		URL:          "https://techcrunch.com/2024/acme",
		Snippet:      "Acme says revenue grew 300% in 2023 according to filings",
		SourceDomain: "techcrunch.com",
	}}}
	oracle := &fakeOracle{response: "I cannot produce JSON today."}

	v := NewVerifier(source, oracle, defaultVerifyConfig())
	verdict := v.Verify(context.Background(), growthClaim(), "Acme")

	if verdict.Status != model.StatusUnableToVerify {
		t.Errorf("Expected unable_to_verify on malformed output, got %s", verdict.Status)
	}
	if verdict.Confidence != 0.3 {
		t.Errorf("Expected confidence 0.3, got %v", verdict.Confidence)
	}
}

func TestVerify_OracleFallbacks(t *testing.T) {
	source := &fakeSource{results: []search.Result{{
		URL:          "https://techcrunch.com/2024/acme",
		Snippet:      "Acme says revenue grew 300% in 2023 according to filings",
		SourceDomain: "techcrunch.com",
	}}}
	// Valid JSON but missing summary and confidence, unknown status
	oracle := &fakeOracle{response: `{"status": "mostly_true", "red_flags": []}`}

	v := NewVerifier(source, oracle, defaultVerifyConfig())
	verdict := v.Verify(context.Background(), growthClaim(), "Acme")

	if verdict.Status != model.StatusUnableToVerify {
		t.Errorf("Expected unknown status mapped to unable_to_verify, got %s", verdict.Status)
	}
	if verdict.Summary != "Verification analysis completed." {
		t.Errorf("Expected fallback summary, got %q", verdict.Summary)
	}
	if verdict.Confidence != 0.5 {
		t.Errorf("Expected fallback confidence 0.5, got %v", verdict.Confidence)
	}
}

func TestVerify_EvidenceSortedAndCapped(t *testing.T) {
	results := make([]search.Result, 0, 7)
	// One perfect hit plus six weaker ones that still pass the threshold
	results = append(results, search.Result{
		URL:          "https://techcrunch.com/best",
		Snippet:      "revenue grew 300% in 2023",
		SourceDomain: "techcrunch.com",
	})
	for i := 0; i < 6; i++ {
		results = append(results, search.Result{
			URL:          fmt.Sprintf("https://forbes.com/%d", i),
			Snippet:      "revenue grew strongly last year",
			SourceDomain: "forbes.com",
		})
	}
	source := &fakeSource{results: results}
	oracle := &fakeOracle{response: `{"status": "verified", "summary": "ok", "confidence": 0.8}`}

	v := NewVerifier(source, oracle, defaultVerifyConfig())
	verdict := v.Verify(context.Background(), growthClaim(), "Acme")

	if len(verdict.Evidence) != 5 {
		t.Fatalf("Expected evidence capped at 5, got %d", len(verdict.Evidence))
	}
	if verdict.Evidence[0].URL != "https://techcrunch.com/best" {
		t.Errorf("Expected most relevant evidence first, got %s", verdict.Evidence[0].URL)
	}
	for i := 1; i < len(verdict.Evidence); i++ {
		if verdict.Evidence[i].Relevance > verdict.Evidence[i-1].Relevance {
			t.Errorf("Evidence not sorted descending at index %d", i)
		}
	}
}

func TestVerify_IssuesOnlyFirstQuery(t *testing.T) {
	source := &fakeSource{}
	v := NewVerifier(source, &fakeOracle{}, defaultVerifyConfig())
	v.Verify(context.Background(), growthClaim(), "Acme")

	if len(source.queries) != 1 {
		t.Fatalf("Expected exactly one search per claim, got %d", len(source.queries))
	}
	if source.queries[0] != "Acme Revenue grew 300% in 2023" {
		t.Errorf("Expected the base query issued, got %q", source.queries[0])
	}
}
