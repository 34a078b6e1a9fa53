package verify

import (
	"testing"
)

func TestRelevanceScore_PerfectMatch(t *testing.T) {
	claim := "Revenue grew 300% in 2023"
	snippet := "revenue grew 300% in 2023"

	got := RelevanceScore(snippet, "techcrunch.com", claim)
	if got != 1.0 {
		t.Errorf("Expected full overlap + number + credible source to score 1.0, got %v", got)
	}
}

func TestRelevanceScore_ClampsAtOne(t *testing.T) {
	claim := "revenue grew 300%"
	// Superset snippet: overlap is still complete relative to the claim
	snippet := "the company revenue grew 300% according to its 2023 filings"

	got := RelevanceScore(snippet, "bloomberg.com", claim)
	if got > 1.0 {
		t.Errorf("Expected score clamped to 1.0, got %v", got)
	}
}

func TestRelevanceScore_NoOverlap(t *testing.T) {
	got := RelevanceScore("completely unrelated text here", "example.com", "revenue grew 300%")
	if got != 0.0 {
		t.Errorf("Expected 0.0 for disjoint texts on a non-credible domain, got %v", got)
	}
}

func TestRelevanceScore_NumberMatchOnly(t *testing.T) {
	// No shared words, but the numeral 300 appears in both
	got := RelevanceScore("figure of 300 reported", "example.com", "revenue grew 300%")
	if got != 0.2 {
		t.Errorf("Expected 0.2 for number match alone, got %v", got)
	}
}

func TestRelevanceScore_CredibleSourceOnly(t *testing.T) {
	got := RelevanceScore("completely unrelated text here", "www.forbes.com", "revenue grew fast")
	if got != 0.2 {
		t.Errorf("Expected 0.2 for credible source alone, got %v", got)
	}
}

func TestRelevanceScore_MonotoneInOverlap(t *testing.T) {
	claim := "Acme revenue grew 300% in 2023"
	low := RelevanceScore("revenue mentioned once", "example.com", claim)
	high := RelevanceScore("acme revenue grew strongly", "example.com", claim)

	if high <= low {
		t.Errorf("Expected more word overlap to score higher: low=%v high=%v", low, high)
	}
}

func TestRelevanceScore_EmptyClaim(t *testing.T) {
	got := RelevanceScore("some snippet", "example.com", "")
	if got != 0.0 {
		t.Errorf("Expected 0.0 for empty claim, got %v", got)
	}
}

func TestIsCredibleSource(t *testing.T) {
	tests := []struct {
		domain string
		want   bool
	}{
		{"techcrunch.com", true},
		{"www.crunchbase.com", true},
		{"REUTERS.com", true},
		{"bloomberg.com", true},
		{"forbes.com", true},
		{"random-blog.net", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isCredibleSource(tt.domain); got != tt.want {
			t.Errorf("isCredibleSource(%q) = %v, want %v", tt.domain, got, tt.want)
		}
	}
}
