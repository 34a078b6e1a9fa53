package model

import "time"

// EvidenceItem represents a scored, labeled snippet retrieved from an
// external search for a given claim. Items are ephemeral: they live only
// inside the Verdict that references them.
type EvidenceItem struct {
	URL          string    `json:"source_url"`
	SourceDomain string    `json:"source_domain"` // Apparent originating domain, e.g. "techcrunch.com"
	Snippet      string    `json:"snippet"`
	Relevance    float64   `json:"relevance_score"` // 0-1, syntactic proxy (see verify.RelevanceScore)
	Supports     bool      `json:"supports_claim"`  // True if the snippet corroborates the claim
	RetrievedAt  time.Time `json:"retrieval_date"`
	PageExcerpt  string    `json:"page_excerpt,omitempty"` // Optional visible-text excerpt from the source page
}
