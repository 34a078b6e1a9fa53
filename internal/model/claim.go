package model

import (
	"fmt"
	"strings"
)

// Claim represents a factual assertion extracted from a pitch deck
type Claim struct {
	ID         string        `json:"claim_id"`
	Text       string        `json:"text"`
	Category   ClaimCategory `json:"category"`
	SourcePage int           `json:"source_page"`       // Page the claim was found on (1-based)
	Context    string        `json:"context,omitempty"` // Surrounding text for context
	Confidence float64       `json:"confidence"`        // How likely the text is a genuine verifiable assertion (0-1)
}

// NewClaim constructs a Claim and validates its invariants.
// Confidence must be in [0,1] and the text must be non-empty; a violation
// here is a programming error upstream, so it fails fast.
func NewClaim(id, text string, category ClaimCategory, sourcePage int, context string, confidence float64) (Claim, error) {
	if strings.TrimSpace(text) == "" {
		return Claim{}, fmt.Errorf("claim %s: empty text", id)
	}
	if confidence < 0 || confidence > 1 {
		return Claim{}, fmt.Errorf("claim %s: confidence %.2f out of range [0,1]", id, confidence)
	}
	return Claim{
		ID:         id,
		Text:       text,
		Category:   category,
		SourcePage: sourcePage,
		Context:    context,
		Confidence: confidence,
	}, nil
}

// ClaimCategory categorizes the nature of the claim
type ClaimCategory string

const (
	CategoryMarketSize           ClaimCategory = "market_size"
	CategoryRevenue              ClaimCategory = "revenue"
	CategoryGrowthMetrics        ClaimCategory = "growth_metrics"
	CategoryTeamBackground       ClaimCategory = "team_background"
	CategoryCompetitiveLandscape ClaimCategory = "competitive_landscape"
	CategoryCustomerClaims       ClaimCategory = "customer_claims"
	CategoryTechnology           ClaimCategory = "technology"
	CategoryPartnerships         ClaimCategory = "partnerships"
	CategoryFundingHistory       ClaimCategory = "funding_history"
	CategoryOther                ClaimCategory = "other"
)

// ParseCategory maps a free-form category string (typically from model
// output) to a ClaimCategory. Unknown values fall back to CategoryOther.
func ParseCategory(s string) ClaimCategory {
	switch ClaimCategory(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryMarketSize:
		return CategoryMarketSize
	case CategoryRevenue:
		return CategoryRevenue
	case CategoryGrowthMetrics:
		return CategoryGrowthMetrics
	case CategoryTeamBackground:
		return CategoryTeamBackground
	case CategoryCompetitiveLandscape:
		return CategoryCompetitiveLandscape
	case CategoryCustomerClaims:
		return CategoryCustomerClaims
	case CategoryTechnology:
		return CategoryTechnology
	case CategoryPartnerships:
		return CategoryPartnerships
	case CategoryFundingHistory:
		return CategoryFundingHistory
	default:
		return CategoryOther
	}
}

// CategoryPriority returns the verification priority of a category.
// Lower is more urgent. Revenue and growth claims are the ones investors
// get burned by, so they go first.
func CategoryPriority(c ClaimCategory) int {
	switch c {
	case CategoryRevenue:
		return 1
	case CategoryGrowthMetrics:
		return 2
	case CategoryMarketSize:
		return 3
	case CategoryCustomerClaims:
		return 4
	case CategoryTeamBackground:
		return 5
	case CategoryPartnerships:
		return 6
	case CategoryFundingHistory:
		return 7
	case CategoryCompetitiveLandscape:
		return 8
	case CategoryTechnology:
		return 9
	default:
		return 10
	}
}
