package model

import "time"

// DeckAnalysis represents the complete analysis of one pitch deck.
// Recomputed fresh each run, never cached.
type DeckAnalysis struct {
	DeckFile    string    `json:"deck_filename"`
	CompanyName string    `json:"company_name"`
	AnalyzedAt  time.Time `json:"analysis_timestamp"`

	Claims    []Claim            `json:"extracted_claims"`
	Verdicts  []Verdict          `json:"verified_claims"`
	Questions []InvestorQuestion `json:"generated_questions"`

	ExecutiveSummary string  `json:"executive_summary"`
	RiskAssessment   string  `json:"risk_assessment"`
	DeckScore        float64 `json:"overall_verification_score"` // 0-1 aggregate trust score
}

// InvestorQuestion is a generated due-diligence question for the investor
type InvestorQuestion struct {
	Question        string   `json:"question"`
	Category        string   `json:"category"`
	Priority        string   `json:"priority"` // "high", "medium", "low"
	Rationale       string   `json:"rationale"`
	RelatedClaimIDs []string `json:"related_claim_ids"`
	Personalization string   `json:"personalization_context,omitempty"`
}

// InvestorProfile personalizes question generation
type InvestorProfile struct {
	Name            string   `json:"name" yaml:"name"`
	FocusAreas      []string `json:"focus_areas" yaml:"focus_areas"`
	InvestmentStage string   `json:"investment_stage" yaml:"investment_stage"`
}

// DefaultInvestorProfile returns the profile used when none is configured
func DefaultInvestorProfile() InvestorProfile {
	return InvestorProfile{
		Name:            "Investor",
		FocusAreas:      []string{"B2B SaaS", "FinTech", "AI/ML"},
		InvestmentStage: "Series A",
	}
}
