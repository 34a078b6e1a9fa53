package model

import "strings"

// VerificationStatus is the outcome of verifying a single claim
type VerificationStatus string

const (
	StatusVerified          VerificationStatus = "verified"
	StatusPartiallyVerified VerificationStatus = "partially_verified"
	StatusUnverified        VerificationStatus = "unverified"
	StatusContradicted      VerificationStatus = "contradicted"
	StatusUnableToVerify    VerificationStatus = "unable_to_verify"
)

// ParseStatus maps a free-form status string (typically from model output)
// to a VerificationStatus. Unknown or missing values fall back to
// StatusUnableToVerify so malformed input stays representable without
// an error path.
func ParseStatus(s string) VerificationStatus {
	switch VerificationStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusVerified:
		return StatusVerified
	case StatusPartiallyVerified:
		return StatusPartiallyVerified
	case StatusUnverified:
		return StatusUnverified
	case StatusContradicted:
		return StatusContradicted
	default:
		return StatusUnableToVerify
	}
}

// Verdict is the final verification outcome for one claim. Created exactly
// once per claim by the verifier and never mutated afterward. Evidence is
// sorted descending by relevance and truncated to the configured cap.
type Verdict struct {
	Claim      Claim              `json:"claim"`
	Status     VerificationStatus `json:"status"`
	Evidence   []EvidenceItem     `json:"evidence"`
	Summary    string             `json:"verification_summary"`
	Confidence float64            `json:"confidence_score"` // Overall confidence in the verification (0-1)
	RedFlags   []string           `json:"red_flags"`
}
