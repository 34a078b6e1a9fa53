package verify

import "github.com/sagolabs/sago/internal/model"

// statusBaseScore fixes how much each outcome is worth before weighting.
// unable_to_verify scores above unverified: absence of evidence is read
// as less damaging than evidence that failed to corroborate.
func statusBaseScore(status model.VerificationStatus) float64 {
	switch status {
	case model.StatusVerified:
		return 1.0
	case model.StatusPartiallyVerified:
		return 0.6
	case model.StatusUnverified:
		return 0.3
	case model.StatusContradicted:
		return 0.0
	case model.StatusUnableToVerify:
		return 0.4
	default:
		return 0.5
	}
}

// AggregateScore folds all verdicts for one deck into a single trust
// score in [0,1]. Each verdict contributes its claim confidence as
// weight and statusBaseScore times verification confidence as value.
// Empty input or zero total weight returns 0.0, which is defined, not
// an error.
func AggregateScore(verdicts []model.Verdict) float64 {
	if len(verdicts) == 0 {
		return 0.0
	}

	var totalWeight, weighted float64
	for _, verdict := range verdicts {
		weight := verdict.Claim.Confidence
		value := statusBaseScore(verdict.Status) * verdict.Confidence

		weighted += weight * value
		totalWeight += weight
	}

	if totalWeight == 0 {
		return 0.0
	}
	return weighted / totalWeight
}
