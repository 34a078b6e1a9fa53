package verify

import (
	"math"
	"testing"

	"github.com/sagolabs/sago/internal/model"
)

func TestAggregateScore_Empty(t *testing.T) {
	if got := AggregateScore(nil); got != 0.0 {
		t.Errorf("Expected 0.0 for empty input, got %v", got)
	}
	if got := AggregateScore([]model.Verdict{}); got != 0.0 {
		t.Errorf("Expected 0.0 for empty slice, got %v", got)
	}
}

func TestAggregateScore_SingleVerified(t *testing.T) {
	verdicts := []model.Verdict{{
		Claim:      model.Claim{Confidence: 0.9},
		Status:     model.StatusVerified,
		Confidence: 0.8,
	}}

	// value = 1.0 * 0.8, weight cancels for a single verdict
	if got := AggregateScore(verdicts); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("Expected 0.8, got %v", got)
	}
}

func TestAggregateScore_WeightedMean(t *testing.T) {
	verdicts := []model.Verdict{
		{Claim: model.Claim{Confidence: 1.0}, Status: model.StatusVerified, Confidence: 1.0},
		{Claim: model.Claim{Confidence: 0.5}, Status: model.StatusContradicted, Confidence: 1.0},
	}

	// (1.0*1.0 + 0.5*0.0) / 1.5
	want := 1.0 / 1.5
	if got := AggregateScore(verdicts); math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestAggregateScore_PermutationInvariant(t *testing.T) {
	a := []model.Verdict{
		{Claim: model.Claim{Confidence: 0.9}, Status: model.StatusVerified, Confidence: 0.8},
		{Claim: model.Claim{Confidence: 0.4}, Status: model.StatusUnverified, Confidence: 0.6},
		{Claim: model.Claim{Confidence: 0.7}, Status: model.StatusUnableToVerify, Confidence: 0.3},
	}
	b := []model.Verdict{a[2], a[0], a[1]}

	if got, want := AggregateScore(b), AggregateScore(a); math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected permutation invariance: %v vs %v", got, want)
	}
}

func TestAggregateScore_ZeroTotalWeight(t *testing.T) {
	verdicts := []model.Verdict{
		{Claim: model.Claim{Confidence: 0}, Status: model.StatusVerified, Confidence: 1.0},
	}
	if got := AggregateScore(verdicts); got != 0.0 {
		t.Errorf("Expected 0.0 for zero total weight, got %v", got)
	}
}

func TestStatusBaseScore_UnableOutranksUnverified(t *testing.T) {
	// Absence of evidence scores above evidence that failed to
	// corroborate. Deliberate policy, revisit if it bites.
	if statusBaseScore(model.StatusUnableToVerify) <= statusBaseScore(model.StatusUnverified) {
		t.Error("Expected unable_to_verify to outrank unverified")
	}
}

func TestStatusBaseScore_Values(t *testing.T) {
	tests := []struct {
		status model.VerificationStatus
		want   float64
	}{
		{model.StatusVerified, 1.0},
		{model.StatusPartiallyVerified, 0.6},
		{model.StatusUnverified, 0.3},
		{model.StatusContradicted, 0.0},
		{model.StatusUnableToVerify, 0.4},
	}

	for _, tt := range tests {
		if got := statusBaseScore(tt.status); got != tt.want {
			t.Errorf("statusBaseScore(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
