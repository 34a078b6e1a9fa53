package verify

import (
	"context"
	"fmt"
	"os"

	"github.com/sagolabs/sago/internal/model"
)

// VerifyAll verifies an ordered claim list under the per-run budget.
// Only the first ClaimBudget claims get full verification; the rest
// receive a fixed skipped verdict. The output is length-preserving and
// order-preserving: every claim yields exactly one verdict, no matter
// what the collaborators do.
func (v *Verifier) VerifyAll(ctx context.Context, claims []model.Claim, companyName string) []model.Verdict {
	budget := v.config.ClaimBudget
	if budget <= 0 {
		budget = 5
	}
	if budget > len(claims) {
		budget = len(claims)
	}

	verdicts := make([]model.Verdict, 0, len(claims))

	for i, claim := range claims[:budget] {
		fmt.Fprintf(os.Stderr, "   Verifying claim %d/%d: %s...\n", i+1, budget, truncate(claim.Text, 50))
		verdicts = append(verdicts, v.Verify(ctx, claim, companyName))
	}

	for _, claim := range claims[budget:] {
		verdicts = append(verdicts, model.Verdict{
			Claim:      claim,
			Status:     model.StatusUnableToVerify,
			Evidence:   []model.EvidenceItem{},
			Summary:    "Skipped to conserve API quota.",
			Confidence: 0.3,
			RedFlags:   []string{},
		})
	}

	return verdicts
}

// truncate cuts s to at most n runes, never splitting a multi-byte rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
