// Package questions turns verification outcomes into due-diligence
// questions an investor can bring to the founder meeting.
package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sagolabs/sago/internal/llm"
	"github.com/sagolabs/sago/internal/model"
)

// Generator produces personalized investor questions from verdicts.
// Two passes: questions probing problematic claims, then generic
// strategic due-diligence questions. Both degrade to empty on LLM
// failure; a question-less analysis is still a valid analysis.
type Generator struct {
	oracle       llm.Provider
	maxQuestions int
}

// NewGenerator creates a question generator
func NewGenerator(oracle llm.Provider, maxQuestions int) *Generator {
	if maxQuestions <= 0 {
		maxQuestions = 10
	}
	return &Generator{oracle: oracle, maxQuestions: maxQuestions}
}

type rawQuestion struct {
	Question        string   `json:"question"`
	Category        string   `json:"category"`
	Priority        string   `json:"priority"`
	Rationale       string   `json:"rationale"`
	RelatedClaimIDs []string `json:"related_claim_ids"`
	Personalization string   `json:"personalization"`
}

// Generate produces at most maxQuestions prioritized questions
func (g *Generator) Generate(ctx context.Context, verdicts []model.Verdict, profile model.InvestorProfile, companyName string) []model.InvestorQuestion {
	var all []model.InvestorQuestion
	all = append(all, g.verificationQuestions(ctx, verdicts, profile, companyName)...)
	all = append(all, g.dueDiligenceQuestions(ctx, profile, companyName)...)

	prioritized := prioritize(all, profile)
	if len(prioritized) > g.maxQuestions {
		prioritized = prioritized[:g.maxQuestions]
	}
	return prioritized
}

// verificationQuestions probes claims that did not come back clean
func (g *Generator) verificationQuestions(ctx context.Context, verdicts []model.Verdict, profile model.InvestorProfile, companyName string) []model.InvestorQuestion {
	var problematic []model.Verdict
	for _, verdict := range verdicts {
		if verdict.Status != model.StatusVerified {
			problematic = append(problematic, verdict)
		}
	}
	if len(problematic) == 0 {
		return nil
	}
	if len(problematic) > 10 {
		problematic = problematic[:10]
	}

	type claimSummary struct {
		ClaimID  string   `json:"claim_id"`
		Claim    string   `json:"claim"`
		Category string   `json:"category"`
		Status   string   `json:"status"`
		Summary  string   `json:"verification_summary"`
		RedFlags []string `json:"red_flags"`
	}
	summaries := make([]claimSummary, 0, len(problematic))
	for _, verdict := range problematic {
		summaries = append(summaries, claimSummary{
			ClaimID:  verdict.Claim.ID,
			Claim:    verdict.Claim.Text,
			Category: string(verdict.Claim.Category),
			Status:   string(verdict.Status),
			Summary:  verdict.Summary,
			RedFlags: verdict.RedFlags,
		})
	}
	summariesJSON, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return nil
	}

	prompt := fmt.Sprintf(`You are helping an investor prepare questions for a meeting with %s.

INVESTOR PROFILE:
- Name: %s
- Focus Areas: %s
- Investment Stage: %s

CLAIMS THAT NEED CLARIFICATION:
%s

Generate specific, incisive questions that:
1. Probe the unverified or contradicted claims
2. Are tailored to this investor's focus areas
3. Would reveal important information for investment decisions
4. Are professional but direct

Return a JSON array of questions:
[
  {
    "question": "The exact question to ask",
    "category": "market_size|revenue|team|product|competition|other",
    "priority": "high|medium|low",
    "rationale": "Why this question is important",
    "related_claim_ids": ["claim_0001"],
    "personalization": "How this relates to the investor's interests"
  }
]

Generate 3-5 high-impact questions. Return ONLY valid JSON.`,
		companyName, profile.Name, strings.Join(profile.FocusAreas, ", "), profile.InvestmentStage, summariesJSON)

	return g.ask(ctx, prompt, "verification")
}

// dueDiligenceQuestions are the generic strategic questions every meeting needs
func (g *Generator) dueDiligenceQuestions(ctx context.Context, profile model.InvestorProfile, companyName string) []model.InvestorQuestion {
	focus := strings.Join(profile.FocusAreas, ", ")
	prompt := fmt.Sprintf(`You are helping an investor with due diligence for %s.

INVESTOR PROFILE:
- Name: %s
- Focus Areas: %s
- Investment Stage: %s

Generate strategic due diligence questions that a %s investor
should ask, specifically tailored to someone focused on %s.

Categories to cover:
1. Business model and unit economics
2. Go-to-market strategy
3. Team and execution capability
4. Technology and product differentiation
5. Competition and market dynamics

Return a JSON array of questions:
[
  {
    "question": "The exact question to ask",
    "category": "business_model|gtm|team|technology|competition",
    "priority": "high|medium|low",
    "rationale": "Why this question matters for this investor",
    "related_claim_ids": [],
    "personalization": "How this connects to investor's specific interests"
  }
]

Generate 4-5 strategic questions. Return ONLY valid JSON.`,
		companyName, profile.Name, focus, profile.InvestmentStage, profile.InvestmentStage, focus)

	return g.ask(ctx, prompt, "due diligence")
}

// ask runs one prompt and decodes the question array, degrading to nil
func (g *Generator) ask(ctx context.Context, prompt, kind string) []model.InvestorQuestion {
	if g.oracle == nil {
		return nil
	}

	raw, err := g.oracle.Complete(ctx, llm.CompleteRequest{Prompt: prompt})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s questions: %v\n", kind, err)
		return nil
	}

	var rawQuestions []rawQuestion
	if err := llm.DecodeArray(raw, &rawQuestions); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s questions: %v\n", kind, err)
		return nil
	}

	questions := make([]model.InvestorQuestion, 0, len(rawQuestions))
	for _, rq := range rawQuestions {
		if strings.TrimSpace(rq.Question) == "" {
			continue
		}
		priority := rq.Priority
		if priority == "" {
			priority = "medium"
		}
		category := rq.Category
		if category == "" {
			category = "other"
		}
		questions = append(questions, model.InvestorQuestion{
			Question:        rq.Question,
			Category:        category,
			Priority:        priority,
			Rationale:       rq.Rationale,
			RelatedClaimIDs: rq.RelatedClaimIDs,
			Personalization: rq.Personalization,
		})
	}
	return questions
}

// prioritize orders questions by declared priority, boosted when the
// question mentions one of the investor's focus areas or ties back to a
// flagged claim
func prioritize(questions []model.InvestorQuestion, profile model.InvestorProfile) []model.InvestorQuestion {
	rank := func(q model.InvestorQuestion) float64 {
		base := 1.0
		switch q.Priority {
		case "high":
			base = 0.0
		case "low":
			base = 2.0
		}

		lower := strings.ToLower(q.Question)
		for _, area := range profile.FocusAreas {
			if area != "" && strings.Contains(lower, strings.ToLower(area)) {
				base -= 0.5
				break
			}
		}
		if len(q.RelatedClaimIDs) > 0 {
			base -= 0.3
		}
		return base
	}

	sorted := make([]model.InvestorQuestion, len(questions))
	copy(sorted, questions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rank(sorted[i]) < rank(sorted[j])
	})
	return sorted
}

// FormatMarkdown renders the questions as a markdown briefing document
func FormatMarkdown(questions []model.InvestorQuestion, companyName string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Due Diligence Questions for %s\n\n", companyName)

	sb.WriteString("## High Priority Questions\n\n")
	i := 0
	for _, q := range questions {
		if q.Priority != "high" {
			continue
		}
		i++
		fmt.Fprintf(&sb, "%d. **%s**\n", i, q.Question)
		if q.Rationale != "" {
			fmt.Fprintf(&sb, "   - *Rationale:* %s\n", q.Rationale)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Additional Questions\n\n")
	j := 0
	for _, q := range questions {
		if q.Priority == "high" {
			continue
		}
		j++
		fmt.Fprintf(&sb, "%d. %s\n", j, q.Question)
	}

	return sb.String()
}
