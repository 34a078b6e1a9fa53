package extract

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sagolabs/sago/internal/llm"
	"github.com/sagolabs/sago/internal/model"
)

const (
	// deckTextLimit bounds how much deck text goes into one extraction prompt
	deckTextLimit = 10000

	// similarityThreshold above which two claims count as duplicates
	similarityThreshold = 0.8
)

// ClaimExtractor pulls verifiable claims out of deck text with a single
// LLM completion, then dedupes and prioritizes them.
type ClaimExtractor struct {
	oracle    llm.Provider
	maxClaims int
}

// NewClaimExtractor creates an extractor. maxClaims caps the prioritized
// output list.
func NewClaimExtractor(oracle llm.Provider, maxClaims int) *ClaimExtractor {
	if maxClaims <= 0 {
		maxClaims = 12
	}
	return &ClaimExtractor{oracle: oracle, maxClaims: maxClaims}
}

type rawClaim struct {
	Text       string   `json:"text"`
	Category   string   `json:"category"`
	Page       int      `json:"page"`
	Context    string   `json:"context"`
	Confidence *float64 `json:"confidence"`
}

// ExtractClaims runs the whole deck through one completion and returns
// deduplicated, prioritized claims with sequential IDs
func (e *ClaimExtractor) ExtractClaims(ctx context.Context, deck *Deck) ([]model.Claim, error) {
	if e.oracle == nil {
		return nil, fmt.Errorf("no LLM provider configured for claim extraction")
	}

	text := deckText(deck)
	if strings.TrimSpace(text) == "" {
		return []model.Claim{}, nil
	}
	if len(text) > deckTextLimit {
		text = text[:deckTextLimit]
	}

	prompt := fmt.Sprintf(`Extract verifiable claims from this pitch deck. Focus on numbers, stats, team backgrounds, customers, and funding.

PITCH DECK:
%s

Return JSON array with claims. Keep text SHORT (under 100 chars). Example:
[{"text":"700M snaps viewed daily","category":"growth_metrics","confidence":0.9}]

Categories: market_size, revenue, growth_metrics, team_background, customer_claims, partnerships, funding_history, other

Return ONLY the JSON array, no other text. Max %d claims.`, text, e.maxClaims)

	raw, err := e.oracle.Complete(ctx, llm.CompleteRequest{Prompt: prompt, MaxTokens: 3000})
	if err != nil {
		return nil, fmt.Errorf("claim extraction: %w", err)
	}

	var rawClaims []rawClaim
	if err := llm.DecodeArray(raw, &rawClaims); err != nil {
		return nil, fmt.Errorf("claim extraction: %w", err)
	}

	claims := make([]model.Claim, 0, len(rawClaims))
	for i, rc := range rawClaims {
		if strings.TrimSpace(rc.Text) == "" {
			continue
		}
		page := rc.Page
		if page < 1 {
			page = 1
		}
		confidence := 0.5
		if rc.Confidence != nil {
			confidence = *rc.Confidence
		}
		claim, err := model.NewClaim(
			fmt.Sprintf("claim_%04d", i+1),
			rc.Text,
			model.ParseCategory(rc.Category),
			page,
			rc.Context,
			confidence,
		)
		if err != nil {
			continue
		}
		claims = append(claims, claim)
	}

	claims = dedupeClaims(claims)
	claims = Prioritize(claims)
	if len(claims) > e.maxClaims {
		claims = claims[:e.maxClaims]
	}
	return claims, nil
}

// deckText concatenates non-empty pages with explicit page markers so the
// model can attribute claims to pages
func deckText(deck *Deck) string {
	var parts []string
	for _, page := range deck.Pages {
		if strings.TrimSpace(page.Text) == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("=== PAGE %d ===\n%s", page.Number, page.Text))
	}
	return strings.Join(parts, "\n\n")
}

// dedupeClaims drops claims whose word sets are near-duplicates of an
// earlier claim
func dedupeClaims(claims []model.Claim) []model.Claim {
	unique := make([]model.Claim, 0, len(claims))
	var seen []string

	for _, claim := range claims {
		normalized := strings.ToLower(strings.TrimSpace(claim.Text))

		duplicate := false
		for _, prior := range seen {
			if jaccard(normalized, prior) > similarityThreshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, claim)
			seen = append(seen, normalized)
		}
	}
	return unique
}

// jaccard is word-set intersection over union
func jaccard(a, b string) float64 {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0.0
	}

	setA := make(map[string]struct{}, len(wordsA))
	for _, w := range wordsA {
		setA[w] = struct{}{}
	}
	setB := make(map[string]struct{}, len(wordsB))
	for _, w := range wordsB {
		setB[w] = struct{}{}
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}

// Prioritize orders claims by category urgency, then by descending
// confidence within a category. The verification budget consumes this
// order from the front.
func Prioritize(claims []model.Claim) []model.Claim {
	sorted := make([]model.Claim, len(claims))
	copy(sorted, claims)

	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := model.CategoryPriority(sorted[i].Category), model.CategoryPriority(sorted[j].Category)
		if pi != pj {
			return pi < pj
		}
		return sorted[i].Confidence > sorted[j].Confidence
	})
	return sorted
}
