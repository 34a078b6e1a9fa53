package verify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sagolabs/sago/internal/model"
)

var marketFigurePattern = regexp.MustCompile(`\$?[\d,]+(?:\.\d+)?(?:\s*(?:billion|million|B|M))?`)

// GenerateQueries builds the ordered search-query candidates for one
// claim. Only the first query is issued today (one external call per
// claim); the rest document the escalation path if the budget is ever
// relaxed.
func GenerateQueries(claim model.Claim, companyName string) []string {
	claimText := truncate(claim.Text, 100)

	queries := []string{fmt.Sprintf("%s %s", companyName, claimText)}

	switch claim.Category {
	case model.CategoryMarketSize:
		if figures := marketFigurePattern.FindAllString(claim.Text, -1); len(figures) > 0 {
			queries = append(queries,
				fmt.Sprintf("%s market size research report", claim.Text),
				fmt.Sprintf("TAM SAM SOM %s", strings.Join(figures, " ")),
			)
		}

	case model.CategoryRevenue:
		queries = append(queries,
			fmt.Sprintf("%s revenue funding", companyName),
			fmt.Sprintf("%s annual revenue", companyName),
		)

	case model.CategoryTeamBackground:
		queries = append(queries,
			fmt.Sprintf("%s founders background LinkedIn", companyName),
			fmt.Sprintf("%s team leadership", companyName),
		)

	case model.CategoryCustomerClaims:
		queries = append(queries,
			fmt.Sprintf("%s customers clients", companyName),
			fmt.Sprintf("%s case studies testimonials", companyName),
		)

	case model.CategoryPartnerships:
		queries = append(queries, fmt.Sprintf("%s partnerships announcements", companyName))

	case model.CategoryFundingHistory:
		queries = append(queries,
			fmt.Sprintf("%s funding Crunchbase", companyName),
			fmt.Sprintf("%s investment rounds", companyName),
		)

	case model.CategoryGrowthMetrics:
		queries = append(queries, fmt.Sprintf("%s growth metrics users", companyName))
	}

	queries = append(queries, fmt.Sprintf("%q site:techcrunch.com OR site:crunchbase.com", companyName))

	return queries
}
