package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sagolabs/sago/internal/model"
	"github.com/sagolabs/sago/internal/questions"
)

// Renderer writes analysis reports to files and the terminal
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full analysis as indented JSON
func (r *Renderer) RenderJSON(analysis *model.DeckAnalysis, path string) error {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(analysis *model.DeckAnalysis, path string) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Pitch Deck Analysis: %s\n\n", analysis.CompanyName)
	fmt.Fprintf(&sb, "- **Deck:** %s\n", analysis.DeckFile)
	fmt.Fprintf(&sb, "- **Analyzed:** %s\n", analysis.AnalyzedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&sb, "- **Verification score:** %.0f%% %s\n\n", analysis.DeckScore*100, scoreLabel(analysis.DeckScore))

	sb.WriteString("## Executive Summary\n\n")
	sb.WriteString(analysis.ExecutiveSummary)
	sb.WriteString("\n\n## Risk Assessment\n\n")
	sb.WriteString(analysis.RiskAssessment)
	sb.WriteString("\n\n## Claim Verdicts\n\n")

	for _, verdict := range analysis.Verdicts {
		fmt.Fprintf(&sb, "### %s %s\n\n", statusMark(verdict.Status), verdict.Claim.Text)
		fmt.Fprintf(&sb, "- **Status:** %s (confidence %.0f%%)\n", verdict.Status, verdict.Confidence*100)
		fmt.Fprintf(&sb, "- **Category:** %s (page %d)\n", verdict.Claim.Category, verdict.Claim.SourcePage)
		fmt.Fprintf(&sb, "- **Summary:** %s\n", verdict.Summary)
		for _, flag := range verdict.RedFlags {
			fmt.Fprintf(&sb, "- **Red flag:** %s\n", flag)
		}
		if len(verdict.Evidence) > 0 {
			sb.WriteString("- **Evidence:**\n")
			for _, item := range verdict.Evidence {
				fmt.Fprintf(&sb, "  - [%s](%s) (relevance %.2f): %s\n", item.SourceDomain, item.URL, item.Relevance, item.Snippet)
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(questions.FormatMarkdown(analysis.Questions, analysis.CompanyName))

	if r.includeFooter {
		sb.WriteString("\n---\n*Generated by sago. Automated verification is a starting point, not a substitute for due diligence.*\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderSummary prints a compact result block to stdout
func (r *Renderer) RenderSummary(analysis *model.DeckAnalysis) {
	counts := map[model.VerificationStatus]int{}
	for _, verdict := range analysis.Verdicts {
		counts[verdict.Status]++
	}

	fmt.Printf("\nRESULTS: %s\n", analysis.CompanyName)
	fmt.Printf("  Verification score: %.0f%% %s\n", analysis.DeckScore*100, scoreLabel(analysis.DeckScore))
	fmt.Printf("  Claims analyzed:    %d\n", len(analysis.Verdicts))
	fmt.Printf("  Verified:           %d\n", counts[model.StatusVerified])
	fmt.Printf("  Partially verified: %d\n", counts[model.StatusPartiallyVerified])
	fmt.Printf("  Contradicted:       %d\n", counts[model.StatusContradicted])
	fmt.Printf("  Unable to verify:   %d\n", counts[model.StatusUnableToVerify]+counts[model.StatusUnverified])
	fmt.Printf("  Questions:          %d\n", len(analysis.Questions))

	if len(analysis.Questions) > 0 {
		fmt.Println("\nTop questions:")
		top := analysis.Questions
		if len(top) > 3 {
			top = top[:3]
		}
		for i, q := range top {
			fmt.Printf("  %d. %s\n", i+1, q.Question)
		}
	}
}

func scoreLabel(score float64) string {
	switch {
	case score >= 0.7:
		return "(strong)"
	case score >= 0.4:
		return "(mixed)"
	default:
		return "(weak)"
	}
}

func statusMark(status model.VerificationStatus) string {
	switch status {
	case model.StatusVerified:
		return "[verified]"
	case model.StatusPartiallyVerified:
		return "[partial]"
	case model.StatusContradicted:
		return "[contradicted]"
	case model.StatusUnverified:
		return "[unverified]"
	default:
		return "[unable to verify]"
	}
}
