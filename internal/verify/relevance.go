package verify

import (
	"regexp"
	"strings"
)

// credibleSources are checked by substring against the evidence domain.
// A hit adds a fixed credibility boost to the relevance score.
var credibleSources = []string{
	"crunchbase",
	"techcrunch",
	"reuters",
	"bloomberg",
	"forbes",
}

var numberPattern = regexp.MustCompile(`\d+`)

// RelevanceScore rates how relevant an evidence snippet is to a claim,
// in [0,1]. It is a cheap syntactic proxy, not a semantic match: word
// overlap carries most of the weight, with fixed boosts for a shared
// numeral and for a high-credibility source domain.
func RelevanceScore(snippet, sourceDomain, claimText string) float64 {
	snippet = strings.ToLower(snippet)
	claimText = strings.ToLower(claimText)

	claimWords := wordSet(claimText)
	snippetWords := wordSet(snippet)

	overlap := 0
	for word := range claimWords {
		if _, ok := snippetWords[word]; ok {
			overlap++
		}
	}
	maxOverlap := len(claimWords)
	if maxOverlap < 1 {
		maxOverlap = 1
	}
	wordScore := float64(overlap) / float64(maxOverlap)

	score := wordScore * 0.6
	if sharesNumber(claimText, snippet) {
		score += 0.2
	}
	if isCredibleSource(sourceDomain) {
		score += 0.2
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}

func wordSet(text string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, word := range strings.Fields(text) {
		words[word] = struct{}{}
	}
	return words
}

// sharesNumber reports whether any decimal run appears in both texts
func sharesNumber(claimText, snippet string) bool {
	claimNumbers := numberPattern.FindAllString(claimText, -1)
	if len(claimNumbers) == 0 {
		return false
	}
	snippetNumbers := make(map[string]struct{})
	for _, number := range numberPattern.FindAllString(snippet, -1) {
		snippetNumbers[number] = struct{}{}
	}
	for _, number := range claimNumbers {
		if _, ok := snippetNumbers[number]; ok {
			return true
		}
	}
	return false
}

func isCredibleSource(domain string) bool {
	domain = strings.ToLower(domain)
	for _, source := range credibleSources {
		if strings.Contains(domain, source) {
			return true
		}
	}
	return false
}
