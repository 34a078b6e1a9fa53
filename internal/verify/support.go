package verify

import "strings"

// contradictionSignals flip a snippet from corroborating to contradicting.
// Matched case-insensitively as substrings.
var contradictionSignals = []string{
	"however",
	"but actually",
	"disputed",
	"false",
	"incorrect",
	"misleading",
	"exaggerated",
}

// SupportsClaim classifies whether a snippet corroborates a claim. The
// default is true: the nuanced contradiction read belongs to the LLM
// verdict stage, this only catches blunt disputes in the snippet text.
func SupportsClaim(snippet string) bool {
	snippet = strings.ToLower(snippet)
	for _, signal := range contradictionSignals {
		if strings.Contains(snippet, signal) {
			return false
		}
	}
	return true
}
