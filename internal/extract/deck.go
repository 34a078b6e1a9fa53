package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// DeckPage is the text content of one deck page
type DeckPage struct {
	Number int
	Text   string
}

// Deck is a loaded pitch deck in plain-text form. PDF extraction happens
// upstream of this tool; a text export with page markers (or form feeds)
// is the input contract.
type Deck struct {
	Filename string
	Pages    []DeckPage
	FullText string
}

var pageMarkerPattern = regexp.MustCompile(`(?m)^===\s*PAGE\s+(\d+)\s*===\s*$`)

// LoadDeck reads a text deck export from disk and splits it into pages.
// Page boundaries are "=== PAGE n ===" marker lines or form-feed
// characters; a deck without either is a single page.
func LoadDeck(path string) (*Deck, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}

	text := normalizeText(string(raw))
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("deck %s is empty", path)
	}

	deck := &Deck{
		Filename: filepath.Base(path),
		Pages:    splitPages(text),
	}

	var parts []string
	for _, page := range deck.Pages {
		parts = append(parts, page.Text)
	}
	deck.FullText = strings.Join(parts, "\n\n")

	return deck, nil
}

// splitPages cuts the deck text at explicit page markers, falling back
// to form feeds, falling back to one page
func splitPages(text string) []DeckPage {
	if markers := pageMarkerPattern.FindAllStringSubmatchIndex(text, -1); len(markers) > 0 {
		var pages []DeckPage
		for i, marker := range markers {
			start := marker[1]
			end := len(text)
			if i+1 < len(markers) {
				end = markers[i+1][0]
			}
			number, _ := strconv.Atoi(text[marker[2]:marker[3]])
			pages = append(pages, DeckPage{
				Number: number,
				Text:   strings.TrimSpace(text[start:end]),
			})
		}
		return pages
	}

	if strings.Contains(text, "\f") {
		var pages []DeckPage
		for i, chunk := range strings.Split(text, "\f") {
			pages = append(pages, DeckPage{
				Number: i + 1,
				Text:   strings.TrimSpace(chunk),
			})
		}
		return pages
	}

	return []DeckPage{{Number: 1, Text: strings.TrimSpace(text)}}
}

// normalizeText unifies line breaks and strips non-printing characters
// (form feeds survive, they mark page breaks)
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || r == '\f' || r >= 0x20 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// skip words that disqualify a line from being the company name
var companyNameSkips = []string{"confidential", "pitch deck", "presentation"}

// CompanyName guesses the company name from the first page: the first
// short non-boilerplate line is usually it.
func (d *Deck) CompanyName() string {
	if len(d.Pages) == 0 {
		return "Unknown Company"
	}

	for _, line := range strings.Split(d.Pages[0].Text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) >= 50 {
			continue
		}
		lower := strings.ToLower(line)
		skip := false
		for _, word := range companyNameSkips {
			if strings.Contains(lower, word) {
				skip = true
				break
			}
		}
		if !skip {
			return line
		}
	}
	return "Unknown Company"
}
