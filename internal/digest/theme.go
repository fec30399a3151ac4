// Package digest derives the daily market summary from a batch of items.
package digest

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/frnietz/lettaearthnewsletterbist/internal/feed"
)

// maxThemes caps the keyword summary.
const maxThemes = 6

// minTokenRunes drops particles and other short noise tokens.
const minTokenRunes = 4

// DefaultStopWords are generic market terms that dominate every Turkish
// finance headline and carry no signal of their own.
var DefaultStopWords = []string{
	"bugün", "son", "dakika", "piyasa", "borsa", "bist", "bist100",
	"yüzde", "ile", "daha", "olarak", "gibi", "için", "şirket", "hisse",
}

// Themes extracts the most frequent meaningful tokens across titles and
// summaries. Ties keep the order of first appearance, so the result is
// stable for identical input.
func Themes(items []feed.Item, stopWords []string) []string {
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}

	counts := make(map[string]int)
	var order []string

	for _, it := range items {
		for _, tok := range tokenize(it.Title + " " + it.Summary) {
			if utf8.RuneCountInString(tok) < minTokenRunes {
				continue
			}
			if _, skip := stop[tok]; skip {
				continue
			}
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxThemes {
		order = order[:maxThemes]
	}
	return order
}

// tokenize lowercases and keeps letters, digits and spaces; everything
// else becomes a word boundary. unicode.IsLetter covers the Turkish
// alphabet without a special case.
func tokenize(s string) []string {
	s = strings.ToLower(s)
	runes := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			runes = append(runes, r)
		} else {
			runes = append(runes, ' ')
		}
	}
	return strings.Fields(string(runes))
}
