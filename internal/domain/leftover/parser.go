// Package leftover models the inventory of cooked food the user still has on
// hand, the free-form text parser that feeds it, and the loose tag matching
// used to retire items when a recipe is cooked.
package leftover

import (
	"regexp"
	"strings"
)

// Delimiters and noise words recognized by ParseDescription. People type
// things like "leftover chicken, some rice and a bit of broccoli"; the parser
// is deliberately forgiving about that.
var (
	splitPattern   = regexp.MustCompile(`(?i)[,;+\n]|\sand\s`)
	leftoverPrefix = regexp.MustCompile(`(?i)^(leftover\s+|left\s+over\s+)`)
	leftoverSuffix = regexp.MustCompile(`(?i)\s+(left\s*over|leftovers?)$`)
	leadingArticle = regexp.MustCompile(`(?i)^(some\s+|a\s+|an\s+)`)
)

// ParseDescription splits a free-form leftover description into canonical
// item names: lowercase, stripped of "leftover" noise and leading articles,
// deduplicated in first-seen order. An input of pure punctuation yields an
// empty slice; callers fall back to treating the whole trimmed input as a
// single item.
func ParseDescription(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var items []string
	for _, token := range splitPattern.Split(input, -1) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		token = leftoverPrefix.ReplaceAllString(token, "")
		token = leftoverSuffix.ReplaceAllString(token, "")
		token = leadingArticle.ReplaceAllString(token, "")
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		items = append(items, token)
	}
	return items
}

// Canonicalize normalizes a single item name the way ParseDescription would,
// used for the whole-input fallback and for simulated capture results.
func Canonicalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
