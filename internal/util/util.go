// Package util holds small text and collection helpers shared by the game
// packages.
package util

import (
	"sort"
	"strings"
	"unicode"
)

// TextList joins the given names into an English list, as in "a lamp, a key,
// and a coin". If articles is true, each name is given its indefinite
// article.
func TextList(names []string, articles bool) string {
	if len(names) < 1 {
		return ""
	}

	words := make([]string, len(names))
	for i, n := range names {
		if articles {
			n = ArticleFor(n, false) + " " + n
		}
		words[i] = n
	}

	switch len(words) {
	case 1:
		return words[0]
	case 2:
		return words[0] + " and " + words[1]
	default:
		words[len(words)-1] = "and " + words[len(words)-1]
		return strings.Join(words, ", ")
	}
}

// ArticleFor returns the article for the given string, capitalized the same
// way as the string. If definite is true it is "the"; otherwise it is "a" or
// "an".
func ArticleFor(s string, definite bool) string {
	sRunes := []rune(s)
	if len(sRunes) < 1 {
		return ""
	}

	leadingUpper := unicode.IsUpper(sRunes[0])
	allCaps := leadingUpper && len(sRunes) > 1 && unicode.IsUpper(sRunes[1])

	var art string
	if definite {
		art = "the"
	} else {
		art = "a"
		switch unicode.ToLower(sRunes[0]) {
		case 'a', 'e', 'i', 'o', 'u':
			art = "an"
		}
	}

	if allCaps {
		return strings.ToUpper(art)
	}
	if leadingUpper {
		return strings.ToUpper(art[:1]) + art[1:]
	}
	return art
}

// OrderedKeys returns the keys of m in alphabetical order.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
