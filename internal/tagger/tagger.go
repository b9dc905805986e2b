// Package tagger assigns part-of-speech tags to the words of a command so that
// the nouns a verb acts on can be picked out of free-form input. Tags follow
// the Penn Treebank tag set.
package tagger

import (
	"strings"
	"unicode"
)

// Penn Treebank tags that command resolution cares about.
const (
	TagVerbBase         = "VB"
	TagVerbPast         = "VBD"
	TagVerbPresent      = "VBP"
	TagNoun             = "NN"
	TagNounPlural       = "NNS"
	TagProperNoun       = "NNP"
	TagProperNounPlural = "NNPS"
	TagAdjective        = "JJ"
	TagDeterminer       = "DT"
	TagPreposition      = "IN"
	TagTo               = "TO"
	TagPronoun          = "PRP"
	TagPossessive       = "PRP$"
	TagConjunction      = "CC"
	TagAdverb           = "RB"
	TagNumber           = "CD"
	TagPunctuation      = "."
)

// Token is a single word of input with its part-of-speech tag.
type Token struct {
	Text string
	Tag  string
}

// Tagger tags each token of a sentence with its part of speech.
type Tagger interface {
	Tag(sentence string) ([]Token, error)
}

// IsVerbTag returns whether tag marks a token that can be the verb of a
// command.
func IsVerbTag(tag string) bool {
	switch tag {
	case TagVerbBase, TagVerbPast, TagVerbPresent:
		return true
	}
	return false
}

// IsNounTag returns whether tag marks a token that can be an argument of a
// command. Adjectives are included since taggers commonly tag an unfamiliar
// object word as one.
func IsNounTag(tag string) bool {
	switch tag {
	case TagNoun, TagNounPlural, TagProperNoun, TagProperNounPlural, TagAdjective:
		return true
	}
	return false
}

// Tokenize splits s into words, with each run of punctuation becoming a
// separate token. Apostrophes and hyphens inside a word are kept.
func Tokenize(s string) []string {
	var toks []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case unicode.IsSpace(r):
			flush()
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			cur.WriteRune(r)
		case (r == '\'' || r == '-') && cur.Len() > 0 && i+1 < len(runes) && unicode.IsLetter(runes[i+1]):
			cur.WriteRune(r)
		default:
			flush()
			toks = append(toks, string(r))
		}
	}
	flush()

	return toks
}
