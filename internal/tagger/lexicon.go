package tagger

import (
	"strings"
	"unicode"
)

var closedClass = map[string]string{
	"i": TagPronoun, "you": TagPronoun, "he": TagPronoun, "she": TagPronoun,
	"it": TagPronoun, "we": TagPronoun, "they": TagPronoun, "me": TagPronoun,
	"him": TagPronoun, "her": TagPronoun, "us": TagPronoun, "them": TagPronoun,

	"my": TagPossessive, "your": TagPossessive, "his": TagPossessive,
	"its": TagPossessive, "our": TagPossessive, "their": TagPossessive,

	"the": TagDeterminer, "a": TagDeterminer, "an": TagDeterminer,
	"this": TagDeterminer, "that": TagDeterminer, "these": TagDeterminer,
	"those": TagDeterminer, "some": TagDeterminer, "any": TagDeterminer,
	"every": TagDeterminer, "each": TagDeterminer, "all": TagDeterminer,
	"no": TagDeterminer,

	"to": TagTo,

	"with": TagPreposition, "on": TagPreposition, "onto": TagPreposition,
	"at": TagPreposition, "in": TagPreposition, "into": TagPreposition,
	"from": TagPreposition, "using": TagPreposition, "upon": TagPreposition,
	"for": TagPreposition, "of": TagPreposition, "by": TagPreposition,
	"under": TagPreposition, "over": TagPreposition, "through": TagPreposition,
	"about": TagPreposition, "toward": TagPreposition, "towards": TagPreposition,
	"inside": TagPreposition, "behind": TagPreposition, "near": TagPreposition,

	"and": TagConjunction, "or": TagConjunction, "but": TagConjunction,

	"then": TagAdverb, "again": TagAdverb, "please": TagAdverb, "now": TagAdverb,
	"here": TagAdverb, "there": TagAdverb, "away": TagAdverb, "back": TagAdverb,
}

var adjectives = map[string]bool{
	"small": true, "large": true, "big": true, "little": true, "old": true,
	"ancient": true, "rusty": true, "brass": true, "golden": true,
	"silver": true, "wooden": true, "iron": true, "heavy": true, "dark": true,
	"bright": true, "red": true, "green": true, "blue": true, "black": true,
	"white": true,
}

// common verbs beyond the game vocabulary, so that "i pick up the lamp" still
// finds a verb.
var commonVerbs = []string{
	"go", "walk", "run", "pick", "put", "place", "use", "give", "get", "grab",
	"hit", "kill", "eat", "drink", "throw", "push", "pull", "turn", "say",
	"talk", "climb", "enter", "leave", "wear", "burn",
}

// Lexicon is a deterministic rule-based Tagger. It knows the closed-class
// words of English and a fixed set of verbs, and tags every other word as a
// noun. A verb word is only tagged as a verb when it follows a subject
// pronoun or a conjunction; anywhere else it is taken to be a noun.
//
// Lexicon should not be used directly; create one with NewLexicon.
type Lexicon struct {
	verbs map[string]bool
}

// NewLexicon creates a Lexicon that recognizes the given verbs in addition to
// a small set of common English verbs.
func NewLexicon(verbs ...string) *Lexicon {
	lx := &Lexicon{verbs: map[string]bool{}}
	for _, v := range commonVerbs {
		lx.verbs[v] = true
	}
	for _, v := range verbs {
		lx.verbs[strings.ToLower(v)] = true
	}
	return lx
}

// Tag splits sentence into tokens and tags each one. It never returns a
// non-nil error.
func (lx *Lexicon) Tag(sentence string) ([]Token, error) {
	words := Tokenize(sentence)
	toks := make([]Token, 0, len(words))

	prevTag := ""
	for _, w := range words {
		lower := strings.ToLower(w)
		tag := lx.tagWord(lower, prevTag)
		toks = append(toks, Token{Text: w, Tag: tag})
		prevTag = tag
	}

	return toks, nil
}

func (lx *Lexicon) tagWord(w string, prevTag string) string {
	if !hasWordRune(w) {
		return TagPunctuation
	}
	if tag, ok := closedClass[w]; ok {
		return tag
	}
	if isNumber(w) {
		return TagNumber
	}
	if lx.verbs[w] && (prevTag == TagPronoun || prevTag == TagConjunction) {
		return TagVerbPresent
	}
	if adjectives[w] {
		return TagAdjective
	}
	if strings.HasSuffix(w, "ly") && len(w) > 4 {
		return TagAdverb
	}
	if strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && len(w) > 3 {
		return TagNounPlural
	}
	return TagNoun
}

func hasWordRune(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
