package tagger

import (
	"testing"

	"github.com/jdkato/prose/v2"
	"github.com/stretchr/testify/assert"
)

func Test_Tokenize(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []string
	}{
		{name: "empty", input: "", expect: nil},
		{name: "single word", input: "look", expect: []string{"look"}},
		{name: "extra spaces", input: "  take   lamp ", expect: []string{"take", "lamp"}},
		{name: "trailing punctuation", input: "take lamp.", expect: []string{"take", "lamp", "."}},
		{name: "inner apostrophe kept", input: "take giant's club", expect: []string{"take", "giant's", "club"}},
		{name: "hyphenated word kept", input: "read half-burnt note", expect: []string{"read", "half-burnt", "note"}},
		{name: "comma", input: "attack goblin, sword", expect: []string{"attack", "goblin", ",", "sword"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, Tokenize(tc.input))
		})
	}
}

func Test_Lexicon_Tag(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []Token
	}{
		{
			name:  "verb after subject",
			input: "i light the lamp",
			expect: []Token{
				{Text: "i", Tag: TagPronoun},
				{Text: "light", Tag: TagVerbPresent},
				{Text: "the", Tag: TagDeterminer},
				{Text: "lamp", Tag: TagNoun},
			},
		},
		{
			name:  "verb word in object position is a noun",
			input: "i take the light",
			expect: []Token{
				{Text: "i", Tag: TagPronoun},
				{Text: "take", Tag: TagVerbPresent},
				{Text: "the", Tag: TagDeterminer},
				{Text: "light", Tag: TagNoun},
			},
		},
		{
			name:  "target and implement",
			input: "i attack goblin with rusty sword",
			expect: []Token{
				{Text: "i", Tag: TagPronoun},
				{Text: "attack", Tag: TagVerbPresent},
				{Text: "goblin", Tag: TagNoun},
				{Text: "with", Tag: TagPreposition},
				{Text: "rusty", Tag: TagAdjective},
				{Text: "sword", Tag: TagNoun},
			},
		},
		{
			name:  "no subject means no verb",
			input: "frobnicate widget",
			expect: []Token{
				{Text: "frobnicate", Tag: TagNoun},
				{Text: "widget", Tag: TagNoun},
			},
		},
		{
			name:  "plural and number",
			input: "i buy 3 coins",
			expect: []Token{
				{Text: "i", Tag: TagPronoun},
				{Text: "buy", Tag: TagVerbPresent},
				{Text: "3", Tag: TagNumber},
				{Text: "coins", Tag: TagNounPlural},
			},
		},
		{
			name:  "punctuation",
			input: "i read note!",
			expect: []Token{
				{Text: "i", Tag: TagPronoun},
				{Text: "read", Tag: TagVerbPresent},
				{Text: "note", Tag: TagNoun},
				{Text: "!", Tag: TagPunctuation},
			},
		},
	}

	lx := NewLexicon("light", "take", "attack", "buy", "read")

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := lx.Tag(tc.input)

			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_TagPredicates(t *testing.T) {
	assert := assert.New(t)

	for _, tag := range []string{"VB", "VBD", "VBP"} {
		assert.True(IsVerbTag(tag), tag)
		assert.False(IsNounTag(tag), tag)
	}
	for _, tag := range []string{"NN", "NNS", "NNP", "NNPS", "JJ"} {
		assert.True(IsNounTag(tag), tag)
		assert.False(IsVerbTag(tag), tag)
	}
	for _, tag := range []string{"DT", "IN", "PRP", "VBZ", "VBG", "."} {
		assert.False(IsNounTag(tag), tag)
		assert.False(IsVerbTag(tag), tag)
	}
}

func Test_groupEntities(t *testing.T) {
	input := []prose.Token{
		{Text: "i", Tag: "PRP", Label: "O"},
		{Text: "speak", Tag: "VBP", Label: "O"},
		{Text: "to", Tag: "TO", Label: "O"},
		{Text: "Lord", Tag: "NNP", Label: "B-PERSON"},
		{Text: "Vetinari", Tag: "NNP", Label: "I-PERSON"},
		{Text: "in", Tag: "IN", Label: "O"},
		{Text: "Ankh", Tag: "NNP", Label: "B-GPE"},
		{Text: "today", Tag: "NN", Label: "O"},
	}

	expect := []Token{
		{Text: "i", Tag: "PRP"},
		{Text: "speak", Tag: "VBP"},
		{Text: "to", Tag: "TO"},
		{Text: "Lord Vetinari", Tag: "NNP"},
		{Text: "in", Tag: "IN"},
		{Text: "Ankh", Tag: "NNP"},
		{Text: "today", Tag: "NN"},
	}

	assert.Equal(t, expect, groupEntities(input))
}
