package tagger

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// Prose is a Tagger backed by the statistical tagger and named-entity
// recognizer of the prose library. A multi-word named entity is merged into a
// single proper-noun token so that it counts as one argument.
type Prose struct{}

// NewProse creates a new Prose tagger.
func NewProse() *Prose {
	return &Prose{}
}

// Tag tags sentence using the prose models.
func (p *Prose) Tag(sentence string) ([]Token, error) {
	doc, err := prose.NewDocument(sentence, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("tag sentence: %w", err)
	}

	return groupEntities(doc.Tokens()), nil
}

// groupEntities converts prose tokens to Tokens, merging each run of tokens
// that share an IOB entity label into one NNP token.
func groupEntities(ptoks []prose.Token) []Token {
	var toks []Token
	var entity []string

	flush := func() {
		if len(entity) > 0 {
			toks = append(toks, Token{Text: strings.Join(entity, " "), Tag: TagProperNoun})
			entity = nil
		}
	}

	for _, pt := range ptoks {
		switch {
		case strings.HasPrefix(pt.Label, "B-"):
			flush()
			entity = append(entity, pt.Text)
		case strings.HasPrefix(pt.Label, "I-") && len(entity) > 0:
			entity = append(entity, pt.Text)
		default:
			flush()
			toks = append(toks, Token{Text: pt.Text, Tag: pt.Tag})
		}
	}
	flush()

	return toks
}
