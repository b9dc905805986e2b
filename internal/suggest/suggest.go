// Package suggest offers did-you-mean suggestions for words that are not in a
// fixed vocabulary.
package suggest

import (
	"math"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/tnwae/nuventure/internal/verbs"
)

// DefaultLimit is the number of suggestions given when no limit is set.
const DefaultLimit = 3

// Option configures a Suggester.
type Option func(*Suggester)

// WithLimit sets the maximum number of suggestions returned.
func WithLimit(n int) Option {
	return func(s *Suggester) {
		s.limit = n
	}
}

// Excluding keeps the given words from ever being suggested.
func Excluding(words ...string) Option {
	return func(s *Suggester) {
		for _, w := range words {
			s.excluded[w] = true
		}
	}
}

// Suggester ranks the words of a vocabulary by how similar they are to an
// unrecognized word. Ranking is deterministic; words with equal scores keep
// their vocabulary order.
type Suggester struct {
	vocab    []string
	excluded map[string]bool
	limit    int
}

// New creates a Suggester over vocab.
func New(vocab []string, opts ...Option) *Suggester {
	s := &Suggester{
		excluded: map[string]bool{},
		limit:    DefaultLimit,
	}
	for _, o := range opts {
		o(s)
	}
	for _, w := range vocab {
		if !s.excluded[w] {
			s.vocab = append(s.vocab, w)
		}
	}
	return s
}

// ForVerbs creates a Suggester over the verb vocabulary that never suggests
// cheat verbs.
func ForVerbs(opts ...Option) *Suggester {
	var cheats []string
	for _, w := range verbs.Vocabulary() {
		if verbs.IsCheat(w) {
			cheats = append(cheats, w)
		}
	}
	opts = append([]Option{Excluding(cheats...)}, opts...)
	return New(verbs.Vocabulary(), opts...)
}

// Score gives the similarity of a and b from 0 to 100, where 100 means the
// two are identical.
func Score(a, b string) int {
	total := len([]rune(a)) + len([]rune(b))
	if total == 0 {
		return 100
	}
	dist := fuzzy.LevenshteinDistance(a, b)
	return int(math.Round(100 * float64(total-dist) / float64(total)))
}

// Suggest returns up to the configured limit of vocabulary words, most similar
// to word first.
func (s *Suggester) Suggest(word string) []string {
	type scored struct {
		word  string
		score int
	}

	ranked := make([]scored, len(s.vocab))
	for i, w := range s.vocab {
		ranked[i] = scored{word: w, score: Score(word, w)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	n := s.limit
	if n > len(ranked) {
		n = len(ranked)
	}
	if n < 0 {
		n = 0
	}

	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = ranked[i].word
	}
	return out
}
