// Package verbs contains the static verb vocabulary, the classification of
// each verb into its grammatical type, and the verb table that binds verbs to
// help text, error text, and handlers.
package verbs

import (
	"fmt"
)

// Type is the grammatical category of a verb. It determines how many
// arguments the verb takes and in which order.
type Type int

const (
	// TargetFirst verbs take a target then an implement, as in "attack goblin
	// with sword".
	TargetFirst Type = iota + 1

	// ImplementFirst verbs take an implement then a target, as in "cast
	// fireball on goblin".
	ImplementFirst

	// SingleTarget verbs take exactly one target.
	SingleTarget

	// ZeroArgument verbs take no arguments.
	ZeroArgument

	// Help is the help verb.
	Help

	// Directional verbs are movement words. They take no arguments; the word
	// itself is the target.
	Directional
)

func (t Type) String() string {
	switch t {
	case TargetFirst:
		return "target-first"
	case ImplementFirst:
		return "implement-first"
	case SingleTarget:
		return "single-target"
	case ZeroArgument:
		return "zero-argument"
	case Help:
		return "help"
	case Directional:
		return "directional"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ArgCount returns the number of nouns a verb of this type requires.
func (t Type) ArgCount() int {
	switch t {
	case TargetFirst, ImplementFirst:
		return 2
	case SingleTarget:
		return 1
	default:
		return 0
	}
}

// TakesArguments returns whether verbs of this type are resolved by looking
// for nouns in the rest of the input.
func (t Type) TakesArguments() bool {
	return t.ArgCount() > 0
}

type partition struct {
	typ   Type
	words []string
}

var partitions = []partition{
	{typ: TargetFirst, words: []string{"attack", "lock", "unlock"}},
	{typ: ImplementFirst, words: []string{"buy", "sell", "cast", "insert", "remove"}},
	{typ: SingleTarget, words: []string{"inspect", "open", "close", "read", "speak", "take", "steal", "drop", "light", "extinguish"}},
	{typ: ZeroArgument, words: []string{"inventory", "look", "quit", "dig", "iddqd", "xyzzy", "idkfa", "arkhtos"}},
	{typ: Help, words: []string{"help"}},
	{typ: Directional, words: []string{"north", "south", "east", "west", "up", "down"}},
}

// cheat verbs are never offered as suggestions or shown in help.
var cheatVerbs = map[string]bool{
	"iddqd":   true,
	"xyzzy":   true,
	"idkfa":   true,
	"arkhtos": true,
}

var (
	classes    map[string]Type
	vocabulary []string
	classErr   error
)

func init() {
	classes, vocabulary, classErr = buildClasses(partitions)
}

// buildClasses indexes the given partitions by word. A word that appears in
// more than one partition is an error.
func buildClasses(parts []partition) (map[string]Type, []string, error) {
	idx := map[string]Type{}
	var vocab []string

	for _, p := range parts {
		for _, w := range p.words {
			if existing, ok := idx[w]; ok {
				return nil, nil, fmt.Errorf("verb %q is classified as both %s and %s", w, existing, p.typ)
			}
			idx[w] = p.typ
			vocab = append(vocab, w)
		}
	}

	return idx, vocab, nil
}

// CheckPartitions returns a non-nil error if the built-in classification
// tables are not disjoint.
func CheckPartitions() error {
	return classErr
}

// Classify returns the Type of word. word must already be lower-case.
func Classify(word string) (Type, error) {
	if t, ok := classes[word]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("not a known verb: %q", word)
}

// IsKnown returns whether word is in the verb vocabulary.
func IsKnown(word string) bool {
	_, ok := classes[word]
	return ok
}

// IsCheat returns whether word is one of the secret cheat verbs.
func IsCheat(word string) bool {
	return cheatVerbs[word]
}

// Vocabulary returns every known verb in classification table order.
func Vocabulary() []string {
	v := make([]string, len(vocabulary))
	copy(v, vocabulary)
	return v
}
