package command

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnwae/nuventure/data"
	"github.com/tnwae/nuventure/internal/action"
	"github.com/tnwae/nuventure/internal/game"
	"github.com/tnwae/nuventure/internal/nverrors"
	"github.com/tnwae/nuventure/internal/tagger"
	"github.com/tnwae/nuventure/internal/verbs"
)

type testActor struct{}

func (testActor) Name() string {
	return "player"
}

// handlerLog records which handler an invoked action was bound to.
type handlerLog struct {
	called []string
}

func (hl *handlerLog) handlers() action.HandlerSet {
	mk := func(name string) action.Handler {
		return func(ctx context.Context, a *action.Action) error {
			hl.called = append(hl.called, name)
			return nil
		}
	}
	return action.HandlerSet{
		"noop": mk("noop"),
		"move": mk("move"),
	}
}

func loadTestTable(t *testing.T, hs action.HandlerSet) *verbs.Table {
	data, err := os.ReadFile(filepath.Join("testdata", "verbs.json"))
	require.NoError(t, err)

	tbl, err := verbs.LoadJSON(data, hs)
	require.NoError(t, err)
	return tbl
}

type fakeTagger struct {
	toks []tagger.Token
	err  error
	got  string
}

func (ft *fakeTagger) Tag(sentence string) ([]tagger.Token, error) {
	ft.got = sentence
	return ft.toks, ft.err
}

func assertKind(t *testing.T, expect nverrors.Kind, err error) {
	kind, ok := nverrors.KindOf(err)
	if assert.True(t, ok, "not a taxonomy error: %v", err) {
		assert.Equal(t, expect, kind)
	}
}

func Test_Resolve_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t \n"} {
		t.Run("input "+input, func(t *testing.T) {
			assert := assert.New(t)

			r := NewResolver(loadTestTable(t, (&handlerLog{}).handlers()), nil, nil)

			out, err := r.Resolve(testActor{}, input)

			assert.NoError(err)
			assert.Equal(Empty, out.State)
			assert.Nil(out.Action)
			assert.Empty(r.LastCommand())
		})
	}
}

func Test_Resolve_Unknown(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectVerb  string
		expectFirst string
	}{
		{name: "typo", input: "lgith", expectVerb: "lgith", expectFirst: "light"},
		{name: "typo with arguments", input: "lgith the lamp", expectVerb: "lgith", expectFirst: "light"},
		{name: "mixed case", input: "InVentroy", expectVerb: "inventroy", expectFirst: "inventory"},
		{name: "gibberish", input: "qqqqqqqqqqqq", expectVerb: "qqqqqqqqqqqq"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			r := NewResolver(loadTestTable(t, (&handlerLog{}).handlers()), nil, nil)

			out, err := r.Resolve(testActor{}, tc.input)

			assertKind(t, nverrors.UnrecognizedVerb, err)
			assert.Equal(Unknown, out.State)
			assert.Nil(out.Action)
			assert.Equal(tc.expectVerb, out.Verb)
			assert.LessOrEqual(len(out.Suggestions), 3)
			if tc.expectFirst != "" {
				assert.Equal(tc.expectFirst, out.Suggestions[0])
			}
			for _, s := range out.Suggestions {
				assert.False(verbs.IsCheat(s), "cheat verb %q was suggested", s)
			}
		})
	}
}

func Test_Resolve_Directions(t *testing.T) {
	for _, dir := range []string{"north", "south", "east", "west", "up", "down"} {
		t.Run(dir, func(t *testing.T) {
			assert := assert.New(t)

			hl := &handlerLog{}
			r := NewResolver(loadTestTable(t, hl.handlers()), nil, nil)

			out, err := r.Resolve(testActor{}, dir)

			require.NoError(t, err)
			assert.Equal(Resolved, out.State)
			require.NotNil(t, out.Action)
			assert.Equal(dir, out.Action.Verb())
			assert.Equal(dir, out.Action.Target())
			assert.Empty(out.Action.Implement())

			assert.NoError(out.Action.Invoke(context.Background()))
			assert.Equal([]string{"move"}, hl.called)
		})
	}
}

func Test_Resolve_ZeroArgument(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expectErr bool
		expectArg string
	}{
		{name: "bare", input: "look"},
		{name: "upper case", input: "LOOK"},
		{name: "surrounding space", input: "  inventory  "},
		{name: "cheat verb", input: "xyzzy"},
		{name: "extra words", input: "look around the room", expectErr: true, expectArg: "around the room"},
		{name: "direction with extra words", input: "north quickly", expectErr: true, expectArg: "quickly"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			ft := &fakeTagger{}
			r := NewResolver(loadTestTable(t, (&handlerLog{}).handlers()), ft, nil)

			out, err := r.Resolve(testActor{}, tc.input)

			assert.Empty(ft.got, "tagger should not be consulted")
			if tc.expectErr {
				assertKind(t, nverrors.BadArgument, err)
				var nvErr *nverrors.Error
				if errors.As(err, &nvErr) {
					assert.Equal(tc.expectArg, nvErr.Arg)
				}
				assert.Equal(Failed, out.State)
				assert.Nil(out.Action)
				return
			}

			assert.NoError(err)
			assert.Equal(Resolved, out.State)
			if assert.NotNil(out.Action) {
				assert.Empty(out.Action.Target())
				assert.Empty(out.Action.Implement())
			}
		})
	}
}

func Test_Resolve_SingleTarget(t *testing.T) {
	singles := []string{"inspect", "open", "close", "read", "speak", "take", "steal", "drop", "light", "extinguish"}

	for _, v := range singles {
		t.Run(v, func(t *testing.T) {
			assert := assert.New(t)

			r := NewResolver(loadTestTable(t, (&handlerLog{}).handlers()), nil, nil)

			out, err := r.Resolve(testActor{}, v+" the lamp")

			require.NoError(t, err)
			assert.Equal(Resolved, out.State)
			require.NotNil(t, out.Action)
			assert.Equal(v, out.Action.Verb())
			assert.Equal("lamp", out.Action.Target())
			assert.Empty(out.Action.Implement())
		})
	}
}

func Test_Resolve_TwoArguments(t *testing.T) {
	testCases := []struct {
		input           string
		expectTarget    string
		expectImplement string
	}{
		{input: "attack goblin with sword", expectTarget: "goblin", expectImplement: "sword"},
		{input: "lock the door with the key", expectTarget: "door", expectImplement: "key"},
		{input: "unlock chest using key", expectTarget: "chest", expectImplement: "key"},
		{input: "cast fireball on goblin", expectTarget: "goblin", expectImplement: "fireball"},
		{input: "insert coin into slot", expectTarget: "slot", expectImplement: "coin"},
		{input: "buy sword with gold", expectTarget: "gold", expectImplement: "sword"},
		{input: "sell gem to merchant", expectTarget: "merchant", expectImplement: "gem"},
		{input: "remove ring from finger", expectTarget: "finger", expectImplement: "ring"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert := assert.New(t)

			r := NewResolver(loadTestTable(t, (&handlerLog{}).handlers()), nil, nil)

			out, err := r.Resolve(testActor{}, tc.input)

			require.NoError(t, err)
			assert.Equal(Resolved, out.State)
			require.NotNil(t, out.Action)
			assert.Equal(tc.expectTarget, out.Action.Target())
			assert.Equal(tc.expectImplement, out.Action.Implement())
		})
	}
}

func Test_Resolve_WrongArgumentCount(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		expectKind nverrors.Kind
		expectArg  string
	}{
		{name: "single-target given two nouns", input: "take lamp and sword", expectKind: nverrors.BadArgument, expectArg: "lamp sword"},
		{name: "target-first given one noun", input: "attack goblin", expectKind: nverrors.BadArgument, expectArg: "goblin"},
		{name: "implement-first given one noun", input: "cast fireball", expectKind: nverrors.BadArgument, expectArg: "fireball"},
		{name: "target-first given three nouns", input: "attack goblin with sword and shield", expectKind: nverrors.BadArgument, expectArg: "goblin sword shield"},
		{name: "no words after verb", input: "take", expectKind: nverrors.MissingArgument},
		{name: "no nouns after verb", input: "take the", expectKind: nverrors.MissingArgument},
		{name: "two-argument verb alone", input: "unlock", expectKind: nverrors.MissingArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			r := NewResolver(loadTestTable(t, (&handlerLog{}).handlers()), nil, nil)

			out, err := r.Resolve(testActor{}, tc.input)

			assertKind(t, tc.expectKind, err)
			var nvErr *nverrors.Error
			if errors.As(err, &nvErr) {
				assert.Equal(tc.expectArg, nvErr.Arg)
			}
			assert.Equal(Failed, out.State)
			assert.Nil(out.Action)
		})
	}
}

func Test_Resolve_TaggerInput(t *testing.T) {
	assert := assert.New(t)

	ft := &fakeTagger{toks: []tagger.Token{
		{Text: "i", Tag: "PRP"},
		{Text: "take", Tag: "NN"},
		{Text: "the", Tag: "DT"},
		{Text: "lamp", Tag: "NN"},
	}}
	r := NewResolver(loadTestTable(t, (&handlerLog{}).handlers()), ft, nil)

	out, err := r.Resolve(testActor{}, "  Take   THE lamp ")

	assert.Equal("i take the lamp", ft.got)
	assert.Equal("take the lamp", r.LastCommand())

	// lead word is not a noun even when the tagger missed it as a verb
	require.NoError(t, err)
	assert.Equal("lamp", out.Action.Target())
}

func Test_Resolve_LaterVerbsAreIgnored(t *testing.T) {
	testCases := []struct {
		name string
		toks []tagger.Token
	}{
		{
			name: "lead tagged as verb",
			toks: []tagger.Token{
				{Text: "i", Tag: "PRP"},
				{Text: "take", Tag: "VBP"},
				{Text: "lamp", Tag: "NN"},
				{Text: "and", Tag: "CC"},
				{Text: "light", Tag: "VBP"},
				{Text: "it", Tag: "PRP"},
			},
		},
		{
			name: "lead tagged as noun",
			toks: []tagger.Token{
				{Text: "i", Tag: "PRP"},
				{Text: "take", Tag: "NN"},
				{Text: "lamp", Tag: "NN"},
				{Text: "and", Tag: "CC"},
				{Text: "light", Tag: "VBP"},
				{Text: "it", Tag: "PRP"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			hl := &handlerLog{}
			r := NewResolver(loadTestTable(t, hl.handlers()), &fakeTagger{toks: tc.toks}, nil)

			out, err := r.Resolve(testActor{}, "take lamp and light it")

			require.NoError(t, err)
			assert.Equal(Resolved, out.State)
			assert.Equal("take", out.Verb)
			require.NotNil(t, out.Action)
			assert.Equal("take", out.Action.Verb())
			assert.Equal("lamp", out.Action.Target())
			assert.Empty(out.Action.Implement())
		})
	}
}

func Test_Resolve_TaggerFailure(t *testing.T) {
	assert := assert.New(t)

	tagErr := errors.New("model not loaded")
	r := NewResolver(loadTestTable(t, (&handlerLog{}).handlers()), &fakeTagger{err: tagErr}, nil)

	out, err := r.Resolve(testActor{}, "take lamp")

	assert.ErrorIs(err, tagErr)
	_, isTaxonomy := nverrors.KindOf(err)
	assert.False(isTaxonomy)
	assert.Equal(Failed, out.State)
	assert.Nil(out.Action)
}

func Test_Resolve_Help(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectLines int
		expectFirst string
	}{
		{name: "listing", input: "help", expectLines: 28, expectFirst: "look           Look around."},
		{name: "one verb", input: "help inventory", expectLines: 1, expectFirst: "inventory      View your inventory."},
		{name: "alias", input: "HELP north", expectLines: 1, expectFirst: "north          Move in a direction."},
		{name: "cheat verb", input: "help xyzzy", expectLines: 0},
		{name: "unknown verb", input: "help frobnicate", expectLines: 28, expectFirst: "look           Look around."},
		{name: "definition name that is not a verb", input: "help move", expectLines: 28, expectFirst: "look           Look around."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			r := NewResolver(loadTestTable(t, (&handlerLog{}).handlers()), nil, nil)

			out, err := r.Resolve(testActor{}, tc.input)

			assert.NoError(err)
			assert.Equal(Help, out.State)
			assert.Nil(out.Action)
			assert.Len(out.Help, tc.expectLines)
			if tc.expectFirst != "" && len(out.Help) > 0 {
				assert.Equal(tc.expectFirst, out.Help[0])
			}
		})
	}
}

func Test_Resolve_AliasesShareDefinition(t *testing.T) {
	tbl := loadTestTable(t, (&handlerLog{}).handlers())

	for _, def := range tbl.Definitions() {
		for _, alias := range def.Aliases {
			t.Run(alias, func(t *testing.T) {
				assert := assert.New(t)

				byAlias, ok := tbl.Lookup(alias)

				assert.True(ok)
				assert.Equal(def.HandlerName, byAlias.HandlerName)
				assert.Equal(def.Errors, byAlias.Errors)
			})
		}
	}
}

func Test_Resolve_LastCommand(t *testing.T) {
	assert := assert.New(t)

	r := NewResolver(loadTestTable(t, (&handlerLog{}).handlers()), nil, nil)

	_, _ = r.Resolve(testActor{}, "frobnicate")
	assert.Equal("frobnicate", r.LastCommand())

	_, _ = r.Resolve(testActor{}, "   ")
	assert.Equal("frobnicate", r.LastCommand())

	_, _ = r.Resolve(testActor{}, "Look")
	assert.Equal("look", r.LastCommand())
}

func Test_Resolve_HelpListsOnlyTypeableWords(t *testing.T) {
	hs := action.HandlerSet{}
	for _, name := range game.HandlerNames() {
		hs[name] = func(ctx context.Context, a *action.Action) error { return nil }
	}
	tbl, err := verbs.LoadJSON(data.Verbs, hs)
	require.NoError(t, err)

	r := NewResolver(tbl, nil, nil)
	listing, err := r.Resolve(testActor{}, "help")
	require.NoError(t, err)
	require.NotEmpty(t, listing.Help)

	for _, line := range listing.Help {
		word := strings.Fields(line)[0]
		t.Run(word, func(t *testing.T) {
			assert := assert.New(t)

			out, err := r.Resolve(testActor{}, word)

			assert.NotEqual(Unknown, out.State)
			assert.False(errors.Is(err, nverrors.ErrUnrecognizedVerb), "listed word %q is not accepted: %v", word, err)

			one, _ := r.Resolve(testActor{}, "help "+word)
			assert.Equal([]string{line}, one.Help)
		})
	}
}
