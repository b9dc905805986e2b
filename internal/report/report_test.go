package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnwae/nuventure/internal/action"
	"github.com/tnwae/nuventure/internal/nverrors"
	"github.com/tnwae/nuventure/internal/verbs"
)

func loadTestTable(t *testing.T) *verbs.Table {
	data, err := os.ReadFile(filepath.Join("testdata", "verbs.json"))
	require.NoError(t, err)

	noop := func(ctx context.Context, a *action.Action) error { return nil }
	tbl, err := verbs.LoadJSON(data, action.HandlerSet{"noop": noop, "move": noop})
	require.NoError(t, err)
	return tbl
}

func Test_Reporter_Render(t *testing.T) {
	testCases := []struct {
		name   string
		verb   string
		kind   nverrors.Kind
		arg    string
		expect string
	}{
		{
			name:   "keyed template",
			verb:   "take",
			kind:   nverrors.MissingArgument,
			expect: "Take what?",
		},
		{
			name:   "keyed template with placeholders",
			verb:   "take",
			kind:   nverrors.BadArgument,
			arg:    "sword",
			expect: "There is no sword here to take.",
		},
		{
			name:   "generic from mapping default",
			verb:   "take",
			kind:   nverrors.BadTarget,
			arg:    "sword",
			expect: "You can't take that.",
		},
		{
			name:   "generic from plain string",
			verb:   "drop",
			kind:   nverrors.InvalidGameState,
			expect: "Drop what?",
		},
		{
			name:   "alias uses canonical definition templates",
			verb:   "north",
			kind:   nverrors.BadArgument,
			arg:    "north",
			expect: "You can't go north.",
		},
		{
			name:   "no template at all",
			verb:   "light",
			kind:   nverrors.MissingArgument,
			expect: "Unspecified error",
		},
		{
			name:   "no template at all with argument",
			verb:   "light",
			kind:   nverrors.BadTarget,
			arg:    "torch",
			expect: "Unspecified error (target was: torch)",
		},
		{
			name:   "unknown verb",
			verb:   "frobnicate",
			kind:   nverrors.UnrecognizedVerb,
			arg:    "frobnicate",
			expect: "Unspecified error (target was: frobnicate)",
		},
	}

	r := New(loadTestTable(t))

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, r.Render(tc.verb, tc.kind, tc.arg))
		})
	}
}

func Test_Reporter_Render_NilTable(t *testing.T) {
	r := New(nil)
	assert.Equal(t, "Unspecified error", r.Render("take", nverrors.MissingArgument, ""))
}

func Test_Reporter_RenderError(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		expect string
	}{
		{
			name:   "taxonomy error",
			err:    nverrors.GameState("light", "lamp"),
			expect: "The lamp is already lit.",
		},
		{
			name:   "wrapped taxonomy error",
			err:    fmt.Errorf("invoke: %w", nverrors.NoArgs("take")),
			expect: "Take what?",
		},
		{
			name:   "game message",
			err:    nverrors.Interpreter("This action is not implemented yet.", ""),
			expect: "This action is not implemented yet.",
		},
		{
			name:   "plain error",
			err:    errors.New("disk full"),
			expect: "disk full",
		},
	}

	r := New(loadTestTable(t))

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, r.RenderError(tc.err))
		})
	}
}

func Test_Unrecognized(t *testing.T) {
	testCases := []struct {
		name        string
		word        string
		suggestions []string
		expect      string
	}{
		{
			name:        "with suggestions",
			word:        "lgith",
			suggestions: []string{"light", "north"},
			expect:      "I don't understand \"lgith\"; did you mean:\n    light\n    north",
		},
		{
			name:   "without suggestions",
			word:   "zzz",
			expect: "I don't understand \"zzz\".",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, Unrecognized(tc.word, tc.suggestions))
		})
	}
}

func Test_HelpLine(t *testing.T) {
	assert := assert.New(t)
	tbl := loadTestTable(t)

	inv, _ := tbl.Lookup("inventory")
	assert.Equal("inventory      View your inventory.", HelpLine("inventory", inv))

	move, _ := tbl.Lookup("north")
	line := HelpLine("north", move)
	assert.Equal(1, strings.Count(line, "\n")+1)
	assert.Contains(line, "north")
	assert.Contains(line, "Move in a direction.")

	xyzzy, _ := tbl.Lookup("xyzzy")
	assert.Empty(HelpLine("xyzzy", xyzzy))

	assert.Empty(HelpLine("nothing", nil))
}

func Test_HelpListing(t *testing.T) {
	assert := assert.New(t)

	lines := HelpListing(loadTestTable(t))

	// every word but the four cheats, with move listed as its six directions
	assert.Len(lines, 28)
	assert.True(strings.HasPrefix(lines[0], "look "))
	assert.Equal("north          Move in a direction.", lines[1])
	assert.Equal("down           Move in a direction.", lines[6])
	for _, l := range lines {
		assert.False(strings.HasPrefix(l, "move "), l)
		assert.NotContains(l, "xyzzy")
		assert.NotContains(l, "arkhtos")
	}
}

func Test_HelpTable(t *testing.T) {
	assert := assert.New(t)

	out := HelpTable(loadTestTable(t), 80)

	assert.Contains(out, "inventory")
	assert.Contains(out, "View your inventory.")
	assert.Contains(out, "north")
	assert.NotContains(out, "iddqd")
}
