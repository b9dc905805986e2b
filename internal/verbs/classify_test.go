package verbs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Classify(t *testing.T) {
	testCases := []struct {
		word      string
		expect    Type
		expectErr bool
	}{
		{word: "attack", expect: TargetFirst},
		{word: "unlock", expect: TargetFirst},
		{word: "cast", expect: ImplementFirst},
		{word: "buy", expect: ImplementFirst},
		{word: "light", expect: SingleTarget},
		{word: "extinguish", expect: SingleTarget},
		{word: "inventory", expect: ZeroArgument},
		{word: "xyzzy", expect: ZeroArgument},
		{word: "help", expect: Help},
		{word: "north", expect: Directional},
		{word: "down", expect: Directional},
		{word: "frobnicate", expectErr: true},
		{word: "Look", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.word, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Classify(tc.word)
			if tc.expectErr {
				assert.Error(err)
				assert.False(IsKnown(tc.word))
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
			assert.True(IsKnown(tc.word))
		})
	}
}

func Test_Type_ArgCount(t *testing.T) {
	testCases := []struct {
		typ    Type
		expect int
	}{
		{typ: TargetFirst, expect: 2},
		{typ: ImplementFirst, expect: 2},
		{typ: SingleTarget, expect: 1},
		{typ: ZeroArgument, expect: 0},
		{typ: Help, expect: 0},
		{typ: Directional, expect: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.typ.String(), func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.typ.ArgCount())
		})
	}
}

func Test_BuiltinPartitions_Disjoint(t *testing.T) {
	assert.NoError(t, CheckPartitions())
}

func Test_buildClasses_RejectsOverlap(t *testing.T) {
	assert := assert.New(t)

	parts := []partition{
		{typ: ImplementFirst, words: []string{"buy", "cast"}},
		{typ: SingleTarget, words: []string{"take", "cast"}},
	}

	_, _, err := buildClasses(parts)
	assert.Error(err)
	assert.Contains(err.Error(), `"cast"`)
}

func Test_Vocabulary_Order(t *testing.T) {
	assert := assert.New(t)

	vocab := Vocabulary()

	assert.Len(vocab, 33)
	assert.Equal("attack", vocab[0])
	assert.Equal("down", vocab[len(vocab)-1])

	// callers must not be able to change the package's copy
	vocab[0] = "frobnicate"
	assert.Equal("attack", Vocabulary()[0])
}

func Test_IsCheat(t *testing.T) {
	assert := assert.New(t)

	for _, w := range []string{"iddqd", "xyzzy", "idkfa", "arkhtos"} {
		assert.True(IsCheat(w), w)
	}
	assert.False(IsCheat("look"))
	assert.False(IsCheat("help"))
}
