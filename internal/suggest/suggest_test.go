package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Score(t *testing.T) {
	testCases := []struct {
		name   string
		a, b   string
		expect int
	}{
		{name: "identical", a: "light", b: "light", expect: 100},
		{name: "both empty", a: "", b: "", expect: 100},
		{name: "swapped letters", a: "lgith", b: "light", expect: 70},
		{name: "missing letter", a: "lok", b: "look", expect: 86},
		{name: "nothing in common", a: "ab", b: "xy", expect: 50},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, Score(tc.a, tc.b))
		})
	}
}

func Test_ForVerbs_Suggest(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectFirst []string
	}{
		{name: "transposed letters", input: "lgith", expectFirst: []string{"light"}},
		{name: "ties keep table order", input: "lok", expectFirst: []string{"lock", "look"}},
		{name: "exact word", input: "inventory", expectFirst: []string{"inventory"}},
		{name: "missing trailing letter", input: "nort", expectFirst: []string{"north"}},
	}

	s := ForVerbs()

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := s.Suggest(tc.input)

			assert.Len(actual, DefaultLimit)
			assert.Equal(tc.expectFirst, actual[:len(tc.expectFirst)])
		})
	}
}

func Test_ForVerbs_NeverSuggestsCheats(t *testing.T) {
	s := ForVerbs(WithLimit(100))

	for _, input := range []string{"xyzzy", "iddqd", "idkfa", "arkhtos", "xyzy"} {
		t.Run(input, func(t *testing.T) {
			assert := assert.New(t)

			actual := s.Suggest(input)

			assert.NotContains(actual, "xyzzy")
			assert.NotContains(actual, "iddqd")
			assert.NotContains(actual, "idkfa")
			assert.NotContains(actual, "arkhtos")
		})
	}
}

func Test_Suggest_Deterministic(t *testing.T) {
	assert := assert.New(t)

	s := ForVerbs()
	first := s.Suggest("opne")

	for i := 0; i < 10; i++ {
		assert.Equal(first, s.Suggest("opne"))
	}
}

func Test_New_Options(t *testing.T) {
	testCases := []struct {
		name   string
		vocab  []string
		opts   []Option
		input  string
		expect []string
	}{
		{
			name:   "limit",
			vocab:  []string{"take", "talk", "tale"},
			opts:   []Option{WithLimit(1)},
			input:  "tale",
			expect: []string{"tale"},
		},
		{
			name:   "limit larger than vocabulary",
			vocab:  []string{"take", "drop"},
			opts:   []Option{WithLimit(5)},
			input:  "take",
			expect: []string{"take", "drop"},
		},
		{
			name:   "exclusion",
			vocab:  []string{"take", "talk", "tale"},
			opts:   []Option{Excluding("tale")},
			input:  "tale",
			expect: []string{"take", "talk"},
		},
		{
			name:   "empty vocabulary",
			vocab:  nil,
			input:  "take",
			expect: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(tc.vocab, tc.opts...)
			assert.Equal(t, tc.expect, s.Suggest(tc.input))
		})
	}
}
