package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wickhamj/banterbot/internal/bot"
)

func nopHandler(msg bot.Message, text string) error { return nil }

func TestResolveFirstMatchWins(t *testing.T) {
	r := &Registry{}
	r.Add("first", `hello`, "", nopHandler)
	r.Add("second", `hello world`, "", nopHandler)

	rule, ok := r.Resolve("hello world")
	require.True(t, ok)
	assert.Equal(t, "first", rule.Name, "earlier registration must win over a later, longer match")
}

func TestResolveRegistrationOrderIsPriority(t *testing.T) {
	r := &Registry{}
	r.Add("specific", `tell me a joke`, "", nopHandler)
	r.Add("broad", `joke`, "", nopHandler)

	rule, ok := r.Resolve("tell me a joke")
	require.True(t, ok)
	assert.Equal(t, "specific", rule.Name)

	rule, ok = r.Resolve("that joke was bad")
	require.True(t, ok)
	assert.Equal(t, "broad", rule.Name)
}

func TestResolveGuardMustAlsoMatch(t *testing.T) {
	r := &Registry{}
	r.Add("guarded", `quote`, `give|please`, nopHandler)
	r.Add("fallback", `quote`, "", nopHandler)

	rule, ok := r.Resolve("give us a quote")
	require.True(t, ok)
	assert.Equal(t, "guarded", rule.Name)

	rule, ok = r.Resolve("that quote was great")
	require.True(t, ok)
	assert.Equal(t, "fallback", rule.Name, "a failed guard falls through to later rules")
}

func TestResolveNoMatch(t *testing.T) {
	r := &Registry{}
	r.Add("only", `hello`, "", nopHandler)

	_, ok := r.Resolve("goodbye")
	assert.False(t, ok)
}

func TestResolveIsDeterministic(t *testing.T) {
	r := &Registry{}
	r.Add("a", `snack`, "", nopHandler)
	r.Add("b", `snacks`, "", nopHandler)

	for i := 0; i < 50; i++ {
		rule, ok := r.Resolve("snacks please")
		require.True(t, ok)
		require.Equal(t, "a", rule.Name)
	}
}

func TestAddPanicsOnBadPattern(t *testing.T) {
	r := &Registry{}
	assert.Panics(t, func() {
		r.Add("bad", `(`, "", nopHandler)
	})
}

func TestRulesReturnsRegistrationOrder(t *testing.T) {
	r := &Registry{}
	r.Add("one", `a`, "", nopHandler)
	r.Add("two", `b`, "", nopHandler)
	r.Add("three", `c`, "", nopHandler)

	rules := r.Rules()
	require.Len(t, rules, 3)
	assert.Equal(t, "one", rules[0].Name)
	assert.Equal(t, "two", rules[1].Name)
	assert.Equal(t, "three", rules[2].Name)
}
