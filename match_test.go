package stepwise_test

import (
	"testing"

	"github.com/stepwise-sh/stepwise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextMatcher(t *testing.T) {
	m := stepwise.Text("prompt")

	loc, desc := m("some prompt here prompt again")
	require.NotNil(t, loc)
	assert.Equal(t, []int{5, 11}, loc, "must take the earliest occurrence")
	assert.Contains(t, desc, `"prompt"`)

	loc, _ = m("nothing here")
	assert.Nil(t, loc)
}

func TestPatternMatcher(t *testing.T) {
	m := stepwise.Pattern(`Continue\?`)

	loc, desc := m("setup...\nContinue? [y/n] ")
	require.NotNil(t, loc)
	assert.Equal(t, "Continue?", "setup...\nContinue? [y/n] "[loc[0]:loc[1]])
	assert.Contains(t, desc, `Continue\?`)

	loc, _ = m("Continuing without a question mark")
	assert.Nil(t, loc)
}

func TestPatternMatcherEarliest(t *testing.T) {
	m := stepwise.Pattern(`[0-9]+`)

	out := "abc 12 def 345"
	loc, _ := m(out)
	require.NotNil(t, loc)
	assert.Equal(t, "12", out[loc[0]:loc[1]])
}

func TestAnyMatcher(t *testing.T) {
	m := stepwise.Any(stepwise.Text("beta"), stepwise.Text("alpha"))

	out := "alpha then beta"
	loc, desc := m(out)
	require.NotNil(t, loc)
	assert.Equal(t, "alpha", out[loc[0]:loc[1]], "must take the earliest across matchers")
	assert.Contains(t, desc, "any of:")

	loc, _ = m("gamma")
	assert.Nil(t, loc)
}

func TestCtrl(t *testing.T) {
	assert.Equal(t, "\x03", stepwise.Ctrl('c'))
	assert.Equal(t, "\x04", stepwise.Ctrl('d'))
}
