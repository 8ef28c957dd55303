//go:build unit

package sch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_SpecialsAndOffsets(t *testing.T) {
	t.Parallel()

	tokens := tokenize("hour(9-17)")

	want := []Token{
		{Value: "hour", Pos: 0},
		{Value: "(", Pos: 4, Special: true},
		{Value: "9", Pos: 5},
		{Value: "-", Pos: 6, Special: true},
		{Value: "17", Pos: 7},
		{Value: ")", Pos: 9, Special: true},
	}
	assert.Equal(t, want, tokens)
}

func TestTokenize_WhitespaceSeparates(t *testing.T) {
	t.Parallel()

	tokens := tokenize("h ( 1 ,\t2\n)\r")

	values := make([]string, len(tokens))
	for i, tok := range tokens {
		values[i] = tok.Value
	}

	assert.Equal(t, []string{"h", "(", "1", ",", "2", ")"}, values)
}

func TestTokenize_TrailingTokenFlushed(t *testing.T) {
	t.Parallel()

	tokens := tokenize("hour")
	require.Len(t, tokens, 1)
	assert.Equal(t, Token{Value: "hour", Pos: 0}, tokens[0])
}

func TestTokenize_AllSpecialCharacters(t *testing.T) {
	t.Parallel()

	tokens := tokenize("()-,!/%")
	require.Len(t, tokens, 7)

	for i, tok := range tokens {
		assert.True(t, tok.Special, "token %d", i)
		assert.Equal(t, i, tok.Pos)
	}
}

func TestTokenize_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, tokenize(""))
	assert.Empty(t, tokenize("  \t\n"))
}

func TestToken_IsNumeric(t *testing.T) {
	t.Parallel()

	assert.True(t, Token{Value: "17"}.IsNumeric())
	assert.True(t, Token{Value: "0"}.IsNumeric())
	assert.False(t, Token{Value: "1a"}.IsNumeric())
	assert.False(t, Token{Value: "fri"}.IsNumeric())
	assert.False(t, Token{Value: "-", Special: true}.IsNumeric())
	assert.False(t, Token{Value: ""}.IsNumeric())
}

func TestToken_IsExpression(t *testing.T) {
	t.Parallel()

	assert.True(t, Token{Value: "hour"}.IsExpression())
	assert.True(t, Token{Value: "HOUR"}.IsExpression())
	assert.True(t, Token{Value: "s"}.IsExpression())
	assert.True(t, Token{Value: "group"}.IsExpression())
	assert.True(t, Token{Value: "daysofweek"}.IsExpression())

	// any word can open an expression, resolution happens at compile time
	assert.True(t, Token{Value: "foo"}.IsExpression())
	assert.True(t, Token{Value: "fri"}.IsExpression())

	assert.False(t, Token{Value: "5"}.IsExpression())
	assert.False(t, Token{Value: ""}.IsExpression())
	assert.False(t, Token{Value: "(", Special: true}.IsExpression())
}

func TestToken_DayOrdinal(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		"mon": 1, "MONDAY": 1,
		"tue": 2, "wed": 3, "thu": 4,
		"fri": 5, "Friday": 5,
		"sat": 6,
		"sun": 7, "sunday": 7,
	}

	for value, want := range cases {
		ord, ok := Token{Value: value}.DayOrdinal()
		require.True(t, ok, value)
		assert.Equal(t, want, ord, value)
	}

	_, ok := Token{Value: "someday"}.DayOrdinal()
	assert.False(t, ok)

	assert.True(t, Token{Value: "fri"}.IsDayKeyword())
	assert.False(t, Token{Value: "hour"}.IsDayKeyword())
}
