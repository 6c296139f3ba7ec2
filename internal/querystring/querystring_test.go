package querystring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleValues(t *testing.T) {
	qs := Parse("a=1&b=2")

	v, ok := qs.Get("a")
	require.True(t, ok)
	assert.Equal(t, Single("1"), v)

	v, ok = qs.Get("b")
	require.True(t, ok)
	assert.Equal(t, Single("2"), v)

	assert.Equal(t, 2, qs.Len())
	assert.Equal(t, []string{"a", "b"}, qs.Keys())
}

func TestParseRepeatedKeys(t *testing.T) {
	qs := Parse("a=1&b=2&a=3&a=4")

	v, ok := qs.Get("a")
	require.True(t, ok)
	assert.Equal(t, Multiple{"1", "3", "4"}, v)
	assert.Equal(t, []string{"1", "3", "4"}, v.Values())
	assert.Equal(t, "1", qs.First("a"))
}

func TestParseKeyWithoutValue(t *testing.T) {
	qs := Parse("flag&x=")

	v, ok := qs.Get("flag")
	require.True(t, ok)
	assert.Equal(t, Single(""), v)

	v, ok = qs.Get("x")
	require.True(t, ok)
	assert.Equal(t, Single(""), v)
}

func TestParseSplitsOnFirstEquals(t *testing.T) {
	qs := Parse("expr=a=b")
	assert.Equal(t, "a=b", qs.First("expr"))
}

func TestParseSkipsEmptySegments(t *testing.T) {
	qs := Parse("&&a=1&")
	assert.Equal(t, 1, qs.Len())

	qs = Parse("")
	assert.Equal(t, 0, qs.Len())
	_, ok := qs.Get("a")
	assert.False(t, ok)
	assert.Equal(t, "", qs.First("a"))
}

func TestParseKeepsQuestionMarks(t *testing.T) {
	qs := Parse("q=what?&next=?")
	assert.Equal(t, "what?", qs.First("q"))
	assert.Equal(t, "?", qs.First("next"))
}
