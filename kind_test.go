package argbind

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_KindParseOk(t *testing.T) {
	color := Enum("Red", "Green", "help")

	tests := []struct {
		kind Kind
		text string
		want any
	}{
		{String(), "abc", "abc"},
		{String(), " a b ", " a b "},
		{Bool(), "true", true},
		{Bool(), "TRUE", true},
		{Bool(), "False", false},
		{Int(), "42", 42},
		{Int(), "-7", -7},
		{Uint(), "7", uint(7)},
		{color, "red", "Red"},
		{color, "GREEN", "Green"},
		{color, "?", "help"},
		{String().Collection(), "x", "x"},
	}

	for _, test := range tests {
		got, err := test.kind.Parse(test.text)
		require.NoError(t, err, "%s %q", test.kind, test.text)
		assert.Equal(t, test.want, got, "%s %q", test.kind, test.text)
	}
}

func Test_KindParseErr(t *testing.T) {
	tests := []struct {
		kind Kind
		text string
	}{
		{String(), ""},
		{Bool(), ""},
		{Bool(), "1"},
		{Bool(), "yes"},
		{Int(), "x"},
		{Int(), "1.5"},
		{Int(), "99999999999999999999999"},
		{Uint(), "-1"},
		{Enum("a", "b"), "c"},
		{Enum("a", "b"), "?"},
		{Kind{}, "x"},
	}

	for _, test := range tests {
		_, err := test.kind.Parse(test.text)
		assert.Error(t, err, "%s %q", test.kind, test.text)
	}
}

func Test_KindIntOverflow(t *testing.T) {
	_, err := Int().Parse(strconv.FormatUint(1<<63, 10))
	assert.Error(t, err)
}

func Test_KindString(t *testing.T) {
	assert.Equal(t, "string", String().String())
	assert.Equal(t, "[]int", Int().Collection().String())
	assert.Equal(t, "enum", Enum("a").String())
	assert.Equal(t, "invalid", Kind{}.String())

	k := CollectionOf(Bool())
	assert.True(t, k.IsCollection())
	assert.True(t, k.IsBool())
	assert.False(t, k.Element().IsCollection())
}

func Test_KindValid(t *testing.T) {
	assert.NoError(t, Enum("a", "b").valid())
	assert.Error(t, Enum().valid())
	assert.Error(t, Enum("a", "A").valid())
	assert.Error(t, Enum("a", "").valid())
	assert.Error(t, Kind{}.valid())
}

func Test_KindCheck(t *testing.T) {
	got, err := Int().Check(3)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	got, err = Enum("Fast", "Slow").Check("slow")
	require.NoError(t, err)
	assert.Equal(t, "Slow", got)

	got, err = String().Collection().Check([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, got)

	got, err = Uint().Collection().Check([]any{uint(1)})
	require.NoError(t, err)
	assert.Equal(t, []any{uint(1)}, got)

	_, err = Int().Check("3")
	assert.Error(t, err)

	_, err = Int().Check(int64(3))
	assert.Error(t, err)

	_, err = Int().Collection().Check(3)
	assert.Error(t, err)

	_, err = Bool().Collection().Check([]any{true, "x"})
	assert.Error(t, err)

	_, err = Enum("a").Check("b")
	assert.Error(t, err)
}
