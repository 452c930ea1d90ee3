package specfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janert/argbind"
)

const testSpec = `
fields:
  - name: count
    kind: int
    default: 3
    help: Number of items.
  - name: verbose
    kind: bool
  - name: mode
    kind: enum
    members: [fast, slow]
    default: FAST
  - name: tags
    collection: true
    default: [a, b]
  - name: ports
    kind: uint
    collection: true
    default: 80
  - name: input
    positional: true
    flags: [required]
`

func Test_Decode(t *testing.T) {
	table, err := Decode(strings.NewReader(testSpec))
	require.NoError(t, err)
	require.Len(t, table.Fields, 6)

	assert.Equal(t, Entry{
		Name:    "mode",
		Kind:    "enum",
		Members: []string{"fast", "slow"},
		Default: "FAST",
	}, table.Fields[2])
	assert.True(t, table.Fields[5].Positional)
	assert.Equal(t, []string{"required"}, table.Fields[5].Flags)
}

func Test_DecodeErr(t *testing.T) {
	for _, text := range []string{
		"fields:\n  - name: a\n    bogus: 1\n",
		"fields: [",
		"fields: 3\n",
	} {
		_, err := Decode(strings.NewReader(text))
		assert.Error(t, err, text)
	}
}

func Test_Bind(t *testing.T) {
	table, err := Decode(strings.NewReader(testSpec))
	require.NoError(t, err)

	values := Values{}
	fields, err := table.Bind(values)
	require.NoError(t, err)

	assert.Equal(t, 3, fields[0].Default)
	assert.Equal(t, "fast", fields[2].Default)
	assert.Equal(t, []any{"a", "b"}, fields[3].Default)
	assert.Equal(t, []any{uint(80)}, fields[4].Default)
	assert.Equal(t, argbind.Required, fields[5].Flags)

	p, err := argbind.New(fields, argbind.WithReporter(argbind.Discard))
	require.NoError(t, err)

	require.NoError(t, p.Parse([]string{"/v", "/tags:c", "file", "/ports:1", "/ports:2"}))
	assert.Equal(t, Values{
		"count":   3,
		"verbose": true,
		"mode":    "fast",
		"tags":    []any{"c"},
		"ports":   []any{uint(1), uint(2)},
		"input":   "file",
	}, values)
}

func Test_BindErr(t *testing.T) {
	tests := []struct {
		entry Entry
		text  string
	}{
		{Entry{Name: "a", Kind: "float"}, "unknown kind"},
		{Entry{Name: "a", Flags: []string{"always"}}, "unknown flag"},
		{Entry{Name: "a", Kind: "int", Default: "x"}, "bad default"},
		{Entry{Name: "a", Kind: "uint", Collection: true, Default: []any{1, -1}}, "bad element"},
	}

	for _, test := range tests {
		table := &Table{Fields: []Entry{test.entry}}
		_, err := table.Bind(Values{})
		require.Error(t, err, test.text)
		assert.Contains(t, err.Error(), `specfile: field "a"`, test.text)
	}
}

func Test_Load(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "spec.yaml")
	require.NoError(t, os.WriteFile(name, []byte(testSpec), 0o600))

	table, err := Load(name)
	require.NoError(t, err)
	assert.Len(t, table.Fields, 6)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
