package cli_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/appshell/pkg/cli"
)

func TestParseArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		argv   []string
		values map[string]string
		args   []string
	}{
		{
			name:   "long with equals",
			argv:   []string{"--name=value", "--empty="},
			values: map[string]string{"name": "value", "empty": ""},
		},
		{
			name:   "long flag",
			argv:   []string{"--verbose", "--quiet"},
			values: map[string]string{"verbose": "true", "quiet": "true"},
		},
		{
			name:   "long with separate value",
			argv:   []string{"--out", "file.txt", "pos"},
			values: map[string]string{"out": "file.txt"},
			args:   []string{"pos"},
		},
		{
			name:   "grouped short flags",
			argv:   []string{"-abc"},
			values: map[string]string{"a": "true", "b": "true", "c": "true"},
		},
		{
			name:   "last short flag takes value",
			argv:   []string{"-vo", "out.txt"},
			values: map[string]string{"v": "true", "o": "out.txt"},
		},
		{
			name:   "short with equals",
			argv:   []string{"-o=out.txt"},
			values: map[string]string{"o": "out.txt"},
		},
		{
			name:   "positionals",
			argv:   []string{"first", "-", "second"},
			values: map[string]string{},
			args:   []string{"first", "-", "second"},
		},
		{
			name:   "double dash ends options",
			argv:   []string{"--x", "--", "--not-an-option", "y"},
			values: map[string]string{"x": "true"},
			args:   []string{"--not-an-option", "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := cli.ParseArgs(tt.argv)
			assert.Equal(t, tt.values, p.Values())
			assert.Equal(t, tt.args, p.Args())
		})
	}
}

func TestParseString(t *testing.T) {
	t.Parallel()

	p := cli.ParseString(`a=b c='d e' f="g" flag`)

	assert.Equal(t, "b", p.Get("a", ""))
	assert.Equal(t, "d e", p.Get("c", ""))
	assert.Equal(t, "g", p.Get("f", ""))
	assert.True(t, p.Bool("flag"))
	assert.False(t, p.Bool("a"))
	assert.Equal(t, "def", p.Get("missing", "def"))
	assert.Empty(t, p.Args())
}

func TestParameters_Set(t *testing.T) {
	t.Parallel()

	p := cli.NewParameters()
	assert.Empty(t, p.Set("k", "1"))
	assert.Equal(t, "1", p.Set("k", "2"))
	assert.True(t, p.Has("k"))
	assert.False(t, p.Has("other"))
}

func TestStdout(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := cli.NewStdout(&buf)

	require.NoError(t, out.Out("hello", true))
	require.NoError(t, out.Out("world", false))
	assert.Equal(t, "hello\nworld", buf.String())
}

func TestReader(t *testing.T) {
	t.Parallel()

	r := cli.NewReader(strings.NewReader("yes\r\nlast"))

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "yes", line)

	line, err = r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = r.ReadLine()
	require.ErrorIs(t, err, io.EOF)
}
