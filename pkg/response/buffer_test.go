package response_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/appshell/pkg/response"
)

func TestBuffer_SetHeader(t *testing.T) {
	t.Parallel()

	t.Run("appends duplicates without replace", func(t *testing.T) {
		t.Parallel()

		buf := response.NewBuffer()
		buf.SetHeader("foo", "bar", false)
		buf.SetHeader("foo", "car", false)

		assert.Equal(t, []response.Header{
			{Name: "foo", Value: "bar"},
			{Name: "foo", Value: "car"},
		}, buf.Headers())
	})

	t.Run("replace removes case-insensitive matches", func(t *testing.T) {
		t.Parallel()

		buf := response.NewBuffer()
		buf.SetHeader("foo", "bar", false)
		buf.SetHeader("Other", "x", false)
		buf.SetHeader("FOO", "baz", false)
		buf.SetHeader("foo", "car", true)

		assert.Equal(t, []response.Header{
			{Name: "Other", Value: "x"},
			{Name: "foo", Value: "car"},
		}, buf.Headers())
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		t.Parallel()

		buf := response.NewBuffer().SetHeader("Content-Type", "text/plain", false)

		v, ok := buf.Header("content-type")
		require.True(t, ok)
		assert.Equal(t, "text/plain", v)
		assert.False(t, buf.HasHeader("Status"))
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		t.Parallel()

		buf := response.NewBuffer().SetHeader("foo", "bar", false)
		headers := buf.Headers()
		headers[0].Value = "changed"

		v, _ := buf.Header("foo")
		assert.Equal(t, "bar", v)
	})
}

func TestBuffer_ClearHeaders(t *testing.T) {
	t.Parallel()

	buf := response.NewBuffer().SetHeader("foo", "bar", false)
	same := buf.ClearHeaders()

	assert.Same(t, buf, same)
	assert.Empty(t, buf.Headers())
}

func TestBuffer_Body(t *testing.T) {
	t.Parallel()

	t.Run("prepend", func(t *testing.T) {
		t.Parallel()
		buf := response.NewBuffer().SetBody("Testing")
		buf.PrependBody("Pre-")
		assert.Equal(t, "Pre-Testing", buf.Body())
		assert.Equal(t, []string{"Pre-", "Testing"}, buf.Chunks())
	})

	t.Run("append", func(t *testing.T) {
		t.Parallel()
		buf := response.NewBuffer().SetBody("Testing")
		buf.AppendBody(" Later")
		assert.Equal(t, "Testing Later", buf.Body())
		assert.Equal(t, 13, buf.Len())
	})

	t.Run("set replaces all chunks", func(t *testing.T) {
		t.Parallel()
		buf := response.NewBuffer().AppendBody("a").AppendBody("b")
		buf.SetBody("c")
		assert.Equal(t, []string{"c"}, buf.Chunks())
	})

	t.Run("empty buffer", func(t *testing.T) {
		t.Parallel()
		buf := response.NewBuffer()
		assert.Empty(t, buf.Body())
		assert.Empty(t, buf.Chunks())
	})
}
