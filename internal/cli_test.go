package internal

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/appshell/pkg/cli"
	"github.com/dmitrymomot/appshell/pkg/event"
)

func TestCliApplication(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	bus, log := newEventLog(allEvents...)

	app := NewCliApplication(
		WithArgs([]string{"--name=world", "-v", "extra"}),
		WithOutput(cli.NewStdout(&out)),
		WithStdin(strings.NewReader("yes\n")),
		WithDispatcher(bus),
		WithCloser(func(int) {}),
		WithExecute(func(ctx context.Context) error {
			app, ok := CliFromContext(ctx)
			require.True(t, ok)

			answer, err := app.In()
			require.NoError(t, err)

			app.Out("hello " + app.Input().Get("name", "")).Out("answer: " + answer)
			return nil
		}),
	)

	app.Execute(context.Background())

	assert.Equal(t, "hello world\nanswer: yes\n", out.String())
	assert.Equal(t, []string{event.BeforeExecute, event.AfterExecute}, log.Names())
	assert.True(t, app.Input().Bool("v"))
	assert.Equal(t, []string{"extra"}, app.Input().Args())
}

func TestCliApplication_Defaults(t *testing.T) {
	t.Parallel()

	app := NewCliApplication(WithArgs([]string{}))
	require.NotNil(t, app.Output())
	assert.Empty(t, app.Input().Args())

	var out bytes.Buffer
	app.SetOutput(cli.NewStdout(&out)).Out("x")
	assert.Equal(t, "x\n", out.String())
}

func TestCliApplication_Error(t *testing.T) {
	t.Parallel()

	bus, log := newEventLog(event.Error)
	app := NewCliApplication(
		WithArgs([]string{}),
		WithDispatcher(bus),
		WithExecute(func(context.Context) error { return assert.AnError }),
	)

	app.Execute(context.Background())

	require.Len(t, log.Errors(), 1)
	assert.ErrorIs(t, app.Err(), assert.AnError)
}
