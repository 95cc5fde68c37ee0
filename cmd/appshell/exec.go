package main

import (
	"context"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/appshell"
	"github.com/dmitrymomot/appshell/pkg/cli"
	"github.com/dmitrymomot/appshell/pkg/event"
)

var execCmd = &cobra.Command{
	Use:   "exec [-- args...]",
	Short: "Run the console application",
	Long: `Run the console application with the given arguments.

Arguments after -- are parsed as --name=value, --name value, --flag and -abc
options plus positional arguments. Pass --ask to be prompted for a name.`,
	DisableFlagParsing: true,
	RunE:               runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	bus := event.NewBus()
	bus.Subscribe(event.Error, event.LogErrors(log))

	code := 0
	app := appshell.NewCliApplication(
		appshell.WithConfig(cfg),
		appshell.WithLogger(log),
		appshell.WithDispatcher(bus),
		appshell.WithArgs(args),
		appshell.WithOutput(cli.NewStdout(cmd.OutOrStdout())),
		appshell.WithStdin(cmd.InOrStdin()),
		appshell.WithCloser(func(c int) { code = c }),
		appshell.WithExecute(describe),
	)
	app.Execute(cmd.Context())

	if err := app.Err(); err != nil {
		return err
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}

// describe echoes the parsed parameters, prompting for a name with --ask.
func describe(ctx context.Context) error {
	app, _ := appshell.CliFromContext(ctx)
	in := app.Input()

	name := in.Get("name", "world")
	if in.Bool("ask") {
		app.Out("Your name:")
		line, err := app.In()
		if err != nil {
			return err
		}
		if line = strings.TrimSpace(line); line != "" {
			name = line
		}
	}
	app.Out("Hello, " + name + "!")

	values := in.Values()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		app.Out("  --" + k + "=" + values[k])
	}
	for i, arg := range in.Args() {
		app.Out("  [" + strconv.Itoa(i) + "] " + arg)
	}

	app.Out("Started " + app.Config().String("execution.datetime", ""))
	return nil
}
