package internal

import (
	"os"

	"github.com/dmitrymomot/appshell/pkg/cli"
)

// CliApplication is the command-line variant of the execution shell.
type CliApplication struct {
	*Application

	output cli.Output
	stdin  *cli.Reader
	input  *cli.Parameters
}

// NewCliApplication builds a CLI application. Arguments default to
// os.Args[1:] and output to stdout.
func NewCliApplication(opts ...Option) *CliApplication {
	s := newSettings(opts)

	args := s.args
	if args == nil && len(os.Args) > 1 {
		args = os.Args[1:]
	}
	output := s.output
	if output == nil {
		output = cli.NewStdout(nil)
	}

	a := &CliApplication{
		Application: newApplication(s),
		output:      output,
		stdin:       cli.NewReader(s.stdin),
		input:       cli.ParseArgs(args),
	}
	a.self = a
	return a
}

// Out writes text followed by a newline. Write errors are logged.
func (a *CliApplication) Out(text string) *CliApplication {
	if err := a.output.Out(text, true); err != nil {
		a.logger.Warn("failed to write output", "error", err)
	}
	return a
}

// In reads one line from standard input.
func (a *CliApplication) In() (string, error) {
	return a.stdin.ReadLine()
}

// Input returns the parsed command-line parameters.
func (a *CliApplication) Input() *cli.Parameters {
	return a.input
}

// Output returns the console output.
func (a *CliApplication) Output() cli.Output {
	return a.output
}

// SetOutput replaces the console output.
func (a *CliApplication) SetOutput(out cli.Output) *CliApplication {
	if out != nil {
		a.output = out
	}
	return a
}
