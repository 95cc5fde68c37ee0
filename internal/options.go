package internal

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/appshell/pkg/cli"
	"github.com/dmitrymomot/appshell/pkg/event"
	"github.com/dmitrymomot/appshell/pkg/logger"
	"github.com/dmitrymomot/appshell/pkg/registry"
	"github.com/dmitrymomot/appshell/pkg/response"
	"github.com/dmitrymomot/appshell/pkg/session"
	"github.com/dmitrymomot/appshell/pkg/webclient"
)

// ExecuteFunc is the application's own routine. The running application
// is available from ctx through FromContext or CliFromContext.
type ExecuteFunc func(ctx context.Context) error

// Option configures an application.
type Option func(*settings)

// settings is shared by all application kinds; each reads what it needs.
type settings struct {
	config     *registry.Registry
	logger     *slog.Logger
	dispatcher event.Dispatcher
	execute    ExecuteFunc
	closer     func(code int)
	clock      func() time.Time

	// web
	mimeType   string
	charset    string
	client     *webclient.Client
	negotiator *response.Negotiator
	sessions   *session.Manager
	session    Session

	// cli
	output cli.Output
	stdin  io.Reader
	args   []string
}

// WithConfig sets the configuration registry.
func WithConfig(reg *registry.Registry) Option {
	return func(s *settings) {
		s.config = reg
	}
}

// WithLogger sets the logger. Defaults to a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDispatcher sets the event dispatcher. Without one, events are skipped.
func WithDispatcher(d event.Dispatcher) Option {
	return func(s *settings) {
		s.dispatcher = d
	}
}

// WithExecute sets the execution routine.
func WithExecute(fn ExecuteFunc) Option {
	return func(s *settings) {
		s.execute = fn
	}
}

// WithCloser replaces the function Close calls.
func WithCloser(fn func(code int)) Option {
	return func(s *settings) {
		s.closer = fn
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.clock = now
		}
	}
}

// WithMimeType sets the default response MIME type. Default: text/html.
func WithMimeType(mimeType string) Option {
	return func(s *settings) {
		if mimeType != "" {
			s.mimeType = mimeType
		}
	}
}

// WithCharset sets the response character set. Default: utf-8.
func WithCharset(charset string) Option {
	return func(s *settings) {
		if charset != "" {
			s.charset = charset
		}
	}
}

// WithClient overrides the client descriptor detected from the request.
func WithClient(c *webclient.Client) Option {
	return func(s *settings) {
		s.client = c
	}
}

// WithNegotiator sets the compression negotiator.
func WithNegotiator(n *response.Negotiator) Option {
	return func(s *settings) {
		s.negotiator = n
	}
}

// WithSessionManager enables cookie sessions. The session is loaded on first
// use and saved by Respond.
func WithSessionManager(m *session.Manager) Option {
	return func(s *settings) {
		s.sessions = m
	}
}

// WithSession attaches an already loaded session.
func WithSession(sess Session) Option {
	return func(s *settings) {
		s.session = sess
	}
}

// WithOutput sets the console output of a CLI application.
func WithOutput(out cli.Output) Option {
	return func(s *settings) {
		s.output = out
	}
}

// WithStdin sets where a CLI application reads user input from.
func WithStdin(r io.Reader) Option {
	return func(s *settings) {
		s.stdin = r
	}
}

// WithArgs sets the command-line arguments, without the program name.
func WithArgs(args []string) Option {
	return func(s *settings) {
		s.args = args
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	if s.config == nil {
		s.config = registry.New(nil)
	}
	if s.logger == nil {
		s.logger = logger.NewNope()
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return s
}
