package appshell

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/appshell/internal"
	"github.com/dmitrymomot/appshell/pkg/controller"
	"github.com/dmitrymomot/appshell/pkg/logger"
	"github.com/dmitrymomot/appshell/pkg/router"
	"github.com/dmitrymomot/appshell/pkg/transport"
)

// Type aliases - public API
type (
	// Application is the execution shell shared by web and CLI applications.
	Application = internal.Application

	// WebApplication handles one HTTP request.
	WebApplication = internal.WebApplication

	// CliApplication runs a command-line program.
	CliApplication = internal.CliApplication

	// ExecuteFunc is the application's own routine.
	ExecuteFunc = internal.ExecuteFunc

	// Option configures an application.
	Option = internal.Option

	// ServeOption configures the HTTP runtime.
	ServeOption = internal.ServeOption

	// Session is the CSRF-capable session used by WebApplication.
	Session = internal.Session

	// State is the lifecycle position of an application.
	State = internal.State

	// PanicError is a panic recovered from the execution routine.
	PanicError = internal.PanicError

	// HTTPError selects the status code sent for a failed request.
	HTTPError = internal.HTTPError

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor
)

// Lifecycle states.
const (
	StateIdle       = internal.StateIdle
	StateExecuting  = internal.StateExecuting
	StateResponding = internal.StateResponding
	StateClosed     = internal.StateClosed
)

// CSRFHeader is the request header that may carry the form token.
const CSRFHeader = internal.CSRFHeader

// Errors
var (
	ErrSessionNotConfigured = internal.ErrSessionNotConfigured
	ErrUnableToWriteBody    = internal.ErrUnableToWriteBody
	ErrInvalidStatus        = internal.ErrInvalidStatus
)

// Application options
var (
	WithConfig         = internal.WithConfig
	WithLogger         = internal.WithLogger
	WithDispatcher     = internal.WithDispatcher
	WithExecute        = internal.WithExecute
	WithCloser         = internal.WithCloser
	WithClock          = internal.WithClock
	WithMimeType       = internal.WithMimeType
	WithCharset        = internal.WithCharset
	WithClient         = internal.WithClient
	WithNegotiator     = internal.WithNegotiator
	WithSessionManager = internal.WithSessionManager
	WithSession        = internal.WithSession
	WithOutput         = internal.WithOutput
	WithStdin          = internal.WithStdin
	WithArgs           = internal.WithArgs
)

// Serve options
var (
	Address         = internal.Address
	ServeLogger     = internal.ServeLogger
	ShutdownTimeout = internal.ShutdownTimeout
	StartupHook     = internal.StartupHook
	ShutdownHook    = internal.ShutdownHook
	WithAutoTLS     = internal.WithAutoTLS
)

// NewApplication returns a base application.
func NewApplication(opts ...Option) *Application {
	return internal.NewApplication(opts...)
}

// NewWebApplication builds the application for a single request.
func NewWebApplication(r *http.Request, t transport.Transport, opts ...Option) *WebApplication {
	return internal.NewWebApplication(r, t, opts...)
}

// NewCliApplication builds a command-line application.
func NewCliApplication(opts ...Option) *CliApplication {
	return internal.NewCliApplication(opts...)
}

// Handler returns an http.Handler running fn in a fresh WebApplication per
// request.
func Handler(fn ExecuteFunc, opts ...Option) http.Handler {
	return internal.Handler(fn, opts...)
}

// RoutedHandler returns an http.Handler that dispatches requests to the
// controllers registered on rt.
func RoutedHandler(rt *router.Router, res *controller.Resolver, opts ...Option) http.Handler {
	return internal.RouteHandler(rt, res, opts...)
}

// Serve runs handler until ctx is canceled or a termination signal arrives.
func Serve(ctx context.Context, handler http.Handler, opts ...ServeOption) error {
	return internal.Serve(ctx, handler, opts...)
}

// FromContext returns the WebApplication handling the current request.
func FromContext(ctx context.Context) (*WebApplication, bool) {
	return internal.FromContext(ctx)
}

// CliFromContext returns the running CliApplication.
func CliFromContext(ctx context.Context) (*CliApplication, bool) {
	return internal.CliFromContext(ctx)
}

// NewHTTPError returns an HTTPError with code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return internal.NewHTTPError(code, message)
}

// IsValidHTTPStatus reports whether code is a registered HTTP status.
func IsValidHTTPStatus(code int) bool {
	return internal.IsValidHTTPStatus(code)
}

// StatusLine returns "HTTP/1.1 <code> <reason>".
func StatusLine(code int) string {
	return internal.StatusLine(code)
}

// IsPanicError reports whether err wraps a PanicError.
func IsPanicError(err error) bool {
	return internal.IsPanicError(err)
}
