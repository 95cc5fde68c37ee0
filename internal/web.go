package internal

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrymomot/appshell/pkg/event"
	"github.com/dmitrymomot/appshell/pkg/response"
	"github.com/dmitrymomot/appshell/pkg/router"
	"github.com/dmitrymomot/appshell/pkg/session"
	"github.com/dmitrymomot/appshell/pkg/transport"
	"github.com/dmitrymomot/appshell/pkg/webclient"
)

const (
	defaultMimeType = "text/html"
	defaultCharset  = "utf-8"
)

// Session is the part of a session the web application needs for CSRF
// protection.
type Session interface {
	GetToken(forceNew bool) string
	HasToken(token string) bool
}

// WebApplication handles a single HTTP request: it buffers headers and body
// while the execution routine runs, then sends them through a transport.
type WebApplication struct {
	*Application

	request    *http.Request
	transport  transport.Transport
	client     *webclient.Client
	response   *response.Buffer
	negotiator *response.Negotiator
	input      url.Values

	mimeType     string
	charset      string
	cachable     bool
	modifiedDate time.Time

	sessions *session.Manager
	session  Session
}

// NewWebApplication builds the application for r. Unlike the base
// application, Close does not exit the process unless WithCloser says so.
func NewWebApplication(r *http.Request, t transport.Transport, opts ...Option) *WebApplication {
	s := newSettings(opts)
	if s.closer == nil {
		s.closer = func(int) {}
	}

	a := &WebApplication{
		Application: newApplication(s),
		request:     r,
		transport:   t,
		client:      s.client,
		response:    response.NewBuffer(),
		negotiator:  s.negotiator,
		mimeType:    s.mimeType,
		charset:     s.charset,
		sessions:    s.sessions,
		session:     s.session,
	}
	a.self = a

	if a.client == nil {
		a.client = webclient.FromRequest(r)
	}
	if a.negotiator == nil {
		a.negotiator = response.NewNegotiator(
			response.WithProduct(a.config.String("product", response.DefaultProduct)),
		)
	}
	if a.mimeType == "" {
		a.mimeType = defaultMimeType
	}
	if a.charset == "" {
		a.charset = defaultCharset
	}

	a.input = parseInput(r)
	a.loadSystemURIs()

	return a
}

// Execute runs the routine, optionally compresses the body and responds.
// Failures are logged and dispatched; the client then receives only a
// status line derived from the error.
func (a *WebApplication) Execute(ctx context.Context) {
	a.run(ctx, func(ctx context.Context) error {
		if a.config.Bool("gzip", false) {
			a.compress()
			a.Dispatch(ctx, event.NewApplicationEvent(event.AfterCompress, a))
		}

		a.Dispatch(ctx, event.NewApplicationEvent(event.BeforeRespond, a))
		if err := a.Respond(ctx); err != nil {
			return err
		}
		a.Dispatch(ctx, event.NewApplicationEvent(event.AfterRespond, a))
		return nil
	})

	if a.err != nil && a.state != StateClosed && !a.transport.HeadersSent() {
		code := a.failureStatus(a.err)
		a.transport.WriteHeader(StatusLine(code), true, code)
	}
}

func (a *WebApplication) failureStatus(err error) int {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr) && IsValidHTTPStatus(httpErr.Code):
		return httpErr.Code
	case errors.Is(err, router.ErrRouteNotFound):
		return http.StatusNotFound
	}
	if v, ok := a.response.Header("Status"); ok {
		if code := statusCode(v); code >= http.StatusBadRequest {
			return code
		}
	}
	return http.StatusInternalServerError
}

func (a *WebApplication) compress() {
	a.negotiator.Compress(a.response, a.client.Encodings, a.transport.HeadersSent())
}

// Request returns the HTTP request being handled.
func (a *WebApplication) Request() *http.Request {
	return a.request
}

// Client returns the detected client capabilities.
func (a *WebApplication) Client() *webclient.Client {
	return a.client
}

// Transport returns the output transport.
func (a *WebApplication) Transport() transport.Transport {
	return a.transport
}

// Response returns the response buffer.
func (a *WebApplication) Response() *response.Buffer {
	return a.response
}

// Input returns the merged query and form values.
func (a *WebApplication) Input() url.Values {
	return a.input
}

// SetHeader buffers a response header.
func (a *WebApplication) SetHeader(name, value string, replace bool) *WebApplication {
	a.response.SetHeader(name, value, replace)
	return a
}

// Headers returns the buffered headers in order.
func (a *WebApplication) Headers() []response.Header {
	return a.response.Headers()
}

// ClearHeaders drops all buffered headers.
func (a *WebApplication) ClearHeaders() *WebApplication {
	a.response.ClearHeaders()
	return a
}

// SetBody replaces the response body.
func (a *WebApplication) SetBody(content string) *WebApplication {
	a.response.SetBody(content)
	return a
}

// PrependBody adds content before the body.
func (a *WebApplication) PrependBody(content string) *WebApplication {
	a.response.PrependBody(content)
	return a
}

// AppendBody adds content after the body.
func (a *WebApplication) AppendBody(content string) *WebApplication {
	a.response.AppendBody(content)
	return a
}

// Body returns the response body.
func (a *WebApplication) Body() string {
	return a.response.Body()
}

// AllowCache sets whether the response may be cached and returns the
// previous setting.
func (a *WebApplication) AllowCache(allow bool) bool {
	prev := a.cachable
	a.cachable = allow
	return prev
}

// IsCachable reports whether caching is allowed.
func (a *WebApplication) IsCachable() bool {
	return a.cachable
}

// SetModifiedDate sets the Last-Modified value used for cachable responses.
func (a *WebApplication) SetModifiedDate(t time.Time) *WebApplication {
	a.modifiedDate = t
	return a
}

// ModifiedDate returns the Last-Modified value, zero if unset.
func (a *WebApplication) ModifiedDate() time.Time {
	return a.modifiedDate
}

// MimeType returns the response MIME type.
func (a *WebApplication) MimeType() string {
	return a.mimeType
}

// SetMimeType sets the response MIME type.
func (a *WebApplication) SetMimeType(mimeType string) *WebApplication {
	a.mimeType = mimeType
	return a
}

// Charset returns the response character set.
func (a *WebApplication) Charset() string {
	return a.charset
}

// SetCharset sets the response character set.
func (a *WebApplication) SetCharset(charset string) *WebApplication {
	a.charset = charset
	return a
}

// SetStatus buffers a Status header.
func (a *WebApplication) SetStatus(code int) error {
	if !IsValidHTTPStatus(code) {
		return ErrInvalidStatus
	}
	a.response.SetHeader("Status", strconv.Itoa(code), true)
	return nil
}

func parseInput(r *http.Request) url.Values {
	input := url.Values{}
	if r == nil {
		return input
	}
	if err := r.ParseForm(); err == nil {
		for k, v := range r.Form {
			input[k] = append([]string(nil), v...)
		}
		return input
	}
	for k, v := range r.URL.Query() {
		input[k] = v
	}
	return input
}
