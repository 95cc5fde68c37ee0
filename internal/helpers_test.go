package internal

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrymomot/appshell/pkg/event"
	"github.com/dmitrymomot/appshell/pkg/transport"
)

var testNow = time.Date(2024, time.March, 5, 10, 20, 30, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTestRequest(method, target string, body io.Reader) *http.Request {
	r := httptest.NewRequest(method, target, body)
	r.Host = "mydomain.com"
	return r
}

func newTestWebApp(t *testing.T, r *http.Request, opts ...Option) (*WebApplication, *transport.Recorder) {
	t.Helper()

	if r == nil {
		r = newTestRequest(http.MethodGet, "/index.php", nil)
	}
	rec := transport.NewRecorder()
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	return NewWebApplication(r, rec, opts...), rec
}

// eventLog records the names of dispatched events.
type eventLog struct {
	mu     sync.Mutex
	names  []string
	errors []error
}

func newEventLog(names ...string) (*event.Bus, *eventLog) {
	bus := event.NewBus()
	log := &eventLog{}
	for _, name := range names {
		bus.Subscribe(name, func(_ context.Context, e event.Event) {
			log.mu.Lock()
			defer log.mu.Unlock()
			log.names = append(log.names, e.Name())
			if ee, ok := e.(*event.ErrorEvent); ok {
				log.errors = append(log.errors, ee.Err)
			}
		})
	}
	return bus, log
}

func (l *eventLog) Names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.names...)
}

func (l *eventLog) Errors() []error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]error(nil), l.errors...)
}

var allEvents = []string{
	event.BeforeExecute,
	event.AfterExecute,
	event.AfterCompress,
	event.BeforeRespond,
	event.AfterRespond,
	event.Error,
}

// failingTransport accepts headers but refuses body writes.
type failingTransport struct {
	*transport.Recorder
}

var errWriteRefused = errors.New("write refused")

func (failingTransport) Write([]byte) (int, error) { return 0, errWriteRefused }

func headerLine(lines []string, name string) (string, bool) {
	prefix := strings.ToLower(name) + ":"
	for _, l := range lines {
		if strings.HasPrefix(strings.ToLower(l), prefix) {
			return strings.TrimSpace(l[len(prefix):]), true
		}
	}
	return "", false
}
