package transport

import (
	"net/http"
	"sync"
)

// HTTP writes to an http.ResponseWriter. The status code and headers are
// held back until the first Write or Finish.
type HTTP struct {
	w      http.ResponseWriter
	mu     sync.Mutex
	status int
	size   int64
	sent   bool
}

// NewHTTP wraps w.
func NewHTTP(w http.ResponseWriter) *HTTP {
	return &HTTP{w: w, status: http.StatusOK}
}

func (t *HTTP) WriteHeader(line string, replace bool, code int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sent {
		return
	}

	if IsStatusLine(line) {
		if code == 0 {
			code, _ = ParseStatusLine(line)
		}
		if code != 0 {
			t.status = code
		}
		return
	}

	name, value, ok := SplitHeaderLine(line)
	if !ok {
		return
	}
	if replace {
		t.w.Header().Set(name, value)
	} else {
		t.w.Header().Add(name, value)
	}
	if code != 0 {
		t.status = code
	}
}

func (t *HTTP) HeadersSent() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sent
}

func (t *HTTP) Write(p []byte) (int, error) {
	t.mu.Lock()
	t.commit()
	t.mu.Unlock()

	n, err := t.w.Write(p)
	t.mu.Lock()
	t.size += int64(n)
	t.mu.Unlock()
	return n, err
}

// Finish commits the status and headers if nothing was written yet.
func (t *HTTP) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.commit()
}

// Status returns the response code that was or will be sent.
func (t *HTTP) Status() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Size returns the number of body bytes written.
func (t *HTTP) Size() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size
}

// Flush implements http.Flusher.
func (t *HTTP) Flush() {
	t.Finish()
	if f, ok := t.w.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap returns the underlying ResponseWriter.
func (t *HTTP) Unwrap() http.ResponseWriter {
	return t.w
}

func (t *HTTP) commit() {
	if t.sent {
		return
	}
	t.sent = true
	t.w.WriteHeader(t.status)
}
