package transport

import (
	"bytes"
	"sync"
)

// Record is one WriteHeader call.
type Record struct {
	Line    string
	Replace bool
	Code    int
}

// Recorder is a Transport that keeps everything written to it.
type Recorder struct {
	mu      sync.Mutex
	records []Record
	body    bytes.Buffer
	sent    bool
}

// NewRecorder returns an empty recorder with headers not yet sent.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) WriteHeader(line string, replace bool, code int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, Record{Line: line, Replace: replace, Code: code})
}

func (r *Recorder) HeadersSent() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sent
}

// SetHeadersSent forces the value HeadersSent reports.
func (r *Recorder) SetHeadersSent(sent bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = sent
}

func (r *Recorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.Write(p)
}

// Records returns a copy of the recorded header calls.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Lines returns only the recorded header lines.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.Line
	}
	return out
}

// Body returns everything written so far.
func (r *Recorder) Body() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.String()
}
