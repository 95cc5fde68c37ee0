package cli

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
)

// Output writes text to the console.
type Output interface {
	Out(text string, newline bool) error
}

// Stdout writes to an io.Writer, os.Stdout by default.
type Stdout struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStdout returns an Output writing to w, or to os.Stdout when w is nil.
func NewStdout(w io.Writer) *Stdout {
	if w == nil {
		w = os.Stdout
	}
	return &Stdout{w: w}
}

func (s *Stdout) Out(text string, newline bool) error {
	if newline {
		text += "\n"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.w, text)
	return err
}

// Reader reads lines of user input.
type Reader struct {
	mu sync.Mutex
	r  *bufio.Reader
}

// NewReader returns a Reader over r, or over os.Stdin when r is nil.
func NewReader(r io.Reader) *Reader {
	if r == nil {
		r = os.Stdin
	}
	return &Reader{r: bufio.NewReader(r)}
}

// ReadLine returns the next line without its line terminator. A final line
// without a newline is returned with a nil error; io.EOF is returned only
// when nothing was read.
func (r *Reader) ReadLine() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	line, err := r.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
